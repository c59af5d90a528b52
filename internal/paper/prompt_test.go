package paper

import (
	"strings"
	"testing"

	"github.com/reddycharan348/Gate-Exam/internal/exam"
)

func TestBuildUserMessage_SubjectBatch(t *testing.T) {
	core := Blueprint(exam.Full)[2]
	msg := buildUserMessage(core, fullRequest(), "99")

	for _, want := range []string{
		"Generate exactly 20 unique advanced technical questions (every question worth 2 marks).",
		"Subject: Computer Science",
		"Difficulty: Moderate",
		`Section: "Core Technical"`,
		"Seed: 99-3",
	} {
		if !strings.Contains(msg, want) {
			t.Errorf("expected %q in message:\n%s", want, msg)
		}
	}
	if strings.Contains(msg, "Topics:") {
		t.Error("subject batch should not list topics")
	}
}

func TestBuildUserMessage_AptitudeBatch(t *testing.T) {
	apt := Blueprint(exam.Full)[0]
	msg := buildUserMessage(apt, fullRequest(), "7")

	if strings.Contains(msg, "Computer Science") {
		t.Error("aptitude batch should not mention the subject")
	}
	if !strings.Contains(msg, "Topics: Verbal, Quantitative and Logical reasoning") {
		t.Errorf("expected topics line:\n%s", msg)
	}
	if !strings.HasSuffix(msg, "Seed: 7-1") {
		t.Errorf("expected seed suffix -1:\n%s", msg)
	}
}

func TestBlueprint(t *testing.T) {
	if n := QuestionCount(exam.Full); n != 65 {
		t.Errorf("expected 65 questions in a full paper, got %d", n)
	}
	if n := QuestionCount(exam.AptitudeOnly); n != 15 {
		t.Errorf("expected 15 questions in an aptitude paper, got %d", n)
	}

	full := Blueprint(exam.Full)
	wantNames := []string{"Aptitude", "Foundations", "Core", "Applications"}
	for i, b := range full {
		if b.Name != wantNames[i] {
			t.Errorf("batch %d: expected %s, got %s", i, wantNames[i], b.Name)
		}
	}

	// Callers get a copy.
	full[0].Count = 99
	if Blueprint(exam.Full)[0].Count != 10 {
		t.Error("Blueprint leaked its internal slice")
	}
}

func TestBatchForSchema(t *testing.T) {
	for _, b := range append(Blueprint(exam.Full), Blueprint(exam.AptitudeOnly)...) {
		got, ok := BatchForSchema(batchSchema(b).Name)
		if !ok {
			t.Fatalf("schema for %s not found", b.Name)
		}
		if got.Count != b.Count || got.Section != b.Section {
			t.Errorf("round trip mismatch: %+v vs %+v", got, b)
		}
	}
	if _, ok := BatchForSchema("gate-analysis"); ok {
		t.Error("expected unknown schema to miss")
	}
}
