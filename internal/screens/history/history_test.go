package history

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/reddycharan348/Gate-Exam/internal/store"
)

type fakeRepo struct {
	store.EventRepo
	attempts []store.AttemptRecord
	answers  map[string][]store.AnswerRecord
}

func (f *fakeRepo) QueryAttempts(_ context.Context, _ store.QueryOpts) ([]store.AttemptRecord, error) {
	return f.attempts, nil
}

func (f *fakeRepo) AttemptAnswers(_ context.Context, id string) ([]store.AnswerRecord, error) {
	return f.answers[id], nil
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func answer(section, outcome string, marks, delta float64) store.AnswerRecord {
	return store.AnswerRecord{AnswerRecordData: store.AnswerRecordData{
		SessionID: "a", Section: section, Marks: marks, Outcome: outcome, Delta: delta,
	}}
}

func testRepo() *fakeRepo {
	ts := time.Date(2026, 3, 4, 10, 15, 0, 0, time.UTC)
	return &fakeRepo{
		attempts: []store.AttemptRecord{
			{Timestamp: ts, AttemptEventData: store.AttemptEventData{
				SessionID: "a", Action: store.ActionSubmit, Subject: "Mechanical", Difficulty: "Easy",
				TestType: "Full Length Mock", Score: 41.33, TotalMarks: 100, Accuracy: 62.5, DurationSecs: 5400,
			}},
			{Timestamp: ts.Add(-24 * time.Hour), AttemptEventData: store.AttemptEventData{
				SessionID: "b", Action: store.ActionSubmit, Subject: "Civil", Difficulty: "Moderate",
				TestType: "Aptitude Only", Score: 9, TotalMarks: 15,
			}},
		},
		answers: map[string][]store.AnswerRecord{
			"a": {
				answer("General Aptitude", "correct", 1, 1),
				answer("Core", "incorrect", 2, -0.6666),
				answer("General Aptitude", "unanswered", 2, 0),
				answer("Core", "correct", 2, 2),
			},
		},
	}
}

func loaded(t *testing.T) *HistoryScreen {
	t.Helper()
	s := New(testRepo())
	s.Update(s.Init()())
	if !s.loaded {
		t.Fatal("history not loaded")
	}
	return s
}

func TestListsAttempts(t *testing.T) {
	s := loaded(t)
	view := s.View(140, 40)
	for _, want := range []string{"Mar 04 10:15", "Mechanical", "41.33", "Aptitude", "1:30:00"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestExpandLoadsSections(t *testing.T) {
	s := loaded(t)
	_, cmd := s.Update(specialKey(tea.KeyEnter))
	if cmd == nil {
		t.Fatal("expanding should load sections")
	}
	s.Update(cmd())

	lines := s.sections["a"]
	if len(lines) != 2 || lines[0].Section != "General Aptitude" {
		t.Fatalf("sections = %+v", lines)
	}
	if lines[0].Total != 3 || lines[0].Attempted != 1 || lines[0].Correct != 1 {
		t.Errorf("aptitude line = %+v", lines[0])
	}
	if lines[1].Attempted != 2 || lines[1].Correct != 1 {
		t.Errorf("core line = %+v", lines[1])
	}

	// Collapsing and expanding again does not reload.
	s.Update(specialKey(tea.KeyEnter))
	if _, cmd := s.Update(specialKey(tea.KeyEnter)); cmd != nil {
		t.Error("sections should be cached")
	}
}

func TestEmptyHistory(t *testing.T) {
	s := New(&fakeRepo{})
	s.Update(s.Init()())
	if !strings.Contains(s.View(100, 30), "No attempts yet") {
		t.Error("expected empty message")
	}
}

func TestEscPops(t *testing.T) {
	s := loaded(t)
	_, cmd := s.Update(specialKey(tea.KeyEscape))
	if cmd == nil {
		t.Fatal("expected pop")
	}
}

func TestScrollKeepsCursorVisible(t *testing.T) {
	repo := &fakeRepo{}
	ts := time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)
	for i := range 30 {
		repo.attempts = append(repo.attempts, store.AttemptRecord{
			Timestamp: ts.Add(time.Duration(i) * 24 * time.Hour),
			AttemptEventData: store.AttemptEventData{
				SessionID: string(rune('a' + i)), Subject: "Civil", TestType: "Full Length Mock",
			},
		})
	}
	s := New(repo)
	s.Update(s.Init()())

	for range 25 {
		s.Update(specialKey(tea.KeyDown))
	}
	view := s.View(140, 10)
	if !strings.Contains(view, "Jan 26 09:00") {
		t.Errorf("selected row not visible:\n%s", view)
	}
	if strings.Contains(view, "Jan 01 09:00") {
		t.Error("first row should have scrolled off")
	}
}
