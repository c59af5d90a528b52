package assembly

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/reddycharan348/Gate-Exam/internal/exam"
	"github.com/reddycharan348/Gate-Exam/internal/paper"
	"github.com/reddycharan348/Gate-Exam/internal/router"
	"github.com/reddycharan348/Gate-Exam/internal/screens"
	examscreen "github.com/reddycharan348/Gate-Exam/internal/screens/exam"
)

type fakeAssembler struct {
	calls int
	fail  error
}

func (f *fakeAssembler) AssemblePaper(ctx context.Context, req paper.Request, progress paper.ProgressFunc) (*paper.Paper, error) {
	f.calls++
	progress("Generating General Aptitude (10 questions)...")
	progress("General Aptitude ready")
	if f.fail != nil {
		return nil, f.fail
	}
	return &paper.Paper{
		Subject:    req.Subject,
		Difficulty: req.Difficulty,
		TestType:   req.TestType,
		Questions: []exam.Question{
			{ID: 1, Text: "q", Type: exam.NAT, Marks: 1, CorrectAnswer: exam.Single("1"), Section: "General Aptitude"},
		},
	}, nil
}

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func newTestAssembly(asm screens.PaperAssembler) *AssemblyScreen {
	svc := &screens.Services{
		Assembler: asm,
		Now:       func() time.Time { return time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC) },
		NewID:     func() string { return "sess-42" },
	}
	return New(svc, paper.Request{Subject: "Civil", Difficulty: exam.Moderate, TestType: exam.Full})
}

// drain feeds the run's messages back into the screen until it finishes and
// returns the command produced by the final message.
func drain(t *testing.T, s *AssemblyScreen, cmd tea.Cmd) tea.Cmd {
	t.Helper()
	for i := 0; i < 20; i++ {
		msg := cmd()
		if msg == nil {
			t.Fatal("run ended without a result")
		}
		_, next := s.Update(msg)
		if _, done := msg.(assembledMsg); done {
			return next
		}
		cmd = next
	}
	t.Fatal("run did not finish")
	return nil
}

func TestSuccessStartsExam(t *testing.T) {
	asm := &fakeAssembler{}
	s := newTestAssembly(asm)

	next := drain(t, s, s.startRun())
	if len(s.lines) != 2 {
		t.Errorf("progress lines = %v, want 2", s.lines)
	}
	if next == nil {
		t.Fatal("expected navigation")
	}
	rm, ok := next().(router.ReplaceScreenMsg)
	if !ok {
		t.Fatalf("expected ReplaceScreenMsg, got %T", next())
	}
	es, ok := rm.Screen.(*examscreen.ExamScreen)
	if !ok {
		t.Fatalf("replacement = %T, want exam screen", rm.Screen)
	}
	sess := es.Session()
	if sess.ID != "sess-42" || sess.Len() != 1 || sess.Settings.Subject != "Civil" {
		t.Errorf("session = %s with %d questions for %q", sess.ID, sess.Len(), sess.Settings.Subject)
	}
}

func TestFailureShowsRetry(t *testing.T) {
	asm := &fakeAssembler{fail: &paper.GenerationError{Batch: "Core", Kind: paper.KindMalformed, Err: errors.New("bad json")}}
	s := newTestAssembly(asm)

	if next := drain(t, s, s.startRun()); next != nil {
		t.Error("failure should not navigate")
	}
	view := s.View(100, 30)
	for _, want := range []string{"Could not generate the paper", "unusable paper", "Press R to retry"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}

	asm.fail = nil
	_, cmd := s.Update(keyPress('r'))
	if cmd == nil || s.err != nil {
		t.Fatal("r should restart the run")
	}
	if s.run != 2 {
		t.Errorf("run = %d, want 2", s.run)
	}
}

func TestStaleRunIgnored(t *testing.T) {
	s := newTestAssembly(&fakeAssembler{})
	s.run = 3
	s.Update(progressMsg{run: 2, text: "old"})
	if len(s.lines) != 0 {
		t.Error("progress from an older run should be dropped")
	}
	if _, cmd := s.Update(assembledMsg{run: 2, err: errors.New("old")}); cmd != nil || s.err != nil {
		t.Error("result from an older run should be dropped")
	}
}

func TestEscCancels(t *testing.T) {
	s := newTestAssembly(&fakeAssembler{})
	s.startRun()
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd == nil {
		t.Fatal("expected pop")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("esc should pop the screen")
	}
	if s.cancel != nil {
		t.Error("esc should cancel the run")
	}
}

func TestNoAssembler(t *testing.T) {
	s := newTestAssembly(nil)
	drain(t, s, s.startRun())
	if s.err == nil || !strings.Contains(s.err.Error(), "no question generator") {
		t.Errorf("err = %v", s.err)
	}
}
