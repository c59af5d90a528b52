package setup

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/reddycharan348/Gate-Exam/internal/exam"
	"github.com/reddycharan348/Gate-Exam/internal/router"
	"github.com/reddycharan348/Gate-Exam/internal/screens"
	"github.com/reddycharan348/Gate-Exam/internal/screens/assembly"
)

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func TestDefaults(t *testing.T) {
	s := New(&screens.Services{})
	if got := s.Settings(); got != exam.DefaultSettings() {
		t.Errorf("settings = %+v, want defaults", got)
	}

	s = New(&screens.Services{Defaults: exam.Settings{Subject: "Civil"}})
	got := s.Settings()
	if got.Subject != "Civil" || got.Difficulty != exam.Moderate || got.TestType != exam.Full {
		t.Errorf("partial defaults not filled: %+v", got)
	}
}

func TestCyclingFields(t *testing.T) {
	s := New(&screens.Services{})

	s.Update(specialKey(tea.KeyDown)) // subject
	s.Update(specialKey(tea.KeyRight))
	if got := s.Settings().Subject; got != exam.Subjects[1] {
		t.Errorf("subject = %q, want %q", got, exam.Subjects[1])
	}
	s.Update(specialKey(tea.KeyLeft))
	s.Update(specialKey(tea.KeyLeft))
	if got := s.Settings().Subject; got != exam.Subjects[len(exam.Subjects)-1] {
		t.Errorf("subject should wrap to %q, got %q", exam.Subjects[len(exam.Subjects)-1], got)
	}

	s.Update(specialKey(tea.KeyDown)) // difficulty
	s.Update(specialKey(tea.KeyRight))
	if got := s.Settings().Difficulty; got != exam.Difficult {
		t.Errorf("difficulty = %q, want Difficult", got)
	}
}

func TestAptitudeSkipsSubject(t *testing.T) {
	s := New(&screens.Services{})
	s.Update(specialKey(tea.KeyRight))
	if s.Settings().TestType != exam.AptitudeOnly {
		t.Fatalf("test type = %q", s.Settings().TestType)
	}

	s.Update(specialKey(tea.KeyDown))
	if s.focus != fieldDifficulty {
		t.Errorf("focus = %d, want difficulty", s.focus)
	}
	if !strings.Contains(s.View(100, 40), "15 questions") {
		t.Error("aptitude summary should show 15 questions")
	}
}

func TestEnterStartsAssembly(t *testing.T) {
	s := New(&screens.Services{})
	_, cmd := s.Update(specialKey(tea.KeyEnter))
	if cmd == nil {
		t.Fatal("expected a command")
	}
	msg, ok := cmd().(router.PushScreenMsg)
	if !ok {
		t.Fatalf("expected PushScreenMsg, got %T", cmd())
	}
	if _, ok := msg.Screen.(*assembly.AssemblyScreen); !ok {
		t.Errorf("pushed %T, want assembly screen", msg.Screen)
	}
}

func TestMenuFocus(t *testing.T) {
	s := New(&screens.Services{})
	for range 3 {
		s.Update(specialKey(tea.KeyDown))
	}
	if s.focus != fieldMenu || !s.menu.Focused {
		t.Fatalf("focus = %d, want menu", s.focus)
	}

	// History is disabled without a database, so down lands on Exit.
	s.Update(specialKey(tea.KeyDown))
	_, cmd := s.Update(specialKey(tea.KeyEnter))
	if cmd == nil {
		t.Fatal("expected quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("exit should quit")
	}

	s.Update(specialKey(tea.KeyUp))
	if s.menu.Selected != 0 || s.focus != fieldMenu {
		t.Fatalf("up should skip the disabled item, selected = %d", s.menu.Selected)
	}
	s.Update(specialKey(tea.KeyUp))
	if s.focus != fieldDifficulty {
		t.Errorf("up from the first menu item should return to the fields, focus = %d", s.focus)
	}

	s.Init()
	if s.focus != fieldTestType || s.menu.Focused {
		t.Error("Init should reset focus")
	}
}

func TestQuitKey(t *testing.T) {
	s := New(&screens.Services{})
	_, cmd := s.Update(keyPress('q'))
	if cmd == nil {
		t.Fatal("q should quit")
	}
}
