package app

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
)

func sized(w, h int) Model {
	m := newModel(Options{})
	updated, _ := m.Update(tea.WindowSizeMsg{Width: w, Height: h})
	return updated.(Model)
}

func TestViewFrame(t *testing.T) {
	m := sized(120, 40)
	content := m.render()
	for _, want := range []string{"GATE Exam", "Setup", "Construct Test", "Ctrl+C"} {
		if !strings.Contains(content, want) {
			t.Errorf("frame missing %q", want)
		}
	}
}

func TestTooSmall(t *testing.T) {
	m := sized(60, 20)
	if !strings.Contains(m.render(), "Terminal too small!") {
		t.Error("expected the resize message")
	}
}

func TestCtrlCQuits(t *testing.T) {
	m := sized(120, 40)
	_, cmd := m.Update(tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl})
	if cmd == nil {
		t.Fatal("expected a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("ctrl+c should quit")
	}
}
