package components

import (
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/reddycharan348/Gate-Exam/internal/ui/theme"
)

// MenuItem is one entry of a Menu. Action runs on Enter.
type MenuItem struct {
	Label    string
	Hint     string
	Action   func() tea.Cmd
	Disabled bool
}

// Menu is a vertical list of actions. Disabled items are drawn dimmed and
// skipped by the cursor. An unfocused menu ignores keys and hides the
// cursor so it can sit below other controls.
type Menu struct {
	Items    []MenuItem
	Selected int
	Focused  bool
}

func NewMenu(items []MenuItem) Menu {
	m := Menu{Items: items, Focused: true, Selected: -1}
	m.Selected = m.next(-1, 1)
	if m.Selected < 0 {
		m.Selected = 0
	}
	return m
}

// next returns the first enabled index after from in direction dir, or -1.
func (m Menu) next(from, dir int) int {
	for i := from + dir; i >= 0 && i < len(m.Items); i += dir {
		if !m.Items[i].Disabled {
			return i
		}
	}
	return -1
}

// AtTop reports whether no enabled item sits above the cursor.
func (m Menu) AtTop() bool { return m.next(m.Selected, -1) < 0 }

func (m Menu) Update(msg tea.Msg) (Menu, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok || !m.Focused {
		return m, nil
	}
	switch kmsg.String() {
	case "up", "k":
		if i := m.next(m.Selected, -1); i >= 0 {
			m.Selected = i
		}
	case "down", "j":
		if i := m.next(m.Selected, 1); i >= 0 {
			m.Selected = i
		}
	case "enter":
		if m.Selected < 0 || m.Selected >= len(m.Items) {
			break
		}
		if it := m.Items[m.Selected]; !it.Disabled && it.Action != nil {
			return m, it.Action()
		}
	}
	return m, nil
}

func (m Menu) View() string {
	var b strings.Builder
	for i, it := range m.Items {
		switch {
		case it.Disabled:
			b.WriteString(theme.Disabled.Render("    " + it.Label))
		case m.Focused && i == m.Selected:
			b.WriteString(theme.Selected.Render("  ▸ " + it.Label))
		default:
			b.WriteString(theme.Unselected.Render("    " + it.Label))
		}
		if it.Hint != "" {
			b.WriteString("  " + theme.Hint.Render(it.Hint))
		}
		b.WriteByte('\n')
	}
	return b.String()
}
