// Package setup is the root screen: paper configuration and the main menu.
package setup

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/reddycharan348/Gate-Exam/internal/exam"
	"github.com/reddycharan348/Gate-Exam/internal/paper"
	"github.com/reddycharan348/Gate-Exam/internal/router"
	"github.com/reddycharan348/Gate-Exam/internal/screen"
	"github.com/reddycharan348/Gate-Exam/internal/screens"
	"github.com/reddycharan348/Gate-Exam/internal/screens/assembly"
	"github.com/reddycharan348/Gate-Exam/internal/screens/history"
	"github.com/reddycharan348/Gate-Exam/internal/ui/components"
	"github.com/reddycharan348/Gate-Exam/internal/ui/layout"
	"github.com/reddycharan348/Gate-Exam/internal/ui/theme"
)

type field int

const (
	fieldTestType field = iota
	fieldSubject
	fieldDifficulty
	fieldMenu
)

// SetupScreen lets the user choose the paper and start it.
type SetupScreen struct {
	svc      *screens.Services
	settings exam.Settings
	focus    field
	menu     components.Menu
}

var _ screen.Screen = (*SetupScreen)(nil)
var _ screen.KeyHintProvider = (*SetupScreen)(nil)

// New creates the setup screen preselected with svc.Defaults.
func New(svc *screens.Services) *SetupScreen {
	s := &SetupScreen{svc: svc, settings: normalize(svc.Defaults)}
	s.menu = components.NewMenu([]components.MenuItem{
		{Label: "Construct Test", Action: s.start},
		{Label: "History", Hint: historyHint(svc), Action: s.openHistory, Disabled: svc.Events == nil},
		{Label: "Exit", Action: func() tea.Cmd { return tea.Quit }},
	})
	s.menu.Focused = false
	return s
}

func historyHint(svc *screens.Services) string {
	if svc.Events == nil {
		return "(no database)"
	}
	return ""
}

// normalize fills unset settings from exam.DefaultSettings.
func normalize(s exam.Settings) exam.Settings {
	d := exam.DefaultSettings()
	if s.Subject == "" {
		s.Subject = d.Subject
	}
	if s.Difficulty == "" {
		s.Difficulty = d.Difficulty
	}
	if s.TestType == "" {
		s.TestType = d.TestType
	}
	return s
}

// Init resets the menu focus. It runs again when the exam flow pops back
// here, which clears the finished session.
func (s *SetupScreen) Init() tea.Cmd {
	s.focus = fieldTestType
	s.menu.Focused = false
	return nil
}

func (s *SetupScreen) Title() string {
	return "Setup"
}

// Settings returns the current selection.
func (s *SetupScreen) Settings() exam.Settings {
	return s.settings
}

func (s *SetupScreen) KeyHints() []layout.KeyHint {
	if s.focus == fieldMenu {
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Navigate"},
			{Key: "Enter", Description: "Select"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Field"},
		{Key: "←→", Description: "Change"},
		{Key: "Enter", Description: "Construct"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (s *SetupScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}

	if s.focus == fieldMenu {
		if k := kmsg.String(); (k == "up" || k == "k") && s.menu.AtTop() {
			s.focusField(s.prevField(fieldMenu))
			return s, nil
		}
		var cmd tea.Cmd
		s.menu, cmd = s.menu.Update(msg)
		return s, cmd
	}

	switch kmsg.String() {
	case "up", "k":
		s.focusField(s.prevField(s.focus))
	case "down", "j", "tab":
		s.focusField(s.nextField(s.focus))
	case "left", "h":
		s.cycle(-1)
	case "right", "l", "space":
		s.cycle(1)
	case "enter":
		return s, s.start()
	case "q":
		return s, tea.Quit
	}
	return s, nil
}

func (s *SetupScreen) focusField(f field) {
	s.focus = f
	s.menu.Focused = f == fieldMenu
}

// subjectActive reports whether the subject applies. Aptitude papers are
// subject independent.
func (s *SetupScreen) subjectActive() bool {
	return s.settings.TestType != exam.AptitudeOnly
}

func (s *SetupScreen) nextField(f field) field {
	next := f + 1
	if next == fieldSubject && !s.subjectActive() {
		next++
	}
	return min(next, fieldMenu)
}

func (s *SetupScreen) prevField(f field) field {
	prev := f - 1
	if prev == fieldSubject && !s.subjectActive() {
		prev--
	}
	return max(prev, fieldTestType)
}

func (s *SetupScreen) cycle(delta int) {
	switch s.focus {
	case fieldTestType:
		s.settings.TestType = step(exam.TestTypes, s.settings.TestType, delta)
	case fieldSubject:
		s.settings.Subject = step(exam.Subjects, s.settings.Subject, delta)
	case fieldDifficulty:
		s.settings.Difficulty = step(exam.Difficulties, s.settings.Difficulty, delta)
	}
}

func step[T comparable](values []T, cur T, delta int) T {
	idx := 0
	for i, v := range values {
		if v == cur {
			idx = i
			break
		}
	}
	n := len(values)
	return values[((idx+delta)%n+n)%n]
}

func (s *SetupScreen) start() tea.Cmd {
	return router.Push(assembly.New(s.svc, paper.RequestFor(s.settings)))
}

func (s *SetupScreen) openHistory() tea.Cmd {
	return router.Push(history.New(s.svc.Events))
}

func (s *SetupScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	if cw > 64 {
		cw = 64
	}

	var b strings.Builder
	b.WriteString(theme.Title.Render("GATE Mock Test") + "\n")
	b.WriteString(theme.Subtitle.Render("AI-generated papers in the GATE pattern") + "\n\n")

	b.WriteString(s.renderField(fieldTestType, "Test type", string(s.settings.TestType), true))
	b.WriteString(s.renderField(fieldSubject, "Subject", s.settings.Subject, s.subjectActive()))
	b.WriteString(s.renderField(fieldDifficulty, "Difficulty", string(s.settings.Difficulty), true))

	b.WriteString("\n" + theme.Hint.Render(summary(s.settings)) + "\n")

	card := components.Card(b.String(), cw)
	menu := components.Card(s.menu.View(), cw)

	content := lipgloss.JoinVertical(lipgloss.Left, card, menu)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

func (s *SetupScreen) renderField(f field, label, value string, active bool) string {
	name := theme.Label.Width(12).Render(label)
	if !active {
		return name + theme.Disabled.Render("General Aptitude only") + "\n"
	}
	if s.focus == f {
		return name + theme.Selected.Render("◂ "+value+" ▸") + "\n"
	}
	return name + theme.Unselected.Render("  "+value) + "\n"
}

func summary(st exam.Settings) string {
	n := paper.QuestionCount(st.TestType)
	mins := int(st.TestType.Duration().Minutes())
	if st.TestType == exam.AptitudeOnly {
		return fmt.Sprintf("%d questions · %d minutes", n, mins)
	}
	return fmt.Sprintf("%d questions · 100 marks · %d minutes", n, mins)
}
