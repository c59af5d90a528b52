// Package history is the past-attempts screen. Each submitted attempt is
// one row; Enter opens a per-section breakdown rebuilt from the answer
// records stored with it.
package history

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/reddycharan348/Gate-Exam/internal/exam"
	"github.com/reddycharan348/Gate-Exam/internal/router"
	"github.com/reddycharan348/Gate-Exam/internal/scoring"
	"github.com/reddycharan348/Gate-Exam/internal/screen"
	"github.com/reddycharan348/Gate-Exam/internal/store"
	"github.com/reddycharan348/Gate-Exam/internal/ui/components"
	"github.com/reddycharan348/Gate-Exam/internal/ui/layout"
	"github.com/reddycharan348/Gate-Exam/internal/ui/theme"
)

const (
	pageSize = 50

	barWidth   = 60
	labelWidth = 22
)

type attemptsMsg struct {
	attempts []store.AttemptRecord
	err      error
}

type breakdownMsg struct {
	sessionID string
	lines     []sectionLine
	err       error
}

// sectionLine totals one section of an attempt.
type sectionLine struct {
	Section   string
	Score     float64
	Total     float64
	Attempted int
	Correct   int
}

type HistoryScreen struct {
	repo     store.EventRepo
	attempts []store.AttemptRecord
	cursor   int
	top      int // first visible row

	// open is the session whose breakdown is shown, if any.
	open     string
	sections map[string][]sectionLine

	loaded bool
	err    error
}

var (
	_ screen.Screen          = (*HistoryScreen)(nil)
	_ screen.KeyHintProvider = (*HistoryScreen)(nil)
)

func New(repo store.EventRepo) *HistoryScreen {
	return &HistoryScreen{repo: repo, sections: map[string][]sectionLine{}}
}

func (s *HistoryScreen) Title() string { return "History" }

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Sections"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	repo := s.repo
	return func() tea.Msg {
		if repo == nil {
			return attemptsMsg{}
		}
		a, err := repo.QueryAttempts(context.Background(), store.QueryOpts{Limit: pageSize})
		return attemptsMsg{attempts: a, err: err}
	}
}

func (s *HistoryScreen) fetchBreakdown(id string) tea.Cmd {
	repo := s.repo
	return func() tea.Msg {
		records, err := repo.AttemptAnswers(context.Background(), id)
		return breakdownMsg{sessionID: id, lines: groupSections(records), err: err}
	}
}

// groupSections totals answer records per section, keeping the order in
// which sections first appear.
func groupSections(records []store.AnswerRecord) []sectionLine {
	var lines []sectionLine
	for _, r := range records {
		i := 0
		for i < len(lines) && lines[i].Section != r.Section {
			i++
		}
		if i == len(lines) {
			lines = append(lines, sectionLine{Section: r.Section})
		}
		l := &lines[i]
		l.Score += r.Delta
		l.Total += r.Marks
		switch scoring.Outcome(r.Outcome) {
		case scoring.Correct:
			l.Correct++
			l.Attempted++
		case scoring.Incorrect:
			l.Attempted++
		}
	}
	return lines
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case attemptsMsg:
		s.loaded = true
		s.attempts, s.err = msg.attempts, msg.err
	case breakdownMsg:
		if msg.err != nil {
			s.err = msg.err
			break
		}
		s.sections[msg.sessionID] = msg.lines
	case tea.KeyMsg:
		return s, s.handleKey(msg.String())
	}
	return s, nil
}

func (s *HistoryScreen) handleKey(key string) tea.Cmd {
	switch key {
	case "esc", "q":
		return router.Pop
	case "up", "k":
		s.cursor = max(s.cursor-1, 0)
	case "down", "j":
		s.cursor = min(s.cursor+1, max(len(s.attempts)-1, 0))
	case "enter":
		if len(s.attempts) == 0 {
			return nil
		}
		id := s.attempts[s.cursor].SessionID
		if s.open == id {
			s.open = ""
			return nil
		}
		s.open = id
		if _, cached := s.sections[id]; !cached {
			return s.fetchBreakdown(id)
		}
	}
	return nil
}

func (s *HistoryScreen) View(width, height int) string {
	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)
	switch {
	case s.err != nil:
		return center.Foreground(theme.Error).Render("\n\nError: " + s.err.Error())
	case !s.loaded:
		return center.Foreground(theme.TextDim).Render("\n\nLoading history...")
	case len(s.attempts) == 0:
		return center.Foreground(theme.TextDim).Italic(true).
			Render("\n\nNo attempts yet. Construct a test to get started!")
	}

	// Keep the cursor on screen; the open breakdown takes rows of its own.
	rows := max(height-2-len(s.sections[s.open]), 1)
	if s.cursor < s.top {
		s.top = s.cursor
	}
	if s.cursor >= s.top+rows {
		s.top = s.cursor - rows + 1
	}

	var b strings.Builder
	b.WriteString("\n")
	for i := s.top; i < len(s.attempts) && i < s.top+rows; i++ {
		a := s.attempts[i]
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.row(a, i == s.cursor)))
		b.WriteString("\n")
		if a.SessionID == s.open {
			b.WriteString(s.breakdown(a.SessionID, width))
		}
	}
	return b.String()
}

func (s *HistoryScreen) row(a store.AttemptRecord, selected bool) string {
	marker, style := "  ", theme.Unselected
	if selected {
		marker, style = "> ", theme.Selected
	}
	return style.Render(fmt.Sprintf("%s%s  %-16s %-10s %-16s %6.2f / %-4g %6.2f%%  %s",
		marker, a.Timestamp.Format("Jan 02 15:04"), label(a), a.Difficulty, a.TestType,
		a.Score, a.TotalMarks, a.Accuracy, layout.FormatClock(a.DurationSecs)))
}

func (s *HistoryScreen) breakdown(id string, width int) string {
	lines, ok := s.sections[id]
	note := ""
	switch {
	case !ok:
		note = "Loading..."
	case len(lines) == 0:
		note = "No answers recorded"
	}
	if note != "" {
		return lipgloss.PlaceHorizontal(width, lipgloss.Center, theme.Hint.Render(note)) + "\n"
	}

	var b strings.Builder
	for _, l := range lines {
		bar := components.NewProgressBar(l.Section, max(l.Score, 0), l.Total, barWidth)
		bar.LabelWidth = labelWidth
		bar.Caption = fmt.Sprintf("%.2f / %g  (%d/%d correct)", l.Score, l.Total, l.Correct, l.Attempted)
		if l.Score <= 0 {
			bar.Color = theme.ScoreColor(l.Score)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, bar.View()) + "\n")
	}
	return b.String()
}

func label(a store.AttemptRecord) string {
	if a.TestType == string(exam.AptitudeOnly) {
		return "Aptitude"
	}
	return a.Subject
}
