// Package results shows the score, section breakdown, AI insights and the
// answer key of a submitted session.
package results

import (
	"context"

	"charm.land/bubbles/v2/spinner"
	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/reddycharan348/Gate-Exam/internal/analysis"
	"github.com/reddycharan348/Gate-Exam/internal/exam"
	"github.com/reddycharan348/Gate-Exam/internal/router"
	"github.com/reddycharan348/Gate-Exam/internal/scoring"
	"github.com/reddycharan348/Gate-Exam/internal/screen"
	"github.com/reddycharan348/Gate-Exam/internal/screens"
	"github.com/reddycharan348/Gate-Exam/internal/ui/layout"
	"github.com/reddycharan348/Gate-Exam/internal/ui/theme"
)

type tab int

const (
	tabSummary tab = iota
	tabAnswerKey
)

// analysisMsg delivers the finished analysis.
type analysisMsg struct {
	analysis *analysis.Analysis
}

// ResultsScreen is shown after submission.
type ResultsScreen struct {
	svc  *screens.Services
	sess *exam.Session
	rep  *scoring.Report

	analysis *analysis.Analysis
	spinner  spinner.Model
	viewport viewport.Model
	tab      tab

	width, height int
}

var _ screen.Screen = (*ResultsScreen)(nil)
var _ screen.KeyHintProvider = (*ResultsScreen)(nil)

// New creates the results screen for a submitted session and its local
// report.
func New(svc *screens.Services, sess *exam.Session, rep *scoring.Report) *ResultsScreen {
	return &ResultsScreen{
		svc:      svc,
		sess:     sess,
		rep:      rep,
		spinner:  spinner.New(spinner.WithSpinner(spinner.Dot)),
		viewport: viewport.New(),
	}
}

func (s *ResultsScreen) Init() tea.Cmd {
	return tea.Batch(s.summarize(), s.spinner.Tick)
}

func (s *ResultsScreen) Title() string {
	return "Results"
}

func (s *ResultsScreen) KeyHints() []layout.KeyHint {
	if s.analysis == nil {
		return nil
	}
	other := "Answer key"
	if s.tab == tabAnswerKey {
		other = "Summary"
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Scroll"},
		{Key: "Tab", Description: other},
		{Key: "Enter", Description: "New test"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

// Analysis returns the analysis once it has arrived.
func (s *ResultsScreen) Analysis() *analysis.Analysis {
	return s.analysis
}

func (s *ResultsScreen) summarize() tea.Cmd {
	svc, sess := s.svc, s.sess
	return func() tea.Msg {
		if svc.Analyzer == nil {
			return analysisMsg{analysis.Local(sess.Questions, sess.Answers())}
		}
		return analysisMsg{svc.Analyzer.Summarize(context.Background(), sess.Questions, sess.Answers())}
	}
}

func (s *ResultsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case analysisMsg:
		s.analysis = msg.analysis
		s.refresh()
		return s, nil

	case spinner.TickMsg:
		if s.analysis != nil {
			return s, nil
		}
		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(msg)
		return s, cmd

	case tea.KeyMsg:
		if s.analysis == nil {
			return s, nil
		}
		switch msg.String() {
		case "enter", "esc":
			return s, router.PopToRoot
		case "tab", "shift+tab":
			if s.tab == tabSummary {
				s.tab = tabAnswerKey
			} else {
				s.tab = tabSummary
			}
			s.refresh()
			s.viewport.GotoTop()
			return s, nil
		}
		var cmd tea.Cmd
		s.viewport, cmd = s.viewport.Update(msg)
		return s, cmd
	}
	return s, nil
}

// refresh re-renders the active tab into the viewport.
func (s *ResultsScreen) refresh() {
	if s.analysis == nil || s.width == 0 {
		return
	}
	if s.tab == tabAnswerKey {
		s.viewport.SetContent(renderAnswerKey(s.rep, s.sess, s.width-2))
	} else {
		s.viewport.SetContent(renderSummary(s.analysis, s.width-2))
	}
}

func (s *ResultsScreen) View(width, height int) string {
	if s.analysis == nil {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
			s.spinner.View()+" "+theme.Body.Render("Syncing results with AI..."))
	}

	if width != s.width || height != s.height {
		s.width, s.height = width, height
		s.viewport.SetWidth(width)
		s.viewport.SetHeight(height)
		s.refresh()
	}
	return s.viewport.View()
}
