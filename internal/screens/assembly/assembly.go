// Package assembly shows paper generation progress and hands the finished
// paper to the exam screen.
package assembly

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/rs/zerolog/log"

	"github.com/reddycharan348/Gate-Exam/internal/exam"
	"github.com/reddycharan348/Gate-Exam/internal/paper"
	"github.com/reddycharan348/Gate-Exam/internal/router"
	"github.com/reddycharan348/Gate-Exam/internal/screen"
	"github.com/reddycharan348/Gate-Exam/internal/screens"
	examscreen "github.com/reddycharan348/Gate-Exam/internal/screens/exam"
	"github.com/reddycharan348/Gate-Exam/internal/ui/components"
	"github.com/reddycharan348/Gate-Exam/internal/ui/layout"
	"github.com/reddycharan348/Gate-Exam/internal/ui/theme"
)

// maxLines bounds the progress log shown on screen.
const maxLines = 8

// progressMsg carries one progress line from a running assembly.
type progressMsg struct {
	run  int
	text string
}

// assembledMsg ends a run. Exactly one of Paper and Err is set.
type assembledMsg struct {
	run   int
	paper *paper.Paper
	err   error
}

// AssemblyScreen runs the paper assembler in the background.
type AssemblyScreen struct {
	svc     *screens.Services
	req     paper.Request
	spinner spinner.Model

	run    int
	cancel context.CancelFunc
	events chan tea.Msg
	lines  []string
	err    error
}

var _ screen.Screen = (*AssemblyScreen)(nil)
var _ screen.KeyHintProvider = (*AssemblyScreen)(nil)

// New creates an assembly screen for req.
func New(svc *screens.Services, req paper.Request) *AssemblyScreen {
	return &AssemblyScreen{
		svc:     svc,
		req:     req,
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot)),
	}
}

func (s *AssemblyScreen) Init() tea.Cmd {
	return tea.Batch(s.startRun(), s.spinner.Tick)
}

func (s *AssemblyScreen) Title() string {
	return "Preparing Paper"
}

func (s *AssemblyScreen) KeyHints() []layout.KeyHint {
	if s.err != nil {
		return []layout.KeyHint{
			{Key: "R", Description: "Retry"},
			{Key: "Esc", Description: "Back"},
		}
	}
	return []layout.KeyHint{
		{Key: "Esc", Description: "Cancel"},
	}
}

// startRun launches the assembler. Messages from older runs are dropped by
// their run number.
func (s *AssemblyScreen) startRun() tea.Cmd {
	s.run++
	s.err = nil
	s.lines = nil

	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	events := make(chan tea.Msg, 16)
	s.events = events

	run, req, asm := s.run, s.req, s.svc.Assembler
	go func() {
		defer close(events)
		progress := func(text string) {
			select {
			case events <- progressMsg{run: run, text: text}:
			case <-ctx.Done():
			}
		}

		var (
			p   *paper.Paper
			err error
		)
		if asm == nil {
			err = errors.New("no question generator configured")
		} else {
			p, err = asm.AssemblePaper(ctx, req, progress)
		}
		select {
		case events <- assembledMsg{run: run, paper: p, err: err}:
		case <-ctx.Done():
		}
	}()

	return waitFor(events)
}

func waitFor(events <-chan tea.Msg) tea.Cmd {
	return func() tea.Msg {
		msg, ok := <-events
		if !ok {
			return nil
		}
		return msg
	}
}

func (s *AssemblyScreen) stop() {
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}

func (s *AssemblyScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case progressMsg:
		if msg.run != s.run {
			return s, nil
		}
		s.lines = append(s.lines, msg.text)
		if len(s.lines) > maxLines {
			s.lines = s.lines[len(s.lines)-maxLines:]
		}
		return s, waitFor(s.events)

	case assembledMsg:
		if msg.run != s.run {
			return s, nil
		}
		s.stop()
		if msg.err != nil {
			return s.handleFailure(msg.err)
		}
		return s, s.begin(msg.paper)

	case spinner.TickMsg:
		if s.err != nil {
			return s, nil
		}
		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(msg)
		return s, cmd

	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "q":
			s.stop()
			return s, router.Pop
		case "r", "R":
			if s.err != nil {
				return s, tea.Batch(s.startRun(), s.spinner.Tick)
			}
		}
	}
	return s, nil
}

func (s *AssemblyScreen) handleFailure(err error) (screen.Screen, tea.Cmd) {
	if errors.Is(err, context.Canceled) {
		return s, nil
	}
	log.Error().Err(err).
		Str("subject", s.req.Subject).
		Str("test_type", string(s.req.TestType)).
		Msg("paper assembly failed")
	s.err = err
	return s, nil
}

// begin starts the session and swaps this screen for the exam.
func (s *AssemblyScreen) begin(p *paper.Paper) tea.Cmd {
	sess := exam.NewSession(s.svc.SessionID(), p.Settings(), p.Questions, s.svc.Clock())
	log.Info().
		Str("session_id", sess.ID).
		Int("questions", sess.Len()).
		Msg("exam started")
	return router.Replace(examscreen.New(s.svc, sess))
}

func (s *AssemblyScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	if cw > 72 {
		cw = 72
	}

	if s.err != nil {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
			theme.Dialog.Width(cw).Render(renderFailure(s.err)))
	}

	var b strings.Builder
	b.WriteString(theme.Title.Render(describe(s.req)) + "\n\n")
	for i, line := range s.lines {
		if i == len(s.lines)-1 {
			b.WriteString(s.spinner.View() + " " + theme.Body.Render(line) + "\n")
		} else {
			b.WriteString(theme.Correct.Render("✓ ") + theme.Hint.Render(line) + "\n")
		}
	}
	if len(s.lines) == 0 {
		b.WriteString(s.spinner.View() + " " + theme.Hint.Render("Contacting the question generator...") + "\n")
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		components.Card(b.String(), cw))
}

func describe(r paper.Request) string {
	if r.TestType == exam.AptitudeOnly {
		return fmt.Sprintf("%s · %s", r.TestType, r.Difficulty)
	}
	return fmt.Sprintf("%s · %s · %s", r.Subject, r.TestType, r.Difficulty)
}

func renderFailure(err error) string {
	title := "Could not generate the paper"
	detail := "The question service is unavailable. Check your API key and network."

	var gerr *paper.GenerationError
	if errors.As(err, &gerr) && gerr.Kind == paper.KindMalformed {
		detail = "The question service returned an unusable paper. Retrying usually helps."
	}

	return theme.Incorrect.Render(title) + "\n\n" +
		theme.Body.Render(detail) + "\n\n" +
		theme.Hint.Render(err.Error()) + "\n\n" +
		theme.Hint.Render("Press R to retry or Esc to go back.")
}
