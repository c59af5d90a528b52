// Package exam is the test-taking screen: question card, answer entry,
// palette and countdown.
package exam

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/rs/zerolog/log"

	"github.com/reddycharan348/Gate-Exam/internal/exam"
	"github.com/reddycharan348/Gate-Exam/internal/router"
	"github.com/reddycharan348/Gate-Exam/internal/scoring"
	"github.com/reddycharan348/Gate-Exam/internal/screen"
	"github.com/reddycharan348/Gate-Exam/internal/screens"
	"github.com/reddycharan348/Gate-Exam/internal/screens/results"
	"github.com/reddycharan348/Gate-Exam/internal/store"
	"github.com/reddycharan348/Gate-Exam/internal/ui/components"
	"github.com/reddycharan348/Gate-Exam/internal/ui/layout"
)

// ExamScreen runs one exam session until it is submitted.
type ExamScreen struct {
	svc  *screens.Services
	sess *exam.Session
	now  time.Time

	options components.OptionList
	input   components.TextInput

	confirm     *components.Confirm
	gotoMode    bool
	gotoBuf     string
	showPalette bool
	notice      string
}

var _ screen.Screen = (*ExamScreen)(nil)
var _ screen.KeyHintProvider = (*ExamScreen)(nil)
var _ screen.StatusProvider = (*ExamScreen)(nil)

// New creates an exam screen for a started session.
func New(svc *screens.Services, sess *exam.Session) *ExamScreen {
	s := &ExamScreen{svc: svc, sess: sess, now: svc.Clock()}
	s.loadQuestion()
	return s
}

// Session returns the session being run.
func (s *ExamScreen) Session() *exam.Session {
	return s.sess
}

func (s *ExamScreen) Init() tea.Cmd {
	return tea.Batch(s.recordStart(), tickCmd(), s.input.Init())
}

func (s *ExamScreen) Title() string {
	return string(s.sess.Settings.TestType)
}

func (s *ExamScreen) Status() string {
	return fmt.Sprintf("⏱ %s   %d/%d attempted   %g marks",
		layout.FormatClock(int(s.sess.Remaining(s.now).Seconds())),
		s.sess.Attempted(), s.sess.Len(), s.sess.MarksPotential())
}

func (s *ExamScreen) KeyHints() []layout.KeyHint {
	switch {
	case s.confirm != nil:
		return []layout.KeyHint{
			{Key: "Y", Description: "Submit"},
			{Key: "N", Description: "Keep going"},
		}
	case s.gotoMode:
		return []layout.KeyHint{
			{Key: "0-9", Description: "Question"},
			{Key: "Enter", Description: "Go"},
			{Key: "Esc", Description: "Cancel"},
		}
	}

	hints := []layout.KeyHint{{Key: "Tab/⇧Tab", Description: "Next/Prev"}}
	if q := s.sess.Current(); q != nil && q.Type.HasOptions() {
		hints = append(hints, layout.KeyHint{Key: "↑↓ Space", Description: "Choose"})
	} else {
		hints = append(hints, layout.KeyHint{Key: "Enter", Description: "Save & Next"})
	}
	return append(hints,
		layout.KeyHint{Key: "F", Description: "Flag"},
		layout.KeyHint{Key: "C", Description: "Clear"},
		layout.KeyHint{Key: "G", Description: "Go to"},
		layout.KeyHint{Key: "P", Description: "Palette"},
		layout.KeyHint{Key: "S", Description: "Submit"},
	)
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (s *ExamScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		return s.handleTick()

	case recordedMsg:
		if msg.err != nil {
			log.Warn().Err(msg.err).Str("action", msg.action).Msg("attempt not recorded")
		}
		return s, nil

	case tea.KeyMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

func (s *ExamScreen) handleTick() (screen.Screen, tea.Cmd) {
	if s.sess.Submitted() {
		return s, nil
	}
	s.now = s.svc.Clock()
	if s.sess.Expired(s.now) {
		log.Info().Str("session_id", s.sess.ID).Msg("time up, auto-submitting")
		return s, s.submit()
	}
	return s, tickCmd()
}

func (s *ExamScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	if s.sess.Submitted() {
		return s, nil
	}
	s.notice = ""
	key := msg.String()

	if s.confirm != nil {
		c, res := s.confirm.Update(msg)
		s.confirm = &c
		switch res {
		case components.ConfirmYes:
			s.confirm = nil
			return s, s.submit()
		case components.ConfirmNo:
			s.confirm = nil
		}
		return s, nil
	}

	if s.gotoMode {
		return s.handleGoto(key)
	}

	switch key {
	case "s", "esc":
		s.openConfirm()
		return s, nil
	case "tab", "]":
		s.move(s.sess.Next)
		return s, nil
	case "shift+tab", "[":
		s.move(s.sess.Prev)
		return s, nil
	case "f":
		s.commitInput()
		if err := s.sess.MarkForReview(); err != nil {
			s.notice = err.Error()
		}
		s.loadQuestion()
		return s, nil
	case "c":
		if err := s.sess.Clear(); err != nil {
			s.notice = err.Error()
		}
		s.input.SetValue("")
		return s, nil
	case "g":
		s.gotoMode = true
		s.gotoBuf = ""
		return s, nil
	case "p":
		s.showPalette = !s.showPalette
		return s, nil
	}

	q := s.sess.Current()
	if q == nil {
		return s, nil
	}

	if q.Type.HasOptions() {
		switch key {
		case "right", "l":
			s.move(s.sess.Next)
			return s, nil
		case "left", "h":
			s.move(s.sess.Prev)
			return s, nil
		}
		var pick int
		s.options, pick = s.options.Update(msg)
		if pick >= 0 {
			if err := s.sess.SelectOption(pick); err != nil {
				s.notice = err.Error()
			}
		}
		return s, nil
	}

	if key == "enter" {
		if !s.input.Valid() {
			s.notice = "Enter a number, e.g. 42 or -0.75"
			return s, nil
		}
		s.commitInput()
		s.move(s.sess.Next)
		return s, nil
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	s.commitInput()
	return s, cmd
}

func (s *ExamScreen) handleGoto(key string) (screen.Screen, tea.Cmd) {
	switch key {
	case "esc":
		s.gotoMode = false
	case "backspace":
		if s.gotoBuf != "" {
			s.gotoBuf = s.gotoBuf[:len(s.gotoBuf)-1]
		}
	case "enter":
		s.gotoMode = false
		n, err := strconv.Atoi(s.gotoBuf)
		if err != nil || n < 1 || n > s.sess.Len() {
			s.notice = fmt.Sprintf("No question %q (1-%d)", s.gotoBuf, s.sess.Len())
			return s, nil
		}
		s.move(func() bool { return s.sess.Goto(n - 1) })
	default:
		if len(key) == 1 && key[0] >= '0' && key[0] <= '9' && len(s.gotoBuf) < 3 {
			s.gotoBuf += key
		}
	}
	return s, nil
}

// move saves the typed answer, runs nav and loads the new question.
func (s *ExamScreen) move(nav func() bool) {
	s.commitInput()
	if nav() {
		s.loadQuestion()
	}
}

// commitInput stores a valid typed answer for the current NAT question.
func (s *ExamScreen) commitInput() {
	q := s.sess.Current()
	if q == nil || q.Type != exam.NAT || !s.input.Valid() {
		return
	}
	if strings.TrimSpace(s.input.Value()) == s.sess.Response(q.ID).Value() {
		return
	}
	if err := s.sess.SetResponse(s.input.Value()); err != nil {
		s.notice = err.Error()
	}
}

// loadQuestion resets the answer widgets for the current question.
func (s *ExamScreen) loadQuestion() {
	q := s.sess.Current()
	if q == nil {
		return
	}
	s.options = components.NewOptionList(len(q.Options))
	s.input = components.NewTextInput("Type a numerical answer", true, 24)
	if q.Type == exam.NAT {
		s.input.SetValue(s.sess.Response(q.ID).Value())
	}
}

func (s *ExamScreen) openConfirm() {
	counts := s.sess.StatusCounts()
	left := s.sess.Len() - s.sess.Attempted()
	detail := fmt.Sprintf("%d answered, %d unanswered, %d marked for review.",
		s.sess.Attempted(), left,
		counts[exam.StatusMarkedForReview]+counts[exam.StatusMarkedAndAnswered])
	c := components.NewConfirm("Submit the test?", detail, "Submit", "Keep going")
	s.confirm = &c
}

// submit freezes the session, records it and shows the results.
func (s *ExamScreen) submit() tea.Cmd {
	s.commitInput()
	now := s.svc.Clock()
	if err := s.sess.Submit(now); err != nil {
		return nil
	}
	s.now = now

	rep := scoring.Evaluate(s.sess.Questions, s.sess.Answers())
	log.Info().
		Str("session_id", s.sess.ID).
		Float64("score", rep.Score).
		Int("attempted", rep.Attempted).
		Msg("exam submitted")

	next := router.Replace(results.New(s.svc, s.sess, rep))
	if record := s.recordSubmit(rep); record != nil {
		return tea.Sequence(record, next)
	}
	return next
}

func (s *ExamScreen) recordStart() tea.Cmd {
	rec, sess := s.svc.Recorder, s.sess
	if !rec.Enabled() {
		return nil
	}
	return func() tea.Msg {
		return recordedMsg{action: store.ActionStart, err: rec.Start(context.Background(), sess)}
	}
}

func (s *ExamScreen) recordSubmit(rep *scoring.Report) tea.Cmd {
	rec, sess := s.svc.Recorder, s.sess
	if !rec.Enabled() {
		return nil
	}
	return func() tea.Msg {
		err := rec.Submit(context.Background(), sess, rep)
		if err != nil {
			log.Warn().Err(err).Str("session_id", sess.ID).Msg("attempt not recorded")
		}
		return nil
	}
}
