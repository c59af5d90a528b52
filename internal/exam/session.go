package exam

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrSubmitted is returned when a submitted session is modified.
var ErrSubmitted = errors.New("exam already submitted")

// Session holds the state of one test attempt: the paper, the answer map,
// the cursor, and the clock. It is not safe for concurrent use; the TUI
// mutates it from its update loop only.
type Session struct {
	ID        string
	Settings  Settings
	Questions []Question
	StartedAt time.Time
	Duration  time.Duration

	answers     map[int]*UserAnswer
	current     int
	submittedAt time.Time
}

// NewSession starts a session on the first question.
func NewSession(id string, settings Settings, questions []Question, now time.Time) *Session {
	s := &Session{
		ID:        id,
		Settings:  settings,
		Questions: questions,
		StartedAt: now,
		Duration:  settings.TestType.Duration(),
		answers:   make(map[int]*UserAnswer, len(questions)),
	}
	s.visit()
	return s
}

// Len returns the number of questions.
func (s *Session) Len() int { return len(s.Questions) }

// CurrentIndex returns the zero-based index of the current question.
func (s *Session) CurrentIndex() int { return s.current }

// Current returns the current question, or nil for an empty paper.
func (s *Session) Current() *Question {
	if s.current < 0 || s.current >= len(s.Questions) {
		return nil
	}
	return &s.Questions[s.current]
}

// Goto moves to the question at index i. Out-of-range indices are ignored.
func (s *Session) Goto(i int) bool {
	if i < 0 || i >= len(s.Questions) {
		return false
	}
	s.current = i
	s.visit()
	return true
}

// Next moves forward one question. Returns false on the last question.
func (s *Session) Next() bool { return s.Goto(s.current + 1) }

// Prev moves back one question. Returns false on the first question.
func (s *Session) Prev() bool { return s.Goto(s.current - 1) }

func (s *Session) visit() {
	q := s.Current()
	if q == nil {
		return
	}
	if _, ok := s.answers[q.ID]; !ok {
		s.answers[q.ID] = &UserAnswer{QuestionID: q.ID, Status: StatusNotAnswered}
	}
}

// Status returns the palette status of a question.
func (s *Session) Status(questionID int) Status {
	if ua, ok := s.answers[questionID]; ok {
		return ua.Status
	}
	return StatusNotVisited
}

// Response returns the recorded answer for a question.
func (s *Session) Response(questionID int) Answer {
	if ua, ok := s.answers[questionID]; ok {
		return ua.Answer
	}
	return Answer{}
}

// SelectOption records option idx for the current question. For MCQ the
// option replaces any previous choice. For MSQ the option is toggled and
// selections keep the order in which they were made.
func (s *Session) SelectOption(idx int) error {
	if s.Submitted() {
		return ErrSubmitted
	}
	q := s.Current()
	if q == nil {
		return errors.New("no current question")
	}
	if !q.Type.HasOptions() {
		return fmt.Errorf("question %d (%s) has no options", q.ID, q.Type)
	}
	if idx < 0 || idx >= len(q.Options) {
		return fmt.Errorf("option %d out of range for question %d", idx, q.ID)
	}

	key := fmt.Sprint(idx)
	if q.Type == MCQ {
		s.setAnswer(q.ID, Single(key))
		return nil
	}

	prev := s.Response(q.ID)
	var next []string
	if prev.Contains(key) {
		for _, v := range prev.Values() {
			if v != key {
				next = append(next, v)
			}
		}
	} else {
		next = append(prev.Values(), key)
	}
	s.setAnswer(q.ID, Multi(next...))
	return nil
}

// SetResponse records a typed answer for the current NAT question. An empty
// value clears the response.
func (s *Session) SetResponse(text string) error {
	if s.Submitted() {
		return ErrSubmitted
	}
	q := s.Current()
	if q == nil {
		return errors.New("no current question")
	}
	if q.Type != NAT {
		return fmt.Errorf("question %d (%s) does not take a typed answer", q.ID, q.Type)
	}
	s.setAnswer(q.ID, Single(strings.TrimSpace(text)))
	return nil
}

// Clear removes the response for the current question. A review flag is kept.
func (s *Session) Clear() error {
	if s.Submitted() {
		return ErrSubmitted
	}
	q := s.Current()
	if q == nil {
		return nil
	}
	s.setAnswer(q.ID, Answer{})
	return nil
}

// MarkForReview flags the current question and advances, like the exam's
// "Mark for Review & Next" button. On an already flagged question the flag is
// removed and the cursor stays put.
func (s *Session) MarkForReview() error {
	if s.Submitted() {
		return ErrSubmitted
	}
	q := s.Current()
	if q == nil {
		return nil
	}
	ua := s.entry(q.ID)
	if ua.Status.IsMarked() {
		ua.Status = statusFor(ua.Answer, false)
		return nil
	}
	ua.Status = statusFor(ua.Answer, true)
	s.Next()
	return nil
}

func (s *Session) entry(id int) *UserAnswer {
	ua, ok := s.answers[id]
	if !ok {
		ua = &UserAnswer{QuestionID: id, Status: StatusNotAnswered}
		s.answers[id] = ua
	}
	return ua
}

func (s *Session) setAnswer(id int, a Answer) {
	ua := s.entry(id)
	ua.Answer = a
	ua.Status = statusFor(a, ua.Status.IsMarked())
}

func statusFor(a Answer, marked bool) Status {
	switch {
	case marked && a.IsEmpty():
		return StatusMarkedForReview
	case marked:
		return StatusMarkedAndAnswered
	case a.IsEmpty():
		return StatusNotAnswered
	default:
		return StatusAnswered
	}
}

// Attempted counts questions with a non-empty response.
func (s *Session) Attempted() int {
	n := 0
	for _, ua := range s.answers {
		if !ua.Answer.IsEmpty() {
			n++
		}
	}
	return n
}

// MarksPotential sums the marks of every attempted question: the score if
// every response turns out correct.
func (s *Session) MarksPotential() float64 {
	var total float64
	for _, q := range s.Questions {
		if ua, ok := s.answers[q.ID]; ok && !ua.Answer.IsEmpty() {
			total += q.Marks
		}
	}
	return total
}

// StatusCounts tallies every question by palette status.
func (s *Session) StatusCounts() map[Status]int {
	counts := make(map[Status]int, len(AllStatuses))
	for _, q := range s.Questions {
		counts[s.Status(q.ID)]++
	}
	return counts
}

// Answers returns a copy of the answer map keyed by question id.
func (s *Session) Answers() map[int]UserAnswer {
	out := make(map[int]UserAnswer, len(s.answers))
	for id, ua := range s.answers {
		out[id] = *ua
	}
	return out
}

// Remaining returns the time left on the clock, never negative.
func (s *Session) Remaining(now time.Time) time.Duration {
	end := now
	if s.Submitted() {
		end = s.submittedAt
	}
	left := s.Duration - end.Sub(s.StartedAt)
	if left < 0 {
		return 0
	}
	return left
}

// Expired reports whether the time allowed has run out.
func (s *Session) Expired(now time.Time) bool {
	return s.Remaining(now) == 0
}

// Submit freezes the session. Later edits return ErrSubmitted.
func (s *Session) Submit(now time.Time) error {
	if s.Submitted() {
		return ErrSubmitted
	}
	s.submittedAt = now
	return nil
}

// Submitted reports whether Submit has been called.
func (s *Session) Submitted() bool { return !s.submittedAt.IsZero() }

// SubmittedAt returns the submission time, zero before submission.
func (s *Session) SubmittedAt() time.Time { return s.submittedAt }

// Elapsed returns the time spent, capped at the allowed duration.
func (s *Session) Elapsed(now time.Time) time.Duration {
	return s.Duration - s.Remaining(now)
}
