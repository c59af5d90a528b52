// Package screens holds the dependencies shared by the TUI screens.
package screens

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/reddycharan348/Gate-Exam/internal/analysis"
	"github.com/reddycharan348/Gate-Exam/internal/attempt"
	"github.com/reddycharan348/Gate-Exam/internal/exam"
	"github.com/reddycharan348/Gate-Exam/internal/paper"
	"github.com/reddycharan348/Gate-Exam/internal/store"
)

// PaperAssembler builds a paper for a request. *paper.Assembler implements it.
type PaperAssembler interface {
	AssemblePaper(ctx context.Context, req paper.Request, progress paper.ProgressFunc) (*paper.Paper, error)
}

// Summarizer produces the post-test analysis. *analysis.Analyzer implements it.
type Summarizer interface {
	Summarize(ctx context.Context, questions []exam.Question, answers map[int]exam.UserAnswer) *analysis.Analysis
}

// Services is passed from screen to screen. Nil fields disable the feature
// that needs them: no Events hides history, a nil Recorder skips persistence.
type Services struct {
	Assembler PaperAssembler
	Analyzer  Summarizer
	Events    store.EventRepo
	Recorder  *attempt.Recorder

	// Defaults preselects the setup screen.
	Defaults exam.Settings

	// Now and NewID are replaceable in tests.
	Now   func() time.Time
	NewID func() string
}

// Clock returns the current time.
func (s *Services) Clock() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// SessionID returns a fresh session id.
func (s *Services) SessionID() string {
	if s.NewID != nil {
		return s.NewID()
	}
	return uuid.NewString()
}
