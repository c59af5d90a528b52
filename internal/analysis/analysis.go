// Package analysis turns a scored submission into a performance summary.
// Numbers come from the local scorer; qualitative feedback comes from an LLM
// and is optional.
package analysis

import (
	"fmt"

	"github.com/reddycharan348/Gate-Exam/internal/exam"
	"github.com/reddycharan348/Gate-Exam/internal/scoring"
)

// SectionPerformance is one row of the section table.
type SectionPerformance struct {
	Section   string
	Score     float64
	Total     float64
	Attempted int
	Correct   int
	Feedback  string
}

// Analysis is the result shown after a test.
type Analysis struct {
	Score         float64
	TotalPossible float64
	Accuracy      float64
	Attempted     int
	Correct       int

	SectionPerformance []SectionPerformance
	ImprovementAreas   []string

	// InsightsErr is set when the feedback could not be produced. The
	// numeric fields are still valid.
	InsightsErr error

	// Report holds the per-question marking behind the numbers.
	Report *scoring.Report
}

// HasInsights reports whether AI feedback is present.
func (a *Analysis) HasInsights() bool {
	return a.InsightsErr == nil && (len(a.ImprovementAreas) > 0 || a.hasFeedback())
}

func (a *Analysis) hasFeedback() bool {
	for _, s := range a.SectionPerformance {
		if s.Feedback != "" {
			return true
		}
	}
	return false
}

// AnalysisError means the feedback service failed. It never invalidates the
// score.
type AnalysisError struct {
	Err error
}

func (e *AnalysisError) Error() string {
	return fmt.Sprintf("performance insights unavailable: %v", e.Err)
}

func (e *AnalysisError) Unwrap() error { return e.Err }

// Local builds an Analysis from the scorer alone, without feedback.
func Local(questions []exam.Question, answers map[int]exam.UserAnswer) *Analysis {
	return fromReport(scoring.Evaluate(questions, answers))
}

func fromReport(rep *scoring.Report) *Analysis {
	a := &Analysis{
		Score:         rep.Score,
		TotalPossible: rep.TotalPossible,
		Accuracy:      rep.Accuracy,
		Attempted:     rep.Attempted,
		Correct:       rep.Correct,
		Report:        rep,
	}
	for _, s := range rep.Sections {
		a.SectionPerformance = append(a.SectionPerformance, SectionPerformance{
			Section:   s.Section,
			Score:     s.Score,
			Total:     s.Total,
			Attempted: s.Attempted,
			Correct:   s.Correct,
		})
	}
	return a
}
