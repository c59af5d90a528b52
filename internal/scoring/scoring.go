// Package scoring marks a submitted paper under the GATE scheme: full marks
// for a correct response, a one-third deduction for a wrong MCQ, and nothing
// for a wrong MSQ or NAT.
package scoring

import (
	"math"
	"sort"

	"github.com/reddycharan348/Gate-Exam/internal/exam"
)

// Scheme configures how responses are compared and penalised.
type Scheme struct {
	// NegativeFraction is the share of an MCQ's marks deducted for a wrong
	// response.
	NegativeFraction float64

	// UnorderedMSQ compares MSQ responses as sets. When false, MSQ
	// responses must match the answer key element for element, in order.
	UnorderedMSQ bool
}

// DefaultScheme is the literal GATE marking scheme with order-sensitive MSQ
// comparison.
func DefaultScheme() Scheme {
	return Scheme{NegativeFraction: 1.0 / 3.0}
}

// Score marks the answers with DefaultScheme.
func Score(questions []exam.Question, answers map[int]exam.UserAnswer) float64 {
	return DefaultScheme().Score(questions, answers)
}

// Score returns the total marks, rounded to two decimal places.
func (s Scheme) Score(questions []exam.Question, answers map[int]exam.UserAnswer) float64 {
	var total float64
	for _, q := range questions {
		total += s.Mark(q, answers).Delta
	}
	return Round2(total)
}

// Outcome classifies one response.
type Outcome string

const (
	Correct    Outcome = "correct"
	Incorrect  Outcome = "incorrect"
	Unanswered Outcome = "unanswered"
)

// Result is the marking of a single question.
type Result struct {
	Question exam.Question
	Response exam.Answer
	Outcome  Outcome
	Delta    float64
}

// Mark marks a single question against the answer map. Delta is unrounded.
func (s Scheme) Mark(q exam.Question, answers map[int]exam.UserAnswer) Result {
	ua, ok := answers[q.ID]
	if !ok || ua.Answer.IsEmpty() {
		return Result{Question: q, Outcome: Unanswered}
	}

	r := Result{Question: q, Response: ua.Answer}
	if s.matches(q, ua.Answer) {
		r.Outcome = Correct
		r.Delta = q.Marks
		return r
	}

	r.Outcome = Incorrect
	if q.Type == exam.MCQ {
		r.Delta = -q.Marks * s.NegativeFraction
	}
	return r
}

func (s Scheme) matches(q exam.Question, got exam.Answer) bool {
	if s.UnorderedMSQ && q.Type == exam.MSQ && got.IsMulti() && q.CorrectAnswer.IsMulti() {
		return sortedKey(got) == sortedKey(q.CorrectAnswer)
	}
	return got.Equal(q.CorrectAnswer)
}

func sortedKey(a exam.Answer) string {
	vals := a.Values()
	sort.Strings(vals)
	return exam.Multi(vals...).Key()
}

// Round2 rounds to two decimal places, half away from zero.
func Round2(v float64) float64 {
	r := math.Round(v*100) / 100
	if r == 0 {
		return 0 // normalise -0
	}
	return r
}
