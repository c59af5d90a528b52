package paper

import (
	"fmt"
	"strconv"

	"github.com/reddycharan348/Gate-Exam/internal/exam"
)

// Validator checks a generated question before it is accepted into a paper.
// Implementations should be stateless and safe for concurrent use.
type Validator interface {
	// Name returns a short identifier, e.g. "structural" or "answer-key".
	Name() string

	// Validate returns nil if the question passes.
	Validate(q *exam.Question, b Batch) *ValidationError
}

// ValidationError describes why a generated question was rejected.
type ValidationError struct {
	Validator string
	Question  int // 1-based position within the batch, 0 for batch-level checks
	Message   string
}

func (e *ValidationError) Error() string {
	if e.Question == 0 {
		return fmt.Sprintf("validator %q: %s", e.Validator, e.Message)
	}
	return fmt.Sprintf("validator %q: question %d: %s", e.Validator, e.Question, e.Message)
}

// StructuralValidator checks required fields and the question type.
type StructuralValidator struct{}

func (v *StructuralValidator) Name() string { return "structural" }

func (v *StructuralValidator) Validate(q *exam.Question, _ Batch) *ValidationError {
	switch {
	case q.Text == "":
		return v.fail("text is empty")
	case q.Type != exam.MCQ && q.Type != exam.MSQ && q.Type != exam.NAT:
		return v.fail(fmt.Sprintf("unknown question type %q", q.Type))
	case q.Marks != 1 && q.Marks != 2:
		return v.fail(fmt.Sprintf("marks must be 1 or 2, got %v", q.Marks))
	case q.Type.HasOptions() && len(q.Options) < 2:
		return v.fail(fmt.Sprintf("%s needs at least 2 options, got %d", q.Type, len(q.Options)))
	case q.CorrectAnswer.IsEmpty():
		return v.fail("correctAnswer is empty")
	}
	return nil
}

func (v *StructuralValidator) fail(msg string) *ValidationError {
	return &ValidationError{Validator: v.Name(), Message: msg}
}

// AnswerKeyValidator checks that option-based answers point at real options.
type AnswerKeyValidator struct{}

func (v *AnswerKeyValidator) Name() string { return "answer-key" }

func (v *AnswerKeyValidator) Validate(q *exam.Question, _ Batch) *ValidationError {
	if !q.Type.HasOptions() {
		return nil
	}

	tokens := q.CorrectAnswer.Values()
	if q.Type == exam.MCQ && len(tokens) != 1 {
		return v.fail(fmt.Sprintf("MCQ must have exactly one correct option, got %d", len(tokens)))
	}

	seen := make(map[string]bool, len(tokens))
	for _, tok := range tokens {
		idx, err := strconv.Atoi(tok)
		if err != nil || idx < 0 || idx >= len(q.Options) {
			return v.fail(fmt.Sprintf("correct answer %q is not an index into %d options", tok, len(q.Options)))
		}
		if seen[tok] {
			return v.fail(fmt.Sprintf("correct answer lists option %s twice", tok))
		}
		seen[tok] = true
	}
	return nil
}

func (v *AnswerKeyValidator) fail(msg string) *ValidationError {
	return &ValidationError{Validator: v.Name(), Message: msg}
}

// checkCount rejects batches that are short or long.
func checkCount(got int, b Batch) *ValidationError {
	if got == b.Count {
		return nil
	}
	return &ValidationError{
		Validator: "count",
		Message:   fmt.Sprintf("expected %d questions, got %d", b.Count, got),
	}
}
