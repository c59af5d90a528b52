package paper

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/reddycharan348/Gate-Exam/internal/llm"
)

// Kind classifies why a batch could not be generated.
type Kind int

const (
	// KindUnavailable means the generation service could not be reached
	// or refused the request.
	KindUnavailable Kind = iota
	// KindMalformed means the service answered but the payload was not a
	// usable batch of questions.
	KindMalformed
)

func (k Kind) String() string {
	if k == KindMalformed {
		return "malformed"
	}
	return "unavailable"
}

// GenerationError is returned by Assemble when a batch fails. No partial
// paper is ever returned alongside it.
type GenerationError struct {
	Batch string
	Kind  Kind
	Err   error
}

func (e *GenerationError) Error() string {
	if e.Kind == KindMalformed {
		return fmt.Sprintf("%s batch: malformed response: %v", e.Batch, e.Err)
	}
	return fmt.Sprintf("%s batch: generation service unavailable: %v", e.Batch, e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }

// classify maps an error from the provider or from decoding to a Kind.
func classify(err error) Kind {
	if llm.IsMalformed(err) {
		return KindMalformed
	}
	var (
		ve  *ValidationError
		se  *json.SyntaxError
		ute *json.UnmarshalTypeError
	)
	if errors.As(err, &ve) || errors.As(err, &se) || errors.As(err, &ute) {
		return KindMalformed
	}
	return KindUnavailable
}
