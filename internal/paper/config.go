package paper

import (
	"strconv"
	"time"
)

// Config controls the behavior of the Assembler.
type Config struct {
	// Validators run in order on every generated question; the first
	// failure rejects the batch.
	Validators []Validator

	// MaxTokens is the token budget for one batch response. The largest
	// batch has 20 questions with worked solutions.
	MaxTokens int

	// Temperature controls LLM output randomness (0.0-1.0).
	Temperature float64

	// Seed returns the entropy seed for a paper. Batches append their
	// suffix to it.
	Seed func() string
}

// DefaultConfig returns a Config with the standard validator chain
// and recommended defaults.
func DefaultConfig() Config {
	return Config{
		Validators: []Validator{
			&StructuralValidator{},
			&AnswerKeyValidator{},
		},
		MaxTokens:   16000,
		Temperature: 0.9,
		Seed:        timeSeed,
	}
}

// timeSeed uses the wall clock in milliseconds.
func timeSeed() string {
	return strconv.FormatInt(time.Now().UnixMilli(), 10)
}
