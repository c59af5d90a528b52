package exam

import (
	"fmt"
	"strings"
	"time"
)

// QuestionType determines how a question is answered and marked.
type QuestionType string

const (
	// MCQ has exactly one correct option.
	MCQ QuestionType = "MCQ"
	// MSQ has one or more correct options.
	MSQ QuestionType = "MSQ"
	// NAT is answered by typing a numeric value. It has no options.
	NAT QuestionType = "NAT"
)

// HasOptions reports whether questions of this type carry an option list.
func (t QuestionType) HasOptions() bool {
	return t == MCQ || t == MSQ
}

// Question is a single item on the paper. Questions are immutable once a
// session starts.
type Question struct {
	ID            int          `json:"id"`
	Text          string       `json:"text"`
	Type          QuestionType `json:"type"`
	Marks         float64      `json:"marks"`
	Options       []string     `json:"options,omitempty"`
	CorrectAnswer Answer       `json:"correctAnswer"`
	Explanation   string       `json:"explanation"`
	Section       string       `json:"section"`
}

// Status is the palette state of a question.
type Status string

const (
	StatusNotVisited        Status = "NOT_VISITED"
	StatusNotAnswered       Status = "NOT_ANSWERED"
	StatusAnswered          Status = "ANSWERED"
	StatusMarkedForReview   Status = "MARKED_FOR_REVIEW"
	StatusMarkedAndAnswered Status = "MARKED_AND_ANSWERED"
)

// AllStatuses lists statuses in palette legend order.
var AllStatuses = []Status{
	StatusAnswered,
	StatusNotAnswered,
	StatusNotVisited,
	StatusMarkedForReview,
	StatusMarkedAndAnswered,
}

// Label returns a short human-readable label.
func (s Status) Label() string {
	switch s {
	case StatusNotVisited:
		return "Not visited"
	case StatusNotAnswered:
		return "Not answered"
	case StatusAnswered:
		return "Answered"
	case StatusMarkedForReview:
		return "Marked"
	case StatusMarkedAndAnswered:
		return "Marked & answered"
	default:
		return string(s)
	}
}

// IsMarked reports whether the question is flagged for review.
func (s Status) IsMarked() bool {
	return s == StatusMarkedForReview || s == StatusMarkedAndAnswered
}

// UserAnswer is the user's response to one question.
type UserAnswer struct {
	QuestionID int    `json:"questionId"`
	Answer     Answer `json:"answer"`
	Status     Status `json:"status"`
}

// Difficulty is the requested paper difficulty.
type Difficulty string

const (
	Easy      Difficulty = "Easy"
	Moderate  Difficulty = "Moderate"
	Difficult Difficulty = "Difficult"
)

// Difficulties lists the selectable difficulties in display order.
var Difficulties = []Difficulty{Easy, Moderate, Difficult}

// ParseDifficulty parses a difficulty name case-insensitively.
func ParseDifficulty(s string) (Difficulty, error) {
	for _, d := range Difficulties {
		if strings.EqualFold(s, string(d)) {
			return d, nil
		}
	}
	return "", fmt.Errorf("unknown difficulty %q (want Easy, Moderate or Difficult)", s)
}

// TestType selects between the short aptitude paper and the full mock.
type TestType string

const (
	Full         TestType = "Full Length Mock"
	AptitudeOnly TestType = "Aptitude Only"
)

// TestTypes lists the selectable test types in display order.
var TestTypes = []TestType{Full, AptitudeOnly}

// ParseTestType accepts the display name or the short forms "full" and
// "aptitude".
func ParseTestType(s string) (TestType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "full", strings.ToLower(string(Full)):
		return Full, nil
	case "aptitude", "aptitude-only", strings.ToLower(string(AptitudeOnly)):
		return AptitudeOnly, nil
	}
	return "", fmt.Errorf("unknown test type %q (want full or aptitude)", s)
}

// Duration returns the time allowed for a paper of this type.
func (t TestType) Duration() time.Duration {
	if t == AptitudeOnly {
		return 30 * time.Minute
	}
	return 3 * time.Hour
}

// Subjects lists the engineering disciplines offered.
var Subjects = []string{
	"Computer Science",
	"Mechanical",
	"Electrical",
	"Electronics",
	"Civil",
}

// Settings is the user's paper configuration.
type Settings struct {
	Subject    string
	Difficulty Difficulty
	TestType   TestType
}

// DefaultSettings returns the configuration preselected on the setup screen.
func DefaultSettings() Settings {
	return Settings{
		Subject:    "Computer Science",
		Difficulty: Moderate,
		TestType:   Full,
	}
}

// TotalMarks sums the marks of all questions.
func TotalMarks(questions []Question) float64 {
	var total float64
	for _, q := range questions {
		total += q.Marks
	}
	return total
}
