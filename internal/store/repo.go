package store

import (
	"context"
	"time"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit  int       // max results (0 = unlimited)
	After  int64     // sequence > After
	Before int64     // sequence < Before
	From   time.Time // timestamp >= From
	To     time.Time // timestamp <= To
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMEventRecord is a stored LLM request event.
type LLMEventRecord struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	LLMRequestEventData
}

// LLMUsageStats aggregates calls and tokens for one purpose.
type LLMUsageStats struct {
	Purpose      string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// LLMModelUsage aggregates calls and tokens for one model.
type LLMModelUsage struct {
	Model        string
	Calls        int
	InputTokens  int
	OutputTokens int
}

// Attempt lifecycle actions.
const (
	ActionStart  = "start"
	ActionSubmit = "submit"
)

// AttemptEventData captures the start or submission of an exam attempt.
// Score fields are only meaningful on submit.
type AttemptEventData struct {
	SessionID     string
	Action        string
	Subject       string
	Difficulty    string
	TestType      string
	QuestionCount int
	TotalMarks    float64
	Score         float64
	Attempted     int
	Correct       int
	Accuracy      float64
	DurationSecs  int
}

// AttemptRecord is a stored attempt event.
type AttemptRecord struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	AttemptEventData
}

// AnswerRecordData is the outcome of a single question at submission.
type AnswerRecordData struct {
	SessionID     string
	QuestionID    int
	Section       string
	QuestionType  string
	Marks         float64
	QuestionText  string
	Response      string // JSON form of the submitted answer, "" if none
	CorrectAnswer string // JSON form of the correct answer
	Status        string
	Outcome       string
	Delta         float64
}

// AnswerRecord is a stored answer record.
type AnswerRecord struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	AnswerRecordData
}

// EventRepo provides append and query access to domain events.
type EventRepo interface {
	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// QueryLLMEvents returns LLM events, newest first.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMEventRecord, error)

	// GetLLMEvent returns a single event by ID, or nil if it does not exist.
	GetLLMEvent(ctx context.Context, id int) (*LLMEventRecord, error)

	// LLMUsageByPurpose aggregates token usage per purpose.
	LLMUsageByPurpose(ctx context.Context) ([]LLMUsageStats, error)

	// LLMUsageByModel aggregates token usage per model.
	LLMUsageByModel(ctx context.Context) ([]LLMModelUsage, error)

	// AppendAttempt records an attempt start or submission.
	AppendAttempt(ctx context.Context, data AttemptEventData) error

	// QueryAttempts returns submitted attempts, newest first.
	QueryAttempts(ctx context.Context, opts QueryOpts) ([]AttemptRecord, error)

	// GetAttempt returns the submission for a session, or nil if the
	// session was never submitted.
	GetAttempt(ctx context.Context, sessionID string) (*AttemptRecord, error)

	// AppendAnswerRecords stores the per-question outcomes of a submission.
	AppendAnswerRecords(ctx context.Context, records []AnswerRecordData) error

	// AttemptAnswers returns the answer records of a session in question order.
	AttemptAnswers(ctx context.Context, sessionID string) ([]AnswerRecord, error)
}
