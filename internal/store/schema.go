package store

import (
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

// Table names.
const (
	llmEventsTable     = "llm_request_events"
	attemptsTable      = "exam_attempts"
	answerRecordsTable = "answer_records"
	sequenceTable      = "global_sequence"
)

// eventColumns returns the columns every event table starts with: id,
// global sequence and timestamp.
func eventColumns() []*schema.Column {
	return []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "sequence", Type: field.TypeInt64, Unique: true},
		{Name: "timestamp", Type: field.TypeTime},
	}
}

func newEventTable(name string, cols ...*schema.Column) *schema.Table {
	all := append(eventColumns(), cols...)
	return &schema.Table{
		Name:       name,
		Columns:    all,
		PrimaryKey: []*schema.Column{all[0]},
	}
}

var (
	llmEventsSchema = newEventTable(llmEventsTable,
		&schema.Column{Name: "provider", Type: field.TypeString},
		&schema.Column{Name: "model", Type: field.TypeString},
		&schema.Column{Name: "purpose", Type: field.TypeString},
		&schema.Column{Name: "input_tokens", Type: field.TypeInt},
		&schema.Column{Name: "output_tokens", Type: field.TypeInt},
		&schema.Column{Name: "latency_ms", Type: field.TypeInt64},
		&schema.Column{Name: "success", Type: field.TypeBool},
		&schema.Column{Name: "error_message", Type: field.TypeString},
		&schema.Column{Name: "request_body", Type: field.TypeString, Size: 2147483647},
		&schema.Column{Name: "response_body", Type: field.TypeString, Size: 2147483647},
	)

	attemptsSchema = newEventTable(attemptsTable,
		&schema.Column{Name: "session_id", Type: field.TypeString},
		&schema.Column{Name: "action", Type: field.TypeString},
		&schema.Column{Name: "subject", Type: field.TypeString},
		&schema.Column{Name: "difficulty", Type: field.TypeString},
		&schema.Column{Name: "test_type", Type: field.TypeString},
		&schema.Column{Name: "question_count", Type: field.TypeInt},
		&schema.Column{Name: "total_marks", Type: field.TypeFloat64},
		&schema.Column{Name: "score", Type: field.TypeFloat64},
		&schema.Column{Name: "attempted", Type: field.TypeInt},
		&schema.Column{Name: "correct", Type: field.TypeInt},
		&schema.Column{Name: "accuracy", Type: field.TypeFloat64},
		&schema.Column{Name: "duration_secs", Type: field.TypeInt},
	)

	answerRecordsSchema = newEventTable(answerRecordsTable,
		&schema.Column{Name: "session_id", Type: field.TypeString},
		&schema.Column{Name: "question_id", Type: field.TypeInt},
		&schema.Column{Name: "section", Type: field.TypeString},
		&schema.Column{Name: "question_type", Type: field.TypeString},
		&schema.Column{Name: "marks", Type: field.TypeFloat64},
		&schema.Column{Name: "question_text", Type: field.TypeString, Size: 2147483647},
		&schema.Column{Name: "response", Type: field.TypeString},
		&schema.Column{Name: "correct_answer", Type: field.TypeString},
		&schema.Column{Name: "status", Type: field.TypeString},
		&schema.Column{Name: "outcome", Type: field.TypeString},
		&schema.Column{Name: "delta", Type: field.TypeFloat64},
	)

	// sequenceSchema holds a single row with the next global sequence
	// number.
	sequenceSchema = &schema.Table{
		Name: sequenceTable,
		Columns: []*schema.Column{
			{Name: "id", Type: field.TypeInt},
			{Name: "next_val", Type: field.TypeInt64, Default: 1},
		},
	}

	tables = []*schema.Table{llmEventsSchema, attemptsSchema, answerRecordsSchema, sequenceSchema}
)

func init() {
	sequenceSchema.PrimaryKey = sequenceSchema.Columns[:1]
	attemptsSchema.Indexes = []*schema.Index{
		{Name: "examattempt_session_id_action", Columns: []*schema.Column{attemptsSchema.Columns[3], attemptsSchema.Columns[4]}},
	}
	answerRecordsSchema.Indexes = []*schema.Index{
		{Name: "answerrecord_session_id", Columns: []*schema.Column{answerRecordsSchema.Columns[3]}},
	}
	llmEventsSchema.Indexes = []*schema.Index{
		{Name: "llmrequestevent_purpose", Columns: []*schema.Column{llmEventsSchema.Columns[5]}},
	}
}
