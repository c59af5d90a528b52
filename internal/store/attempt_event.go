package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"
)

var attemptColumns = []string{
	"session_id", "action", "subject", "difficulty", "test_type",
	"question_count", "total_marks", "score", "attempted", "correct",
	"accuracy", "duration_secs",
}

var answerRecordColumns = []string{
	"session_id", "question_id", "section", "question_type", "marks",
	"question_text", "response", "correct_answer", "status", "outcome", "delta",
}

func (r *eventRepo) AppendAttempt(ctx context.Context, data AttemptEventData) error {
	if data.Action != ActionStart && data.Action != ActionSubmit {
		return fmt.Errorf("unknown attempt action %q", data.Action)
	}
	err := r.insert(ctx, attemptsTable, attemptColumns,
		data.SessionID,
		data.Action,
		data.Subject,
		data.Difficulty,
		data.TestType,
		data.QuestionCount,
		data.TotalMarks,
		data.Score,
		data.Attempted,
		data.Correct,
		data.Accuracy,
		data.DurationSecs,
	)
	if err != nil {
		return fmt.Errorf("save attempt event: %w", err)
	}
	return nil
}

func selectAttempts() *entsql.Selector {
	cols := append([]string{"id", "sequence", "timestamp"}, attemptColumns...)
	return sqlite().Select(cols...).From(entsql.Table(attemptsTable))
}

func scanAttempt(row interface{ Scan(...any) error }) (AttemptRecord, error) {
	var a AttemptRecord
	err := row.Scan(
		&a.ID, &a.Sequence, &a.Timestamp,
		&a.SessionID, &a.Action, &a.Subject, &a.Difficulty, &a.TestType,
		&a.QuestionCount, &a.TotalMarks, &a.Score, &a.Attempted, &a.Correct,
		&a.Accuracy, &a.DurationSecs,
	)
	return a, err
}

func (r *eventRepo) QueryAttempts(ctx context.Context, opts QueryOpts) ([]AttemptRecord, error) {
	sel := selectAttempts().Where(entsql.EQ("action", ActionSubmit))
	sel = applyQueryOpts(sel, opts).OrderBy(entsql.Desc("sequence"))

	query, args := sel.Query()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query attempts: %w", err)
	}
	defer rows.Close()

	var records []AttemptRecord
	for rows.Next() {
		a, err := scanAttempt(rows)
		if err != nil {
			return nil, fmt.Errorf("scan attempt: %w", err)
		}
		records = append(records, a)
	}
	return records, rows.Err()
}

func (r *eventRepo) GetAttempt(ctx context.Context, sessionID string) (*AttemptRecord, error) {
	sel := selectAttempts().
		Where(entsql.And(entsql.EQ("session_id", sessionID), entsql.EQ("action", ActionSubmit))).
		OrderBy(entsql.Desc("sequence")).
		Limit(1)

	query, args := sel.Query()
	a, err := scanAttempt(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get attempt %s: %w", sessionID, err)
	}
	return &a, nil
}

func (r *eventRepo) AppendAnswerRecords(ctx context.Context, records []AnswerRecordData) error {
	for _, rec := range records {
		err := r.insert(ctx, answerRecordsTable, answerRecordColumns,
			rec.SessionID,
			rec.QuestionID,
			rec.Section,
			rec.QuestionType,
			rec.Marks,
			rec.QuestionText,
			rec.Response,
			rec.CorrectAnswer,
			rec.Status,
			rec.Outcome,
			rec.Delta,
		)
		if err != nil {
			return fmt.Errorf("save answer record for question %d: %w", rec.QuestionID, err)
		}
	}
	return nil
}

func (r *eventRepo) AttemptAnswers(ctx context.Context, sessionID string) ([]AnswerRecord, error) {
	cols := append([]string{"id", "sequence", "timestamp"}, answerRecordColumns...)
	sel := sqlite().Select(cols...).
		From(entsql.Table(answerRecordsTable)).
		Where(entsql.EQ("session_id", sessionID)).
		OrderBy("question_id", "sequence")

	query, args := sel.Query()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query answer records: %w", err)
	}
	defer rows.Close()

	var records []AnswerRecord
	for rows.Next() {
		var a AnswerRecord
		err := rows.Scan(
			&a.ID, &a.Sequence, &a.Timestamp,
			&a.SessionID, &a.QuestionID, &a.Section, &a.QuestionType, &a.Marks,
			&a.QuestionText, &a.Response, &a.CorrectAnswer, &a.Status, &a.Outcome, &a.Delta,
		)
		if err != nil {
			return nil, fmt.Errorf("scan answer record: %w", err)
		}
		records = append(records, a)
	}
	return records, rows.Err()
}
