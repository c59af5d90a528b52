// Package attempt persists exam attempts to the event store.
package attempt

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/reddycharan348/Gate-Exam/internal/exam"
	"github.com/reddycharan348/Gate-Exam/internal/scoring"
	"github.com/reddycharan348/Gate-Exam/internal/store"
)

// Recorder writes the start and submission of a session. A Recorder with a
// nil repo records nothing.
type Recorder struct {
	repo store.EventRepo
}

// NewRecorder creates a Recorder backed by repo.
func NewRecorder(repo store.EventRepo) *Recorder {
	return &Recorder{repo: repo}
}

// Enabled reports whether attempts are being recorded.
func (r *Recorder) Enabled() bool {
	return r != nil && r.repo != nil
}

// Start records that sess has begun.
func (r *Recorder) Start(ctx context.Context, sess *exam.Session) error {
	if !r.Enabled() {
		return nil
	}
	data := baseEvent(sess, store.ActionStart)
	if err := r.repo.AppendAttempt(ctx, data); err != nil {
		return fmt.Errorf("record start of %s: %w", sess.ID, err)
	}
	return nil
}

// Submit records the submission of sess with its evaluated report, followed
// by one answer record per question.
func (r *Recorder) Submit(ctx context.Context, sess *exam.Session, rep *scoring.Report) error {
	if !r.Enabled() {
		return nil
	}

	data := baseEvent(sess, store.ActionSubmit)
	data.Score = rep.Score
	data.Attempted = rep.Attempted
	data.Correct = rep.Correct
	data.Accuracy = rep.Accuracy
	data.DurationSecs = int(sess.Elapsed(submittedAt(sess)) / time.Second)

	if err := r.repo.AppendAttempt(ctx, data); err != nil {
		return fmt.Errorf("record submission of %s: %w", sess.ID, err)
	}

	records, err := AnswerRecords(sess.ID, rep, sess.Answers())
	if err != nil {
		return err
	}
	if err := r.repo.AppendAnswerRecords(ctx, records); err != nil {
		return fmt.Errorf("record answers of %s: %w", sess.ID, err)
	}
	return nil
}

// AnswerRecords converts a report into store rows. Answers are stored in
// their JSON form so they can be decoded with exam.Answer.
func AnswerRecords(sessionID string, rep *scoring.Report, answers map[int]exam.UserAnswer) ([]store.AnswerRecordData, error) {
	records := make([]store.AnswerRecordData, 0, len(rep.Results))
	for _, res := range rep.Results {
		q := res.Question

		resp := ""
		if !res.Response.IsEmpty() {
			b, err := json.Marshal(res.Response)
			if err != nil {
				return nil, fmt.Errorf("encode response for question %d: %w", q.ID, err)
			}
			resp = string(b)
		}
		correct, err := json.Marshal(q.CorrectAnswer)
		if err != nil {
			return nil, fmt.Errorf("encode answer key for question %d: %w", q.ID, err)
		}

		status := exam.StatusNotVisited
		if ua, ok := answers[q.ID]; ok {
			status = ua.Status
		}

		records = append(records, store.AnswerRecordData{
			SessionID:     sessionID,
			QuestionID:    q.ID,
			Section:       q.Section,
			QuestionType:  string(q.Type),
			Marks:         q.Marks,
			QuestionText:  q.Text,
			Response:      resp,
			CorrectAnswer: string(correct),
			Status:        string(status),
			Outcome:       string(res.Outcome),
			Delta:         scoring.Round2(res.Delta),
		})
	}
	return records, nil
}

func baseEvent(sess *exam.Session, action string) store.AttemptEventData {
	return store.AttemptEventData{
		SessionID:     sess.ID,
		Action:        action,
		Subject:       sess.Settings.Subject,
		Difficulty:    string(sess.Settings.Difficulty),
		TestType:      string(sess.Settings.TestType),
		QuestionCount: sess.Len(),
		TotalMarks:    exam.TotalMarks(sess.Questions),
	}
}

func submittedAt(sess *exam.Session) time.Time {
	if sess.Submitted() {
		return sess.SubmittedAt()
	}
	return time.Now()
}
