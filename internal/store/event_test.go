package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRepo(t *testing.T) *eventRepo {
	t.Helper()
	s := openTestStore(t)
	repo := s.repo
	repo.now = fixedClock(time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC))
	return repo
}

func TestLLMEvents_AppendQueryGet(t *testing.T) {
	repo := testRepo(t)
	ctx := context.Background()

	for i, purpose := range []string{"paper-gen", "paper-gen", "analysis"} {
		err := repo.AppendLLMRequest(ctx, LLMRequestEventData{
			Provider:     "gemini",
			Model:        "gemini-3-flash-preview",
			Purpose:      purpose,
			InputTokens:  100 * (i + 1),
			OutputTokens: 10 * (i + 1),
			LatencyMs:    int64(1000 * (i + 1)),
			Success:      i != 1,
			RequestBody:  "[user]\nGenerate",
			ResponseBody: `{"questions":[]}`,
		})
		require.NoError(t, err)
	}

	events, err := repo.QueryLLMEvents(ctx, QueryOpts{})
	require.NoError(t, err)
	require.Len(t, events, 3)
	assert.Equal(t, "analysis", events[0].Purpose, "newest first")
	assert.Equal(t, int64(3), events[0].Sequence)
	assert.False(t, events[1].Success)
	assert.True(t, events[2].Success)
	assert.True(t, time.Date(2026, 2, 1, 9, 0, 1, 0, time.UTC).Equal(events[2].Timestamp), "timestamp = %v", events[2].Timestamp)

	limited, err := repo.QueryLLMEvents(ctx, QueryOpts{Limit: 1, Before: 3})
	require.NoError(t, err)
	require.Len(t, limited, 1)
	assert.Equal(t, int64(2), limited[0].Sequence)

	got, err := repo.GetLLMEvent(ctx, events[2].ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "[user]\nGenerate", got.RequestBody)
	assert.Equal(t, `{"questions":[]}`, got.ResponseBody)
	assert.Equal(t, "gemini", got.Provider)

	missing, err := repo.GetLLMEvent(ctx, 999)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestLLMUsageAggregates(t *testing.T) {
	repo := testRepo(t)
	ctx := context.Background()

	add := func(purpose, model string, in, out int, ms int64) {
		require.NoError(t, repo.AppendLLMRequest(ctx, LLMRequestEventData{
			Provider: "openai", Model: model, Purpose: purpose,
			InputTokens: in, OutputTokens: out, LatencyMs: ms, Success: true,
		}))
	}
	add("paper-gen", "gpt-4o-mini", 100, 1000, 2000)
	add("paper-gen", "gpt-4o-mini", 300, 3000, 4000)
	add("analysis", "gpt-4o", 50, 20, 500)

	byPurpose, err := repo.LLMUsageByPurpose(ctx)
	require.NoError(t, err)
	require.Len(t, byPurpose, 2)
	assert.Equal(t, LLMUsageStats{Purpose: "analysis", Calls: 1, InputTokens: 50, OutputTokens: 20, AvgLatencyMs: 500}, byPurpose[0])
	assert.Equal(t, LLMUsageStats{Purpose: "paper-gen", Calls: 2, InputTokens: 400, OutputTokens: 4000, AvgLatencyMs: 3000}, byPurpose[1])

	byModel, err := repo.LLMUsageByModel(ctx)
	require.NoError(t, err)
	require.Len(t, byModel, 2)
	assert.Equal(t, "gpt-4o-mini", byModel[0].Model, "most used first")
	assert.Equal(t, 2, byModel[0].Calls)
	assert.Equal(t, 4000, byModel[0].OutputTokens)
}

func TestAttempts_OnlySubmissionsListed(t *testing.T) {
	repo := testRepo(t)
	ctx := context.Background()

	start := AttemptEventData{
		SessionID: "sess-1", Action: ActionStart,
		Subject: "Computer Science", Difficulty: "Moderate", TestType: "Full Length Mock",
		QuestionCount: 65, TotalMarks: 100,
	}
	require.NoError(t, repo.AppendAttempt(ctx, start))

	submit := start
	submit.Action = ActionSubmit
	submit.Score = 42.33
	submit.Attempted = 40
	submit.Correct = 30
	submit.Accuracy = 75
	submit.DurationSecs = 5400
	require.NoError(t, repo.AppendAttempt(ctx, submit))

	require.NoError(t, repo.AppendAttempt(ctx, AttemptEventData{SessionID: "sess-2", Action: ActionStart}))

	attempts, err := repo.QueryAttempts(ctx, QueryOpts{})
	require.NoError(t, err)
	require.Len(t, attempts, 1)
	assert.Equal(t, submit, attempts[0].AttemptEventData)

	got, err := repo.GetAttempt(ctx, "sess-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 42.33, got.Score)

	abandoned, err := repo.GetAttempt(ctx, "sess-2")
	require.NoError(t, err)
	assert.Nil(t, abandoned)
}

func TestAttempts_RejectsUnknownAction(t *testing.T) {
	repo := testRepo(t)
	err := repo.AppendAttempt(context.Background(), AttemptEventData{SessionID: "x", Action: "pause"})
	assert.Error(t, err)
}

func TestAnswerRecords_QuestionOrder(t *testing.T) {
	repo := testRepo(t)
	ctx := context.Background()

	records := []AnswerRecordData{
		{SessionID: "sess-1", QuestionID: 2, Section: "Core", QuestionType: "MSQ", Marks: 2, Response: `["0","2"]`, CorrectAnswer: `["0","2"]`, Status: "ANSWERED", Outcome: "correct", Delta: 2},
		{SessionID: "sess-1", QuestionID: 1, Section: "General Aptitude", QuestionType: "MCQ", Marks: 1, Response: `"1"`, CorrectAnswer: `"0"`, Status: "MARKED_AND_ANSWERED", Outcome: "incorrect", Delta: -0.33},
		{SessionID: "sess-other", QuestionID: 1, QuestionType: "NAT", CorrectAnswer: `"4"`, Status: "NOT_VISITED", Outcome: "unanswered"},
	}
	require.NoError(t, repo.AppendAnswerRecords(ctx, records))

	got, err := repo.AttemptAnswers(ctx, "sess-1")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, records[1], got[0].AnswerRecordData)
	assert.Equal(t, records[0], got[1].AnswerRecordData)
	assert.Less(t, got[1].Sequence, got[0].Sequence, "sequence follows insertion, not question order")
}
