package analysis

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reddycharan348/Gate-Exam/internal/exam"
	"github.com/reddycharan348/Gate-Exam/internal/llm"
)

func testPaper() []exam.Question {
	return []exam.Question{
		{ID: 1, Text: "Pick the synonym of terse.", Type: exam.MCQ, Marks: 1, Options: []string{"a", "b", "c", "d"}, CorrectAnswer: exam.Single("0"), Section: "General Aptitude"},
		{ID: 2, Text: "Which are regular languages?", Type: exam.MSQ, Marks: 2, Options: []string{"a", "b", "c", "d"}, CorrectAnswer: exam.Multi("0", "2"), Section: "Core Technical"},
		{ID: 3, Text: "Height of a complete binary tree with 15 nodes?", Type: exam.NAT, Marks: 2, CorrectAnswer: exam.Single("3"), Section: "Core Technical"},
		{ID: 4, Text: "Pick the odd one out.", Type: exam.MCQ, Marks: 2, Options: []string{"a", "b", "c", "d"}, CorrectAnswer: exam.Single("1"), Section: "General Aptitude"},
	}
}

func testAnswers() map[int]exam.UserAnswer {
	return map[int]exam.UserAnswer{
		1: {QuestionID: 1, Answer: exam.Single("0"), Status: exam.StatusAnswered},
		2: {QuestionID: 2, Answer: exam.Multi("0", "2"), Status: exam.StatusAnswered},
		4: {QuestionID: 4, Answer: exam.Single("3"), Status: exam.StatusMarkedAndAnswered},
	}
}

const feedbackJSON = `{
	"improvementAreas": ["Revise binary tree properties", "  ", "Practise odd-one-out puzzles"],
	"sectionPerformance": [
		{"section": "core technical", "feedback": "Solid on automata, skipped trees."},
		{"section": "General Aptitude", "feedback": "One careless MCQ cost marks."},
		{"section": "Thermodynamics", "feedback": "Not on this paper."}
	]
}`

func TestSummarize_MergesFeedback(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(feedbackJSON)})
	a := New(mock, DefaultConfig())

	res := a.Summarize(context.Background(), testPaper(), testAnswers())

	require.NoError(t, res.InsightsErr)
	assert.True(t, res.HasInsights())
	// 1 + 2 - 2/3 = 2.33
	assert.Equal(t, 2.33, res.Score)
	assert.Equal(t, 7.0, res.TotalPossible)
	assert.Equal(t, 3, res.Attempted)
	assert.Equal(t, 2, res.Correct)
	assert.Equal(t, 66.67, res.Accuracy)

	require.Len(t, res.SectionPerformance, 2)
	assert.Equal(t, "General Aptitude", res.SectionPerformance[0].Section)
	assert.Equal(t, "One careless MCQ cost marks.", res.SectionPerformance[0].Feedback)
	assert.Equal(t, "Core Technical", res.SectionPerformance[1].Section)
	assert.Equal(t, "Solid on automata, skipped trees.", res.SectionPerformance[1].Feedback)

	assert.Equal(t, []string{"Revise binary tree properties", "Practise odd-one-out puzzles"}, res.ImprovementAreas)
}

func TestSummarize_RequestShape(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(feedbackJSON)})
	a := New(mock, DefaultConfig())

	a.Summarize(context.Background(), testPaper(), testAnswers())

	calls := mock.Requests()
	require.Len(t, calls, 1)
	assert.Equal(t, "gate-analysis", calls[0].Schema.Name)
	msg := calls[0].Messages[0].Content
	assert.Contains(t, msg, "Score: 2.33 / 7")
	assert.Contains(t, msg, `"questionId":3`)
	assert.Contains(t, msg, `"outcome":"unanswered"`)
	assert.Contains(t, msg, `"correctAnswer":["0","2"]`)
}

func TestSummarize_ProviderFailureIsNonFatal(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Err: &llm.ErrProviderUnavailable{Err: errors.New("offline")}})
	a := New(mock, DefaultConfig())

	res := a.Summarize(context.Background(), testPaper(), testAnswers())

	var ae *AnalysisError
	require.ErrorAs(t, res.InsightsErr, &ae)
	assert.False(t, res.HasInsights())
	assert.Equal(t, 2.33, res.Score)
	assert.Len(t, res.SectionPerformance, 2)
	assert.Empty(t, res.ImprovementAreas)
	assert.Empty(t, res.SectionPerformance[0].Feedback)
}

func TestSummarize_InvalidResponse(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(`{"improvementAreas": "not a list"}`)})
	a := New(mock, DefaultConfig())

	res := a.Summarize(context.Background(), testPaper(), testAnswers())

	var ae *AnalysisError
	require.ErrorAs(t, res.InsightsErr, &ae)
	assert.True(t, llm.IsMalformed(res.InsightsErr))
}

func TestSummarize_NilProvider(t *testing.T) {
	a := New(nil, DefaultConfig())

	res := a.Summarize(context.Background(), testPaper(), nil)

	require.Error(t, res.InsightsErr)
	assert.Equal(t, 0.0, res.Score)
	assert.Equal(t, 0.0, res.Accuracy)
	assert.Equal(t, 0, res.Attempted)
}

func TestSummarize_CapsImprovementAreas(t *testing.T) {
	areas := make([]string, 8)
	for i := range areas {
		areas[i] = "area"
	}
	body, _ := json.Marshal(map[string]any{"improvementAreas": areas, "sectionPerformance": []any{}})
	mock := llm.NewMockProvider(llm.MockResponse{Content: body})

	res := New(mock, DefaultConfig()).Summarize(context.Background(), testPaper(), testAnswers())

	assert.Len(t, res.ImprovementAreas, maxImprovementAreas)
}

func TestLocal(t *testing.T) {
	res := Local(testPaper(), testAnswers())

	assert.Equal(t, 2.33, res.Score)
	assert.Nil(t, res.InsightsErr)
	assert.False(t, res.HasInsights())
	require.NotNil(t, res.Report)
	assert.Len(t, res.Report.Results, 4)
}

func TestTruncate(t *testing.T) {
	long := strings.Repeat("x", maxQuestionText+10)
	got := truncate(long, maxQuestionText)
	assert.Equal(t, maxQuestionText+3, len(got))
	assert.Equal(t, "short", truncate("short", maxQuestionText))
}
