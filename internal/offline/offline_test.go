package offline

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reddycharan348/Gate-Exam/internal/analysis"
	"github.com/reddycharan348/Gate-Exam/internal/exam"
	"github.com/reddycharan348/Gate-Exam/internal/llm"
	"github.com/reddycharan348/Gate-Exam/internal/paper"
)

func newAssembler(seed string) *paper.Assembler {
	cfg := paper.DefaultConfig()
	cfg.Seed = func() string { return seed }
	return paper.New(&llm.MockProvider{Respond: Responder()}, cfg)
}

func TestResponder_FullPaper(t *testing.T) {
	req := paper.Request{Subject: "Civil", Difficulty: exam.Easy, TestType: exam.Full}

	qs, err := newAssembler("1").Assemble(context.Background(), req, nil)
	require.NoError(t, err)
	require.Len(t, qs, 65)
	assert.Equal(t, 100.0, exam.TotalMarks(qs))

	for _, q := range qs {
		assert.NotEmpty(t, q.Text)
		assert.False(t, q.CorrectAnswer.IsEmpty())
	}
	assert.Equal(t, exam.MSQ, qs[1].Type)
	assert.True(t, qs[1].CorrectAnswer.IsMulti())
}

func TestResponder_AptitudeOnly(t *testing.T) {
	req := paper.Request{Difficulty: exam.Moderate, TestType: exam.AptitudeOnly}

	qs, err := newAssembler("1").Assemble(context.Background(), req, nil)
	require.NoError(t, err)
	assert.Len(t, qs, 15)
}

func TestResponder_Deterministic(t *testing.T) {
	req := paper.Request{Subject: "Civil", Difficulty: exam.Easy, TestType: exam.AptitudeOnly}

	a, err := newAssembler("7").Assemble(context.Background(), req, nil)
	require.NoError(t, err)
	b, err := newAssembler("7").Assemble(context.Background(), req, nil)
	require.NoError(t, err)
	c, err := newAssembler("8").Assemble(context.Background(), req, nil)
	require.NoError(t, err)

	assert.Equal(t, a[0].Text, b[0].Text)
	assert.NotEqual(t, questionTexts(a), questionTexts(c))
}

func TestResponder_Analysis(t *testing.T) {
	req := paper.Request{Subject: "Civil", Difficulty: exam.Easy, TestType: exam.Full}
	qs, err := newAssembler("3").Assemble(context.Background(), req, nil)
	require.NoError(t, err)

	answers := map[int]exam.UserAnswer{
		1: {QuestionID: 1, Answer: qs[0].CorrectAnswer, Status: exam.StatusAnswered},
	}
	res := analysis.New(&llm.MockProvider{Respond: Responder()}, analysis.DefaultConfig()).
		Summarize(context.Background(), qs, answers)

	require.NoError(t, res.InsightsErr)
	assert.Len(t, res.ImprovementAreas, 3)
	require.Len(t, res.SectionPerformance, 4)
	for _, s := range res.SectionPerformance {
		assert.NotEmpty(t, s.Feedback, s.Section)
	}
	assert.Equal(t, float64(qs[0].Marks), res.Score)
}

func TestResponder_UnknownSchema(t *testing.T) {
	resp := Responder()(llm.Request{Schema: &llm.Schema{Name: "nope"}})
	assert.Error(t, resp.Err)

	resp = Responder()(llm.Request{})
	assert.Error(t, resp.Err)
}

func questionTexts(qs []exam.Question) []string {
	out := make([]string, len(qs))
	for i, q := range qs {
		out[i] = q.Text
	}
	return out
}
