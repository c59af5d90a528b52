package exam

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC)

func testPaper() []Question {
	return []Question{
		{ID: 1, Type: MCQ, Marks: 1, Options: []string{"a", "b", "c", "d"}, CorrectAnswer: Single("0"), Section: "General Aptitude"},
		{ID: 2, Type: MSQ, Marks: 2, Options: []string{"a", "b", "c", "d"}, CorrectAnswer: Multi("0", "2"), Section: "Core"},
		{ID: 3, Type: NAT, Marks: 2, CorrectAnswer: Single("42"), Section: "Core"},
	}
}

func newTestSession() *Session {
	return NewSession("s-1", DefaultSettings(), testPaper(), t0)
}

func TestNewSession_VisitsFirstQuestion(t *testing.T) {
	s := newTestSession()
	assert.Equal(t, StatusNotAnswered, s.Status(1))
	assert.Equal(t, StatusNotVisited, s.Status(2))
	assert.Equal(t, 3*time.Hour, s.Duration)
}

func TestSession_AptitudeDuration(t *testing.T) {
	st := DefaultSettings()
	st.TestType = AptitudeOnly
	s := NewSession("s", st, testPaper(), t0)
	assert.Equal(t, 30*time.Minute, s.Duration)
}

func TestSession_Navigation(t *testing.T) {
	s := newTestSession()
	assert.False(t, s.Prev())
	assert.True(t, s.Next())
	assert.Equal(t, 1, s.CurrentIndex())
	assert.Equal(t, StatusNotAnswered, s.Status(2))
	assert.True(t, s.Goto(2))
	assert.False(t, s.Next())
	assert.False(t, s.Goto(7))
	assert.Equal(t, 2, s.CurrentIndex())
}

func TestSession_SelectMCQReplaces(t *testing.T) {
	s := newTestSession()
	require.NoError(t, s.SelectOption(1))
	require.NoError(t, s.SelectOption(3))
	assert.Equal(t, `"3"`, s.Response(1).Key())
	assert.Equal(t, StatusAnswered, s.Status(1))
}

func TestSession_SelectMSQTogglesInClickOrder(t *testing.T) {
	s := newTestSession()
	s.Next()
	require.NoError(t, s.SelectOption(2))
	require.NoError(t, s.SelectOption(0))
	assert.Equal(t, `["2","0"]`, s.Response(2).Key())

	require.NoError(t, s.SelectOption(2))
	assert.Equal(t, `["0"]`, s.Response(2).Key())

	require.NoError(t, s.SelectOption(0))
	assert.True(t, s.Response(2).IsEmpty())
	assert.Equal(t, StatusNotAnswered, s.Status(2))
}

func TestSession_SelectOptionRejectsNAT(t *testing.T) {
	s := newTestSession()
	s.Goto(2)
	assert.Error(t, s.SelectOption(0))
	require.NoError(t, s.SetResponse(" 42 "))
	assert.Equal(t, "42", s.Response(3).Value())
}

func TestSession_SelectOptionOutOfRange(t *testing.T) {
	s := newTestSession()
	assert.Error(t, s.SelectOption(4))
	assert.Error(t, s.SelectOption(-1))
}

func TestSession_MarkForReviewAdvances(t *testing.T) {
	s := newTestSession()
	require.NoError(t, s.MarkForReview())
	assert.Equal(t, StatusMarkedForReview, s.Status(1))
	assert.Equal(t, 1, s.CurrentIndex())

	require.NoError(t, s.SelectOption(1))
	require.NoError(t, s.MarkForReview())
	assert.Equal(t, StatusMarkedAndAnswered, s.Status(2))
}

func TestSession_MarkTwiceUnmarks(t *testing.T) {
	s := newTestSession()
	require.NoError(t, s.SelectOption(0))
	require.NoError(t, s.MarkForReview())
	s.Prev()
	require.NoError(t, s.MarkForReview())
	assert.Equal(t, StatusAnswered, s.Status(1))
	assert.Equal(t, 0, s.CurrentIndex())
}

func TestSession_AnsweringKeepsMark(t *testing.T) {
	s := newTestSession()
	require.NoError(t, s.MarkForReview())
	s.Prev()
	require.NoError(t, s.SelectOption(2))
	assert.Equal(t, StatusMarkedAndAnswered, s.Status(1))

	require.NoError(t, s.Clear())
	assert.Equal(t, StatusMarkedForReview, s.Status(1))
}

func TestSession_AttemptedAndMarksPotential(t *testing.T) {
	s := newTestSession()
	require.NoError(t, s.SelectOption(0))
	s.Next()
	require.NoError(t, s.MarkForReview())
	require.NoError(t, s.SetResponse("7"))

	assert.Equal(t, 2, s.Attempted())
	assert.InDelta(t, 3.0, s.MarksPotential(), 1e-9)
}

func TestSession_StatusCounts(t *testing.T) {
	s := newTestSession()
	require.NoError(t, s.SelectOption(0))
	s.Next()

	counts := s.StatusCounts()
	assert.Equal(t, 1, counts[StatusAnswered])
	assert.Equal(t, 1, counts[StatusNotAnswered])
	assert.Equal(t, 1, counts[StatusNotVisited])
}

func TestSession_Timer(t *testing.T) {
	s := newTestSession()
	assert.Equal(t, 3*time.Hour, s.Remaining(t0))
	assert.Equal(t, time.Hour, s.Remaining(t0.Add(2*time.Hour)))
	assert.False(t, s.Expired(t0.Add(2*time.Hour)))
	assert.True(t, s.Expired(t0.Add(4*time.Hour)))
	assert.Equal(t, time.Duration(0), s.Remaining(t0.Add(4*time.Hour)))
}

func TestSession_SubmitFreezes(t *testing.T) {
	s := newTestSession()
	require.NoError(t, s.Submit(t0.Add(time.Hour)))
	assert.True(t, s.Submitted())
	assert.ErrorIs(t, s.SelectOption(0), ErrSubmitted)
	assert.ErrorIs(t, s.Submit(t0), ErrSubmitted)
	assert.Equal(t, time.Hour, s.Elapsed(t0.Add(5*time.Hour)))
}

func TestSession_AnswersIsACopy(t *testing.T) {
	s := newTestSession()
	require.NoError(t, s.SelectOption(0))
	answers := s.Answers()
	ua := answers[1]
	ua.Status = StatusNotVisited
	answers[1] = ua
	assert.Equal(t, StatusAnswered, s.Status(1))
}

func TestParseTestType(t *testing.T) {
	tt, err := ParseTestType("aptitude")
	require.NoError(t, err)
	assert.Equal(t, AptitudeOnly, tt)

	tt, err = ParseTestType("Full Length Mock")
	require.NoError(t, err)
	assert.Equal(t, Full, tt)

	_, err = ParseTestType("half")
	assert.Error(t, err)
}

func TestParseDifficulty(t *testing.T) {
	d, err := ParseDifficulty("difficult")
	require.NoError(t, err)
	assert.Equal(t, Difficult, d)

	_, err = ParseDifficulty("brutal")
	assert.Error(t, err)
}
