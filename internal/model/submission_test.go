package model

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubmissionStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		from, to SubmissionStatus
		want     bool
	}{
		{StatusInProgress, StatusSubmitted, true},
		{StatusInProgress, StatusGraded, false},
		{StatusInProgress, StatusInProgress, false},
		{StatusSubmitted, StatusGraded, true},
		{StatusSubmitted, StatusInProgress, false},
		{StatusSubmitted, StatusSubmitted, false},
		{StatusGraded, StatusGraded, true},
		{StatusGraded, StatusSubmitted, false},
		{StatusGraded, StatusInProgress, false},
		{SubmissionStatus("NOT_STARTED"), StatusInProgress, false},
	}
	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestExamSubmission_Lifecycle(t *testing.T) {
	start := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	sub := NewSubmission("cand-1", "paper-1", start)
	require.Equal(t, StatusInProgress, sub.Status)
	assert.Empty(t, sub.Answers)
	assert.Empty(t, sub.ProctorLogs)

	require.NoError(t, sub.ReplaceDraft(map[string]string{"q1": "a"}, nil))
	require.NoError(t, sub.ReplaceDraft(map[string]string{"q2": "b"}, []ProctorLog{{Type: "TAB_SWITCH"}}))
	assert.Equal(t, map[string]string{"q2": "b"}, sub.Answers)
	assert.Len(t, sub.ProctorLogs, 1)

	err := sub.Grade(EvaluationResult{})
	assert.True(t, errors.Is(err, ErrInvalidTransition))

	end := start.Add(time.Hour)
	assert.True(t, sub.Submit(end))
	assert.False(t, sub.Submit(end.Add(time.Minute)), "second submit is a no-op")
	require.NotNil(t, sub.EndTime)
	assert.Equal(t, end, *sub.EndTime)

	err = sub.ReplaceDraft(map[string]string{"q1": "late"}, nil)
	assert.True(t, errors.Is(err, ErrInvalidTransition))

	require.NoError(t, sub.Grade(EvaluationResult{TotalScore: 4, PassFail: Fail}))
	require.NoError(t, sub.Grade(EvaluationResult{TotalScore: 9, PassFail: Pass}))
	assert.Equal(t, StatusGraded, sub.Status)
	assert.Equal(t, 9.0, sub.AIEvaluation.TotalScore)
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "a@x.com", NormalizeEmail("  A@X.com "))
	assert.True(t, IsDemoEmail(NormalizeEmail("Demo.Strong.1@example.com")))
	assert.False(t, IsDemoEmail("alex.demo@example.com"))
}

func TestQuestionPaper_MaxScore(t *testing.T) {
	p := QuestionPaper{Questions: []Question{{ID: "a", Marks: 5}, {ID: "b"}}}
	assert.Equal(t, 15.0, p.MaxScore())
	p.NormalizeMarks()
	assert.Equal(t, 10, p.Questions[1].Marks)
}
