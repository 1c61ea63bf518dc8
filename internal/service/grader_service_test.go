package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/lshigami/pathfinder/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var gradeQuestions = []model.Question{
	{ID: "q1", Text: "What is 2+2?", IdealAnswerKey: "4", Marks: 5},
	{ID: "q2", Text: "Explain REST.", IdealAnswerKey: "Resources, verbs, stateless"},
}

func TestGrader_ParsesAndClamps(t *testing.T) {
	llm := &fakeLLM{response: `{"summary":"","passFail":"pass","questionEvaluations":{"q1":{"score":9,"feedback":"Right"},"q2":{"score":-3,"feedback":""}}}`}
	res := NewGraderService(llm).Evaluate(context.Background(), gradeQuestions, map[string]string{"q1": "4"})

	assert.Equal(t, 5.0, res.QuestionEvaluations["q1"].Score)
	assert.Equal(t, 0.0, res.QuestionEvaluations["q2"].Score)
	assert.Equal(t, 5.0, res.TotalScore)
	assert.Equal(t, 15.0, res.MaxScore)
	assert.Equal(t, model.Pass, res.PassFail)
	assert.Equal(t, "Evaluation completed.", res.Summary)

	assert.Contains(t, llm.prompt, "Candidate Answer: "+noAnswerPlaceholder)
	require.NotNil(t, llm.schema)
	assert.Contains(t, llm.schema.Properties["questionEvaluations"].Properties, "q2")
}

func TestGradingInstruction(t *testing.T) {
	got := gradingInstruction("Backend Screen")
	assert.Contains(t, got, "The context of the exam is: Backend Screen")
	assert.Contains(t, got, "(Pass if total score > 60% of max).")
	assert.NotContains(t, got, "%!")
}

func TestGrader_MissingQuestionAndBadVerdict(t *testing.T) {
	llm := &fakeLLM{response: `{"summary":"Partial","passFail":"MAYBE","questionEvaluations":{"q1":{"score":3,"feedback":"Ok"}}}`}
	res := NewGraderService(llm).Evaluate(context.Background(), gradeQuestions, nil)

	assert.Equal(t, model.Fail, res.PassFail)
	assert.Equal(t, model.QuestionEvaluation{Score: 0, Feedback: notEvaluatedNote}, res.QuestionEvaluations["q2"])
	assert.Equal(t, 3.0, res.TotalScore)
}

func TestGrader_Fallbacks(t *testing.T) {
	cases := []struct {
		name    string
		llm     GeminiLLMService
		summary string
	}{
		{"no llm", nil, "AI Evaluation Failed: grading service is not configured."},
		{"no key", &fakeLLM{err: ErrLLMUnavailable}, "AI Evaluation Failed: No API Key provided."},
		{"api error", &fakeLLM{err: fmt.Errorf("gemini: %w", errors.New("quota"))}, "Error during AI evaluation process. See server logs for details."},
		{"malformed", &fakeLLM{response: `{"summary": oops`}, "Error during AI evaluation process: malformed response."},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res := NewGraderService(tc.llm).Evaluate(context.Background(), gradeQuestions, map[string]string{"q1": "4"})
			assert.Equal(t, 0.0, res.TotalScore)
			assert.Equal(t, 15.0, res.MaxScore)
			assert.Equal(t, model.Fail, res.PassFail)
			assert.Equal(t, tc.summary, res.Summary)
			assert.Len(t, res.QuestionEvaluations, 2)
			assert.Equal(t, gradingFailedNote, res.QuestionEvaluations["q1"].Feedback)
		})
	}
}

func TestCodeRunner(t *testing.T) {
	ctx := context.Background()

	keyless := NewCodeRunnerService(&fakeLLM{err: ErrLLMUnavailable})
	assert.Equal(t, "Execution failed: API Key not configured.", keyless.Execute(ctx, "", "python").Content)
	assert.Equal(t, "Execution failed: API Key not configured.", NewCodeRunnerService(nil).Execute(ctx, "", "python").Content)

	empty := NewCodeRunnerService(&fakeLLM{}).Execute(ctx, "   ", "python")
	assert.Equal(t, model.CodeExecutionResult{Type: model.ExecutionOutput, Content: "There is no code to check."}, empty)

	llm := &fakeLLM{response: `{"type":"output","content":"hello\n"}`}
	res := NewCodeRunnerService(llm).Execute(ctx, `print("hello")`, "python")
	assert.Equal(t, model.CodeExecutionResult{Type: model.ExecutionOutput, Content: "hello\n"}, res)
	assert.Equal(t, `print("hello")`, llm.prompt)

	res = NewCodeRunnerService(&fakeLLM{response: `{"type":"warning","content":"?"}`}).Execute(ctx, "x", "python")
	assert.Equal(t, model.ExecutionError, res.Type)

	res = NewCodeRunnerService(&fakeLLM{err: ErrLLMUnavailable}).Execute(ctx, "x", "python")
	assert.Equal(t, "Execution failed: API Key not configured.", res.Content)

	res = NewCodeRunnerService(&fakeLLM{err: errors.New("boom")}).Execute(ctx, "x", "python")
	assert.Equal(t, model.ExecutionError, res.Type)
}

func TestStripCodeFence(t *testing.T) {
	assert.Equal(t, `{"a":1}`, stripCodeFence("```json\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, stripCodeFence(`{"a":1}`))
}
