package model

type PassFail string

const (
	Pass PassFail = "PASS"
	Fail PassFail = "FAIL"
)

type QuestionEvaluation struct {
	Score    float64 `json:"score"`
	Feedback string  `json:"feedback"`
}

type EvaluationResult struct {
	TotalScore          float64                       `json:"totalScore"`
	MaxScore            float64                       `json:"maxScore"`
	Summary             string                        `json:"summary"`
	PassFail            PassFail                      `json:"passFail"`
	QuestionEvaluations map[string]QuestionEvaluation `json:"questionEvaluations"`
}

// CodeExecutionResult is what the code runner reports for a snippet.
type CodeExecutionResult struct {
	Type    string `json:"type"` // "output" or "error"
	Content string `json:"content"`
}

const (
	ExecutionOutput = "output"
	ExecutionError  = "error"
)
