package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/lshigami/pathfinder/internal/model"
	"github.com/rs/zerolog/log"
)

const (
	noAnswerPlaceholder = "NO ANSWER PROVIDED"
	gradingFailedNote   = "Evaluation failed"
	notEvaluatedNote    = "Could not evaluate"
)

// GraderService scores answers against each question's guideline key. It
// never fails: any problem yields a zero-score FAIL result with a diagnostic
// summary.
type GraderService interface {
	Evaluate(ctx context.Context, questions []model.Question, answers map[string]string) model.EvaluationResult
}

type graderService struct {
	llm         GeminiLLMService
	examContext string
}

func NewGraderService(llm GeminiLLMService) GraderService {
	return &graderService{llm: llm, examContext: "Standard Technical Assessment"}
}

const graderInstruction = `You are a Senior Technical Interviewer evaluating a candidate.
The context of the exam is: %s
Evaluate the answers based on technical accuracy, conceptual understanding, and problem-solving approach.
IMPORTANT INSTRUCTIONS FOR GRADING:
1. The 'Context/Ideal Key' provided is a GUIDELINE for expected concepts, NOT a strict answer key. Do not require exact text matches.
2. If the candidate provides a valid alternative solution or uses different wording that demonstrates correct understanding, award appropriate marks.
3. For coding questions, focus on the logic, state management, algorithmic efficiency and syntax.
4. For architectural/design questions, evaluate the feasibility and reasoning of their approach.
5. Return the output strictly in JSON format.
6. For each question, provide a score (0 to Max Marks) and brief feedback (max 2 sentences).
7. Also provide a pass/fail status (Pass if total score > 60%% of max).`

func gradingInstruction(examContext string) string {
	return fmt.Sprintf(graderInstruction, examContext)
}

type gradedQuestion struct {
	Score    *float64 `json:"score"`
	Feedback string   `json:"feedback"`
}

type gradingResponse struct {
	Summary             string                    `json:"summary"`
	PassFail            string                    `json:"passFail"`
	QuestionEvaluations map[string]gradedQuestion `json:"questionEvaluations"`
}

func (s *graderService) Evaluate(ctx context.Context, questions []model.Question, answers map[string]string) model.EvaluationResult {
	maxScore := 0.0
	for _, q := range questions {
		maxScore += float64(q.MarksOrDefault())
	}
	if s.llm == nil {
		return fallbackEvaluation(questions, maxScore, "AI Evaluation Failed: grading service is not configured.")
	}

	raw, err := s.llm.GenerateJSON(ctx, gradingInstruction(s.examContext), gradingSchema(questions), gradingPrompt(questions, answers))
	if err != nil {
		log.Error().Err(err).Msg("AI evaluation error")
		if errors.Is(err, ErrLLMUnavailable) {
			return fallbackEvaluation(questions, maxScore, "AI Evaluation Failed: No API Key provided.")
		}
		return fallbackEvaluation(questions, maxScore, "Error during AI evaluation process. See server logs for details.")
	}

	var parsed gradingResponse
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		log.Warn().Err(err).Str("rawResponse", raw).Msg("Failed to parse AI evaluation response")
		return fallbackEvaluation(questions, maxScore, "Error during AI evaluation process: malformed response.")
	}

	result := model.EvaluationResult{
		MaxScore:            maxScore,
		Summary:             parsed.Summary,
		PassFail:            model.Fail,
		QuestionEvaluations: make(map[string]model.QuestionEvaluation, len(questions)),
	}
	if result.Summary == "" {
		result.Summary = "Evaluation completed."
	}
	if pf := model.PassFail(strings.ToUpper(parsed.PassFail)); pf == model.Pass || pf == model.Fail {
		result.PassFail = pf
	}

	for _, q := range questions {
		graded, ok := parsed.QuestionEvaluations[q.ID]
		if !ok || graded.Score == nil {
			result.QuestionEvaluations[q.ID] = model.QuestionEvaluation{Score: 0, Feedback: notEvaluatedNote}
			continue
		}
		score := clampScore(*graded.Score, float64(q.MarksOrDefault()))
		feedback := graded.Feedback
		if feedback == "" {
			feedback = notEvaluatedNote
		}
		result.QuestionEvaluations[q.ID] = model.QuestionEvaluation{Score: score, Feedback: feedback}
		result.TotalScore += score
	}
	return result
}

func clampScore(score, max float64) float64 {
	if score < 0 {
		return 0
	}
	if score > max {
		return max
	}
	return score
}

func gradingPrompt(questions []model.Question, answers map[string]string) string {
	var sb strings.Builder
	sb.WriteString("Here are the Question/Answer pairs:\n")
	for i, q := range questions {
		answer := strings.TrimSpace(answers[q.ID])
		if answer == "" {
			answer = noAnswerPlaceholder
		}
		fmt.Fprintf(&sb, "---\nQ%d ID: %s\nQuestion: %s\nMax Marks: %d\nContext/Ideal Key: %s\nCandidate Answer: %s\n",
			i+1, q.ID, q.Text, q.MarksOrDefault(), q.IdealAnswerKey, answer)
	}
	return sb.String()
}

// gradingSchema pins the response to one entry per question id.
func gradingSchema(questions []model.Question) *genai.Schema {
	perQuestion := make(map[string]*genai.Schema, len(questions))
	for _, q := range questions {
		perQuestion[q.ID] = &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"score":    {Type: genai.TypeNumber},
				"feedback": {Type: genai.TypeString},
			},
			Required: []string{"score", "feedback"},
		}
	}
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"summary":             {Type: genai.TypeString},
			"passFail":            {Type: genai.TypeString, Enum: []string{string(model.Pass), string(model.Fail)}},
			"questionEvaluations": {Type: genai.TypeObject, Properties: perQuestion},
		},
		Required: []string{"summary", "passFail", "questionEvaluations"},
	}
}

func fallbackEvaluation(questions []model.Question, maxScore float64, reason string) model.EvaluationResult {
	evals := make(map[string]model.QuestionEvaluation, len(questions))
	for _, q := range questions {
		evals[q.ID] = model.QuestionEvaluation{Score: 0, Feedback: gradingFailedNote}
	}
	return model.EvaluationResult{
		TotalScore:          0,
		MaxScore:            maxScore,
		Summary:             reason,
		PassFail:            model.Fail,
		QuestionEvaluations: evals,
	}
}
