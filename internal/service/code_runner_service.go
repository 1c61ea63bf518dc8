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

// CodeRunnerService simulates running a snippet. Nothing is executed on the
// server; the model acts as the interpreter.
type CodeRunnerService interface {
	Execute(ctx context.Context, code, language string) model.CodeExecutionResult
}

type codeRunnerService struct {
	llm GeminiLLMService
}

func NewCodeRunnerService(llm GeminiLLMService) CodeRunnerService {
	return &codeRunnerService{llm: llm}
}

const runnerInstruction = `You are a Code Execution Engine. Your task is to act as a compiler/interpreter for the programming language: "%s".

1. Analyze the provided code for syntax correctness.
2. SIMULATE the execution of the code as if it were run in a standard environment for that language.
3. Return the Standard Output (stdout) if successful.
4. Return the Compiler/Runtime Error message if it fails.

The output must be a JSON object with two keys:
- "type": "output" (for success/stdout) or "error" (for syntax/runtime errors).
- "content": The actual output string or error message.

IMPORTANT: Do NOT provide hints, fixes, or explanations. Just the raw execution output or error.`

var runnerSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"type":    {Type: genai.TypeString, Enum: []string{model.ExecutionOutput, model.ExecutionError}},
		"content": {Type: genai.TypeString},
	},
	Required: []string{"type", "content"},
}

func (s *codeRunnerService) Execute(ctx context.Context, code, language string) model.CodeExecutionResult {
	if s.llm == nil || !s.llm.Available() {
		return model.CodeExecutionResult{Type: model.ExecutionError, Content: "Execution failed: API Key not configured."}
	}
	if strings.TrimSpace(code) == "" {
		return model.CodeExecutionResult{Type: model.ExecutionOutput, Content: "There is no code to check."}
	}

	raw, err := s.llm.GenerateJSON(ctx, fmt.Sprintf(runnerInstruction, language), runnerSchema, code)
	if err != nil {
		if errors.Is(err, ErrLLMUnavailable) {
			return model.CodeExecutionResult{Type: model.ExecutionError, Content: "Execution failed: API Key not configured."}
		}
		log.Error().Err(err).Str("language", language).Msg("AI code execution error")
		return model.CodeExecutionResult{Type: model.ExecutionError, Content: "An error occurred while trying to execute the code with the AI."}
	}

	var result model.CodeExecutionResult
	if err := json.Unmarshal([]byte(raw), &result); err != nil || (result.Type != model.ExecutionOutput && result.Type != model.ExecutionError) {
		log.Warn().Err(err).Str("rawResponse", raw).Msg("AI did not return a valid execution result")
		return model.CodeExecutionResult{Type: model.ExecutionError, Content: "AI did not return a valid response."}
	}
	return result
}
