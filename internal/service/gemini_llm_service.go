package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/lshigami/pathfinder/config"
	"github.com/rs/zerolog/log"
	"google.golang.org/api/option"
)

var ErrLLMUnavailable = errors.New("gemini client not initialized")

// GeminiLLMService sends one prompt and returns the model's JSON text.
type GeminiLLMService interface {
	GenerateJSON(ctx context.Context, systemInstruction string, schema *genai.Schema, prompt string) (string, error)
	// Available reports whether an API key was configured.
	Available() bool
	Close() error
}

type geminiLLMService struct {
	client    *genai.Client
	modelName string
}

// NewGeminiLLMService returns a service whose calls fail with
// ErrLLMUnavailable when no API key is set.
func NewGeminiLLMService(cfg *config.Config) (GeminiLLMService, error) {
	if cfg.GeminiApiKey == "" {
		log.Warn().Msg("GEMINI_API_KEY is not set. GeminiLLMService will be non-functional.")
		return &geminiLLMService{modelName: cfg.GeminiModel}, nil
	}
	client, err := genai.NewClient(context.Background(), option.WithAPIKey(cfg.GeminiApiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Gemini client: %w", err)
	}
	return &geminiLLMService{client: client, modelName: cfg.GeminiModel}, nil
}

func (s *geminiLLMService) GenerateJSON(ctx context.Context, systemInstruction string, schema *genai.Schema, prompt string) (string, error) {
	if s.client == nil {
		return "", ErrLLMUnavailable
	}

	model := s.client.GenerativeModel(s.modelName)
	temp := float32(0.2)
	model.Temperature = &temp
	model.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(systemInstruction)}}
	model.ResponseMIMEType = "application/json"
	model.ResponseSchema = schema

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		log.Error().Err(err).Str("model", s.modelName).Msg("Gemini API error")
		return "", fmt.Errorf("gemini API error: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("gemini returned no content")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			sb.WriteString(string(txt))
		}
	}
	if sb.Len() == 0 {
		return "", fmt.Errorf("gemini returned no text content")
	}
	return stripCodeFence(sb.String()), nil
}

func (s *geminiLLMService) Available() bool {
	return s.client != nil
}

func (s *geminiLLMService) Close() error {
	if s.client == nil {
		return nil
	}
	return s.client.Close()
}

// stripCodeFence removes a ```json ... ``` wrapper some responses still carry.
func stripCodeFence(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "```") {
		return text
	}
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	return strings.TrimSpace(text)
}
