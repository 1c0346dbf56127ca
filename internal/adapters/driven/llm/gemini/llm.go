// Package gemini provides an LLM service adapter using the Google Generative
// AI SDK.
package gemini

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/vishwapandiyan/Resume-screener/internal/core/domain"
	"github.com/vishwapandiyan/Resume-screener/internal/core/ports/driven"
)

// Ensure LLMService implements the interface.
var _ driven.LLMService = (*LLMService)(nil)

// DefaultModel is the generative model used when none is configured.
const DefaultModel = "gemini-2.0-flash"

// Config holds configuration for the Gemini LLM service.
type Config struct {
	// APIKey is the Google AI Studio key (required).
	APIKey string

	// Model is the generative model to use (default: gemini-2.0-flash).
	Model string
}

// LLMService generates text with Gemini models.
type LLMService struct {
	client *genai.Client
	model  string
}

// NewLLMService creates a new Gemini LLM service.
func NewLLMService(ctx context.Context, cfg Config) (*LLMService, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini: API key is required")
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.APIKey))
	if err != nil {
		return nil, fmt.Errorf("gemini: create client: %w", err)
	}
	return &LLMService{client: client, model: cfg.Model}, nil
}

// Generate produces text completion from a prompt. A model handle is built
// per call because generation settings live on the handle.
func (s *LLMService) Generate(ctx context.Context, prompt string, opts driven.GenerateOptions) (string, error) {
	model := s.client.GenerativeModel(s.model)
	model.SetTemperature(float32(opts.Temperature))
	if opts.MaxTokens > 0 {
		model.SetMaxOutputTokens(int32(opts.MaxTokens))
	}
	if len(opts.StopWords) > 0 {
		model.StopSequences = opts.StopWords
	}

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		if ctx.Err() != nil {
			return "", fmt.Errorf("gemini: %w", ctx.Err())
		}
		return "", fmt.Errorf("gemini: %w: %w", domain.ErrLLMUnavailable, err)
	}

	text := responseText(resp)
	if text == "" {
		return "", fmt.Errorf("gemini: no text content returned")
	}
	return text, nil
}

func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if t, ok := part.(genai.Text); ok {
			b.WriteString(string(t))
		}
	}
	return strings.TrimSpace(b.String())
}

// ModelName returns the name of the LLM model being used.
func (s *LLMService) ModelName() string {
	return s.model
}

// Ping fetches model metadata, which validates the key without inference.
func (s *LLMService) Ping(ctx context.Context) error {
	if _, err := s.client.GenerativeModel(s.model).Info(ctx); err != nil {
		return fmt.Errorf("gemini: %w: %w", domain.ErrLLMUnavailable, err)
	}
	return nil
}

// Close releases the underlying client.
func (s *LLMService) Close() error {
	return s.client.Close()
}
