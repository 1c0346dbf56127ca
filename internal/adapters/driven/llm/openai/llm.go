// Package openai completes prompts with the OpenAI chat completions API or
// any server that speaks it.
package openai

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/vishwapandiyan/Resume-screener/internal/adapters/driven/httpapi"
	"github.com/vishwapandiyan/Resume-screener/internal/core/domain"
	"github.com/vishwapandiyan/Resume-screener/internal/core/ports/driven"
)

var _ driven.LLMService = (*LLMService)(nil)

const (
	DefaultBaseURL    = "https://api.openai.com/v1"
	DefaultLLMModel   = "gpt-4o-mini"
	DefaultLLMTimeout = 120 * time.Second
)

var errNoChoices = errors.New("openai: no completion returned")

// LLMConfig needs an APIKey. BaseURL can point at Azure or another
// compatible endpoint.
type LLMConfig struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
}

type LLMService struct {
	api   *httpapi.Client
	model string
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string    `json:"model"`
	Messages    []message `json:"messages"`
	MaxTokens   int       `json:"max_tokens,omitempty"`
	Temperature float64   `json:"temperature"`
	Stop        []string  `json:"stop,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message message `json:"message"`
	} `json:"choices"`
}

func NewLLMService(cfg LLMConfig) (*LLMService, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("openai: API key is required")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultLLMModel
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultLLMTimeout
	}

	api := httpapi.New(httpapi.Config{
		Provider:    "openai",
		BaseURL:     cfg.BaseURL,
		Timeout:     cfg.Timeout,
		Headers:     map[string]string{"Authorization": "Bearer " + cfg.APIKey},
		Unavailable: domain.ErrLLMUnavailable,
	})
	return &LLMService{api: api, model: cfg.Model}, nil
}

// Generate sends prompt as the only user message and returns the first
// choice.
func (s *LLMService) Generate(ctx context.Context, prompt string, opts driven.GenerateOptions) (string, error) {
	var resp chatResponse
	err := s.api.PostJSON(ctx, "/chat/completions", chatRequest{
		Model:       s.model,
		Messages:    []message{{Role: "user", Content: prompt}},
		MaxTokens:   opts.MaxTokens,
		Temperature: opts.Temperature,
		Stop:        opts.StopWords,
	}, &resp)
	switch {
	case err != nil:
		return "", err
	case len(resp.Choices) == 0:
		return "", errNoChoices
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

func (s *LLMService) ModelName() string { return s.model }

// Ping lists models; it checks the key without spending tokens.
func (s *LLMService) Ping(ctx context.Context) error {
	return s.api.Get(ctx, "/models", nil)
}

func (s *LLMService) Close() error { return nil }
