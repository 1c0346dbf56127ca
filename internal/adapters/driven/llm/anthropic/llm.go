// Package anthropic completes prompts with the Anthropic Messages API.
package anthropic

import (
	"cmp"
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
	DefaultBaseURL = "https://api.anthropic.com"
	DefaultModel   = "claude-3-5-sonnet-latest"
	DefaultTimeout = 120 * time.Second

	// DefaultMaxTokens is sent when the caller sets no limit; the API
	// requires one.
	DefaultMaxTokens = 1024

	anthropicVersion = "2023-06-01"
)

var errNoText = errors.New("anthropic: no text content returned")

type Config struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
}

type LLMService struct {
	api   *httpapi.Client
	model string
}

type turn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type request struct {
	Model       string   `json:"model"`
	Messages    []turn   `json:"messages"`
	MaxTokens   int      `json:"max_tokens"`
	Temperature float64  `json:"temperature"`
	StopSeqs    []string `json:"stop_sequences,omitempty"`
}

type reply struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
}

// text joins the text blocks; tool and image blocks are ignored.
func (r reply) text() string {
	var b strings.Builder
	for _, c := range r.Content {
		if c.Type == "text" {
			b.WriteString(c.Text)
		}
	}
	return strings.TrimSpace(b.String())
}

func NewLLMService(cfg Config) (*LLMService, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("anthropic: API key is required")
	}

	return &LLMService{
		api: httpapi.New(httpapi.Config{
			Provider: "anthropic",
			BaseURL:  cmp.Or(cfg.BaseURL, DefaultBaseURL),
			Timeout:  cmp.Or(cfg.Timeout, DefaultTimeout),
			Headers: map[string]string{
				"x-api-key":         cfg.APIKey,
				"anthropic-version": anthropicVersion,
			},
			Unavailable: domain.ErrLLMUnavailable,
		}),
		model: cmp.Or(cfg.Model, DefaultModel),
	}, nil
}

func (s *LLMService) Generate(ctx context.Context, prompt string, opts driven.GenerateOptions) (string, error) {
	req := request{
		Model:       s.model,
		Messages:    []turn{{Role: "user", Content: prompt}},
		MaxTokens:   DefaultMaxTokens,
		Temperature: opts.Temperature,
		StopSeqs:    opts.StopWords,
	}
	if opts.MaxTokens > 0 {
		req.MaxTokens = opts.MaxTokens
	}

	var r reply
	if err := s.api.PostJSON(ctx, "/v1/messages", req, &r); err != nil {
		return "", err
	}
	out := r.text()
	if out == "" {
		return "", errNoText
	}
	return out, nil
}

func (s *LLMService) ModelName() string { return s.model }

// Ping lists models to check the key.
func (s *LLMService) Ping(ctx context.Context) error {
	return s.api.Get(ctx, "/v1/models", nil)
}

func (s *LLMService) Close() error { return nil }
