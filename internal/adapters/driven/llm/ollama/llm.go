// Package ollama completes prompts with a local Ollama server.
package ollama

import (
	"cmp"
	"context"
	"strings"
	"time"

	"github.com/vishwapandiyan/Resume-screener/internal/adapters/driven/httpapi"
	"github.com/vishwapandiyan/Resume-screener/internal/core/domain"
	"github.com/vishwapandiyan/Resume-screener/internal/core/ports/driven"
)

var _ driven.LLMService = (*LLMService)(nil)

const (
	DefaultBaseURL    = "http://localhost:11434"
	DefaultLLMModel   = "llama3.2"
	DefaultLLMTimeout = 120 * time.Second
)

// LLMConfig selects the server and model. Zero fields take the defaults.
type LLMConfig struct {
	BaseURL string
	Model   string
	Timeout time.Duration
}

type LLMService struct {
	api   *httpapi.Client
	model string
}

// completion is the body of POST /api/generate with streaming off.
type completion struct {
	Model   string    `json:"model"`
	Prompt  string    `json:"prompt"`
	Stream  bool      `json:"stream"`
	Options *sampling `json:"options,omitempty"`
}

type sampling struct {
	NumPredict  int      `json:"num_predict,omitempty"`
	Temperature float64  `json:"temperature"`
	Stop        []string `json:"stop,omitempty"`
}

func NewLLMService(cfg LLMConfig) *LLMService {
	model := cmp.Or(cfg.Model, DefaultLLMModel)
	timeout := cmp.Or(cfg.Timeout, DefaultLLMTimeout)

	return &LLMService{
		api: httpapi.New(httpapi.Config{
			Provider:    "ollama",
			BaseURL:     cmp.Or(cfg.BaseURL, DefaultBaseURL),
			Timeout:     timeout,
			Unavailable: domain.ErrLLMUnavailable,
		}),
		model: model,
	}
}

func (s *LLMService) Generate(ctx context.Context, prompt string, opts driven.GenerateOptions) (string, error) {
	body := completion{
		Model:  s.model,
		Prompt: prompt,
		Options: &sampling{
			NumPredict:  opts.MaxTokens,
			Temperature: opts.Temperature,
			Stop:        opts.StopWords,
		},
	}

	var out struct {
		Response string `json:"response"`
	}
	if err := s.api.PostJSON(ctx, "/api/generate", body, &out); err != nil {
		return "", err
	}
	return strings.TrimSpace(out.Response), nil
}

func (s *LLMService) ModelName() string { return s.model }

// Ping lists local models, which needs no inference.
func (s *LLMService) Ping(ctx context.Context) error {
	return s.api.Get(ctx, "/api/tags", nil)
}

func (s *LLMService) Close() error { return nil }
