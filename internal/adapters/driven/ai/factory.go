// Package ai builds the embedding and LLM adapters selected in settings.
package ai

import (
	"context"
	"fmt"
	"time"

	geminiembed "github.com/vishwapandiyan/Resume-screener/internal/adapters/driven/embedding/gemini"
	ollamaembed "github.com/vishwapandiyan/Resume-screener/internal/adapters/driven/embedding/ollama"
	openaiembed "github.com/vishwapandiyan/Resume-screener/internal/adapters/driven/embedding/openai"
	anthropicllm "github.com/vishwapandiyan/Resume-screener/internal/adapters/driven/llm/anthropic"
	geminillm "github.com/vishwapandiyan/Resume-screener/internal/adapters/driven/llm/gemini"
	"github.com/vishwapandiyan/Resume-screener/internal/adapters/driven/llm/guard"
	ollamallm "github.com/vishwapandiyan/Resume-screener/internal/adapters/driven/llm/ollama"
	openaillm "github.com/vishwapandiyan/Resume-screener/internal/adapters/driven/llm/openai"
	"github.com/vishwapandiyan/Resume-screener/internal/core/domain"
	"github.com/vishwapandiyan/Resume-screener/internal/core/ports/driven"
	"github.com/vishwapandiyan/Resume-screener/internal/logger"
)

const pingTimeout = 5 * time.Second

const fixHint = "Run 'screener settings' to fix"

// InitResult holds the services that passed their startup probe. A nil
// service means the capability is disabled; Warnings says why.
type InitResult struct {
	EmbeddingService driven.EmbeddingService
	LLMService       driven.LLMService
	Warnings         []string
}

func (r *InitResult) Close() {
	if r.EmbeddingService != nil {
		_ = r.EmbeddingService.Close()
	}
	if r.LLMService != nil {
		_ = r.LLMService.Close()
	}
}

// Init builds and probes both services. Failures are logged and leave the
// service nil so the caller runs degraded.
func Init(settings *domain.AppSettings) *InitResult {
	r := &InitResult{}
	var err error

	if r.EmbeddingService, err = CreateAndValidateEmbeddingService(&settings.Embedding); err != nil {
		r.Warnings = append(r.Warnings, err.Error())
		logger.Warn("embedding service disabled: %v", err)
	}
	if r.LLMService, err = CreateAndValidateLLMService(&settings.LLM); err != nil {
		r.Warnings = append(r.Warnings, err.Error())
		logger.Warn("LLM service disabled: %v", err)
	}
	return r
}

// pinger is the part of both service interfaces a probe needs.
type pinger interface {
	Ping(ctx context.Context) error
	Close() error
}

// probe pings svc and closes it on failure.
func probe[S pinger](svc S) (S, error) {
	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	if err := svc.Ping(ctx); err != nil {
		_ = svc.Close()
		var zero S
		return zero, err
	}
	return svc, nil
}

// CreateAndValidateEmbeddingService returns nil, nil when no provider is
// selected.
func CreateAndValidateEmbeddingService(settings *domain.EmbeddingSettings) (driven.EmbeddingService, error) {
	svc, err := CreateEmbeddingService(settings)
	if err != nil {
		return nil, fmt.Errorf("%w: %w. %s", domain.ErrEmbeddingUnavailable, err, fixHint)
	}
	if svc == nil {
		return nil, nil
	}
	if svc, err = probe(svc); err != nil {
		return nil, fmt.Errorf("%w: service unreachable (%w). %s", domain.ErrEmbeddingUnavailable, err, fixHint)
	}
	return svc, nil
}

// CreateAndValidateLLMService returns nil, nil when no provider is selected.
func CreateAndValidateLLMService(settings *domain.LLMSettings) (driven.LLMService, error) {
	svc, err := CreateLLMService(settings)
	if err != nil {
		return nil, fmt.Errorf("%w: %w. %s", domain.ErrLLMUnavailable, err, fixHint)
	}
	if svc == nil {
		return nil, nil
	}
	if svc, err = probe(svc); err != nil {
		return nil, fmt.Errorf("%w: service unreachable (%w). %s", domain.ErrLLMUnavailable, err, fixHint)
	}
	return svc, nil
}

// CreateEmbeddingService builds the selected embedding adapter without
// contacting it. Unselected or incomplete settings yield nil, nil.
func CreateEmbeddingService(s *domain.EmbeddingSettings) (driven.EmbeddingService, error) {
	if s == nil || !s.IsConfigured() {
		return nil, nil
	}

	switch s.Provider {
	case domain.AIProviderOllama:
		return ollamaembed.NewEmbeddingService(ollamaembed.Config{
			BaseURL: s.BaseURL,
			Model:   s.Model,
		}), nil
	case domain.AIProviderOpenAI:
		return openaiembed.NewEmbeddingService(openaiembed.Config{
			APIKey:  s.APIKey,
			BaseURL: s.BaseURL,
			Model:   s.Model,
		})
	case domain.AIProviderGemini:
		return geminiembed.NewEmbeddingService(context.Background(), geminiembed.Config{
			APIKey: s.APIKey,
			Model:  s.Model,
		})
	}
	return nil, fmt.Errorf("unsupported embedding provider: %s", s.Provider)
}

// CreateLLMService builds the selected LLM adapter behind the rate limiter
// and circuit breaker. Unselected or incomplete settings yield nil, nil.
func CreateLLMService(s *domain.LLMSettings) (driven.LLMService, error) {
	if s == nil || !s.IsConfigured() {
		return nil, nil
	}

	var (
		svc driven.LLMService
		err error
	)
	switch s.Provider {
	case domain.AIProviderOllama:
		svc = ollamallm.NewLLMService(ollamallm.LLMConfig{BaseURL: s.BaseURL, Model: s.Model})
	case domain.AIProviderOpenAI:
		svc, err = openaillm.NewLLMService(openaillm.LLMConfig{APIKey: s.APIKey, BaseURL: s.BaseURL, Model: s.Model})
	case domain.AIProviderAnthropic:
		svc, err = anthropicllm.NewLLMService(anthropicllm.Config{APIKey: s.APIKey, BaseURL: s.BaseURL, Model: s.Model})
	case domain.AIProviderGemini:
		svc, err = geminillm.NewLLMService(context.Background(), geminillm.Config{APIKey: s.APIKey, Model: s.Model})
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", s.Provider)
	}
	if err != nil {
		return nil, err
	}

	return guard.New(svc, guard.Config{
		Name:              string(s.Provider),
		RequestsPerMinute: s.RequestsPerMinute,
	}), nil
}
