// Package guard wraps an LLM service with a circuit breaker, a request rate
// limiter and tracing spans.
package guard

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sony/gobreaker"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/time/rate"

	"github.com/vishwapandiyan/Resume-screener/internal/core/domain"
	"github.com/vishwapandiyan/Resume-screener/internal/core/ports/driven"
	"github.com/vishwapandiyan/Resume-screener/internal/logger"
)

// Ensure LLMService implements the interface.
var _ driven.LLMService = (*LLMService)(nil)

// DefaultRequestsPerMinute applies when Config leaves it unset.
const DefaultRequestsPerMinute = 60

// Config tunes the guard.
type Config struct {
	// Name labels the breaker in logs and spans. Defaults to the model name.
	Name string

	// RequestsPerMinute caps the outbound request rate.
	RequestsPerMinute int

	// MinRequests is how many calls the breaker observes before it may trip.
	MinRequests uint32

	// FailureRatio trips the breaker once reached.
	FailureRatio float64

	// OpenTimeout is how long the breaker stays open before probing again.
	OpenTimeout time.Duration
}

func (c Config) withDefaults(model string) Config {
	if c.Name == "" {
		c.Name = model
	}
	if c.RequestsPerMinute <= 0 {
		c.RequestsPerMinute = DefaultRequestsPerMinute
	}
	if c.MinRequests == 0 {
		c.MinRequests = 3
	}
	if c.FailureRatio <= 0 {
		c.FailureRatio = 0.6
	}
	if c.OpenTimeout <= 0 {
		c.OpenTimeout = 60 * time.Second
	}
	return c
}

// LLMService decorates another LLMService.
type LLMService struct {
	next    driven.LLMService
	name    string
	breaker *gobreaker.CircuitBreaker
	limiter *rate.Limiter
}

// New wraps next.
func New(next driven.LLMService, cfg Config) *LLMService {
	cfg = cfg.withDefaults(next.ModelName())

	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        cfg.Name,
		MaxRequests: 5,
		Interval:    10 * time.Second,
		Timeout:     cfg.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= cfg.MinRequests && failureRatio >= cfg.FailureRatio
		},
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("llm circuit breaker %s: %s -> %s", name, from, to)
		},
	})

	// Keep 10% headroom below the configured rate.
	rpm := float64(cfg.RequestsPerMinute)
	limiter := rate.NewLimiter(rate.Limit(rpm*0.9/60.0), max(1, cfg.RequestsPerMinute/10))

	return &LLMService{
		next:    next,
		name:    cfg.Name,
		breaker: breaker,
		limiter: limiter,
	}
}

// Generate waits for a rate token and calls the wrapped service through the
// breaker. An open breaker fails fast with domain.ErrCircuitOpen.
func (s *LLMService) Generate(ctx context.Context, prompt string, opts driven.GenerateOptions) (string, error) {
	ctx, span := otel.Tracer("screener/llm").Start(ctx, "llm.generate")
	defer span.End()

	span.SetAttributes(
		attribute.String("llm.model", s.next.ModelName()),
		attribute.Int("llm.prompt_chars", len(prompt)),
		attribute.Int("llm.max_tokens", opts.MaxTokens),
	)

	if err := s.limiter.Wait(ctx); err != nil {
		span.SetAttributes(attribute.Bool("llm.rate_limited", true))
		span.SetStatus(codes.Error, err.Error())
		return "", fmt.Errorf("%s: %w: %w", s.name, domain.ErrRateLimited, err)
	}

	result, err := s.breaker.Execute(func() (interface{}, error) {
		return s.next.Generate(ctx, prompt, opts)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			span.SetAttributes(attribute.Bool("llm.circuit_open", true))
			span.SetStatus(codes.Error, err.Error())
			return "", fmt.Errorf("%s: %w: %w", s.name, domain.ErrCircuitOpen, domain.ErrLLMUnavailable)
		}
		span.SetStatus(codes.Error, err.Error())
		return "", err
	}

	text, _ := result.(string)
	span.SetAttributes(attribute.Int("llm.response_chars", len(text)))
	return text, nil
}

// State reports the breaker state.
func (s *LLMService) State() gobreaker.State {
	return s.breaker.State()
}

// ModelName returns the wrapped model name.
func (s *LLMService) ModelName() string {
	return s.next.ModelName()
}

// Ping bypasses the breaker so a health check can observe recovery.
func (s *LLMService) Ping(ctx context.Context) error {
	return s.next.Ping(ctx)
}

// Close closes the wrapped service.
func (s *LLMService) Close() error {
	return s.next.Close()
}
