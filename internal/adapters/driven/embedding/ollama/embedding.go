// Package ollama provides an embedding service adapter using a local Ollama server.
package ollama

import (
	"context"
	"fmt"
	"time"

	"github.com/vishwapandiyan/Resume-screener/internal/adapters/driven/httpapi"
	"github.com/vishwapandiyan/Resume-screener/internal/core/domain"
	"github.com/vishwapandiyan/Resume-screener/internal/core/ports/driven"
)

// Ensure EmbeddingService implements the interface.
var _ driven.EmbeddingService = (*EmbeddingService)(nil)

// Default configuration values.
const (
	DefaultBaseURL    = "http://localhost:11434"
	DefaultModel      = "nomic-embed-text"
	DefaultTimeout    = 30 * time.Second
	DefaultDimensions = 768
)

// Config holds configuration for the Ollama embedding service.
type Config struct {
	// BaseURL is the Ollama server URL.
	BaseURL string

	// Model is the embedding model to use.
	Model string

	// Timeout is the request timeout.
	Timeout time.Duration

	// Dimensions overrides the vector size reported by Dimensions.
	Dimensions int
}

// EmbeddingService generates embeddings using Ollama's /api/embed endpoint.
type EmbeddingService struct {
	api        *httpapi.Client
	model      string
	dimensions int
}

type embedRequest struct {
	Model string   `json:"model"`
	Input []string `json:"input"`
}

type embedResponse struct {
	Embeddings [][]float64 `json:"embeddings"`
}

// NewEmbeddingService creates a new Ollama embedding service.
func NewEmbeddingService(cfg Config) *EmbeddingService {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.Dimensions == 0 {
		if d, ok := domain.EmbeddingDimensions()[cfg.Model]; ok {
			cfg.Dimensions = d
		} else {
			cfg.Dimensions = DefaultDimensions
		}
	}

	return &EmbeddingService{
		api: httpapi.New(httpapi.Config{
			Provider:    "ollama",
			BaseURL:     cfg.BaseURL,
			Timeout:     cfg.Timeout,
			Unavailable: domain.ErrEmbeddingUnavailable,
		}),
		model:      cfg.Model,
		dimensions: cfg.Dimensions,
	}
}

// Embed generates a vector embedding for the given text.
func (s *EmbeddingService) Embed(ctx context.Context, text string) ([]float32, error) {
	vectors, err := s.EmbedBatch(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vectors[0], nil
}

// EmbedBatch embeds all texts in one request.
func (s *EmbeddingService) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	var resp embedResponse
	if err := s.api.PostJSON(ctx, "/api/embed", embedRequest{Model: s.model, Input: texts}, &resp); err != nil {
		return nil, err
	}
	if len(resp.Embeddings) != len(texts) {
		return nil, fmt.Errorf("ollama: expected %d embeddings, got %d", len(texts), len(resp.Embeddings))
	}

	vectors := make([][]float32, len(resp.Embeddings))
	for i, e := range resp.Embeddings {
		v := make([]float32, len(e))
		for j, x := range e {
			v[j] = float32(x)
		}
		vectors[i] = v
	}
	return vectors, nil
}

// Dimensions returns the embedding vector size.
func (s *EmbeddingService) Dimensions() int {
	return s.dimensions
}

// ModelName returns the name of the embedding model being used.
func (s *EmbeddingService) ModelName() string {
	return s.model
}

// Ping checks that the Ollama server is reachable.
func (s *EmbeddingService) Ping(ctx context.Context) error {
	return s.api.Get(ctx, "/api/tags", nil)
}

// Close releases resources.
func (s *EmbeddingService) Close() error {
	return nil
}
