// Package openai provides an embedding service adapter using the OpenAI API.
package openai

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
	DefaultBaseURL = "https://api.openai.com/v1"
	DefaultModel   = "text-embedding-3-small"
	DefaultTimeout = 60 * time.Second
)

// Config holds configuration for the OpenAI embedding service.
type Config struct {
	// APIKey is the OpenAI API key (required).
	APIKey string

	// BaseURL is the API base URL. Change it for Azure OpenAI or compatible servers.
	BaseURL string

	// Model is the embedding model to use.
	Model string

	// Timeout is the request timeout.
	Timeout time.Duration

	// Dimensions overrides the model's default vector size.
	// Only text-embedding-3-* models accept it.
	Dimensions int
}

// EmbeddingService generates embeddings using the OpenAI API.
type EmbeddingService struct {
	api        *httpapi.Client
	model      string
	dimensions int
	sendDims   bool
}

type embeddingRequest struct {
	Model      string   `json:"model"`
	Input      []string `json:"input"`
	Dimensions int      `json:"dimensions,omitempty"`
}

type embeddingResponse struct {
	Data []struct {
		Embedding []float64 `json:"embedding"`
		Index     int       `json:"index"`
	} `json:"data"`
}

// NewEmbeddingService creates a new OpenAI embedding service.
func NewEmbeddingService(cfg Config) (*EmbeddingService, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openai: API key is required")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}

	dims := cfg.Dimensions
	if dims == 0 {
		var ok bool
		if dims, ok = domain.EmbeddingDimensions()[cfg.Model]; !ok {
			dims = 1536
		}
	}

	return &EmbeddingService{
		api: httpapi.New(httpapi.Config{
			Provider:    "openai",
			BaseURL:     cfg.BaseURL,
			Timeout:     cfg.Timeout,
			Headers:     map[string]string{"Authorization": "Bearer " + cfg.APIKey},
			Unavailable: domain.ErrEmbeddingUnavailable,
		}),
		model:      cfg.Model,
		dimensions: dims,
		sendDims:   cfg.Dimensions > 0 && (cfg.Model == "text-embedding-3-small" || cfg.Model == "text-embedding-3-large"),
	}, nil
}

// Embed generates a vector embedding for the given text.
func (s *EmbeddingService) Embed(ctx context.Context, text string) ([]float32, error) {
	vectors, err := s.EmbedBatch(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vectors[0], nil
}

// EmbedBatch embeds all texts in one request. Results follow input order.
func (s *EmbeddingService) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	req := embeddingRequest{Model: s.model, Input: texts}
	if s.sendDims {
		req.Dimensions = s.dimensions
	}

	var resp embeddingResponse
	if err := s.api.PostJSON(ctx, "/embeddings", req, &resp); err != nil {
		return nil, err
	}

	vectors := make([][]float32, len(texts))
	for _, d := range resp.Data {
		if d.Index < 0 || d.Index >= len(texts) {
			return nil, fmt.Errorf("openai: embedding index %d out of range", d.Index)
		}
		vectors[d.Index] = toFloat32(d.Embedding)
	}
	for i, v := range vectors {
		if v == nil {
			return nil, fmt.Errorf("openai: no embedding returned for input %d", i)
		}
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

// Ping checks the API key against the /models endpoint without running inference.
func (s *EmbeddingService) Ping(ctx context.Context) error {
	return s.api.Get(ctx, "/models", nil)
}

// Close releases resources.
func (s *EmbeddingService) Close() error {
	return nil
}

func toFloat32(in []float64) []float32 {
	out := make([]float32, len(in))
	for i, v := range in {
		out[i] = float32(v)
	}
	return out
}
