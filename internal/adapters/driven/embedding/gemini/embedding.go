// Package gemini provides an embedding service adapter using the Google
// Generative AI SDK.
package gemini

import (
	"context"
	"fmt"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/vishwapandiyan/Resume-screener/internal/core/domain"
	"github.com/vishwapandiyan/Resume-screener/internal/core/ports/driven"
)

// Ensure EmbeddingService implements the interface.
var _ driven.EmbeddingService = (*EmbeddingService)(nil)

// DefaultModel is the embedding model used when none is configured.
const DefaultModel = "text-embedding-004"

// maxBatch is the largest batch BatchEmbedContents accepts.
const maxBatch = 100

// Config holds configuration for the Gemini embedding service.
type Config struct {
	// APIKey is the Google AI Studio key (required).
	APIKey string

	// Model is the embedding model to use.
	Model string

	// Options are appended to the client options, e.g. a custom endpoint.
	Options []option.ClientOption
}

// EmbeddingService generates embeddings with Gemini embedding models.
type EmbeddingService struct {
	client     *genai.Client
	model      *genai.EmbeddingModel
	name       string
	dimensions int
}

// NewEmbeddingService creates a new Gemini embedding service.
func NewEmbeddingService(ctx context.Context, cfg Config) (*EmbeddingService, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini: API key is required")
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}

	opts := append([]option.ClientOption{option.WithAPIKey(cfg.APIKey)}, cfg.Options...)
	client, err := genai.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("gemini: create client: %w", err)
	}

	dims, ok := domain.EmbeddingDimensions()[cfg.Model]
	if !ok {
		dims = 768
	}

	return &EmbeddingService{
		client:     client,
		model:      client.EmbeddingModel(cfg.Model),
		name:       cfg.Model,
		dimensions: dims,
	}, nil
}

// Embed generates a vector embedding for the given text.
func (s *EmbeddingService) Embed(ctx context.Context, text string) ([]float32, error) {
	resp, err := s.model.EmbedContent(ctx, genai.Text(text))
	if err != nil {
		return nil, s.wrap(ctx, err)
	}
	if resp.Embedding == nil {
		return nil, fmt.Errorf("gemini: no embedding returned")
	}
	return resp.Embedding.Values, nil
}

// EmbedBatch embeds texts through BatchEmbedContents, splitting into
// requests of at most 100 inputs.
func (s *EmbeddingService) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	vectors := make([][]float32, 0, len(texts))
	for start := 0; start < len(texts); start += maxBatch {
		end := min(start+maxBatch, len(texts))

		batch := s.model.NewBatch()
		for _, t := range texts[start:end] {
			batch.AddContent(genai.Text(t))
		}

		resp, err := s.model.BatchEmbedContents(ctx, batch)
		if err != nil {
			return nil, s.wrap(ctx, err)
		}
		if len(resp.Embeddings) != end-start {
			return nil, fmt.Errorf("gemini: expected %d embeddings, got %d", end-start, len(resp.Embeddings))
		}
		for _, e := range resp.Embeddings {
			vectors = append(vectors, e.Values)
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
	return s.name
}

// Ping embeds a single word to confirm the key and model are usable.
func (s *EmbeddingService) Ping(ctx context.Context) error {
	_, err := s.Embed(ctx, "ping")
	return err
}

// Close releases the underlying gRPC client.
func (s *EmbeddingService) Close() error {
	return s.client.Close()
}

func (s *EmbeddingService) wrap(ctx context.Context, err error) error {
	if ctx.Err() != nil {
		return fmt.Errorf("gemini: %w", ctx.Err())
	}
	return fmt.Errorf("gemini: %w: %w", domain.ErrEmbeddingUnavailable, err)
}
