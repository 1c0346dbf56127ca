package driven

import "context"

// EmbeddingService turns text into vectors for the VectorStore. Adapters
// exist for OpenAI, Ollama and Gemini.
type EmbeddingService interface {
	Embed(ctx context.Context, text string) ([]float32, error)

	// EmbedBatch returns one vector per input, in input order.
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)

	// Dimensions is the configured vector length.
	Dimensions() int
	ModelName() string
	Ping(ctx context.Context) error
	Close() error
}
