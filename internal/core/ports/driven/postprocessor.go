package driven

import (
	"context"

	"github.com/vishwapandiyan/Resume-screener/internal/core/domain"
)

// PostProcessor processes candidate text to produce chunks.
// PostProcessors are chained in a pipeline (chunking, dedupe, annotation).
type PostProcessor interface {
	// Name returns the processor name for logging and configuration.
	Name() string

	// Process takes a candidate and returns chunks.
	// If the processor modifies chunks (e.g., dedupe), it receives and returns chunks.
	// If the processor creates chunks (e.g., chunker), it receives nil and returns new chunks.
	Process(ctx context.Context, candidate *domain.Candidate, chunks []domain.Chunk) ([]domain.Chunk, error)
}

// PostProcessorPipeline chains multiple PostProcessors.
type PostProcessorPipeline interface {
	// Process runs the candidate through all processors in order.
	// Returns the final chunks after all processing.
	Process(ctx context.Context, workspaceID string, candidate *domain.Candidate) ([]domain.Chunk, error)
}
