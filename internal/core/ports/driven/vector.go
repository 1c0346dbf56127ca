package driven

import (
	"context"

	"github.com/vishwapandiyan/Resume-screener/internal/core/domain"
)

// VectorStore holds one chunk collection per workspace and answers
// nearest-neighbour queries over it.
// Collections are created lazily on first upsert.
type VectorStore interface {
	// Upsert writes chunks (with embeddings) to the workspace collection.
	// Existing chunks with the same ID are overwritten.
	Upsert(ctx context.Context, workspaceID string, chunks []domain.Chunk) error

	// Query returns up to q.K chunks ordered by ascending L2 distance.
	// An unknown workspace yields no matches and no error.
	Query(ctx context.Context, workspaceID string, q VectorQuery) ([]VectorMatch, error)

	// Get returns stored chunks matching the filter, ordered by ID.
	Get(ctx context.Context, workspaceID string, filter ChunkFilter) ([]domain.Chunk, error)

	// Count returns the number of chunks matching the filter.
	Count(ctx context.Context, workspaceID string, filter ChunkFilter) (int, error)

	// Close releases resources.
	Close() error
}

// VectorQuery describes a nearest-neighbour query.
type VectorQuery struct {
	// Embedding is the query vector.
	Embedding []float32

	// K is the maximum number of matches.
	K int

	// CandidateID restricts matches to one candidate when set.
	CandidateID string

	// Contains restricts matches to chunks whose text contains this substring.
	Contains string
}

// ChunkFilter selects stored chunks.
type ChunkFilter struct {
	// CandidateID restricts to one candidate when set.
	CandidateID string

	// Limit caps the result size. Zero means no limit.
	Limit int
}

// VectorMatch is one query result.
type VectorMatch struct {
	Chunk    domain.Chunk
	Distance float64
}
