package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/vishwapandiyan/Resume-screener/internal/adapters/driven/storage/vecmath"
	"github.com/vishwapandiyan/Resume-screener/internal/core/domain"
	"github.com/vishwapandiyan/Resume-screener/internal/core/ports/driven"
)

// Ensure VectorStore implements the interface.
var _ driven.VectorStore = (*VectorStore)(nil)

// VectorStore is an in-memory implementation of driven.VectorStore.
// Queries are answered by brute force over the workspace collection.
type VectorStore struct {
	mu          sync.RWMutex
	collections map[string]map[string]domain.Chunk
}

// NewVectorStore creates a new in-memory vector store.
func NewVectorStore() *VectorStore {
	return &VectorStore{
		collections: make(map[string]map[string]domain.Chunk),
	}
}

// Upsert stores chunks, replacing any with the same ID.
func (s *VectorStore) Upsert(_ context.Context, workspaceID string, chunks []domain.Chunk) error {
	if len(chunks) == 0 {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	name := domain.CollectionName(workspaceID)
	coll, ok := s.collections[name]
	if !ok {
		coll = make(map[string]domain.Chunk)
		s.collections[name] = coll
	}
	for _, c := range chunks {
		c.WorkspaceID = workspaceID
		c.Embedding = append([]float32(nil), c.Embedding...)
		coll[c.ID] = c
	}
	return nil
}

// Query returns the q.K nearest chunks passing the filters.
func (s *VectorStore) Query(ctx context.Context, workspaceID string, q driven.VectorQuery) ([]driven.VectorMatch, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	coll := s.collections[domain.CollectionName(workspaceID)]
	matches := make([]driven.VectorMatch, 0, len(coll))
	for id := range coll {
		c := coll[id]
		if !vecmath.Matches(&c, q) {
			continue
		}
		matches = append(matches, driven.VectorMatch{Chunk: c, Distance: vecmath.SquaredL2(q.Embedding, c.Embedding)})
	}
	return vecmath.Nearest(matches, q.K), nil
}

// Get returns chunks matching the filter, ordered by ID.
func (s *VectorStore) Get(_ context.Context, workspaceID string, filter driven.ChunkFilter) ([]domain.Chunk, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	chunks := s.filter(workspaceID, filter.CandidateID)
	sort.Slice(chunks, func(i, j int) bool { return chunks[i].ID < chunks[j].ID })
	if filter.Limit > 0 && len(chunks) > filter.Limit {
		chunks = chunks[:filter.Limit]
	}
	return chunks, nil
}

// Count returns the number of chunks matching the filter.
func (s *VectorStore) Count(_ context.Context, workspaceID string, filter driven.ChunkFilter) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.filter(workspaceID, filter.CandidateID)), nil
}

// Close is a no-op for the in-memory store.
func (s *VectorStore) Close() error {
	return nil
}

func (s *VectorStore) filter(workspaceID, candidateID string) []domain.Chunk {
	coll := s.collections[domain.CollectionName(workspaceID)]
	var out []domain.Chunk
	for id := range coll {
		c := coll[id]
		if candidateID == "" || c.CandidateID == candidateID {
			out = append(out, c)
		}
	}
	return out
}
