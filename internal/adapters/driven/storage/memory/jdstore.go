package memory

import (
	"context"
	"sync"

	"github.com/vishwapandiyan/Resume-screener/internal/core/domain"
	"github.com/vishwapandiyan/Resume-screener/internal/core/ports/driven"
)

// Ensure JobDescriptionStore implements the interface.
var _ driven.JobDescriptionStore = (*JobDescriptionStore)(nil)

// JobDescriptionStore is an in-memory implementation of driven.JobDescriptionStore.
type JobDescriptionStore struct {
	mu   sync.RWMutex
	jobs map[string]string
}

// NewJobDescriptionStore creates a new in-memory job description store.
func NewJobDescriptionStore() *JobDescriptionStore {
	return &JobDescriptionStore{jobs: make(map[string]string)}
}

// Save stores the job description for a workspace.
func (s *JobDescriptionStore) Save(_ context.Context, workspaceID, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs[workspaceID] = text
	return nil
}

// Get returns the workspace job description.
func (s *JobDescriptionStore) Get(_ context.Context, workspaceID string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	text, ok := s.jobs[workspaceID]
	if !ok {
		return "", domain.ErrNotFound
	}
	return text, nil
}
