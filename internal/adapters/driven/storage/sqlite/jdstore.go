package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/vishwapandiyan/Resume-screener/internal/core/domain"
	"github.com/vishwapandiyan/Resume-screener/internal/core/ports/driven"
)

// jobDescriptionStore implements driven.JobDescriptionStore.
type jobDescriptionStore struct {
	store *Store
}

var _ driven.JobDescriptionStore = (*jobDescriptionStore)(nil)

// Save stores or replaces the workspace's job description.
func (s *jobDescriptionStore) Save(ctx context.Context, workspaceID, text string) error {
	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO job_descriptions (workspace_id, text, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(workspace_id) DO UPDATE SET text = excluded.text, updated_at = excluded.updated_at
	`, workspaceID, text, time.Now().UnixNano())
	if err != nil {
		return fmt.Errorf("saving job description: %w", err)
	}
	return nil
}

// Get returns the workspace's job description or domain.ErrNotFound.
func (s *jobDescriptionStore) Get(ctx context.Context, workspaceID string) (string, error) {
	var text string
	err := s.store.db.QueryRowContext(ctx,
		`SELECT text FROM job_descriptions WHERE workspace_id = ?`, workspaceID).Scan(&text)
	if errors.Is(err, sql.ErrNoRows) {
		return "", domain.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("getting job description: %w", err)
	}
	return text, nil
}
