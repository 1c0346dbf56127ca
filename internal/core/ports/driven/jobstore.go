package driven

import "context"

// JobDescriptionStore persists the job description of each workspace.
type JobDescriptionStore interface {
	// Save stores the job description, replacing any previous one.
	Save(ctx context.Context, workspaceID, text string) error

	// Get returns the workspace's job description.
	// Returns domain.ErrNotFound when none is stored.
	Get(ctx context.Context, workspaceID string) (string, error)
}
