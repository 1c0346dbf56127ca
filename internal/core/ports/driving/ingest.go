package driving

import (
	"context"

	"github.com/vishwapandiyan/Resume-screener/internal/core/domain"
)

// IngestService indexes candidate résumés into workspace collections.
type IngestService interface {
	// Ingest chunks, embeds and stores the candidates. Returns the number of chunks written.
	Ingest(ctx context.Context, workspaceID string, candidates []domain.Candidate) (int, error)

	// Stats summarises a workspace collection, optionally for one candidate.
	Stats(ctx context.Context, workspaceID, candidateID string) (*domain.WorkspaceStats, error)
}
