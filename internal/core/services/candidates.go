package services

import (
	"context"
	"fmt"
	"time"

	"github.com/vishwapandiyan/Resume-screener/internal/core/domain"
	"github.com/vishwapandiyan/Resume-screener/internal/core/ports/driven"
)

// candidateDirectory resolves candidate details from indexed chunk metadata.
type candidateDirectory struct {
	store   driven.VectorStore
	timeout time.Duration
}

// lookup returns the contact details and first chunk of a candidate.
// Returns domain.ErrNotFound when the candidate has no chunks in the workspace.
func (d candidateDirectory) lookup(ctx context.Context, workspaceID, candidateID string) (domain.CandidateContact, *domain.Chunk, error) {
	if d.store == nil {
		return domain.CandidateContact{}, nil, domain.NewCapabilityError(domain.CapabilityVector, domain.ErrVectorIndexUnavailable)
	}

	storeCtx, cancel := withTimeout(ctx, d.timeout)
	defer cancel()
	chunks, err := d.store.Get(storeCtx, workspaceID, driven.ChunkFilter{CandidateID: candidateID, Limit: 1})
	if err != nil {
		return domain.CandidateContact{}, nil, domain.NewCapabilityError(domain.CapabilityVector, err)
	}
	if len(chunks) == 0 {
		return domain.CandidateContact{}, nil, fmt.Errorf("%w: candidate %s in workspace %s", domain.ErrNotFound, candidateID, workspaceID)
	}

	c := chunks[0]
	return contactFromMetadata(c.Metadata), &c, nil
}

func contactFromMetadata(m domain.ChunkMetadata) domain.CandidateContact {
	return domain.CandidateContact{
		ID:     m.CandidateID,
		Name:   m.CandidateName,
		Email:  m.Email,
		Skills: m.Skills,
	}
}
