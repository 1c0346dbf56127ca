// Package annotate assigns chunk identity and candidate metadata.
package annotate

import (
	"context"

	"github.com/vishwapandiyan/Resume-screener/internal/core/domain"
)

// Processor numbers chunks in order and copies candidate metadata onto them.
// It must run after any processor that drops chunks so indices stay dense.
type Processor struct{}

// New creates an annotate processor.
func New() *Processor {
	return &Processor{}
}

// Name returns the processor name.
func (p *Processor) Name() string {
	return "annotate"
}

// Process sets ID, Index, CandidateID and Metadata on every chunk.
func (p *Processor) Process(_ context.Context, candidate *domain.Candidate, chunks []domain.Chunk) ([]domain.Chunk, error) {
	out := make([]domain.Chunk, len(chunks))
	for i, c := range chunks {
		c.Index = i
		c.CandidateID = candidate.ID
		c.ID = domain.ChunkID(candidate.ID, i)
		c.Metadata = domain.MetadataFor(*candidate, i)
		out[i] = c
	}
	return out, nil
}
