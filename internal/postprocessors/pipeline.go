// Package postprocessors turns a candidate's résumé text into chunks. A
// pipeline runs named stages in order: the chunker splits, later stages
// filter or annotate.
package postprocessors

import (
	"context"
	"errors"
	"fmt"

	"github.com/vishwapandiyan/Resume-screener/internal/core/domain"
	"github.com/vishwapandiyan/Resume-screener/internal/core/ports/driven"
)

var errNilCandidate = errors.New("candidate is nil")

type Pipeline struct {
	processors []driven.PostProcessor
}

func NewPipeline(processors ...driven.PostProcessor) *Pipeline {
	return &Pipeline{processors: processors}
}

// Process threads the chunk slice through every stage, starting from nil,
// and stamps the result with workspaceID. Cancellation is checked between
// stages.
func (p *Pipeline) Process(ctx context.Context, workspaceID string, candidate *domain.Candidate) ([]domain.Chunk, error) {
	if candidate == nil {
		return nil, errNilCandidate
	}

	var (
		chunks []domain.Chunk
		err    error
	)
	for _, stage := range p.processors {
		if err = ctx.Err(); err != nil {
			return nil, err
		}
		if chunks, err = stage.Process(ctx, candidate, chunks); err != nil {
			return nil, fmt.Errorf("processor %s: %w", stage.Name(), err)
		}
	}

	for i := range chunks {
		chunks[i].WorkspaceID = workspaceID
	}
	return chunks, nil
}

func (p *Pipeline) Add(processor driven.PostProcessor) {
	p.processors = append(p.processors, processor)
}

func (p *Pipeline) Len() int { return len(p.processors) }

// Names lists the stages in run order.
func (p *Pipeline) Names() []string {
	names := make([]string, 0, len(p.processors))
	for _, stage := range p.processors {
		names = append(names, stage.Name())
	}
	return names
}
