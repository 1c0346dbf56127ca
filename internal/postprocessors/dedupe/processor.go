// Package dedupe drops chunks that repeat an earlier chunk of the same résumé.
package dedupe

import (
	"context"

	"github.com/vishwapandiyan/Resume-screener/internal/core/domain"
)

// DefaultPrefixLength is the number of leading runes compared.
const DefaultPrefixLength = 200

// Processor removes chunks whose prefix equals the prefix of a chunk already kept.
// Order of the kept chunks is preserved.
type Processor struct {
	prefixLength int
}

// New creates a dedupe processor comparing prefixLength runes.
func New(prefixLength int) *Processor {
	if prefixLength <= 0 {
		prefixLength = DefaultPrefixLength
	}
	return &Processor{prefixLength: prefixLength}
}

// Name returns the processor name.
func (p *Processor) Name() string {
	return "dedupe"
}

// Process filters the incoming chunks.
func (p *Processor) Process(_ context.Context, _ *domain.Candidate, chunks []domain.Chunk) ([]domain.Chunk, error) {
	if len(chunks) == 0 {
		return chunks, nil
	}

	seen := make(map[string]struct{}, len(chunks))
	kept := make([]domain.Chunk, 0, len(chunks))
	for _, c := range chunks {
		key := prefix(c.Text, p.prefixLength)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		kept = append(kept, c)
	}

	return kept, nil
}

func prefix(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
