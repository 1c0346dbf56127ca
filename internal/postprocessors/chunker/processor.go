// Package chunker provides a fixed-size text chunking processor.
package chunker

import (
	"context"
	"strings"

	"github.com/vishwapandiyan/Resume-screener/internal/core/domain"
)

// DefaultChunkSize is the default number of runes per chunk.
const DefaultChunkSize = 800

// DefaultChunkOverlap is the default number of overlapping runes.
const DefaultChunkOverlap = 120

// Processor splits candidate text into fixed-size overlapping windows.
// Sizes are counted in runes after whitespace normalisation.
// It implements the PostProcessor interface.
type Processor struct {
	chunkSize int
	overlap   int
}

// Option configures the chunker processor.
type Option func(*Processor)

// WithChunkSize sets the chunk size in runes.
func WithChunkSize(size int) Option {
	return func(p *Processor) {
		if size > 0 {
			p.chunkSize = size
		}
	}
}

// WithOverlap sets the overlap between chunks in runes.
func WithOverlap(overlap int) Option {
	return func(p *Processor) {
		if overlap >= 0 {
			p.overlap = overlap
		}
	}
}

// New creates a new chunker processor with the given options.
func New(opts ...Option) *Processor {
	p := &Processor{
		chunkSize: DefaultChunkSize,
		overlap:   DefaultChunkOverlap,
	}

	for _, opt := range opts {
		opt(p)
	}

	// Ensure overlap doesn't exceed chunk size
	if p.overlap >= p.chunkSize {
		p.overlap = p.chunkSize / 4
	}

	return p
}

// Name returns the processor name.
func (p *Processor) Name() string {
	return "chunker"
}

// Process splits the candidate text into chunks.
// Input chunks are ignored; this processor creates new chunks from the text.
func (p *Processor) Process(_ context.Context, candidate *domain.Candidate, _ []domain.Chunk) ([]domain.Chunk, error) {
	windows := Split(candidate.Text, p.chunkSize, p.overlap)
	if len(windows) == 0 {
		return nil, nil
	}

	chunks := make([]domain.Chunk, 0, len(windows))
	for _, w := range windows {
		chunks = append(chunks, domain.Chunk{
			CandidateID: candidate.ID,
			Text:        w.Text,
			Offset:      w.Offset,
		})
	}

	return chunks, nil
}

// Window is one chunk of normalised text and its rune offset.
type Window struct {
	Text   string
	Offset int
}

// Split normalises whitespace and cuts text into windows of size runes,
// each starting overlap runes before the previous one ended.
// The final window ends exactly at the end of the text.
func Split(text string, size, overlap int) []Window {
	runes := []rune(Normalise(text))
	n := len(runes)
	if n == 0 || size <= 0 {
		return nil
	}
	if overlap >= size || overlap < 0 {
		overlap = size / 4
	}

	windows := make([]Window, 0, n/(size-overlap)+1)
	start := 0
	for {
		end := min(start+size, n)
		windows = append(windows, Window{Text: string(runes[start:end]), Offset: start})
		if end == n {
			break
		}
		start = end - overlap
	}

	return windows
}

// Normalise collapses every run of whitespace to a single space and trims the ends.
func Normalise(text string) string {
	return strings.Join(strings.Fields(text), " ")
}
