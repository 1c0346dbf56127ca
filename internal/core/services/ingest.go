package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/vishwapandiyan/Resume-screener/internal/core/domain"
	"github.com/vishwapandiyan/Resume-screener/internal/core/ports/driven"
	"github.com/vishwapandiyan/Resume-screener/internal/core/ports/driving"
	"github.com/vishwapandiyan/Resume-screener/internal/logger"
)

// Ensure IngestService implements the interface.
var _ driving.IngestService = (*IngestService)(nil)

// sampleSnippetCount is the number of chunk texts returned by Stats.
const sampleSnippetCount = 2

// IngestService chunks candidate résumés and writes them to the vector store.
type IngestService struct {
	pipeline driven.PostProcessorPipeline
	embedder driven.EmbeddingService
	store    driven.VectorStore
	timeouts domain.Timeouts
}

// NewIngestService creates a new ingest service.
// The embedder may be nil, in which case every ingestion fails.
func NewIngestService(
	pipeline driven.PostProcessorPipeline,
	embedder driven.EmbeddingService,
	store driven.VectorStore,
	timeouts domain.Timeouts,
) *IngestService {
	return &IngestService{
		pipeline: pipeline,
		embedder: embedder,
		store:    store,
		timeouts: timeouts,
	}
}

// Ingest chunks every indexable candidate, embeds all chunks in one batch
// and upserts them into the workspace collection.
// Candidates without an ID or text are skipped. Writes are not rolled back
// when a later step fails; re-running the same input converges.
func (s *IngestService) Ingest(ctx context.Context, workspaceID string, candidates []domain.Candidate) (int, error) {
	logger.Section("Ingest")

	workspaceID = strings.TrimSpace(workspaceID)
	if workspaceID == "" {
		return 0, fmt.Errorf("%w: workspace_id is required", domain.ErrInvalidInput)
	}
	if len(candidates) == 0 {
		return 0, fmt.Errorf("%w: at least one resume is required", domain.ErrInvalidInput)
	}

	var chunks []domain.Chunk
	for i := range candidates {
		c := candidates[i]
		if !c.Indexable() {
			logger.Debug("Skipping candidate %d: missing id or text", i)
			continue
		}
		produced, err := s.pipeline.Process(ctx, workspaceID, &c)
		if err != nil {
			return 0, fmt.Errorf("%w: chunk %s: %w", domain.ErrIngestionFailed, c.ID, err)
		}
		logger.Debug("Candidate %s: %d chunks", c.ID, len(produced))
		chunks = append(chunks, produced...)
	}

	if len(chunks) == 0 {
		logger.Info("Nothing to ingest for workspace %s", workspaceID)
		return 0, nil
	}

	if err := s.embed(ctx, chunks); err != nil {
		return 0, err
	}

	storeCtx, cancel := withTimeout(ctx, s.timeouts.Vector)
	defer cancel()
	if err := s.store.Upsert(storeCtx, workspaceID, chunks); err != nil {
		return 0, fmt.Errorf("%w: %w", domain.ErrIngestionFailed,
			domain.NewCapabilityError(domain.CapabilityVector, err))
	}

	logger.Info("Ingested %d chunks into %s", len(chunks), domain.CollectionName(workspaceID))
	return len(chunks), nil
}

// embed sets the embedding of every chunk with a single batched call.
func (s *IngestService) embed(ctx context.Context, chunks []domain.Chunk) error {
	if s.embedder == nil {
		return fmt.Errorf("%w: %w", domain.ErrIngestionFailed,
			domain.NewCapabilityError(domain.CapabilityEmbedding, domain.ErrEmbeddingUnavailable))
	}

	texts := make([]string, len(chunks))
	for i, c := range chunks {
		texts[i] = c.Text
	}

	embedCtx, cancel := withTimeout(ctx, s.timeouts.Embedding)
	defer cancel()
	vectors, err := s.embedder.EmbedBatch(embedCtx, texts)
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrIngestionFailed,
			domain.NewCapabilityError(domain.CapabilityEmbedding, err))
	}
	if len(vectors) != len(chunks) {
		return fmt.Errorf("%w: %w", domain.ErrIngestionFailed,
			domain.Malformed(domain.CapabilityEmbedding, "expected %d embeddings, got %d", len(chunks), len(vectors)))
	}

	for i := range chunks {
		chunks[i].Embedding = vectors[i]
	}
	return nil
}

// Stats reports the number of stored chunks and up to two sample texts.
func (s *IngestService) Stats(ctx context.Context, workspaceID, candidateID string) (*domain.WorkspaceStats, error) {
	workspaceID = strings.TrimSpace(workspaceID)
	if workspaceID == "" {
		return nil, fmt.Errorf("%w: workspace_id is required", domain.ErrInvalidInput)
	}
	candidateID = strings.TrimSpace(candidateID)

	storeCtx, cancel := withTimeout(ctx, s.timeouts.Vector)
	defer cancel()

	filter := driven.ChunkFilter{CandidateID: candidateID}
	count, err := s.store.Count(storeCtx, workspaceID, filter)
	if err != nil {
		return nil, domain.NewCapabilityError(domain.CapabilityVector, err)
	}

	filter.Limit = sampleSnippetCount
	sample, err := s.store.Get(storeCtx, workspaceID, filter)
	if err != nil {
		return nil, domain.NewCapabilityError(domain.CapabilityVector, err)
	}

	snippets := make([]string, 0, len(sample))
	for _, c := range sample {
		snippets = append(snippets, c.Text)
	}

	return &domain.WorkspaceStats{
		WorkspaceID:    workspaceID,
		CandidateID:    candidateID,
		ChunksCount:    count,
		SampleSnippets: snippets,
	}, nil
}
