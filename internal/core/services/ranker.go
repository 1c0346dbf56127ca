package services

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/vishwapandiyan/Resume-screener/internal/core/domain"
	"github.com/vishwapandiyan/Resume-screener/internal/core/ports/driven"
	"github.com/vishwapandiyan/Resume-screener/internal/logger"
)

// Ranker retrieves résumé passages for a question by fusing vector
// similarity with lexical overlap across every query expansion.
type Ranker struct {
	embedder driven.EmbeddingService
	store    driven.VectorStore
	expander *QueryExpander
	timeouts domain.Timeouts
}

// NewRanker creates a ranker.
func NewRanker(
	embedder driven.EmbeddingService,
	store driven.VectorStore,
	expander *QueryExpander,
	timeouts domain.Timeouts,
) *Ranker {
	return &Ranker{
		embedder: embedder,
		store:    store,
		expander: expander,
		timeouts: timeouts,
	}
}

// Rank returns at most K passages ordered by descending fused score, with no
// repeated chunk ID. Each expansion is queried scoped to the candidate first;
// while nothing has been found the search widens to the whole workspace and
// then to chunks containing the first query term.
func (r *Ranker) Rank(ctx context.Context, workspaceID, query string, opts domain.RetrieveOptions) ([]domain.RetrievalCandidate, error) {
	logger.Section("Retrieval")

	k := opts.K
	if k <= 0 {
		k = domain.DefaultTopK
	}
	widened := max(k, domain.WidenedTopK)

	expansions := r.expander.Expand(ctx, query)
	terms := queryTerms(expansions.Queries)
	logger.Debug("Expansions (%s): %q, terms: %d", expansions.Source, expansions.Queries, len(terms))

	vectors, err := r.embedAll(ctx, expansions.Queries)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrRetrievalFailed, err)
	}

	var results []domain.RetrievalCandidate
	for i, vec := range vectors {
		matches, err := r.query(ctx, workspaceID, driven.VectorQuery{Embedding: vec, K: k, CandidateID: opts.CandidateID})
		if err != nil {
			return nil, fmt.Errorf("%w: %w", domain.ErrRetrievalFailed, err)
		}
		results = append(results, score(matches, terms)...)

		if len(results) == 0 {
			logger.Debug("Expansion %d: no scoped results, widening to workspace", i)
			matches, err = r.query(ctx, workspaceID, driven.VectorQuery{Embedding: vec, K: widened})
			if err != nil {
				return nil, fmt.Errorf("%w: %w", domain.ErrRetrievalFailed, err)
			}
			results = append(results, score(matches, terms)...)
		}

		if len(results) == 0 && len(terms) > 0 {
			logger.Debug("Expansion %d: falling back to chunks containing %q", i, terms[0])
			matches, err = r.query(ctx, workspaceID, driven.VectorQuery{Embedding: vec, K: widened, Contains: terms[0]})
			if err != nil {
				logger.Debug("Contains fallback failed: %v", err)
				continue
			}
			results = append(results, score(matches, terms)...)
		}
	}

	ranked := fuse(results, k)
	logger.Info("Retrieved %d passages", len(ranked))
	return ranked, nil
}

// embedAll embeds the expansions concurrently. Results keep expansion order.
func (r *Ranker) embedAll(ctx context.Context, queries []string) ([][]float32, error) {
	if r.embedder == nil {
		return nil, domain.NewCapabilityError(domain.CapabilityEmbedding, domain.ErrEmbeddingUnavailable)
	}

	vectors := make([][]float32, len(queries))
	g, gctx := errgroup.WithContext(ctx)
	for i, q := range queries {
		g.Go(func() error {
			embedCtx, cancel := withTimeout(gctx, r.timeouts.Embedding)
			defer cancel()
			vec, err := r.embedder.Embed(embedCtx, q)
			if err != nil {
				return domain.NewCapabilityError(domain.CapabilityEmbedding, err)
			}
			vectors[i] = vec
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return vectors, nil
}

func (r *Ranker) query(ctx context.Context, workspaceID string, q driven.VectorQuery) ([]driven.VectorMatch, error) {
	if r.store == nil {
		return nil, domain.NewCapabilityError(domain.CapabilityVector, domain.ErrVectorIndexUnavailable)
	}
	storeCtx, cancel := withTimeout(ctx, r.timeouts.Vector)
	defer cancel()
	matches, err := r.store.Query(storeCtx, workspaceID, q)
	if err != nil {
		return nil, domain.NewCapabilityError(domain.CapabilityVector, err)
	}
	return matches, nil
}

// score converts vector matches into scored candidates.
func score(matches []driven.VectorMatch, terms []string) []domain.RetrievalCandidate {
	out := make([]domain.RetrievalCandidate, 0, len(matches))
	for _, m := range matches {
		sim := 1.0 / (1.0 + m.Distance)
		lex := lexicalScore(m.Chunk.Text, terms)
		out = append(out, domain.RetrievalCandidate{
			ChunkID:            m.Chunk.ID,
			Text:               m.Chunk.Text,
			Metadata:           m.Chunk.Metadata,
			SemanticSimilarity: sim,
			LexicalScore:       lex,
			FusedScore:         domain.SemanticWeight*sim + domain.LexicalWeight*lex,
		})
	}
	return out
}

// lexicalScore is the fraction of query terms occurring as substrings of text.
func lexicalScore(text string, terms []string) float64 {
	lower := strings.ToLower(text)
	hits := 0
	for _, t := range terms {
		if t != "" && strings.Contains(lower, t) {
			hits++
		}
	}
	return float64(hits) / math.Max(1, float64(len(terms)))
}

// fuse keeps the best score per chunk ID, sorts by fused score descending
// (ties keep first-seen order) and returns the top k with rounded scores.
func fuse(results []domain.RetrievalCandidate, k int) []domain.RetrievalCandidate {
	index := make(map[string]int, len(results))
	unique := make([]domain.RetrievalCandidate, 0, len(results))
	for _, c := range results {
		if i, ok := index[c.ChunkID]; ok {
			if c.FusedScore > unique[i].FusedScore {
				unique[i] = c
			}
			continue
		}
		index[c.ChunkID] = len(unique)
		unique = append(unique, c)
	}

	sort.SliceStable(unique, func(i, j int) bool {
		return unique[i].FusedScore > unique[j].FusedScore
	})

	if len(unique) > k {
		unique = unique[:k]
	}
	for i := range unique {
		unique[i].SemanticSimilarity = round4(unique[i].SemanticSimilarity)
		unique[i].LexicalScore = round4(unique[i].LexicalScore)
		unique[i].FusedScore = round4(unique[i].FusedScore)
	}
	return unique
}

func round4(v float64) float64 {
	return math.Round(v*1e4) / 1e4
}
