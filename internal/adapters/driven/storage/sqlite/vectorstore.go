package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/vishwapandiyan/Resume-screener/internal/adapters/driven/storage/vecmath"
	"github.com/vishwapandiyan/Resume-screener/internal/core/domain"
	"github.com/vishwapandiyan/Resume-screener/internal/core/ports/driven"
)

// vectorStore implements driven.VectorStore.
type vectorStore struct {
	store *Store
}

var _ driven.VectorStore = (*vectorStore)(nil)

const chunkColumns = `id, candidate_id, chunk_index, text, char_offset, metadata, embedding`

// Upsert writes chunks in one transaction, replacing rows with the same ID.
func (s *vectorStore) Upsert(ctx context.Context, workspaceID string, chunks []domain.Chunk) error {
	if len(chunks) == 0 {
		return nil
	}

	tx, err := s.store.db.BeginTx(ctx, nil)
	if err != nil {
		return unavailable("begin upsert", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO chunks (collection, id, candidate_id, chunk_index, text, text_folded, char_offset, metadata, embedding)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(collection, id) DO UPDATE SET
			candidate_id = excluded.candidate_id,
			chunk_index = excluded.chunk_index,
			text = excluded.text,
			text_folded = excluded.text_folded,
			char_offset = excluded.char_offset,
			metadata = excluded.metadata,
			embedding = excluded.embedding
	`)
	if err != nil {
		return unavailable("prepare upsert", err)
	}
	defer stmt.Close()

	collection := domain.CollectionName(workspaceID)
	for i := range chunks {
		c := &chunks[i]
		metadataJSON, err := json.Marshal(c.Metadata)
		if err != nil {
			return fmt.Errorf("marshalling metadata for %s: %w", c.ID, err)
		}
		if _, err := stmt.ExecContext(ctx, collection, c.ID, c.CandidateID, c.Index, c.Text,
			strings.ToLower(c.Text), c.Offset, string(metadataJSON), float32SliceToBytes(c.Embedding)); err != nil {
			return unavailable("upsert chunk "+c.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return unavailable("commit upsert", err)
	}
	return nil
}

// Query filters rows in SQL and ranks the survivors by squared L2 distance.
func (s *vectorStore) Query(ctx context.Context, workspaceID string, q driven.VectorQuery) ([]driven.VectorMatch, error) {
	query := `SELECT ` + chunkColumns + ` FROM chunks WHERE collection = ?`
	args := []any{domain.CollectionName(workspaceID)}
	if q.CandidateID != "" {
		query += ` AND candidate_id = ?`
		args = append(args, q.CandidateID)
	}
	if q.Contains != "" {
		query += ` AND instr(text_folded, ?) > 0`
		args = append(args, strings.ToLower(q.Contains))
	}

	chunks, err := s.queryChunks(ctx, workspaceID, query, args...)
	if err != nil {
		return nil, err
	}

	matches := make([]driven.VectorMatch, 0, len(chunks))
	for _, c := range chunks {
		matches = append(matches, driven.VectorMatch{Chunk: c, Distance: vecmath.SquaredL2(q.Embedding, c.Embedding)})
	}
	return vecmath.Nearest(matches, q.K), nil
}

// Get returns chunks matching the filter, ordered by ID.
func (s *vectorStore) Get(ctx context.Context, workspaceID string, filter driven.ChunkFilter) ([]domain.Chunk, error) {
	query := `SELECT ` + chunkColumns + ` FROM chunks WHERE collection = ?`
	args := []any{domain.CollectionName(workspaceID)}
	if filter.CandidateID != "" {
		query += ` AND candidate_id = ?`
		args = append(args, filter.CandidateID)
	}
	query += ` ORDER BY id`
	if filter.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, filter.Limit)
	}
	return s.queryChunks(ctx, workspaceID, query, args...)
}

// Count returns the number of chunks matching the filter.
func (s *vectorStore) Count(ctx context.Context, workspaceID string, filter driven.ChunkFilter) (int, error) {
	query := `SELECT COUNT(*) FROM chunks WHERE collection = ?`
	args := []any{domain.CollectionName(workspaceID)}
	if filter.CandidateID != "" {
		query += ` AND candidate_id = ?`
		args = append(args, filter.CandidateID)
	}

	var n int
	if err := s.store.db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, unavailable("count chunks", err)
	}
	return n, nil
}

// Close is a no-op; the owning Store closes the database.
func (s *vectorStore) Close() error {
	return nil
}

func (s *vectorStore) queryChunks(ctx context.Context, workspaceID, query string, args ...any) ([]domain.Chunk, error) {
	rows, err := s.store.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, unavailable("query chunks", err)
	}
	defer rows.Close()

	var chunks []domain.Chunk
	for rows.Next() {
		c, err := scanChunk(rows)
		if err != nil {
			return nil, err
		}
		c.WorkspaceID = workspaceID
		chunks = append(chunks, c)
	}
	if err := rows.Err(); err != nil {
		return nil, unavailable("iterate chunks", err)
	}
	return chunks, nil
}

func scanChunk(rows *sql.Rows) (domain.Chunk, error) {
	var (
		c            domain.Chunk
		metadataJSON string
		embedding    []byte
	)
	if err := rows.Scan(&c.ID, &c.CandidateID, &c.Index, &c.Text, &c.Offset, &metadataJSON, &embedding); err != nil {
		return domain.Chunk{}, unavailable("scan chunk", err)
	}
	if err := json.Unmarshal([]byte(metadataJSON), &c.Metadata); err != nil {
		return domain.Chunk{}, fmt.Errorf("unmarshalling metadata for %s: %w", c.ID, err)
	}
	c.Embedding = bytesToFloat32Slice(embedding)
	return c, nil
}
