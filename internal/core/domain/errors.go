package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	// Requests failing validation have no side effects.
	ErrInvalidInput = errors.New("invalid input")

	// ErrLLMUnavailable indicates the LLM service is not configured.
	// Query expansion and answer synthesis fall back to deterministic output.
	ErrLLMUnavailable = errors.New("LLM service unavailable")

	// ErrEmbeddingUnavailable indicates the embedding service is not configured.
	// Ingestion and retrieval cannot run without embeddings.
	ErrEmbeddingUnavailable = errors.New("embedding service unavailable")

	// ErrVectorIndexUnavailable indicates the vector store is not configured.
	ErrVectorIndexUnavailable = errors.New("vector index unavailable")

	// ErrCalendarUnavailable indicates the calendar service is not configured.
	ErrCalendarUnavailable = errors.New("calendar service unavailable")

	// ErrEmailUnavailable indicates no email transport is configured.
	// Invitations can still be rendered for manual sending.
	ErrEmailUnavailable = errors.New("email transport unavailable")

	// ErrRetrievalFailed indicates the embedding or index capability failed
	// while ranking. An empty ranking is not a failure.
	ErrRetrievalFailed = errors.New("retrieval failed")

	// ErrIngestionFailed indicates an embedding or store failure during ingestion.
	// Writes made before the failure are not rolled back.
	ErrIngestionFailed = errors.New("ingestion failed")

	// ErrNoSlots indicates no free interview slot was found.
	ErrNoSlots = errors.New("no slots")

	// ErrRateLimited indicates an API rate limit was exceeded.
	ErrRateLimited = errors.New("rate limited")

	// ErrCircuitOpen indicates a capability is short-circuited after repeated failures.
	ErrCircuitOpen = errors.New("circuit open")
)
