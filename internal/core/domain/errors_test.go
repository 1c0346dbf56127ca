package domain

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestErrors_Existence tests that all error variables exist and are not nil
func TestErrors_Existence(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"ErrNotFound", ErrNotFound},
		{"ErrInvalidInput", ErrInvalidInput},
		{"ErrLLMUnavailable", ErrLLMUnavailable},
		{"ErrEmbeddingUnavailable", ErrEmbeddingUnavailable},
		{"ErrVectorIndexUnavailable", ErrVectorIndexUnavailable},
		{"ErrCalendarUnavailable", ErrCalendarUnavailable},
		{"ErrEmailUnavailable", ErrEmailUnavailable},
		{"ErrRetrievalFailed", ErrRetrievalFailed},
		{"ErrIngestionFailed", ErrIngestionFailed},
		{"ErrNoSlots", ErrNoSlots},
		{"ErrRateLimited", ErrRateLimited},
		{"ErrCircuitOpen", ErrCircuitOpen},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotNil(t, tt.err)
			assert.NotEmpty(t, tt.err.Error())
		})
	}
}

func TestErrNoSlots_Message(t *testing.T) {
	assert.Equal(t, "no slots", ErrNoSlots.Error())
}

func TestErrors_Wrapped(t *testing.T) {
	wrapped := fmt.Errorf("ingest cand-1: %w", ErrIngestionFailed)

	assert.True(t, errors.Is(wrapped, ErrIngestionFailed))
	assert.False(t, errors.Is(wrapped, ErrRetrievalFailed))
}

func TestNewCapabilityError_Classification(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected FailureKind
	}{
		{"deadline is timeout", context.DeadlineExceeded, FailureTimeout},
		{"wrapped deadline is timeout", fmt.Errorf("call: %w", context.DeadlineExceeded), FailureTimeout},
		{"canceled is timeout", context.Canceled, FailureTimeout},
		{"llm unavailable", ErrLLMUnavailable, FailureUnavailable},
		{"calendar unavailable", ErrCalendarUnavailable, FailureUnavailable},
		{"circuit open", ErrCircuitOpen, FailureUnavailable},
		{"other error", errors.New("boom"), FailureFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ce := NewCapabilityError(CapabilityLLM, tt.err)
			assert.Equal(t, tt.expected, ce.Kind)
			assert.Equal(t, CapabilityLLM, ce.Capability)
			assert.True(t, errors.Is(ce, tt.err))
		})
	}
}

func TestMalformed(t *testing.T) {
	err := Malformed(CapabilityLLM, "empty completion for %q", "q")

	assert.Equal(t, FailureMalformed, err.Kind)
	assert.Contains(t, err.Error(), "llm: malformed")
	assert.Contains(t, err.Error(), `"q"`)
}

func TestKindOf(t *testing.T) {
	wrapped := fmt.Errorf("expand: %w", NewCapabilityError(CapabilityEmbedding, errors.New("bad gateway")))
	assert.Equal(t, FailureFailed, KindOf(wrapped))

	var ce *CapabilityError
	require.True(t, errors.As(wrapped, &ce))
	assert.Equal(t, CapabilityEmbedding, ce.Capability)

	assert.Equal(t, FailureTimeout, KindOf(context.DeadlineExceeded))
	assert.Equal(t, FailureUnavailable, KindOf(ErrEmailUnavailable))
}

func TestCapabilityError_NilCause(t *testing.T) {
	err := &CapabilityError{Capability: CapabilityEmail, Kind: FailureUnavailable}
	assert.Equal(t, "email: unavailable", err.Error())
	assert.Nil(t, err.Unwrap())
}
