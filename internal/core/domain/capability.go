package domain

import (
	"context"
	"errors"
	"fmt"
)

// Capability names an external collaborator the core calls out to.
type Capability string

// Capabilities consumed by the core.
const (
	CapabilityEmbedding Capability = "embedding"
	CapabilityLLM       Capability = "llm"
	CapabilityVector    Capability = "vector_index"
	CapabilityCalendar  Capability = "calendar"
	CapabilityEmail     Capability = "email"
)

// FailureKind classifies why a capability call produced no value.
type FailureKind string

// Failure kinds.
const (
	// FailureUnavailable means the capability is not configured or short-circuited.
	FailureUnavailable FailureKind = "unavailable"

	// FailureTimeout means the bounded call deadline expired.
	FailureTimeout FailureKind = "timeout"

	// FailureMalformed means the capability answered with unusable output.
	FailureMalformed FailureKind = "malformed"

	// FailureFailed covers every other error returned by the capability.
	FailureFailed FailureKind = "failed"
)

// CapabilityError is the error half of a capability call result.
// Components branch on Kind to pick their fallback path.
type CapabilityError struct {
	Capability Capability
	Kind       FailureKind
	Err        error
}

// NewCapabilityError wraps err for the given capability.
// Deadline and cancellation errors are classified as timeouts, and the
// unavailable sentinels as FailureUnavailable.
func NewCapabilityError(c Capability, err error) *CapabilityError {
	return &CapabilityError{Capability: c, Kind: classify(err), Err: err}
}

// Malformed builds a CapabilityError for unusable capability output.
func Malformed(c Capability, format string, args ...any) *CapabilityError {
	return &CapabilityError{Capability: c, Kind: FailureMalformed, Err: fmt.Errorf(format, args...)}
}

func (e *CapabilityError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Capability, e.Kind)
	}
	return fmt.Sprintf("%s: %s: %v", e.Capability, e.Kind, e.Err)
}

// Unwrap returns the underlying error.
func (e *CapabilityError) Unwrap() error {
	return e.Err
}

// KindOf returns the failure kind of err, or FailureFailed when err
// is not a CapabilityError.
func KindOf(err error) FailureKind {
	var ce *CapabilityError
	if errors.As(err, &ce) {
		return ce.Kind
	}
	return classify(err)
}

func classify(err error) FailureKind {
	switch {
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return FailureTimeout
	case errors.Is(err, ErrLLMUnavailable),
		errors.Is(err, ErrEmbeddingUnavailable),
		errors.Is(err, ErrVectorIndexUnavailable),
		errors.Is(err, ErrCalendarUnavailable),
		errors.Is(err, ErrEmailUnavailable),
		errors.Is(err, ErrCircuitOpen):
		return FailureUnavailable
	default:
		return FailureFailed
	}
}
