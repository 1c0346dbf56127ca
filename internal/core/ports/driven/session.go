package driven

import (
	"context"

	"github.com/vishwapandiyan/Resume-screener/internal/core/domain"
)

// SessionStore persists conversation turns.
// Implementations enforce the SessionPolicy they are constructed with.
type SessionStore interface {
	// Append adds a turn to the end of the session, creating it if needed.
	Append(ctx context.Context, key domain.SessionKey, turn domain.Turn) error

	// Turns returns the session's turns in append order.
	// A missing or expired session yields an empty slice.
	Turns(ctx context.Context, key domain.SessionKey) ([]domain.Turn, error)

	// Delete removes a session.
	Delete(ctx context.Context, key domain.SessionKey) error

	// Prune removes expired sessions and returns how many were removed.
	Prune(ctx context.Context) (int, error)

	// Close releases resources.
	Close() error
}
