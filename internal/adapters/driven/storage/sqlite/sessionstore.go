package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/vishwapandiyan/Resume-screener/internal/core/domain"
	"github.com/vishwapandiyan/Resume-screener/internal/core/ports/driven"
)

// sessionStore implements driven.SessionStore over the sessions and
// session_turns tables. Times are stored as Unix nanoseconds.
type sessionStore struct {
	store  *Store
	policy domain.SessionPolicy
	now    func() time.Time
}

var _ driven.SessionStore = (*sessionStore)(nil)

func newSessionStore(s *Store, policy domain.SessionPolicy) *sessionStore {
	return &sessionStore{store: s, policy: policy, now: time.Now}
}

// Append adds a turn. An expired session is dropped and started afresh.
func (s *sessionStore) Append(ctx context.Context, key domain.SessionKey, turn domain.Turn) error {
	tx, err := s.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin append: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	now := s.now()
	k := key.String()

	lastSeen, found, err := s.lastSeen(ctx, tx, k)
	if err != nil {
		return err
	}
	if found && s.expired(lastSeen, now) {
		if _, err := tx.ExecContext(ctx, `DELETE FROM sessions WHERE session_key = ?`, k); err != nil {
			return fmt.Errorf("drop expired session: %w", err)
		}
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO sessions (session_key, last_seen) VALUES (?, ?)
		ON CONFLICT(session_key) DO UPDATE SET last_seen = excluded.last_seen
	`, k, now.UnixNano()); err != nil {
		return fmt.Errorf("touch session: %w", err)
	}

	at := turn.At
	if at.IsZero() {
		at = now
	}
	if _, err := tx.ExecContext(ctx, `INSERT INTO session_turns (session_key, role, text, at) VALUES (?, ?, ?, ?)`,
		k, string(turn.Role), turn.Text, at.UnixNano()); err != nil {
		return fmt.Errorf("insert turn: %w", err)
	}

	if s.policy.MaxTurns > 0 {
		if _, err := tx.ExecContext(ctx, `
			DELETE FROM session_turns WHERE session_key = ? AND seq NOT IN (
				SELECT seq FROM session_turns WHERE session_key = ? ORDER BY seq DESC LIMIT ?
			)
		`, k, k, s.policy.MaxTurns); err != nil {
			return fmt.Errorf("trim turns: %w", err)
		}
	}

	if s.policy.MaxSessions > 0 {
		// Evict least recently used sessions beyond the cap.
		if _, err := tx.ExecContext(ctx, `
			DELETE FROM sessions WHERE session_key NOT IN (
				SELECT session_key FROM sessions ORDER BY last_seen DESC, session_key LIMIT ?
			)
		`, s.policy.MaxSessions); err != nil {
			return fmt.Errorf("evict sessions: %w", err)
		}
	}

	return tx.Commit()
}

// Turns returns the session's turns in append order.
func (s *sessionStore) Turns(ctx context.Context, key domain.SessionKey) ([]domain.Turn, error) {
	k := key.String()

	lastSeen, found, err := s.lastSeen(ctx, s.store.db, k)
	if err != nil {
		return nil, err
	}
	if !found {
		return []domain.Turn{}, nil
	}
	if s.expired(lastSeen, s.now()) {
		if err := s.Delete(ctx, key); err != nil {
			return nil, err
		}
		return []domain.Turn{}, nil
	}

	rows, err := s.store.db.QueryContext(ctx,
		`SELECT role, text, at FROM session_turns WHERE session_key = ? ORDER BY seq`, k)
	if err != nil {
		return nil, fmt.Errorf("query turns: %w", err)
	}
	defer rows.Close()

	turns := []domain.Turn{}
	for rows.Next() {
		var (
			role, text string
			at         int64
		)
		if err := rows.Scan(&role, &text, &at); err != nil {
			return nil, fmt.Errorf("scan turn: %w", err)
		}
		turns = append(turns, domain.Turn{Role: domain.Role(role), Text: text, At: time.Unix(0, at).UTC()})
	}
	return turns, rows.Err()
}

// Delete removes a session and its turns.
func (s *sessionStore) Delete(ctx context.Context, key domain.SessionKey) error {
	if _, err := s.store.db.ExecContext(ctx, `DELETE FROM sessions WHERE session_key = ?`, key.String()); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// Prune removes every session idle for longer than the TTL.
func (s *sessionStore) Prune(ctx context.Context) (int, error) {
	if s.policy.TTL <= 0 {
		return 0, nil
	}
	cutoff := s.now().Add(-s.policy.TTL).UnixNano()
	res, err := s.store.db.ExecContext(ctx, `DELETE FROM sessions WHERE last_seen < ?`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("prune sessions: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("prune sessions: %w", err)
	}
	return int(n), nil
}

// Close is a no-op; the owning Store closes the database.
func (s *sessionStore) Close() error {
	return nil
}

type queryRower interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func (s *sessionStore) lastSeen(ctx context.Context, q queryRower, key string) (time.Time, bool, error) {
	var ns int64
	err := q.QueryRowContext(ctx, `SELECT last_seen FROM sessions WHERE session_key = ?`, key).Scan(&ns)
	if errors.Is(err, sql.ErrNoRows) {
		return time.Time{}, false, nil
	}
	if err != nil {
		return time.Time{}, false, fmt.Errorf("read session: %w", err)
	}
	return time.Unix(0, ns), true, nil
}

func (s *sessionStore) expired(lastSeen, now time.Time) bool {
	return s.policy.TTL > 0 && now.Sub(lastSeen) > s.policy.TTL
}
