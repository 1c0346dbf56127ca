package services

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/vishwapandiyan/Resume-screener/internal/core/domain"
	"github.com/vishwapandiyan/Resume-screener/internal/core/ports/driven"
	"github.com/vishwapandiyan/Resume-screener/internal/logger"
)

// SessionMemory owns conversation sessions. Appends to one session are
// serialised; different sessions proceed in parallel. Bounds (TTL, session
// count, turns per session) are enforced by the backing store.
type SessionMemory struct {
	store driven.SessionStore
	locks keyedMutex
	now   func() time.Time
}

// NewSessionMemory creates a session memory over the given store.
func NewSessionMemory(store driven.SessionStore) *SessionMemory {
	return &SessionMemory{
		store: store,
		locks: keyedMutex{locks: make(map[string]*refMutex)},
		now:   time.Now,
	}
}

// RecordTurn appends a turn to the session identified by key.
func (m *SessionMemory) RecordTurn(ctx context.Context, key domain.SessionKey, role domain.Role, text string) error {
	if strings.TrimSpace(key.WorkspaceID) == "" || strings.TrimSpace(key.ConversationID) == "" {
		return fmt.Errorf("%w: session key requires workspace and conversation", domain.ErrInvalidInput)
	}
	if !role.IsValid() {
		return fmt.Errorf("%w: unknown role %q", domain.ErrInvalidInput, role)
	}

	unlock := m.locks.lock(key.String())
	defer unlock()

	return m.store.Append(ctx, key, domain.Turn{Role: role, Text: text, At: m.now().UTC()})
}

// History returns a copy of the session's turns in append order.
func (m *SessionMemory) History(ctx context.Context, key domain.SessionKey) ([]domain.Turn, error) {
	turns, err := m.store.Turns(ctx, key)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Turn, len(turns))
	copy(out, turns)
	return out, nil
}

// Clear deletes the session.
func (m *SessionMemory) Clear(ctx context.Context, key domain.SessionKey) error {
	unlock := m.locks.lock(key.String())
	defer unlock()
	return m.store.Delete(ctx, key)
}

// Prune removes expired sessions.
func (m *SessionMemory) Prune(ctx context.Context) (int, error) {
	return m.store.Prune(ctx)
}

// PruneEvery returns a task that prunes expired sessions every interval
// until its context is cancelled.
func (m *SessionMemory) PruneEvery(interval time.Duration) func(ctx context.Context) {
	return func(ctx context.Context) {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				n, err := m.Prune(ctx)
				if err != nil {
					logger.Warn("session prune: %v", err)
					continue
				}
				if n > 0 {
					logger.Debug("pruned %d expired sessions", n)
				}
			}
		}
	}
}

// keyedMutex hands out one mutex per key and forgets it once unused.
type keyedMutex struct {
	mu    sync.Mutex
	locks map[string]*refMutex
}

type refMutex struct {
	sync.Mutex
	refs int
}

func (k *keyedMutex) lock(key string) func() {
	k.mu.Lock()
	m, ok := k.locks[key]
	if !ok {
		m = &refMutex{}
		k.locks[key] = m
	}
	m.refs++
	k.mu.Unlock()

	m.Lock()
	return func() {
		m.Unlock()
		k.mu.Lock()
		m.refs--
		if m.refs == 0 {
			delete(k.locks, key)
		}
		k.mu.Unlock()
	}
}
