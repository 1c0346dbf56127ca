package memory

import (
	"container/list"
	"context"
	"sync"
	"time"

	"github.com/vishwapandiyan/Resume-screener/internal/core/domain"
	"github.com/vishwapandiyan/Resume-screener/internal/core/ports/driven"
)

// Ensure SessionStore implements the interface.
var _ driven.SessionStore = (*SessionStore)(nil)

// SessionStore keeps conversation turns in memory.
// Sessions expire TTL after their last append and the least recently used
// session is evicted once MaxSessions is exceeded.
type SessionStore struct {
	mu       sync.Mutex
	policy   domain.SessionPolicy
	sessions map[string]*list.Element
	lru      *list.List
	now      func() time.Time
}

type session struct {
	key      string
	turns    []domain.Turn
	lastSeen time.Time
}

// NewSessionStore creates a new in-memory session store.
// Non-positive policy fields disable the corresponding bound.
func NewSessionStore(policy domain.SessionPolicy) *SessionStore {
	return &SessionStore{
		policy:   policy,
		sessions: make(map[string]*list.Element),
		lru:      list.New(),
		now:      time.Now,
	}
}

// Append adds a turn, creating the session if needed.
func (s *SessionStore) Append(_ context.Context, key domain.SessionKey, turn domain.Turn) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	k := key.String()
	el, ok := s.sessions[k]
	if ok && s.expired(el.Value.(*session), now) {
		s.remove(el)
		ok = false
	}
	if !ok {
		el = s.lru.PushFront(&session{key: k})
		s.sessions[k] = el
	}

	sess := el.Value.(*session)
	sess.turns = append(sess.turns, turn)
	if s.policy.MaxTurns > 0 && len(sess.turns) > s.policy.MaxTurns {
		sess.turns = append([]domain.Turn(nil), sess.turns[len(sess.turns)-s.policy.MaxTurns:]...)
	}
	sess.lastSeen = now
	s.lru.MoveToFront(el)

	for s.policy.MaxSessions > 0 && s.lru.Len() > s.policy.MaxSessions {
		s.remove(s.lru.Back())
	}
	return nil
}

// Turns returns a copy of the session turns.
func (s *SessionStore) Turns(_ context.Context, key domain.SessionKey) ([]domain.Turn, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	el, ok := s.sessions[key.String()]
	if !ok {
		return []domain.Turn{}, nil
	}
	sess := el.Value.(*session)
	if s.expired(sess, s.now()) {
		s.remove(el)
		return []domain.Turn{}, nil
	}
	out := make([]domain.Turn, len(sess.turns))
	copy(out, sess.turns)
	return out, nil
}

// Delete removes a session.
func (s *SessionStore) Delete(_ context.Context, key domain.SessionKey) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if el, ok := s.sessions[key.String()]; ok {
		s.remove(el)
	}
	return nil
}

// Prune removes every expired session.
func (s *SessionStore) Prune(_ context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	removed := 0
	for el := s.lru.Back(); el != nil; {
		prev := el.Prev()
		if s.expired(el.Value.(*session), now) {
			s.remove(el)
			removed++
		}
		el = prev
	}
	return removed, nil
}

// Len returns the number of live sessions, expired ones included until pruned.
func (s *SessionStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lru.Len()
}

// Close is a no-op for the in-memory store.
func (s *SessionStore) Close() error {
	return nil
}

func (s *SessionStore) expired(sess *session, now time.Time) bool {
	return s.policy.TTL > 0 && now.Sub(sess.lastSeen) > s.policy.TTL
}

func (s *SessionStore) remove(el *list.Element) {
	s.lru.Remove(el)
	delete(s.sessions, el.Value.(*session).key)
}
