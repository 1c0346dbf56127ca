package services

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vishwapandiyan/Resume-screener/internal/adapters/driven/storage/memory"
	"github.com/vishwapandiyan/Resume-screener/internal/core/domain"
	"github.com/vishwapandiyan/Resume-screener/internal/core/ports/driven"
)

func newTestMemory() *SessionMemory {
	return NewSessionMemory(memory.NewSessionStore(domain.DefaultSessionPolicy()))
}

func TestSessionMemory_RecordAndHistory(t *testing.T) {
	mem := newTestMemory()
	ctx := context.Background()
	key := domain.SessionKey{WorkspaceID: "ws", ConversationID: "r1"}

	require.NoError(t, mem.RecordTurn(ctx, key, domain.RoleUser, "Does she know Go?"))
	require.NoError(t, mem.RecordTurn(ctx, key, domain.RoleAssistant, "Yes."))

	turns, err := mem.History(ctx, key)
	require.NoError(t, err)
	require.Len(t, turns, 2)
	assert.Equal(t, domain.RoleUser, turns[0].Role)
	assert.Equal(t, "Yes.", turns[1].Text)
	assert.False(t, turns[0].At.IsZero())

	other, err := mem.History(ctx, domain.SessionKey{WorkspaceID: "ws2", ConversationID: "r1"})
	require.NoError(t, err)
	assert.Empty(t, other)
}

func TestSessionMemory_RecordTurn_Validation(t *testing.T) {
	mem := newTestMemory()
	ctx := context.Background()

	err := mem.RecordTurn(ctx, domain.SessionKey{WorkspaceID: "ws"}, domain.RoleUser, "hi")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	err = mem.RecordTurn(ctx, domain.SessionKey{WorkspaceID: "ws", ConversationID: "c"}, domain.Role("system"), "hi")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSessionMemory_ConcurrentAppends(t *testing.T) {
	mem := newTestMemory()
	ctx := context.Background()
	keys := []domain.SessionKey{
		{WorkspaceID: "ws", ConversationID: "a"},
		{WorkspaceID: "ws", ConversationID: "b"},
	}

	var wg sync.WaitGroup
	for _, key := range keys {
		for i := 0; i < 50; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_ = mem.RecordTurn(ctx, key, domain.RoleUser, fmt.Sprintf("msg %d", i))
			}()
		}
	}
	wg.Wait()

	for _, key := range keys {
		turns, err := mem.History(ctx, key)
		require.NoError(t, err)
		assert.Len(t, turns, 50)
	}
	assert.Empty(t, mem.locks.locks)
}

func TestSessionMemory_Clear(t *testing.T) {
	mem := newTestMemory()
	ctx := context.Background()
	key := domain.SessionKey{WorkspaceID: "ws", ConversationID: "global"}
	require.NoError(t, mem.RecordTurn(ctx, key, domain.RoleUser, "hello"))

	require.NoError(t, mem.Clear(ctx, key))

	turns, err := mem.History(ctx, key)
	require.NoError(t, err)
	assert.Empty(t, turns)
}

// countingSessionStore counts Prune calls on top of a memory store.
type countingSessionStore struct {
	driven.SessionStore
	prunes atomic.Int32
}

func (s *countingSessionStore) Prune(ctx context.Context) (int, error) {
	s.prunes.Add(1)
	return s.SessionStore.Prune(ctx)
}

func TestSessionMemory_PruneEvery(t *testing.T) {
	store := &countingSessionStore{SessionStore: memory.NewSessionStore(domain.DefaultSessionPolicy())}
	mem := NewSessionMemory(store)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		mem.PruneEvery(5 * time.Millisecond)(ctx)
		close(done)
	}()

	assert.Eventually(t, func() bool { return store.prunes.Load() >= 2 }, time.Second, 5*time.Millisecond)
	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("prune task did not stop after cancel")
	}
}
