package redis

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vishwapandiyan/Resume-screener/internal/core/domain"
)

// newTestStore connects to SCREENER_TEST_REDIS (host:port or URL) and
// skips when it is unset. Each test runs on a flushed database.
func newTestStore(t *testing.T, policy domain.SessionPolicy) *SessionStore {
	t.Helper()
	addr := os.Getenv("SCREENER_TEST_REDIS")
	if addr == "" {
		t.Skip("SCREENER_TEST_REDIS not set")
	}
	rdb, err := NewClient(context.Background(), addr)
	require.NoError(t, err)
	require.NoError(t, rdb.FlushDB(context.Background()).Err())

	store := NewSessionStore(rdb, policy)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func key(conv string) domain.SessionKey {
	return domain.SessionKey{WorkspaceID: "ws", ConversationID: conv}
}

func TestNewClient_Unreachable(t *testing.T) {
	_, err := NewClient(context.Background(), "127.0.0.1:1")
	assert.Error(t, err)
}

func TestNewClient_BadURL(t *testing.T) {
	_, err := NewClient(context.Background(), "redis://:badport:x/")
	assert.Error(t, err)
}

func TestSessionStore_AppendTrimAndRead(t *testing.T) {
	store := newTestStore(t, domain.SessionPolicy{TTL: time.Hour, MaxTurns: 2})
	ctx := context.Background()

	for _, text := range []string{"one", "two", "three"} {
		require.NoError(t, store.Append(ctx, key("a"), domain.Turn{Role: domain.RoleUser, Text: text}))
	}

	turns, err := store.Turns(ctx, key("a"))
	require.NoError(t, err)
	require.Len(t, turns, 2)
	assert.Equal(t, "two", turns[0].Text)
	assert.Equal(t, "three", turns[1].Text)

	ttl, err := store.rdb.TTL(ctx, keyPrefix+key("a").String()).Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))
}

func TestSessionStore_EvictsAndPrunes(t *testing.T) {
	store := newTestStore(t, domain.SessionPolicy{TTL: time.Hour, MaxSessions: 2})
	ctx := context.Background()
	clock := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return clock }

	for i := range 3 {
		clock = clock.Add(time.Minute)
		require.NoError(t, store.Append(ctx, key(fmt.Sprintf("c%d", i)), domain.Turn{Role: domain.RoleUser, Text: "hi"}))
	}

	evicted, err := store.Turns(ctx, key("c0"))
	require.NoError(t, err)
	assert.Empty(t, evicted)

	clock = clock.Add(2 * time.Hour)
	removed, err := store.Prune(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, removed)
}
