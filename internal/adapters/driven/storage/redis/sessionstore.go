// Package redis provides a Redis-backed session store, letting several
// server processes share conversation memory.
package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/vishwapandiyan/Resume-screener/internal/core/domain"
	"github.com/vishwapandiyan/Resume-screener/internal/core/ports/driven"
)

// Ensure SessionStore implements the interface.
var _ driven.SessionStore = (*SessionStore)(nil)

const (
	keyPrefix = "screener:session:"
	indexKey  = "screener:sessions"
)

// SessionStore keeps each session as a Redis list of JSON turns.
// A sorted set scored by last activity drives LRU eviction and pruning;
// list keys also carry the TTL so Redis expires idle sessions on its own.
type SessionStore struct {
	rdb    *redis.Client
	policy domain.SessionPolicy
	now    func() time.Time
}

// NewClient connects to addr, which is either a redis:// URL or host:port,
// and checks the connection.
func NewClient(ctx context.Context, addr string) (*redis.Client, error) {
	var rdb *redis.Client
	if strings.HasPrefix(addr, "redis://") || strings.HasPrefix(addr, "rediss://") {
		opt, err := redis.ParseURL(addr)
		if err != nil {
			return nil, fmt.Errorf("parse redis URL: %w", err)
		}
		rdb = redis.NewClient(opt)
	} else {
		rdb = redis.NewClient(&redis.Options{Addr: addr})
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("connect to redis: %w", err)
	}
	return rdb, nil
}

// NewSessionStore wraps a connected client.
func NewSessionStore(rdb *redis.Client, policy domain.SessionPolicy) *SessionStore {
	return &SessionStore{rdb: rdb, policy: policy, now: time.Now}
}

// Append adds a turn and enforces the turn and session caps.
func (s *SessionStore) Append(ctx context.Context, key domain.SessionKey, turn domain.Turn) error {
	now := s.now()
	if turn.At.IsZero() {
		turn.At = now
	}
	data, err := json.Marshal(turn)
	if err != nil {
		return fmt.Errorf("marshal turn: %w", err)
	}

	k := keyPrefix + key.String()
	member := key.String()

	// An index entry older than the TTL means the list already expired.
	if s.policy.TTL > 0 {
		score, err := s.rdb.ZScore(ctx, indexKey, member).Result()
		if err == nil && now.Sub(time.Unix(0, int64(score))) > s.policy.TTL {
			if err := s.rdb.Del(ctx, k).Err(); err != nil {
				return fmt.Errorf("drop expired session: %w", err)
			}
		}
	}

	_, err = s.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.RPush(ctx, k, data)
		if s.policy.MaxTurns > 0 {
			pipe.LTrim(ctx, k, int64(-s.policy.MaxTurns), -1)
		}
		if s.policy.TTL > 0 {
			pipe.Expire(ctx, k, s.policy.TTL)
		}
		pipe.ZAdd(ctx, indexKey, redis.Z{Score: float64(now.UnixNano()), Member: member})
		return nil
	})
	if err != nil {
		return fmt.Errorf("append turn: %w", err)
	}

	if s.policy.MaxSessions > 0 {
		return s.evict(ctx)
	}
	return nil
}

// Turns returns the session's turns in append order.
func (s *SessionStore) Turns(ctx context.Context, key domain.SessionKey) ([]domain.Turn, error) {
	raw, err := s.rdb.LRange(ctx, keyPrefix+key.String(), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("read turns: %w", err)
	}

	turns := make([]domain.Turn, 0, len(raw))
	for _, r := range raw {
		var t domain.Turn
		if err := json.Unmarshal([]byte(r), &t); err != nil {
			return nil, fmt.Errorf("decode turn: %w", err)
		}
		turns = append(turns, t)
	}
	return turns, nil
}

// Delete removes a session.
func (s *SessionStore) Delete(ctx context.Context, key domain.SessionKey) error {
	_, err := s.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, keyPrefix+key.String())
		pipe.ZRem(ctx, indexKey, key.String())
		return nil
	})
	if err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// Prune removes sessions idle for longer than the TTL from the index and
// deletes any list Redis has not yet expired.
func (s *SessionStore) Prune(ctx context.Context) (int, error) {
	if s.policy.TTL <= 0 {
		return 0, nil
	}
	cutoff := s.now().Add(-s.policy.TTL).UnixNano()
	members, err := s.rdb.ZRangeByScore(ctx, indexKey, &redis.ZRangeBy{
		Min: "-inf",
		Max: "(" + strconv.FormatInt(cutoff, 10),
	}).Result()
	if err != nil {
		return 0, fmt.Errorf("list idle sessions: %w", err)
	}
	if err := s.remove(ctx, members); err != nil {
		return 0, err
	}
	return len(members), nil
}

// Close closes the client.
func (s *SessionStore) Close() error {
	return s.rdb.Close()
}

// evict drops the least recently active sessions beyond MaxSessions.
func (s *SessionStore) evict(ctx context.Context) error {
	n, err := s.rdb.ZCard(ctx, indexKey).Result()
	if err != nil {
		return fmt.Errorf("count sessions: %w", err)
	}
	excess := n - int64(s.policy.MaxSessions)
	if excess <= 0 {
		return nil
	}
	members, err := s.rdb.ZRange(ctx, indexKey, 0, excess-1).Result()
	if err != nil {
		return fmt.Errorf("list sessions: %w", err)
	}
	return s.remove(ctx, members)
}

func (s *SessionStore) remove(ctx context.Context, members []string) error {
	if len(members) == 0 {
		return nil
	}
	keys := make([]string, len(members))
	zmembers := make([]any, len(members))
	for i, m := range members {
		keys[i] = keyPrefix + m
		zmembers[i] = m
	}
	_, err := s.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, keys...)
		pipe.ZRem(ctx, indexKey, zmembers...)
		return nil
	})
	if err != nil {
		return fmt.Errorf("remove sessions: %w", err)
	}
	return nil
}
