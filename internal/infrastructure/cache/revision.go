package cache

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shelflog/backend/internal/domain/feed"
)

// InMemoryRevisionStore keeps revisions in process. Every scope starts at
// the store's epoch rather than zero, so a restarted process never hands out
// a revision a client may still hold from before the restart.
type InMemoryRevisionStore struct {
	mu        sync.RWMutex
	revisions map[string]int64
	epoch     int64
}

// NewInMemoryRevisionStore creates a revision store whose scopes start at
// the current time in nanoseconds
func NewInMemoryRevisionStore() *InMemoryRevisionStore {
	return NewInMemoryRevisionStoreAt(time.Now().UnixNano())
}

// NewInMemoryRevisionStoreAt creates a revision store whose scopes start at epoch
func NewInMemoryRevisionStoreAt(epoch int64) *InMemoryRevisionStore {
	return &InMemoryRevisionStore{revisions: make(map[string]int64), epoch: epoch}
}

// Current implements feed.RevisionStore
func (s *InMemoryRevisionStore) Current(_ context.Context, key string) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if rev, ok := s.revisions[key]; ok {
		return rev, nil
	}
	return s.epoch, nil
}

// Bump implements feed.RevisionStore. All keys move under one lock.
func (s *InMemoryRevisionStore) Bump(_ context.Context, keys ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, k := range keys {
		rev, ok := s.revisions[k]
		if !ok {
			rev = s.epoch
		}
		s.revisions[k] = rev + 1
	}
	return nil
}

// RedisRevisionStore shares revisions across instances with INCR
type RedisRevisionStore struct {
	client    redis.UniversalClient
	keyPrefix string
}

// NewRedisRevisionStore creates a revision store on an existing client
func NewRedisRevisionStore(client redis.UniversalClient) *RedisRevisionStore {
	return &RedisRevisionStore{client: client, keyPrefix: "shelflog:rev:"}
}

// Current implements feed.RevisionStore
func (s *RedisRevisionStore) Current(ctx context.Context, key string) (int64, error) {
	rev, err := s.client.Get(ctx, s.keyPrefix+key).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read revision %s: %w", key, err)
	}
	return rev, nil
}

// Bump implements feed.RevisionStore. Keys are incremented in one MULTI/EXEC.
func (s *RedisRevisionStore) Bump(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, k := range keys {
			pipe.Incr(ctx, s.keyPrefix+k)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to bump revisions: %w", err)
	}
	return nil
}

var (
	_ feed.RevisionStore = (*InMemoryRevisionStore)(nil)
	_ feed.RevisionStore = (*RedisRevisionStore)(nil)
)
