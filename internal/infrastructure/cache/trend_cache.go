package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shelflog/backend/internal/domain/report"
)

// InMemoryTrendCache keeps the most recent trend set only. Older revisions are
// dropped as soon as a newer one is stored.
type InMemoryTrendCache struct {
	mu        sync.RWMutex
	revision  int64
	set       *report.TrendSet
	expiresAt time.Time
	ttl       time.Duration
	now       func() time.Time
}

// NewInMemoryTrendCache creates a cache whose entries live for ttl
func NewInMemoryTrendCache(ttl time.Duration) *InMemoryTrendCache {
	return &InMemoryTrendCache{ttl: ttl, now: time.Now}
}

// Get implements report.TrendCache
func (c *InMemoryTrendCache) Get(_ context.Context, revision int64) (*report.TrendSet, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.set == nil || c.revision != revision || c.now().After(c.expiresAt) {
		return nil, false, nil
	}
	set := *c.set
	return &set, true, nil
}

// Put implements report.TrendCache. A put for an older revision is ignored.
func (c *InMemoryTrendCache) Put(_ context.Context, revision int64, set report.TrendSet) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.set != nil && revision < c.revision {
		return nil
	}
	c.revision = revision
	c.set = &set
	c.expiresAt = c.now().Add(c.ttl)
	return nil
}

// RedisTrendCache stores JSON-encoded trend sets per revision
type RedisTrendCache struct {
	client    redis.UniversalClient
	keyPrefix string
	ttl       time.Duration
}

// NewRedisTrendCache creates a trend cache on an existing client
func NewRedisTrendCache(client redis.UniversalClient, ttl time.Duration) *RedisTrendCache {
	return &RedisTrendCache{client: client, keyPrefix: "shelflog:trends:", ttl: ttl}
}

func (c *RedisTrendCache) key(revision int64) string {
	return c.keyPrefix + strconv.FormatInt(revision, 10)
}

// Get implements report.TrendCache
func (c *RedisTrendCache) Get(ctx context.Context, revision int64) (*report.TrendSet, bool, error) {
	data, err := c.client.Get(ctx, c.key(revision)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read trend cache: %w", err)
	}

	var set report.TrendSet
	if err := json.Unmarshal(data, &set); err != nil {
		return nil, false, fmt.Errorf("failed to decode cached trends: %w", err)
	}
	return &set, true, nil
}

// Put implements report.TrendCache
func (c *RedisTrendCache) Put(ctx context.Context, revision int64, set report.TrendSet) error {
	data, err := json.Marshal(set)
	if err != nil {
		return fmt.Errorf("failed to encode trends: %w", err)
	}
	if err := c.client.Set(ctx, c.key(revision), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write trend cache: %w", err)
	}
	return nil
}

var (
	_ report.TrendCache = (*InMemoryTrendCache)(nil)
	_ report.TrendCache = (*RedisTrendCache)(nil)
)
