package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shelflog/backend/internal/domain/report"
	"github.com/shelflog/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func getRedisClient(t *testing.T) *redis.Client {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}
	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(context.Background()).Err(); err != nil {
		t.Skipf("Redis not available: %v", err)
	}
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func sampleTrends() report.TrendSet {
	return report.TrendSet{
		EmptyData: []report.FrequencyEntry{{Name: "Milk", Count: 2}},
	}
}

func TestInMemoryRevisionStore(t *testing.T) {
	ctx := context.Background()
	store := NewInMemoryRevisionStoreAt(0)

	rev, err := store.Current(ctx, "events:store")
	require.NoError(t, err)
	assert.Equal(t, int64(0), rev)

	require.NoError(t, store.Bump(ctx, "events:store", "events:user:a"))
	require.NoError(t, store.Bump(ctx, "events:store"))

	rev, _ = store.Current(ctx, "events:store")
	assert.Equal(t, int64(2), rev)
	rev, _ = store.Current(ctx, "events:user:a")
	assert.Equal(t, int64(1), rev)
	rev, _ = store.Current(ctx, "events:user:b")
	assert.Equal(t, int64(0), rev)
}

func TestInMemoryRevisionStore_StartsAtEpoch(t *testing.T) {
	ctx := context.Background()
	store := NewInMemoryRevisionStoreAt(1000)

	rev, err := store.Current(ctx, "events:store")
	require.NoError(t, err)
	assert.Equal(t, int64(1000), rev)

	require.NoError(t, store.Bump(ctx, "events:store"))
	rev, _ = store.Current(ctx, "events:store")
	assert.Equal(t, int64(1001), rev)
}

func TestInMemoryRevisionStore_MonotonicAcrossRestart(t *testing.T) {
	ctx := context.Background()
	key := "events:user:a"

	before := NewInMemoryRevisionStore()
	require.NoError(t, before.Bump(ctx, key))
	require.NoError(t, before.Bump(ctx, key))
	held, err := before.Current(ctx, key)
	require.NoError(t, err)

	time.Sleep(time.Millisecond)

	// a fresh store stands in for the restarted process
	after := NewInMemoryRevisionStore()
	fresh, err := after.Current(ctx, key)
	require.NoError(t, err)
	assert.Greater(t, fresh, held)

	require.NoError(t, after.Bump(ctx, key))
	require.NoError(t, after.Bump(ctx, key))
	bumped, _ := after.Current(ctx, key)
	assert.Greater(t, bumped, held)
}

func TestRedisRevisionStore(t *testing.T) {
	client := getRedisClient(t)
	ctx := context.Background()
	store := NewRedisRevisionStore(client)
	key := "events:user:" + uuid.NewString()
	t.Cleanup(func() { client.Del(ctx, store.keyPrefix+key) })

	rev, err := store.Current(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, int64(0), rev)

	require.NoError(t, store.Bump(ctx, key))
	require.NoError(t, store.Bump(ctx, key))
	require.NoError(t, store.Bump(ctx))

	rev, err = store.Current(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, int64(2), rev)
}

func TestInMemoryTrendCache(t *testing.T) {
	ctx := context.Background()
	c := NewInMemoryTrendCache(time.Minute)
	now := time.Now()
	c.now = func() time.Time { return now }

	_, ok, err := c.Get(ctx, 1)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.Put(ctx, 1, sampleTrends()))
	got, ok, err := c.Get(ctx, 1)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "Milk", got.EmptyData[0].Name)

	t.Run("other revision misses", func(t *testing.T) {
		_, ok, _ := c.Get(ctx, 2)
		assert.False(t, ok)
	})

	t.Run("older revision does not overwrite", func(t *testing.T) {
		require.NoError(t, c.Put(ctx, 0, report.TrendSet{}))
		_, ok, _ := c.Get(ctx, 1)
		assert.True(t, ok)
	})

	t.Run("expires after ttl", func(t *testing.T) {
		now = now.Add(2 * time.Minute)
		_, ok, _ := c.Get(ctx, 1)
		assert.False(t, ok)
	})
}

func TestRedisTrendCache(t *testing.T) {
	client := getRedisClient(t)
	ctx := context.Background()
	c := NewRedisTrendCache(client, time.Minute)
	c.keyPrefix = "shelflog:test:" + uuid.NewString() + ":"
	t.Cleanup(func() { client.Del(ctx, c.key(7)) })

	_, ok, err := c.Get(ctx, 7)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.Put(ctx, 7, sampleTrends()))
	got, ok, err := c.Get(ctx, 7)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 2, got.EmptyData[0].Count)

	ttl, err := client.TTL(ctx, c.key(7)).Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))
}

func TestInMemoryIdempotencyStore(t *testing.T) {
	ctx := context.Background()
	s := NewInMemoryIdempotencyStore()
	now := time.Now()
	s.now = func() time.Time { return now }

	ok, err := s.Claim(ctx, "k1", time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, _ = s.Claim(ctx, "k1", time.Minute)
	assert.False(t, ok)

	require.NoError(t, s.Release(ctx, "k1"))
	ok, _ = s.Claim(ctx, "k1", time.Minute)
	assert.True(t, ok)

	now = now.Add(2 * time.Minute)
	ok, _ = s.Claim(ctx, "k1", time.Minute)
	assert.True(t, ok, "expired claims are reusable")
}

func TestRedisIdempotencyStore(t *testing.T) {
	client := getRedisClient(t)
	ctx := context.Background()
	s := NewRedisIdempotencyStore(client)
	key := uuid.NewString()
	t.Cleanup(func() { _ = s.Release(ctx, key) })

	ok, err := s.Claim(ctx, key, time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = s.Claim(ctx, key, time.Minute)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Release(ctx, key))
	ok, _ = s.Claim(ctx, key, time.Minute)
	assert.True(t, ok)
}

func TestNewStores(t *testing.T) {
	ctx := context.Background()

	t.Run("disabled redis uses memory", func(t *testing.T) {
		cfg := &config.Config{Report: config.ReportConfig{CacheTTL: time.Minute}}
		stores, err := NewStores(ctx, cfg, zap.NewNop())
		require.NoError(t, err)
		assert.False(t, stores.Distributed())
		assert.NoError(t, stores.Ping(ctx))
		assert.NoError(t, stores.Close())
	})

	t.Run("unreachable redis falls back outside production", func(t *testing.T) {
		cfg := &config.Config{
			App:   config.AppConfig{Env: "development"},
			Redis: config.RedisConfig{Enabled: true, Host: "127.0.0.1", Port: 1},
		}
		stores, err := NewStores(ctx, cfg, zap.NewNop())
		require.NoError(t, err)
		assert.False(t, stores.Distributed())
	})

	t.Run("unreachable redis fails in production", func(t *testing.T) {
		cfg := &config.Config{
			App:   config.AppConfig{Env: "production"},
			Redis: config.RedisConfig{Enabled: true, Host: "127.0.0.1", Port: 1},
		}
		_, err := NewStores(ctx, cfg, zap.NewNop())
		require.Error(t, err)
	})
}
