package service

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sunrise-rp/admin-api/internal/domain/model"
	apperrors "github.com/sunrise-rp/admin-api/internal/errors"
)

// countingStatsReader tracks how often the aggregate query runs.
type countingStatsReader struct {
	mu    sync.Mutex
	calls int
	stats *model.ServerStats
	err   error
}

func (r *countingStatsReader) ServerStats(context.Context) (*model.ServerStats, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	if r.err != nil {
		return nil, r.err
	}
	cp := *r.stats
	return &cp, nil
}

func (r *countingStatsReader) callCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.calls
}

// mapCache is a tiny ports.Cache for unit tests.
type mapCache struct {
	mu      sync.Mutex
	entries map[string][]byte
	err     error
}

func newMapCache() *mapCache {
	return &mapCache{entries: make(map[string][]byte)}
}

func (c *mapCache) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return c.err
	}
	c.entries[key] = value
	return nil
}

func (c *mapCache) Get(_ context.Context, key string) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return nil, c.err
	}
	return c.entries[key], nil
}

func (c *mapCache) Delete(_ context.Context, key string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.entries[key]
	delete(c.entries, key)
	return ok, nil
}

func (c *mapCache) Health(context.Context) error { return nil }

func sampleStats() *model.ServerStats {
	return &model.ServerStats{PlayersCount: 42, TotalCash: 1000, TotalBank: 2500}
}

func TestStatsService_CachesAggregates(t *testing.T) {
	reader := &countingStatsReader{stats: sampleStats()}
	cache := newMapCache()
	service := NewStatsService(StatsServiceOptions{
		Stats:    reader,
		Cache:    cache,
		CacheTTL: time.Minute,
	})
	ctx := context.Background()

	first, err := service.ServerStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, sampleStats(), first)

	second, err := service.ServerStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	// Second call must come from cache.
	assert.Equal(t, 1, reader.callCount())
}

func TestStatsService_NoCacheConfigured(t *testing.T) {
	reader := &countingStatsReader{stats: sampleStats()}
	service := NewStatsService(StatsServiceOptions{Stats: reader})
	ctx := context.Background()

	_, err := service.ServerStats(ctx)
	require.NoError(t, err)
	_, err = service.ServerStats(ctx)
	require.NoError(t, err)

	assert.Equal(t, 2, reader.callCount())
}

func TestStatsService_CacheFailureDegradesToQuery(t *testing.T) {
	reader := &countingStatsReader{stats: sampleStats()}
	cache := newMapCache()
	cache.err = errors.New("redis down")
	service := NewStatsService(StatsServiceOptions{
		Stats:    reader,
		Cache:    cache,
		CacheTTL: time.Minute,
	})

	stats, err := service.ServerStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, sampleStats(), stats)
	assert.Equal(t, 1, reader.callCount())
}

func TestStatsService_CorruptCacheEntryIgnored(t *testing.T) {
	reader := &countingStatsReader{stats: sampleStats()}
	cache := newMapCache()
	require.NoError(t, cache.Set(context.Background(), statsCacheKey, []byte("{not json"), time.Minute))

	service := NewStatsService(StatsServiceOptions{
		Stats:    reader,
		Cache:    cache,
		CacheTTL: time.Minute,
	})

	stats, err := service.ServerStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, sampleStats(), stats)

	// The corrupt entry was overwritten with a good one.
	data, getErr := cache.Get(context.Background(), statsCacheKey)
	require.NoError(t, getErr)
	var cached model.ServerStats
	require.NoError(t, json.Unmarshal(data, &cached))
	assert.Equal(t, *sampleStats(), cached)
}

func TestStatsService_QueryFailureIsInternal(t *testing.T) {
	reader := &countingStatsReader{err: errors.New("connection refused")}
	service := NewStatsService(StatsServiceOptions{Stats: reader})

	_, err := service.ServerStats(context.Background())
	require.Error(t, err)
	assert.True(t, apperrors.IsInternal(err))
}
