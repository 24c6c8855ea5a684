package service

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/sunrise-rp/admin-api/internal/domain/model"
	apperrors "github.com/sunrise-rp/admin-api/internal/errors"
	"github.com/sunrise-rp/admin-api/internal/ports"
)

const statsCacheKey = "stats:server"

// StatsServiceOptions groups dependencies for StatsService.
type StatsServiceOptions struct {
	Stats    ports.StatsReader // Required: aggregate queries
	Cache    ports.Cache       // Optional: result cache
	CacheTTL time.Duration     // Cache entry lifetime when Cache is set
	Logger   *slog.Logger      // Optional: structured logger
}

// StatsService serves the dashboard aggregates, fronted by a short-lived
// cache so polling clients do not hammer the database.
type StatsService struct {
	stats    ports.StatsReader
	cache    ports.Cache
	cacheTTL time.Duration
	logger   *slog.Logger
}

// NewStatsService constructs a new StatsService.
func NewStatsService(opts StatsServiceOptions) *StatsService {
	return &StatsService{
		stats:    opts.Stats,
		cache:    opts.Cache,
		cacheTTL: opts.CacheTTL,
		logger:   opts.Logger,
	}
}

// ServerStats returns the aggregate counters, from cache when fresh.
// Cache failures degrade to a direct query; they are logged, never fatal.
func (s *StatsService) ServerStats(ctx context.Context) (*model.ServerStats, error) {
	if cached := s.fromCache(ctx); cached != nil {
		return cached, nil
	}

	stats, err := s.stats.ServerStats(ctx)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeInternal, "aggregate server stats")
	}

	s.toCache(ctx, stats)
	return stats, nil
}

func (s *StatsService) fromCache(ctx context.Context) *model.ServerStats {
	if s.cache == nil {
		return nil
	}

	data, err := s.cache.Get(ctx, statsCacheKey)
	if err != nil {
		if s.logger != nil {
			s.logger.WarnContext(ctx, "stats cache read failed", "error", err)
		}
		return nil
	}
	if data == nil {
		return nil
	}

	var stats model.ServerStats
	if err := json.Unmarshal(data, &stats); err != nil {
		if s.logger != nil {
			s.logger.WarnContext(ctx, "stats cache entry corrupt, ignoring", "error", err)
		}
		return nil
	}
	return &stats
}

func (s *StatsService) toCache(ctx context.Context, stats *model.ServerStats) {
	if s.cache == nil || s.cacheTTL <= 0 {
		return
	}

	data, err := json.Marshal(stats)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, statsCacheKey, data, s.cacheTTL); err != nil {
		if s.logger != nil {
			s.logger.WarnContext(ctx, "stats cache write failed", "error", err)
		}
	}
}
