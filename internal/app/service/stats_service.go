package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"video-catalog-service/internal/domain"
	"video-catalog-service/internal/infra/flatfile"
	"video-catalog-service/internal/infra/store"
)

// StatsService computes dataset-wide statistics via the stride sampler,
// optionally fronted by a shared cache so the scan is not repeated on
// every request (or every instance).
type StatsService struct {
	sampler  *flatfile.Sampler
	store    *store.Store
	path     string
	cache    domain.Cache // nil when caching is disabled
	cacheTTL time.Duration
	logger   *zap.Logger
}

// NewStatsService creates a new StatsService. cache may be nil.
func NewStatsService(
	sampler *flatfile.Sampler,
	st *store.Store,
	path string,
	cache domain.Cache,
	cacheTTL time.Duration,
	logger *zap.Logger,
) *StatsService {
	return &StatsService{
		sampler:  sampler,
		store:    st,
		path:     path,
		cache:    cache,
		cacheTTL: cacheTTL,
		logger:   logger,
	}
}

// Stats returns dataset statistics, served from the shared cache when a
// fresh entry exists for the current dataset version.
func (s *StatsService) Stats(ctx context.Context) (*domain.DatabaseStats, error) {
	key, err := s.cacheKey(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if data, err := s.cache.Get(ctx, key); err == nil && data != nil {
			var stats domain.DatabaseStats
			if err := json.Unmarshal(data, &stats); err == nil {
				return &stats, nil
			}
			s.logger.Warn("discarding undecodable cached stats", zap.String("key", key))
		}
	}

	return s.Refresh(ctx)
}

// FilterOptions returns the distinct filter values, derived from Stats.
func (s *StatsService) FilterOptions(ctx context.Context) (*domain.FilterOptions, error) {
	stats, err := s.Stats(ctx)
	if err != nil {
		return nil, err
	}

	opts := stats.Options()

	return &opts, nil
}

// Refresh recomputes statistics from the backing file and, when caching
// is enabled, stores them under the current dataset version.
func (s *StatsService) Refresh(ctx context.Context) (*domain.DatabaseStats, error) {
	start := time.Now()

	stats, err := s.sampler.Stats(ctx, s.path)
	if err != nil {
		return nil, fmt.Errorf("computing stats: %w", err)
	}

	s.logger.Info("stats refreshed",
		zap.Int("total_videos", stats.TotalVideos),
		zap.Bool("approximate", stats.Approximate),
		zap.Duration("duration", time.Since(start)),
	)

	if s.cache != nil {
		key, err := s.cacheKey(ctx)
		if err != nil {
			return nil, err
		}
		data, err := json.Marshal(stats)
		if err != nil {
			return nil, fmt.Errorf("encoding stats: %w", err)
		}
		if err := s.cache.Set(ctx, key, data, s.cacheTTL); err != nil {
			// Serving fresh stats matters more than caching them.
			s.logger.Warn("stats cache write failed", zap.Error(err))
		}
	}

	return stats, nil
}

// cacheKey stamps the cache key with the dataset version so a reload
// naturally invalidates cached stats.
func (s *StatsService) cacheKey(ctx context.Context) (string, error) {
	snap, err := s.store.Snapshot(ctx)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("stats:v%d", snap.Version), nil
}
