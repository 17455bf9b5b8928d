// Package service provides application use cases.
package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"video-catalog-service/internal/domain"
	"video-catalog-service/internal/infra/resultcache"
	"video-catalog-service/internal/infra/store"
)

// QueryService executes catalog queries: filter, sort and paginate over
// the current snapshot, with the filtered+sorted list memoized per
// query signature.
type QueryService struct {
	store  *store.Store
	cache  *resultcache.Cache
	group  singleflight.Group
	logger *zap.Logger
}

// NewQueryService creates a new QueryService.
func NewQueryService(st *store.Store, cache *resultcache.Cache, logger *zap.Logger) *QueryService {
	return &QueryService{
		store:  st,
		cache:  cache,
		logger: logger,
	}
}

// Query runs a catalog query. It waits for the first snapshot load
// within the bounds of ctx; after that the snapshot is read-only and
// the work is pure computation.
func (s *QueryService) Query(ctx context.Context, q domain.Query) (*domain.QueryResult, error) {
	q.Validate()

	snap, err := s.store.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	records, err := s.filteredSorted(snap, q)
	if err != nil {
		return nil, err
	}

	result := domain.NewQueryResult(records, q)

	s.logger.Debug("query completed",
		zap.String("signature", q.Signature()),
		zap.Int("total", result.Total),
		zap.Int("page", result.Page),
	)

	return result, nil
}

// GetByVideoID returns the record with the given derived video ID, or
// nil when no record matches.
func (s *QueryService) GetByVideoID(ctx context.Context, id string) (*domain.Record, error) {
	snap, err := s.store.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	record, ok := snap.ByVideoID(id)
	if !ok {
		return nil, nil
	}
	return &record, nil
}

// Reload rebuilds the snapshot from the backing file. The new dataset
// version makes all previously cached result lists unreachable.
func (s *QueryService) Reload(ctx context.Context) (uint64, int, error) {
	snap, err := s.store.Reload(ctx)
	if err != nil {
		return 0, 0, err
	}
	return snap.Version, len(snap.Records), nil
}

// filteredSorted returns the full filtered+sorted record list for the
// query, from cache when possible. Concurrent misses on the same key
// coalesce into one computation.
func (s *QueryService) filteredSorted(snap *store.Snapshot, q domain.Query) ([]domain.Record, error) {
	key := resultcache.Key(snap.Version, q.Signature())

	if records, ok := s.cache.Get(key); ok {
		return records, nil
	}

	v, err, _ := s.group.Do(key, func() (interface{}, error) {
		if records, ok := s.cache.Get(key); ok {
			return records, nil
		}

		records := domain.Filter(snap.Records, q)
		domain.Sort(records, q.SortBy, q.SortOrder)

		s.cache.Add(key, records)

		return records, nil
	})
	if err != nil {
		return nil, fmt.Errorf("executing query: %w", err)
	}

	return v.([]domain.Record), nil
}
