// Package store holds the in-memory catalog as a versioned immutable
// snapshot behind a readiness gate.
package store

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"video-catalog-service/internal/domain"
	"video-catalog-service/internal/infra/flatfile"
)

// Snapshot is one fully-built, immutable view of the catalog. Once
// published it is never mutated; concurrent readers need no locking.
type Snapshot struct {
	Version    uint64
	Records    []domain.Record
	TotalLines int
	FileSize   int64
	LoadedAt   time.Time

	byVideoID map[string]int
}

// ByVideoID returns the record with the given derived video ID.
func (s *Snapshot) ByVideoID(id string) (domain.Record, bool) {
	idx, ok := s.byVideoID[id]
	if !ok {
		return domain.Record{}, false
	}
	return s.Records[idx], true
}

// Store owns the current snapshot. The first load runs once, in the
// background; concurrent reloads coalesce into a single in-flight build
// and the result is swapped in atomically, so in-flight readers always
// see a consistent view.
type Store struct {
	loader *flatfile.Loader
	path   string
	logger *zap.Logger

	current atomic.Pointer[Snapshot]
	version atomic.Uint64
	group   singleflight.Group
	ready   chan struct{}
}

// New creates an unloaded store. Call Start or Reload to populate it.
func New(loader *flatfile.Loader, path string, logger *zap.Logger) *Store {
	return &Store{
		loader: loader,
		path:   path,
		logger: logger,
		ready:  make(chan struct{}),
	}
}

// Start kicks off the initial load in the background so it never blocks
// request-serving work. Queries arriving before it completes wait on
// the readiness gate.
func (s *Store) Start(ctx context.Context) {
	go func() {
		if _, err := s.Reload(ctx); err != nil {
			s.logger.Error("initial catalog load failed", zap.Error(err))
		}
	}()
}

// Ready reports whether the first load has completed. A missing dump
// file still counts as loaded: the absence of data is a normal state.
func (s *Store) Ready() bool {
	select {
	case <-s.ready:
		return true
	default:
		return false
	}
}

// Snapshot returns the current snapshot, waiting for the first load to
// complete. When ctx expires first it returns domain.ErrNotReady.
func (s *Store) Snapshot(ctx context.Context) (*Snapshot, error) {
	select {
	case <-s.ready:
		return s.current.Load(), nil
	default:
	}

	select {
	case <-s.ready:
		return s.current.Load(), nil
	case <-ctx.Done():
		return nil, fmt.Errorf("%w: %v", domain.ErrNotReady, ctx.Err())
	}
}

// Reload builds a new snapshot from the dump file and atomically swaps
// it in under the next version. Concurrent callers coalesce into one
// in-flight load and share its result.
func (s *Store) Reload(ctx context.Context) (*Snapshot, error) {
	v, err, _ := s.group.Do("reload", func() (interface{}, error) {
		return s.load(ctx)
	})
	if err != nil {
		return nil, err
	}
	return v.(*Snapshot), nil
}

func (s *Store) load(ctx context.Context) (*Snapshot, error) {
	start := time.Now()

	result, err := s.loader.Load(ctx, s.path)
	if err != nil {
		return nil, fmt.Errorf("loading catalog: %w", err)
	}

	snap := &Snapshot{
		Version:    s.version.Add(1),
		Records:    result.Records,
		TotalLines: result.TotalLines,
		FileSize:   result.FileSize,
		LoadedAt:   time.Now().UTC(),
		byVideoID:  make(map[string]int, len(result.Records)),
	}
	for i, r := range result.Records {
		if r.VideoID != "" {
			snap.byVideoID[r.VideoID] = i
		}
	}

	prev := s.current.Swap(snap)
	if prev == nil {
		close(s.ready)
	}

	s.logger.Info("catalog snapshot published",
		zap.Uint64("version", snap.Version),
		zap.Int("records", len(snap.Records)),
		zap.Duration("duration", time.Since(start)),
	)

	return snap, nil
}
