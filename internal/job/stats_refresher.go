// Package job provides background job schedulers.
package job

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"video-catalog-service/internal/app/service"
	"video-catalog-service/pkg/locker"
)

// lockKey guards stats refreshes across instances: the refreshed stats
// land in the shared cache, so one instance doing the scan is enough.
const lockKey = "video-catalog:stats-refresh"

// StatsRefresher periodically recomputes dataset statistics so requests
// hit a warm cache instead of paying for the sampling scan.
type StatsRefresher struct {
	statsService *service.StatsService
	interval     time.Duration
	timeout      time.Duration
	logger       *zap.Logger
	locker       locker.DistributedLocker

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// RefreshConfig holds stats refresher configuration.
type RefreshConfig struct {
	Interval  time.Duration
	Timeout   time.Duration
	OnStartup bool
}

// NewStatsRefresher creates a stats refresher with distributed locking
// support.
func NewStatsRefresher(
	statsSvc *service.StatsService,
	cfg RefreshConfig,
	logger *zap.Logger,
	locker locker.DistributedLocker,
) *StatsRefresher {
	return &StatsRefresher{
		statsService: statsSvc,
		interval:     cfg.Interval,
		timeout:      cfg.Timeout,
		logger:       logger,
		locker:       locker,
	}
}

// Start begins the background refresh job.
func (s *StatsRefresher) Start(runOnStartup bool) {
	s.ctx, s.cancel = context.WithCancel(context.Background())

	s.logger.Info("starting stats refresher",
		zap.Duration("interval", s.interval),
		zap.Bool("run_on_startup", runOnStartup),
	)

	s.wg.Add(1)
	go s.run(runOnStartup)
}

// Stop gracefully stops the refresher.
func (s *StatsRefresher) Stop() {
	if s.cancel == nil {
		return
	}
	s.logger.Info("stopping stats refresher")
	s.cancel()
	s.wg.Wait()
	s.logger.Info("stats refresher stopped")
}

// run is the main loop of the refresher.
func (s *StatsRefresher) run(runOnStartup bool) {
	defer s.wg.Done()

	if runOnStartup {
		s.refresh()
	}

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.ctx.Done():
			return
		case <-ticker.C:
			s.refresh()
		}
	}
}

// refresh recomputes stats once, under the distributed lock.
func (s *StatsRefresher) refresh() {
	ctx, cancel := context.WithTimeout(s.ctx, s.timeout)
	defer cancel()

	acquired, err := s.locker.Acquire(ctx, lockKey, s.timeout)
	if err != nil {
		s.logger.Warn("stats refresh lock error", zap.Error(err))
		return
	}
	if !acquired {
		s.logger.Debug("stats refresh skipped, another instance holds the lock")
		return
	}
	defer func() { _ = s.locker.Release(ctx, lockKey) }()

	if _, err := s.statsService.Refresh(ctx); err != nil {
		s.logger.Error("scheduled stats refresh failed", zap.Error(err))
	}
}
