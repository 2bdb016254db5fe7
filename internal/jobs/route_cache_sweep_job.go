package jobs

import (
	"context"
	"log/slog"

	"github.com/robfig/cron/v3"
)

// RouteCacheSweeper evicts expired routing cache entries and reports how
// many were removed. Implemented by the OSRM client.
type RouteCacheSweeper interface {
	SweepRouteCache() int
}

// RouteCacheSweepJob periodically drops expired matrix cache entries so the
// cache does not grow with every distinct coordinate set seen since startup.
// Entries are also evicted lazily on lookup; the sweep reclaims the rest.
type RouteCacheSweepJob struct {
	sweeper RouteCacheSweeper
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewRouteCacheSweepJob creates a job sweeping the given cache every minute.
func NewRouteCacheSweepJob(sweeper RouteCacheSweeper, logger *slog.Logger) *RouteCacheSweepJob {
	return &RouteCacheSweepJob{
		sweeper: sweeper,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "route_cache_sweep_job"),
	}
}

// Start begins the sweep job on a one-minute schedule.
func (j *RouteCacheSweepJob) Start() error {
	_, err := j.cron.AddFunc("0 * * * * *", func() {
		if removed := j.sweeper.SweepRouteCache(); removed > 0 {
			j.logger.InfoContext(context.Background(),
				"Expired route cache entries removed", "count", removed)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Route cache sweep job started (running every minute)")
	return nil
}

// Stop stops the sweep job.
func (j *RouteCacheSweepJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Route cache sweep job stopped")
}
