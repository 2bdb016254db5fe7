package jobs

import (
	"context"
	"log/slog"
	"sync/atomic"

	"smartdelivery/internal/core/ports"

	"github.com/robfig/cron/v3"
)

// RoutingHealthJob probes the routing backend every 30 seconds and logs
// availability transitions. Planning keeps working either way through the
// haversine fallback; the log line tells operators which mode is active.
type RoutingHealthJob struct {
	estimator ports.RouteEstimator
	cron      *cron.Cron
	logger    *slog.Logger
	available atomic.Bool
	probed    atomic.Bool
}

// NewRoutingHealthJob creates a health probe for the given estimator.
func NewRoutingHealthJob(estimator ports.RouteEstimator, logger *slog.Logger) *RoutingHealthJob {
	return &RoutingHealthJob{
		estimator: estimator,
		cron:      cron.New(cron.WithSeconds()),
		logger:    logger.With("component", "routing_health_job"),
	}
}

// Start begins probing on a 30-second schedule.
func (j *RoutingHealthJob) Start() error {
	_, err := j.cron.AddFunc("*/30 * * * * *", func() {
		ctx := context.Background()
		available := j.estimator.IsAvailable(ctx)

		first := !j.probed.Swap(true)
		changed := j.available.Swap(available) != available

		if !first && !changed {
			return
		}
		if available {
			j.logger.InfoContext(ctx, "Routing backend is available")
		} else {
			j.logger.WarnContext(ctx, "Routing backend is unavailable, planning runs on haversine fallback")
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Routing health job started (probing every 30 seconds)")
	return nil
}

// Stop stops the health probe.
func (j *RoutingHealthJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Routing health job stopped")
}
