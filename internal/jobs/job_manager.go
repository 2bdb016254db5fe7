package jobs

import (
	"fmt"
	"log/slog"

	"smartdelivery/internal/core/ports"
)

// RoutingClient is the combined dependency of the background jobs: the OSRM
// client both estimates routes and owns the sweepable matrix cache.
type RoutingClient interface {
	ports.RouteEstimator
	RouteCacheSweeper
}

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	routeCacheSweepJob *RouteCacheSweepJob
	routingHealthJob   *RoutingHealthJob
}

// NewJobManager creates a job manager wired to the routing client.
func NewJobManager(routing RoutingClient, logger *slog.Logger) *JobManager {
	return &JobManager{
		routeCacheSweepJob: NewRouteCacheSweepJob(routing, logger),
		routingHealthJob:   NewRoutingHealthJob(routing, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.routeCacheSweepJob.Start(); err != nil {
		return fmt.Errorf("failed to start route cache sweep job: %w", err)
	}

	if err := jm.routingHealthJob.Start(); err != nil {
		// Stop already started jobs if this one fails
		jm.routeCacheSweepJob.Stop()
		return fmt.Errorf("failed to start routing health job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.routingHealthJob.Stop()
	jm.routeCacheSweepJob.Stop()
}
