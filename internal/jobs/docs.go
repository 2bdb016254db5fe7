// Package jobs provides scheduled background tasks for the planning service.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic housekeeping around the routing integration.
//
// # Available Jobs
//
// 1. RouteCacheSweepJob - Runs every minute to evict expired routing matrix cache entries
// 2. RoutingHealthJob - Probes the routing backend periodically and logs availability transitions
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(osrmClient, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	defer jobManager.StopAll()
//
// # Error Handling
//
// Neither job affects request handling: planning and recommendation already
// degrade to the haversine fallback when the routing backend is down, so the
// jobs only log and never escalate.
package jobs
