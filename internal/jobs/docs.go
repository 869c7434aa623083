// Package jobs provides scheduled background tasks for the identifier service.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3.
//
// # Available Jobs
//
// 1. GeneratorStatsJob - logs how many identifiers of each kind were generated, together with
// clock sequence bumps, clock regressions, overflow waits and collisions
// 2. IssuanceCountJob - logs the number of records in the issuance registry
//
// # Usage
//
//	jobManager := jobs.NewJobManager(generator, repository, "@every 1m", logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Scheduling
//
// Schedules accept six-field cron expressions (seconds first) and descriptors such as
// "@every 30s" or "@hourly". The default is "@every 1m".
//
// # Error Handling
//
// - A stats report with new collisions is logged at warn level
// - A failed registry count is logged at error level; the next tick retries
// - Failed job starts will stop any already running jobs
package jobs
