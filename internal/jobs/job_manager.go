package jobs

import (
	"fmt"
	"log/slog"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	generatorStatsJob *GeneratorStatsJob
	issuanceCountJob  *IssuanceCountJob
}

// NewJobManager creates a job manager running both jobs on the same schedule.
func NewJobManager(
	source StatsSource,
	counter IssuanceCounter,
	schedule string,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		generatorStatsJob: NewGeneratorStatsJob(source, schedule, logger),
		issuanceCountJob:  NewIssuanceCountJob(counter, schedule, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.generatorStatsJob.Start(); err != nil {
		return fmt.Errorf("failed to start generator stats job: %w", err)
	}

	if err := jm.issuanceCountJob.Start(); err != nil {
		// Stop already started jobs if this one fails
		jm.generatorStatsJob.Stop()
		return fmt.Errorf("failed to start issuance count job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.issuanceCountJob.Stop()
	jm.generatorStatsJob.Stop()
}
