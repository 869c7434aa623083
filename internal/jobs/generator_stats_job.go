package jobs

import (
	"context"
	"log/slog"
	"sync"

	"github.com/robfig/cron/v3"

	"uidkit/internal/core/domain/services"
)

// StatsSource is the part of services.Generator the stats job reads.
type StatsSource interface {
	Stats() services.GeneratorStats
}

// GeneratorStatsJob periodically logs what the identifier generator produced since the
// previous run. Clock sequence wraps are logged at warn level.
type GeneratorStatsJob struct {
	source   StatsSource
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger

	mu   sync.Mutex
	last services.GeneratorStats
}

// NewGeneratorStatsJob creates the job. schedule is a cron spec with an optional seconds
// field or a descriptor such as "@every 1m".
func NewGeneratorStatsJob(source StatsSource, schedule string, logger *slog.Logger) *GeneratorStatsJob {
	return &GeneratorStatsJob{
		source:   source,
		schedule: schedule,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "generator_stats_job"),
	}
}

// Start schedules the job.
func (j *GeneratorStatsJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, func() {
		j.Run(context.Background())
	}); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Generator stats job started", "schedule", j.schedule)
	return nil
}

// Run logs one report. Start calls it on every tick.
func (j *GeneratorStatsJob) Run(ctx context.Context) {
	stats := j.source.Stats()

	j.mu.Lock()
	last := j.last
	j.last = stats
	j.mu.Unlock()

	attrs := []any{
		"total", stats.Total(),
		"since_last_report", stats.Total() - last.Total(),
		"ulid", stats.ULIDs,
		"clock_sequence_bumps", stats.ClockSequenceBumps,
		"clock_regressions", stats.ClockRegressions,
		"overflow_waits", stats.OverflowWaits,
		"collisions", stats.Collisions,
	}
	for kind, n := range stats.Generated {
		attrs = append(attrs, kind.String(), n)
	}

	if stats.Collisions > last.Collisions {
		j.logger.WarnContext(ctx, "Generator reported clock sequence collisions", attrs...)
		return
	}
	j.logger.InfoContext(ctx, "Generator stats", attrs...)
}

// Stop stops the job.
func (j *GeneratorStatsJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Generator stats job stopped")
}
