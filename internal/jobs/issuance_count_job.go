package jobs

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

const issuanceCountTimeout = 10 * time.Second

// IssuanceCounter is the part of ports.IssuanceRepository the count job reads.
type IssuanceCounter interface {
	Count(ctx context.Context) (int64, error)
}

// IssuanceCountJob periodically logs the size of the issuance registry.
type IssuanceCountJob struct {
	counter  IssuanceCounter
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

func NewIssuanceCountJob(counter IssuanceCounter, schedule string, logger *slog.Logger) *IssuanceCountJob {
	return &IssuanceCountJob{
		counter:  counter,
		schedule: schedule,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "issuance_count_job"),
	}
}

// Start schedules the job.
func (j *IssuanceCountJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, func() {
		j.Run(context.Background())
	}); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Issuance count job started", "schedule", j.schedule)
	return nil
}

// Run logs the current count once.
func (j *IssuanceCountJob) Run(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, issuanceCountTimeout)
	defer cancel()

	n, err := j.counter.Count(ctx)
	if err != nil {
		j.logger.ErrorContext(ctx, "Issuance count job failed", "error", err)
		return
	}
	j.logger.InfoContext(ctx, "Issuance registry size", "issuances", n)
}

// Stop stops the job.
func (j *IssuanceCountJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Issuance count job stopped")
}
