package jobs

import (
	"context"
	"log/slog"
	"time"

	"codeorders/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

const (
	// DefaultStaleOrderSchedule runs the reaper once a minute.
	DefaultStaleOrderSchedule = "@every 1m"
	// DefaultProcessingTimeout is how long an order may stay in processing.
	DefaultProcessingTimeout = 10 * time.Minute

	staleOrderBatchSize = 100
)

// StaleOrderJob fails orders left in processing longer than the processing timeout,
// typically by a process that stopped between the two status transitions.
type StaleOrderJob struct {
	handler  commands.FailStaleOrdersCommandHandler
	schedule string
	timeout  time.Duration
	now      func() time.Time
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewStaleOrderJob creates the job. Empty schedule and non-positive timeout select
// the defaults.
func NewStaleOrderJob(
	handler commands.FailStaleOrdersCommandHandler,
	schedule string,
	timeout time.Duration,
	logger *slog.Logger,
) *StaleOrderJob {
	if schedule == "" {
		schedule = DefaultStaleOrderSchedule
	}
	if timeout <= 0 {
		timeout = DefaultProcessingTimeout
	}

	return &StaleOrderJob{
		handler:  handler,
		schedule: schedule,
		timeout:  timeout,
		now:      time.Now,
		cron:     cron.New(),
		logger:   logger.With("component", "stale_order_job"),
	}
}

// Start schedules the job. An invalid schedule is returned as an error.
func (j *StaleOrderJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		ctx := context.Background()
		if _, err := j.RunOnce(ctx); err != nil {
			j.logger.ErrorContext(ctx, "Stale order job failed", "error", err)
		}
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Stale order job started",
		"schedule", j.schedule,
		"processing_timeout", j.timeout.String(),
	)
	return nil
}

// RunOnce fails one batch of stale orders and reports how many were moved.
func (j *StaleOrderJob) RunOnce(ctx context.Context) (int, error) {
	cmd, err := commands.NewFailStaleOrdersCommand(j.now().Add(-j.timeout), staleOrderBatchSize)
	if err != nil {
		return 0, err
	}

	failed, err := j.handler.Handle(ctx, cmd)
	if failed > 0 {
		j.logger.InfoContext(ctx, "Stale orders failed", "count", failed)
	}
	return failed, err
}

// Stop stops the scheduler and waits for a running execution to finish.
func (j *StaleOrderJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Stale order job stopped")
}
