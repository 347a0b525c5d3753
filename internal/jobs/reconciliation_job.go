package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"lechon/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// DefaultReconcileSchedule runs the repair pass at the top of every minute.
const DefaultReconcileSchedule = "0 * * * * *"

// ReconcileHandler runs one repair pass and reports the number of repairs.
type ReconcileHandler interface {
	Handle(ctx context.Context, cmd commands.ReconcileAssignmentsCommand) (int, error)
}

// ReconciliationJob periodically repairs drift between slot occupants and the
// slot references held by orders.
type ReconciliationJob struct {
	handler  ReconcileHandler
	schedule string
	timeout  time.Duration
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewReconciliationJob creates the job. schedule is a six-field cron expression
// (seconds first); an empty schedule means DefaultReconcileSchedule.
func NewReconciliationJob(handler ReconcileHandler, schedule string, logger *slog.Logger) *ReconciliationJob {
	if schedule == "" {
		schedule = DefaultReconcileSchedule
	}
	return &ReconciliationJob{
		handler:  handler,
		schedule: schedule,
		timeout:  30 * time.Second,
		cron:     cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		logger:   logger.With("component", "reconciliation_job"),
	}
}

// Start schedules the job. An invalid schedule is reported and nothing runs.
func (j *ReconciliationJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, j.run); err != nil {
		return fmt.Errorf("invalid reconcile schedule %q: %w", j.schedule, err)
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Reconciliation job started", "schedule", j.schedule)
	return nil
}

// Stop stops scheduling and waits for a running pass to finish.
func (j *ReconciliationJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Reconciliation job stopped")
}

func (j *ReconciliationJob) run() {
	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()

	repaired, err := j.handler.Handle(ctx, commands.NewReconcileAssignmentsCommand())
	if err != nil {
		j.logger.ErrorContext(ctx, "Reconciliation job failed", "error", err)
		return
	}
	if repaired > 0 {
		j.logger.WarnContext(ctx, "Reconciliation repaired drift", "repairs", repaired)
	}
}
