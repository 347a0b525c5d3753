// Package jobs provides scheduled background tasks for the slot service.
//
// Jobs are cron-based, using github.com/robfig/cron/v3 with a seconds field.
//
// # Available Jobs
//
// ReconciliationJob runs ReconcileAssignments on RECONCILE_SCHEDULE (every minute
// by default). It repairs slots whose occupant list and orders disagree, which can
// only happen when rows are changed outside the service.
//
// # Usage
//
//	jobManager := jobs.NewJobManager(reconcileHandler, cfg.ReconcileSchedule, logger)
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// Failed passes are logged and retried on the next tick. Overlapping runs are
// skipped. Repairs are logged as warnings because each one means drift occurred.
package jobs
