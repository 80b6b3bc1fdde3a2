package tasks

import "context"

// ScheduledTaskFunc is the signature shared by all scheduled tasks.
// Tasks must respect ctx cancellation.
type ScheduledTaskFunc func(ctx context.Context) error

// RegisterAllTasks returns every task keyed by the name used in the
// scheduler.tasks configuration section.
func RegisterAllTasks(deps TaskDeps) map[string]ScheduledTaskFunc {
	tasks := map[string]ScheduledTaskFunc{
		"sql_maintenance":     newSQLMaintenanceTask(deps),
		"sync_events_cleanup": newSyncEventsCleanupTask(deps),
		"channel_sync":        newChannelSyncTask(deps),
	}

	deps.Logger.Info("Initialized scheduled tasks", "count", len(tasks))
	return tasks
}
