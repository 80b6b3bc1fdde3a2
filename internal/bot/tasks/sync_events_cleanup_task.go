package tasks

import (
	"context"
	"fmt"
	"time"
)

// newSyncEventsCleanupTask deletes sync events older than the configured
// retention.
func newSyncEventsCleanupTask(deps TaskDeps) ScheduledTaskFunc {
	log := deps.Logger.With("task", "sync_events_cleanup")

	return func(ctx context.Context) error {
		retention := deps.Config.Journal.SyncEventRetention
		if retention <= 0 {
			log.WarnContext(ctx, "Sync event retention not set, skipping cleanup")
			return nil
		}

		cutoff := time.Now().UTC().Add(-retention)
		deleted, err := deps.Store.DeleteSyncEventsBefore(ctx, cutoff)
		if err != nil {
			log.ErrorContext(ctx, "Failed to delete old sync events", "error", err, "cutoff", cutoff)
			return fmt.Errorf("sync events cleanup failed: %w", err)
		}

		log.InfoContext(ctx, "Deleted old sync events", "count", deleted, "cutoff", cutoff)
		return nil
	}
}
