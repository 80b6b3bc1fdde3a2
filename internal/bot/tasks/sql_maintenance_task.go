package tasks

import (
	"context"
	"fmt"
	"time"
)

// newSQLMaintenanceTask compacts the journal database. It is scheduled after
// sync_events_cleanup so the space freed by pruning is returned.
func newSQLMaintenanceTask(deps TaskDeps) ScheduledTaskFunc {
	log := deps.Logger.With("task", "sql_maintenance")

	return func(ctx context.Context) error {
		start := time.Now()
		reclaimed, err := deps.Store.CompactJournal(ctx)
		if err != nil {
			return fmt.Errorf("journal compaction failed: %w", err)
		}
		log.InfoContext(ctx, "Journal compacted", "reclaimed_bytes", reclaimed, "duration", time.Since(start))
		return nil
	}
}
