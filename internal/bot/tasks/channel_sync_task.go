package tasks

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/edgard/channelcat/internal/catalogue"
	"github.com/edgard/channelcat/internal/channel"
)

const channelSyncTimeout = 5 * time.Minute

// newChannelSyncTask rebuilds every channel message from the catalogue, the
// same reconciliation /refresh performs.
func newChannelSyncTask(deps TaskDeps) ScheduledTaskFunc {
	log := deps.Logger.With("task", "channel_sync")

	return func(ctx context.Context) error {
		ctx, cancel := context.WithTimeout(ctx, channelSyncTimeout)
		defer cancel()

		startTime := time.Now()
		var report channel.Report
		_, err := deps.Catalogue.Update(ctx, func(doc *catalogue.Document) (bool, error) {
			var err error
			report, err = deps.Syncer.RefreshAll(ctx, doc)
			if err != nil {
				return false, err
			}
			return report.Changed(), nil
		})
		duration := time.Since(startTime)

		switch {
		case errors.Is(err, channel.ErrChannelNotConfigured):
			log.WarnContext(ctx, "Channel not configured, skipping sync")
			return nil
		case err != nil:
			log.ErrorContext(ctx, "Channel sync failed", "error", err, "duration", duration)
			return fmt.Errorf("channel sync failed: %w", err)
		}

		log.InfoContext(ctx, "Channel sync completed",
			"created", report.Created,
			"edited", report.Edited,
			"failed", report.Failed,
			"duration", duration)
		if report.Failed > 0 {
			return fmt.Errorf("channel sync: %d messages failed", report.Failed)
		}
		return nil
	}
}
