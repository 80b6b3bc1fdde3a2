// Package tasks implements the bot's scheduled jobs and their registry.
package tasks

import (
	"log/slog"

	"github.com/edgard/channelcat/internal/catalogue"
	"github.com/edgard/channelcat/internal/channel"
	"github.com/edgard/channelcat/internal/config"
	"github.com/edgard/channelcat/internal/database"
)

// TaskDeps contains all dependencies required by scheduled tasks.
type TaskDeps struct {
	Logger    *slog.Logger
	Store     database.Store
	Catalogue *catalogue.Store
	Syncer    *channel.Syncer
	Config    *config.Config
}
