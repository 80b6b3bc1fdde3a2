package handlers

import (
	"log/slog"

	"github.com/edgard/channelcat/internal/catalogue"
	"github.com/edgard/channelcat/internal/channel"
	"github.com/edgard/channelcat/internal/config"
	"github.com/edgard/channelcat/internal/database"
	"github.com/edgard/channelcat/internal/render"
)

// HandlerDeps provides dependencies for Telegram command handlers.
type HandlerDeps struct {
	Logger    *slog.Logger
	Config    *config.Config
	Catalogue *catalogue.Store
	Syncer    *channel.Syncer
	Renderer  *render.Renderer
	Store     database.Store
}
