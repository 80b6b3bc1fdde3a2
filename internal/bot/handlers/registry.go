package handlers

import (
	tgbot "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/edgard/channelcat/internal/config"
)

// RegisteredHandler represents a command handler with its middleware.
// It encapsulates all information needed to register a command.
type RegisteredHandler struct {
	HandlerType tgbot.HandlerType
	Pattern     string
	Handler     tgbot.HandlerFunc
	Middleware  []tgbot.Middleware
	MatchType   tgbot.MatchType
}

func command(pattern string, handler tgbot.HandlerFunc, mw ...tgbot.Middleware) RegisteredHandler {
	return RegisteredHandler{
		HandlerType: tgbot.HandlerTypeMessageText,
		Pattern:     pattern,
		Handler:     handler,
		MatchType:   tgbot.MatchTypeCommandStartOnly,
		Middleware:  mw,
	}
}

// RegisterAllCommands returns every bot command keyed by its slash name.
// /add and /refresh are restricted to admins.
func RegisterAllCommands(deps HandlerDeps) map[string]RegisteredHandler {
	adminOnly := AdminOnly(deps)

	return map[string]RegisteredHandler{
		"/start":   command("start", NewStartHandler(deps)),
		"/help":    command("help", NewHelpHandler(deps)),
		"/add":     command("add", NewAddHandler(deps), adminOnly),
		"/list":    command("list", NewListHandler(deps)),
		"/refresh": command("refresh", NewRefreshHandler(deps), adminOnly),
		"/info":    command("info", NewInfoHandler(deps)),
		"/recent":  command("recent", NewRecentHandler(deps)),
	}
}

// Commands returns the command menu published to Telegram clients.
func Commands(cfg *config.Config) []models.BotCommand {
	c := cfg.Commands
	return []models.BotCommand{
		{Command: "start", Description: c.Start},
		{Command: "help", Description: c.Help},
		{Command: "add", Description: c.Add},
		{Command: "list", Description: c.List},
		{Command: "refresh", Description: c.Refresh},
		{Command: "info", Description: c.Info},
		{Command: "recent", Description: c.Recent},
	}
}
