package handlers

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// NewHelpHandler returns a handler for the /help command.
func NewHelpHandler(deps HandlerDeps) bot.HandlerFunc {
	h := helpHandler{deps}
	return handle(deps.Logger.With("handler", "help"), "/help", h.respond)
}

type helpHandler struct {
	deps HandlerDeps
}

func (h helpHandler) respond(context.Context, *models.Message) reply {
	return plainReply(h.deps.Config.Messages.Help)
}
