package handlers

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// NewStartHandler returns a handler for the /start command.
func NewStartHandler(deps HandlerDeps) bot.HandlerFunc {
	h := startHandler{deps}
	return handle(deps.Logger.With("handler", "start"), "/start", h.respond)
}

// startHandler greets the user with a usage example.
type startHandler struct {
	deps HandlerDeps
}

func (h startHandler) respond(context.Context, *models.Message) reply {
	return plainReply(h.deps.Config.Messages.Welcome)
}
