package handlers

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// NewDefaultHandler returns the handler for updates no command matched.
// Free text gets a hint or an "unrecognized" reply; unknown commands and
// updates without text are ignored.
func NewDefaultHandler(deps HandlerDeps) bot.HandlerFunc {
	h := defaultHandler{deps: deps, log: deps.Logger.With("handler", "default")}
	return h.Handle
}

type defaultHandler struct {
	deps HandlerDeps
	log  *slog.Logger
}

func (h defaultHandler) Handle(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		h.log.DebugContext(ctx, "Ignoring non-message update", "update_id", update.ID)
		return
	}
	sendReply(ctx, b, h.log, update.Message.Chat.ID, h.respond(ctx, update.Message))
}

func (h defaultHandler) respond(ctx context.Context, msg *models.Message) reply {
	text := strings.TrimSpace(msg.Text)
	switch {
	case text == "":
		return reply{}
	case strings.HasPrefix(text, "/"):
		h.log.DebugContext(ctx, "Ignoring unknown command", "chat_id", msg.Chat.ID, "text", text)
		return reply{}
	case isURLText(text):
		return plainReply(fmt.Sprintf(h.deps.Config.Messages.URLHintFmt, text))
	default:
		return plainReply(h.deps.Config.Messages.Unrecognized)
	}
}
