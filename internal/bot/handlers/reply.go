package handlers

import (
	"context"
	"log/slog"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// reply is a handler's answer to a message. HTML replies carry markup that
// has already been escaped.
type reply struct {
	text string
	html bool
}

func plainReply(text string) reply { return reply{text: text} }

func htmlReply(text string) reply { return reply{text: text, html: true} }

// respondFunc computes the reply to a message. An empty text means no reply.
type respondFunc func(ctx context.Context, msg *models.Message) reply

// handle wraps respond with the checks and logging shared by every handler
// and sends the reply back to the originating chat.
func handle(log *slog.Logger, command string, respond respondFunc) bot.HandlerFunc {
	return func(ctx context.Context, b *bot.Bot, update *models.Update) {
		if update.Message == nil {
			log.WarnContext(ctx, "Handler received update without message", "update_id", update.ID)
			return
		}
		msg := update.Message
		log.InfoContext(ctx, "Handling command", "command", command, "chat_id", msg.Chat.ID, "user_id", senderID(msg))

		sendReply(ctx, b, log, msg.Chat.ID, respond(ctx, msg))
	}
}

func sendReply(ctx context.Context, b *bot.Bot, log *slog.Logger, chatID int64, r reply) {
	if r.text == "" {
		return
	}
	params := &bot.SendMessageParams{
		ChatID:             chatID,
		Text:               r.text,
		LinkPreviewOptions: &models.LinkPreviewOptions{IsDisabled: bot.True()},
	}
	if r.html {
		params.ParseMode = models.ParseModeHTML
	}
	if _, err := b.SendMessage(ctx, params); err != nil {
		log.ErrorContext(ctx, "Failed to send reply", "error", err, "chat_id", chatID)
	}
}

func senderID(msg *models.Message) int64 {
	if msg.From == nil {
		return 0
	}
	return msg.From.ID
}

// authorName is the sender's username without the @, or their full name when
// they have none.
func authorName(user *models.User) string {
	if user == nil {
		return ""
	}
	if name := strings.TrimPrefix(user.Username, "@"); name != "" {
		return name
	}
	return strings.TrimSpace(user.FirstName + " " + user.LastName)
}
