// Package handlers contains Telegram bot command and message handlers,
// along with their registration logic and middleware.
package handlers

import (
	"context"

	tgbot "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// AdminOnly creates a middleware that lets only configured admins through.
// Anyone else gets the "not authorized" reply and the handler is skipped.
func AdminOnly(deps HandlerDeps) tgbot.Middleware {
	log := deps.Logger.With("middleware", "AdminOnly")
	return func(next tgbot.HandlerFunc) tgbot.HandlerFunc {
		return func(ctx context.Context, bot *tgbot.Bot, update *models.Update) {
			if update.Message == nil {
				next(ctx, bot, update)
				return
			}

			if !authorized(deps, update.Message) {
				chatID := update.Message.Chat.ID
				log.WarnContext(ctx, "Unauthorized access attempt", "user_id", senderID(update.Message), "chat_id", chatID)
				sendReply(ctx, bot, log, chatID, plainReply(deps.Config.Messages.NotAuthorized))
				return
			}

			next(ctx, bot, update)
		}
	}
}

// authorized reports whether the sender of msg may run admin commands.
// Messages without a sender only pass when no admins are configured.
func authorized(deps HandlerDeps, msg *models.Message) bool {
	if msg.From == nil {
		return len(deps.Config.Telegram.AdminUserIDs) == 0
	}
	return deps.Config.IsAdmin(msg.From.ID)
}
