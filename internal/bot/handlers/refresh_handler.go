package handlers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/edgard/channelcat/internal/catalogue"
	"github.com/edgard/channelcat/internal/channel"
)

const typingInterval = 4 * time.Second

// NewRefreshHandler returns a handler for the /refresh command.
func NewRefreshHandler(deps HandlerDeps) bot.HandlerFunc {
	h := refreshHandler{deps: deps, log: deps.Logger.With("handler", "refresh")}
	respond := handle(h.log, "/refresh", h.respond)

	return func(ctx context.Context, b *bot.Bot, update *models.Update) {
		if update.Message != nil {
			stop := keepTyping(ctx, b, h.log, update.Message.Chat.ID, typingInterval)
			defer stop()
		}
		respond(ctx, b, update)
	}
}

// refreshHandler rebuilds every channel message from the catalogue.
type refreshHandler struct {
	deps HandlerDeps
	log  *slog.Logger
}

func (h refreshHandler) respond(ctx context.Context, _ *models.Message) reply {
	msgs := h.deps.Config.Messages

	var report channel.Report
	_, err := h.deps.Catalogue.Update(ctx, func(doc *catalogue.Document) (bool, error) {
		var err error
		report, err = h.deps.Syncer.RefreshAll(ctx, doc)
		if err != nil {
			return false, err
		}
		return report.Changed(), nil
	})
	switch {
	case errors.Is(err, channel.ErrChannelNotConfigured):
		h.log.WarnContext(ctx, "Refresh requested without a configured channel")
		return plainReply(msgs.ChannelNotConfigured)
	case err != nil:
		h.log.ErrorContext(ctx, "Failed to refresh channel", "error", err)
		return plainReply(msgs.GeneralError)
	}

	h.log.InfoContext(ctx, "Channel refreshed", "created", report.Created, "edited", report.Edited, "failed", report.Failed)
	if report.Failed > 0 {
		return plainReply(fmt.Sprintf(msgs.RefreshPartialFmt, report.Failed))
	}
	return plainReply(msgs.RefreshDone)
}

// keepTyping shows the typing indicator in chatID until the returned stop
// function is called.
func keepTyping(ctx context.Context, b *bot.Bot, log *slog.Logger, chatID int64, interval time.Duration) func() {
	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})

	send := func() error {
		_, err := b.SendChatAction(ctx, &bot.SendChatActionParams{ChatID: chatID, Action: models.ChatActionTyping})
		return err
	}

	go func() {
		defer close(done)
		if err := send(); err != nil {
			log.DebugContext(ctx, "Typing action failed", "error", err, "chat_id", chatID)
			return
		}

		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := send(); err != nil && ctx.Err() == nil {
					log.DebugContext(ctx, "Typing action failed", "error", err, "chat_id", chatID)
				}
			}
		}
	}()

	return func() {
		cancel()
		<-done
	}
}
