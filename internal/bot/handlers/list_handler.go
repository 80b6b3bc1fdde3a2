package handlers

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/edgard/channelcat/internal/catalogue"
)

// NewListHandler returns a handler for the /list command.
func NewListHandler(deps HandlerDeps) bot.HandlerFunc {
	h := listHandler{deps: deps, log: deps.Logger.With("handler", "list")}
	return handle(h.log, "/list", h.respond)
}

type listHandler struct {
	deps HandlerDeps
	log  *slog.Logger
}

func (h listHandler) respond(ctx context.Context, _ *models.Message) reply {
	var text string
	err := h.deps.Catalogue.View(ctx, func(doc *catalogue.Document) error {
		text = h.deps.Renderer.List(doc)
		return nil
	})
	if err != nil {
		h.log.ErrorContext(ctx, "Failed to read catalogue", "error", err)
		return plainReply(h.deps.Config.Messages.GeneralError)
	}
	return htmlReply(text)
}

// NewInfoHandler returns a handler for the /info command.
func NewInfoHandler(deps HandlerDeps) bot.HandlerFunc {
	h := infoHandler{deps: deps, log: deps.Logger.With("handler", "info")}
	return handle(h.log, "/info", h.respond)
}

// infoHandler summarises the channel, category count and total links.
type infoHandler struct {
	deps HandlerDeps
	log  *slog.Logger
}

func (h infoHandler) respond(ctx context.Context, _ *models.Message) reply {
	msgs := h.deps.Config.Messages

	var text string
	err := h.deps.Catalogue.View(ctx, func(doc *catalogue.Document) error {
		channel := doc.Channel()
		if channel == "" {
			channel = msgs.ChannelUnset
		}
		text = fmt.Sprintf(msgs.InfoFmt, channel, doc.Categories.Len(), doc.TotalLinks())
		return nil
	})
	if err != nil {
		h.log.ErrorContext(ctx, "Failed to read catalogue", "error", err)
		return plainReply(msgs.GeneralError)
	}
	return plainReply(text)
}

// NewRecentHandler returns a handler for the /recent command.
func NewRecentHandler(deps HandlerDeps) bot.HandlerFunc {
	h := recentHandler{deps: deps, log: deps.Logger.With("handler", "recent")}
	return handle(h.log, "/recent", h.respond)
}

// recentHandler lists the latest journaled submissions.
type recentHandler struct {
	deps HandlerDeps
	log  *slog.Logger
}

func (h recentHandler) respond(ctx context.Context, _ *models.Message) reply {
	if h.deps.Store == nil {
		return htmlReply(h.deps.Renderer.Recent(nil))
	}
	subs, err := h.deps.Store.GetRecentSubmissions(ctx, h.deps.Config.Journal.RecentLimit)
	if err != nil {
		h.log.ErrorContext(ctx, "Failed to load recent submissions", "error", err)
		return plainReply(h.deps.Config.Messages.GeneralError)
	}
	return htmlReply(h.deps.Renderer.Recent(subs))
}
