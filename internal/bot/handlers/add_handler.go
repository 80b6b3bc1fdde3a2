package handlers

import (
	"context"
	"errors"
	"fmt"
	"html"
	"log/slog"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/edgard/channelcat/internal/catalogue"
	"github.com/edgard/channelcat/internal/database"
)

// NewAddHandler returns a handler for the /add command.
func NewAddHandler(deps HandlerDeps) bot.HandlerFunc {
	h := addHandler{deps: deps, log: deps.Logger.With("handler", "add")}
	return handle(h.log, "/add", h.respond)
}

// addHandler appends a link to a category, saves the catalogue and pushes
// the category and index messages.
type addHandler struct {
	deps HandlerDeps
	log  *slog.Logger
}

func (h addHandler) respond(ctx context.Context, msg *models.Message) reply {
	msgs := h.deps.Config.Messages

	args, ok := ParseAddArguments(msg.Text)
	if !ok {
		return plainReply(msgs.AddUsage)
	}

	link := catalogue.NewLink(args.Title, args.URL, authorName(msg.From))
	var key string
	_, err := h.deps.Catalogue.Update(ctx, func(doc *catalogue.Document) (bool, error) {
		found, ok := doc.FindCategory(args.Category)
		if !ok {
			return false, catalogue.ErrCategoryNotFound
		}
		if err := doc.AppendLink(found, link); err != nil {
			return false, err
		}
		key = found
		return true, nil
	})
	switch {
	case errors.Is(err, catalogue.ErrCategoryNotFound):
		h.log.InfoContext(ctx, "Unknown category in /add", "category", args.Category)
		return plainReply(fmt.Sprintf(msgs.CategoryNotFoundFmt, args.Category))
	case err != nil:
		h.log.ErrorContext(ctx, "Failed to add link", "error", err, "category", args.Category)
		return plainReply(msgs.GeneralError)
	}
	h.log.InfoContext(ctx, "Link added", "category", key, "url", link.URL, "author", link.Author)

	err = h.deps.Catalogue.View(ctx, func(doc *catalogue.Document) error {
		report := h.deps.Syncer.PushCategoryAndIndex(ctx, doc, key)
		h.log.DebugContext(ctx, "Pushed channel messages", "category", key, "edited", report.Edited, "failed", report.Failed, "skipped", report.Skipped)
		return nil
	})
	if err != nil {
		h.log.ErrorContext(ctx, "Failed to push channel messages", "error", err, "category", key)
	}

	h.journal(ctx, msg, key, link)

	return htmlReply(fmt.Sprintf(msgs.LinkAddedFmt, html.EscapeString(key)))
}

func (h addHandler) journal(ctx context.Context, msg *models.Message, category string, link catalogue.Link) {
	if h.deps.Store == nil {
		return
	}
	sub := &database.Submission{
		Category: category,
		Title:    link.Title,
		URL:      link.URL,
		Author:   link.Author,
		UserID:   senderID(msg),
		ChatID:   msg.Chat.ID,
	}
	if err := h.deps.Store.SaveSubmission(ctx, sub); err != nil {
		h.log.WarnContext(ctx, "Failed to journal submission", "error", err, "category", category)
	}
}
