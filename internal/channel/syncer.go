package channel

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/edgard/channelcat/internal/catalogue"
	"github.com/edgard/channelcat/internal/database"
	"github.com/edgard/channelcat/internal/render"
)

const indexTarget = "index"

var (
	indexOptions    = SendOptions{DisableLinkPreview: true}
	categoryOptions = SendOptions{DisableLinkPreview: false}
)

func categoryTarget(name string) string {
	return "category:" + name
}

// Journal records the outcome of every send and edit.
type Journal interface {
	SaveSyncEvent(ctx context.Context, event *database.SyncEvent) error
}

// Report counts the messages touched by a reconciliation pass.
type Report struct {
	Created int
	Edited  int
	Skipped int
	Failed  int
}

// Changed reports whether new message ids were recorded in the document.
func (r Report) Changed() bool {
	return r.Created > 0
}

// Syncer reconciles channel messages with a catalogue document. It never
// loads or saves the document itself; callers run it inside
// catalogue.Store.Update or View.
type Syncer struct {
	messenger Messenger
	renderer  *render.Renderer
	journal   Journal
	logger    *slog.Logger
}

// NewSyncer creates a syncer. journal may be nil.
func NewSyncer(messenger Messenger, renderer *render.Renderer, journal Journal, logger *slog.Logger) *Syncer {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Syncer{
		messenger: messenger,
		renderer:  renderer,
		journal:   journal,
		logger:    logger.With("component", "channel_sync"),
	}
}

// EnsureChannelMessages creates the index and category messages that have no
// recorded id and records the new ids in doc. Messages that already exist are
// left alone. When the channel is unset it logs a warning and does nothing.
//
// Send failures are logged and joined into the returned error; ids obtained
// before a failure stay recorded, so changed may be true alongside an error.
func (s *Syncer) EnsureChannelMessages(ctx context.Context, doc *catalogue.Document) (bool, error) {
	chat := doc.Channel()
	if chat == "" {
		s.logger.WarnContext(ctx, "channel_username is not set in the catalogue, skipping channel initialization")
		return false, nil
	}
	log := s.logger.With("chat", chat)

	var errs []error
	changed := false

	if _, ok := doc.IndexID(); !ok {
		id, err := s.send(ctx, chat, indexTarget, s.renderer.Index(doc), indexOptions)
		if err != nil {
			errs = append(errs, err)
		} else {
			doc.SetIndexID(id)
			changed = true
			log.InfoContext(ctx, "Created index message", "message_id", id)
		}
	}

	created := 0
	for _, name := range doc.Categories.Keys() {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}
		cat, _ := doc.Categories.Get(name)
		if _, ok := cat.ID(); ok {
			continue
		}
		id, err := s.send(ctx, chat, categoryTarget(name), s.renderer.Category(name, cat.Links), categoryOptions)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		cat.SetID(id)
		changed = true
		created++
		log.InfoContext(ctx, "Created category message", "category", name, "message_id", id)
	}

	// The index was rendered before these ids existed; refresh its jump links.
	if created > 0 {
		if id, ok := doc.IndexID(); ok {
			if err := s.edit(ctx, chat, indexTarget, id, s.renderer.Index(doc), indexOptions); err != nil {
				log.WarnContext(ctx, "Index jump links not refreshed", "error", err)
			}
		}
	}

	if changed {
		log.InfoContext(ctx, "Channel messages initialized", "categories_created", created)
	}
	return changed, errors.Join(errs...)
}

// RefreshAll edits every category message and the index, sending and
// recording a new message wherever no id is recorded. Individual failures
// are logged and counted, not returned.
func (s *Syncer) RefreshAll(ctx context.Context, doc *catalogue.Document) (Report, error) {
	var report Report
	chat := doc.Channel()
	if chat == "" {
		return report, ErrChannelNotConfigured
	}
	log := s.logger.With("chat", chat)

	for _, name := range doc.Categories.Keys() {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		cat, _ := doc.Categories.Get(name)
		text := s.renderer.Category(name, cat.Links)
		s.upsert(ctx, chat, categoryTarget(name), cat.ID, cat.SetID, text, categoryOptions, &report)
	}

	s.upsert(ctx, chat, indexTarget, doc.IndexID, doc.SetIndexID, s.renderer.Index(doc), indexOptions, &report)

	log.InfoContext(ctx, "Channel refreshed",
		"created", report.Created,
		"edited", report.Edited,
		"failed", report.Failed)
	return report, nil
}

// PushCategoryAndIndex re-renders the category stored under key and the
// index, and edits both messages in place. Failures are logged per message
// and never returned: the document change they reflect is already saved.
func (s *Syncer) PushCategoryAndIndex(ctx context.Context, doc *catalogue.Document, key string) Report {
	var report Report
	chat := doc.Channel()
	if chat == "" {
		s.logger.DebugContext(ctx, "No channel configured, skipping push", "category", key)
		return report
	}
	log := s.logger.With("chat", chat, "category", key)

	if cat, ok := doc.Categories.Get(key); !ok {
		log.WarnContext(ctx, "Category not in catalogue, skipping its message")
		report.Skipped++
	} else if id, ok := cat.ID(); !ok {
		log.WarnContext(ctx, "Category has no channel message yet; /refresh will create it")
		report.Skipped++
	} else if err := s.edit(ctx, chat, categoryTarget(key), id, s.renderer.Category(key, cat.Links), categoryOptions); err != nil {
		report.Failed++
	} else {
		report.Edited++
	}

	if id, ok := doc.IndexID(); !ok {
		log.WarnContext(ctx, "Index has no channel message yet; /refresh will create it")
		report.Skipped++
	} else if err := s.edit(ctx, chat, indexTarget, id, s.renderer.Index(doc), indexOptions); err != nil {
		report.Failed++
	} else {
		report.Edited++
	}

	return report
}

func (s *Syncer) upsert(ctx context.Context, chat, target string, getID func() (int, bool), setID func(int), text string, opts SendOptions, report *Report) {
	if id, ok := getID(); ok {
		if err := s.edit(ctx, chat, target, id, text, opts); err != nil {
			report.Failed++
			return
		}
		report.Edited++
		return
	}

	id, err := s.send(ctx, chat, target, text, opts)
	if err != nil {
		report.Failed++
		return
	}
	setID(id)
	report.Created++
}

func (s *Syncer) send(ctx context.Context, chat, target, text string, opts SendOptions) (int, error) {
	id, err := s.messenger.SendMessage(ctx, chat, text, opts)
	s.record(ctx, target, id, database.SyncActionSend, err)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to send channel message", "chat", chat, "target", target, "error", err)
		return 0, fmt.Errorf("send %s: %w", target, err)
	}
	return id, nil
}

func (s *Syncer) edit(ctx context.Context, chat, target string, messageID int, text string, opts SendOptions) error {
	err := s.messenger.EditMessageText(ctx, chat, messageID, text, opts)
	if errors.Is(err, ErrMessageNotModified) {
		s.logger.DebugContext(ctx, "Channel message already up to date", "target", target, "message_id", messageID)
		err = nil
	}
	s.record(ctx, target, messageID, database.SyncActionEdit, err)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to edit channel message", "chat", chat, "target", target, "message_id", messageID, "error", err)
		return fmt.Errorf("edit %s: %w", target, err)
	}
	return nil
}

func (s *Syncer) record(ctx context.Context, target string, messageID int, action string, err error) {
	if s.journal == nil {
		return
	}
	event := &database.SyncEvent{
		Target:    target,
		MessageID: messageID,
		Action:    action,
		Success:   err == nil,
	}
	if err != nil {
		event.Error = err.Error()
	}
	if jerr := s.journal.SaveSyncEvent(ctx, event); jerr != nil {
		s.logger.WarnContext(ctx, "Failed to journal sync event", "target", target, "error", jerr)
	}
}
