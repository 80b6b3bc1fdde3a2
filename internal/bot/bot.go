// Package bot wires the catalogue, channel syncer, Telegram listener and
// scheduler together and manages their lifecycle.
package bot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	tgbot "github.com/go-telegram/bot"
	"golang.org/x/sync/errgroup"

	"github.com/edgard/channelcat/internal/catalogue"
	"github.com/edgard/channelcat/internal/channel"
	"github.com/edgard/channelcat/internal/database"
)

// Bot represents the main bot application and manages its components' lifecycle.
type Bot struct {
	logger    *slog.Logger
	store     database.Store
	catalogue *catalogue.Store
	syncer    *channel.Syncer
	tgBot     *tgbot.Bot
	scheduler *Scheduler
}

// NewBot creates a new instance of the bot with all required dependencies.
func NewBot(
	logger *slog.Logger,
	store database.Store,
	cat *catalogue.Store,
	syncer *channel.Syncer,
	tgBot *tgbot.Bot,
	scheduler *Scheduler,
) *Bot {
	return &Bot{
		logger:    logger.With("component", "bot_orchestrator"),
		store:     store,
		catalogue: cat,
		syncer:    syncer,
		tgBot:     tgBot,
		scheduler: scheduler,
	}
}

// Run reconciles the channel with the catalogue, then runs the Telegram
// listener and the scheduler until ctx is cancelled or one of them fails.
// An unreadable catalogue aborts startup.
func (b *Bot) Run(ctx context.Context) error {
	b.logger.Info("Starting bot orchestrator...")

	if err := b.startup(ctx); err != nil {
		return err
	}

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		b.logger.Info("Starting Telegram bot listener...")
		b.tgBot.Start(gCtx)
		b.logger.Info("Telegram bot listener stopped.")

		if gCtx.Err() == nil {
			b.logger.Warn("Telegram bot listener stopped unexpectedly without context cancellation.")
			return fmt.Errorf("telegram listener stopped unexpectedly")
		}
		return nil
	})

	g.Go(func() error {
		b.logger.Info("Starting scheduler...")
		if err := b.scheduler.Start(); err != nil {
			b.logger.Error("Failed to start scheduler", "error", err)
			return fmt.Errorf("failed to start scheduler: %w", err)
		}

		<-gCtx.Done()
		b.logger.Info("Shutdown signal received, stopping scheduler...")
		if err := b.scheduler.Stop(); err != nil {
			b.logger.Error("Error stopping scheduler", "error", err)
		}
		return nil
	})

	b.logger.Info("Bot orchestrator running. Waiting for shutdown signal or error...")
	err := g.Wait()

	if err != nil && !errors.Is(err, context.Canceled) {
		b.logger.Error("Bot orchestrator stopped due to error", "error", err)
		return err
	}

	b.logger.Info("Bot orchestrator stopped gracefully.")
	return nil
}

// startup checks the journal and creates any missing channel messages.
// Failing to read the catalogue is fatal; failed sends and a failed save of
// the new ids are only logged.
func (b *Bot) startup(ctx context.Context) error {
	if b.store != nil {
		if err := b.store.Ping(ctx); err != nil {
			b.logger.Warn("Journal database unavailable", "error", err)
		}
	}

	loaded := false
	var syncErr error
	_, err := b.catalogue.Update(ctx, func(doc *catalogue.Document) (bool, error) {
		loaded = true
		changed, err := b.syncer.EnsureChannelMessages(ctx, doc)
		syncErr = err
		return changed, nil
	})
	if !loaded {
		b.logger.Error("Failed to load catalogue", "path", b.catalogue.Path(), "error", err)
		return fmt.Errorf("load catalogue: %w", err)
	}
	if syncErr != nil {
		b.logger.Error("Some channel messages could not be created; run /refresh to retry", "error", syncErr)
	}
	if err != nil {
		b.logger.Error("Created channel message ids could not be saved; they will be sent again on next start",
			"path", b.catalogue.Path(), "error", err)
	}
	return nil
}
