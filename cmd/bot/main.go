// Package main contains the entrypoint for the channel catalogue bot.
package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	tgbot "github.com/go-telegram/bot"

	"github.com/edgard/channelcat/internal/bot"
	"github.com/edgard/channelcat/internal/bot/handlers"
	"github.com/edgard/channelcat/internal/bot/tasks"
	"github.com/edgard/channelcat/internal/catalogue"
	"github.com/edgard/channelcat/internal/channel"
	"github.com/edgard/channelcat/internal/config"
	"github.com/edgard/channelcat/internal/database"
	"github.com/edgard/channelcat/internal/logger"
	"github.com/edgard/channelcat/internal/render"
	"github.com/edgard/channelcat/internal/telegram"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	exitCode := run(ctx)
	stop()
	os.Exit(exitCode)
}

// run wires config, logger, journal, catalogue, Telegram client and
// scheduler, runs the bot and returns the process exit code.
func run(ctx context.Context) int {
	configPath := flag.String("config", "./config.yaml", "Path to configuration file")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		slog.Error("Failed to load configuration", "path", *configPath, "error", err)
		return 1
	}

	log := logger.NewLogger(cfg.Logger.Level, cfg.Logger.JSON)
	log.Info("Logger initialized", "level", cfg.Logger.Level, "json", cfg.Logger.JSON)

	db, err := database.NewDB(cfg.Database.Path)
	if err != nil {
		log.Error("Failed to connect to database", "path", cfg.Database.Path, "error", err)
		return 1
	}
	defer database.CloseDB(db)
	store := database.NewStore(db, log)

	renderer := render.New(render.Labels{
		IndexTitle:    cfg.Labels.IndexTitle,
		JumpLink:      cfg.Labels.JumpLink,
		LinksNoun:     cfg.Labels.LinksNoun,
		EmptyCategory: cfg.Labels.EmptyCategory,
		ListTitle:     cfg.Labels.ListTitle,
		RecentTitle:   cfg.Labels.RecentTitle,
		RecentEmpty:   cfg.Labels.RecentEmpty,
	})
	catalogueStore := catalogue.NewStore(cfg.Catalogue.Path, log)

	// Syncer is set once the client exists; the default handler does not use it.
	hDeps := handlers.HandlerDeps{
		Logger:    log,
		Config:    cfg,
		Catalogue: catalogueStore,
		Renderer:  renderer,
		Store:     store,
	}

	botOpts := []tgbot.Option{
		tgbot.WithMiddlewares(logger.Middleware(log)),
		tgbot.WithDefaultHandler(handlers.NewDefaultHandler(hDeps)),
	}
	tg, err := telegram.NewTelegramBot(cfg.Telegram.Token, log, botOpts...)
	if err != nil {
		log.Error("Failed to create Telegram bot", "error", err)
		return 1
	}

	syncer := channel.NewSyncer(telegram.NewMessenger(tg, log, cfg.Telegram.RateLimitAttempts), renderer, store, log)
	hDeps.Syncer = syncer

	if err := telegram.RegisterHandlers(tg, log, handlers.RegisterAllCommands(hDeps)); err != nil {
		log.Error("Failed to register Telegram handlers", "error", err)
		return 1
	}
	if err := telegram.SetCommands(ctx, tg, log, handlers.Commands(cfg)); err != nil {
		log.Warn("Failed to publish command menu", "error", err)
	}

	tDeps := tasks.TaskDeps{
		Logger:    log,
		Store:     store,
		Catalogue: catalogueStore,
		Syncer:    syncer,
		Config:    cfg,
	}
	sched, err := bot.NewScheduler(log, &cfg.Scheduler, tasks.RegisterAllTasks(tDeps))
	if err != nil {
		log.Error("Failed to create scheduler", "error", err)
		return 1
	}

	app := bot.NewBot(log, store, catalogueStore, syncer, tg, sched)

	log.Info("Starting bot...")
	runErr := app.Run(ctx)
	log.Info("Bot run loop finished. Initiating shutdown...")

	if runErr != nil && !errors.Is(runErr, context.Canceled) {
		log.Error("Bot stopped due to error", "error", runErr)
		time.Sleep(time.Second)
		return 1
	}

	log.Info("Bot stopped gracefully.")
	time.Sleep(time.Second)
	return 0
}
