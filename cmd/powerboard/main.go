package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/omarshaarawi/powerboard/internal/api/snapshot"
	"github.com/omarshaarawi/powerboard/internal/bot"
	"github.com/omarshaarawi/powerboard/internal/config"
	"github.com/omarshaarawi/powerboard/internal/logging"
	"github.com/omarshaarawi/powerboard/internal/metrics"
	"github.com/omarshaarawi/powerboard/internal/render"
	"github.com/omarshaarawi/powerboard/internal/repository/memory"
	"github.com/omarshaarawi/powerboard/internal/scheduler"
	"github.com/omarshaarawi/powerboard/internal/server"
	"github.com/omarshaarawi/powerboard/internal/service"
)

func main() {
	if err := run(); err != nil {
		slog.Error("Error running application", "error", err)
		os.Exit(1)
	}
}

func run() error {
	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file loaded", "error", err)
	}

	cfg, err := config.New()
	if err != nil {
		return err
	}

	logger := logging.New(cfg.Log)
	slog.SetDefault(logger)

	recorder := metrics.NewRecorder()
	client := snapshot.NewClient(cfg.Snapshot)
	repo := memory.NewRepository()
	rankings := service.NewRankingsService(client, repo, recorder, logger)

	page, err := render.NewPage(cfg.Render)
	if err != nil {
		return err
	}
	srv := server.New(cfg.Server, rankings, page, recorder, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.TelegramBot.Enabled() {
		telegramBot, err := bot.NewTelegramBot(cfg.TelegramBot.Token, cfg.TelegramBot.ChatID, rankings, logger)
		if err != nil {
			return err
		}

		go func() {
			if err := telegramBot.Start(ctx); err != nil {
				logger.Error("Error running telegram bot", "error", err)
			}
		}()

		if cfg.Schedule.Enabled() {
			sched, err := scheduler.NewScheduler(cfg.Schedule, rankings, telegramBot.SendMessage, logger)
			if err != nil {
				return err
			}
			if err := sched.Start(); err != nil {
				return err
			}
			defer func() {
				if err := sched.Stop(); err != nil {
					logger.Error("Error stopping scheduler", "error", err)
				}
			}()
		}
	}

	logger.Info("Serving power rankings", "snapshot_url", cfg.Snapshot.URL, "data_dir", cfg.Server.DataDir)
	if err := srv.Run(ctx); err != nil {
		return err
	}
	logger.Info("Shutting down gracefully...")
	return nil
}
