package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron/v2"

	"github.com/omarshaarawi/powerboard/internal/config"
	"github.com/omarshaarawi/powerboard/internal/models"
	"github.com/omarshaarawi/powerboard/internal/service"
)

const postTimeout = time.Minute

// Refresher reloads the rankings.
type Refresher interface {
	Refresh(ctx context.Context, trigger service.Trigger) models.View
}

type Scheduler struct {
	s           gocron.Scheduler
	cfg         config.Schedule
	rankings    Refresher
	sendMessage func(string) error
	logger      *slog.Logger
}

func NewScheduler(cfg config.Schedule, rankings Refresher, sendMessage func(string) error, logger *slog.Logger) (*Scheduler, error) {
	if logger == nil {
		logger = slog.Default()
	}

	location, err := time.LoadLocation(cfg.Location)
	if err != nil {
		logger.Error("Failed to load location, using UTC", "location", cfg.Location, "error", err)
		location = time.UTC
	}

	s, err := gocron.NewScheduler(
		gocron.WithLocation(location),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}

	return &Scheduler{
		s:           s,
		cfg:         cfg,
		rankings:    rankings,
		sendMessage: sendMessage,
		logger:      logger,
	}, nil
}

func (s *Scheduler) Start() error {
	// Rankings post, e.g. "30 7 * * 2" for Tuesday 7:30.
	_, err := s.s.NewJob(
		gocron.CronJob(s.cfg.Cron, false),
		gocron.NewTask(s.postRankings),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return fmt.Errorf("failed to create rankings job: %w", err)
	}

	s.s.Start()
	s.logger.Info("Scheduler started", "cron", s.cfg.Cron, "location", s.cfg.Location)
	return nil
}

func (s *Scheduler) Stop() error {
	return s.s.Shutdown()
}

func (s *Scheduler) postRankings() {
	ctx, cancel := context.WithTimeout(context.Background(), postTimeout)
	defer cancel()

	view := s.rankings.Refresh(ctx, service.TriggerSchedule)
	if err := s.sendMessage(service.FormatMarkdown(view)); err != nil {
		s.logger.Error("Failed to post rankings", "error", err)
	}
}
