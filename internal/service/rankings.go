package service

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/omarshaarawi/powerboard/internal/logging"
	"github.com/omarshaarawi/powerboard/internal/metrics"
	"github.com/omarshaarawi/powerboard/internal/models"
	"github.com/omarshaarawi/powerboard/internal/render"
	"github.com/omarshaarawi/powerboard/internal/repository/memory"
)

// Fetcher loads the current league snapshot.
type Fetcher interface {
	Fetch(ctx context.Context) (*models.LeagueSnapshot, error)
}

// Trigger says what started a refresh. Page loads are not broadcast to live
// subscribers, otherwise every reload would make every other page reload.
type Trigger string

const (
	TriggerPageLoad Trigger = "page_load"
	TriggerManual   Trigger = "manual"
	TriggerSchedule Trigger = "schedule"
)

const subscriberBuffer = 4

type RankingsService struct {
	fetcher  Fetcher
	repo     *memory.Repository
	recorder *metrics.Recorder
	logger   *slog.Logger
	now      func() time.Time

	mu          sync.Mutex
	subscribers map[string]chan models.View
}

func NewRankingsService(fetcher Fetcher, repo *memory.Repository, recorder *metrics.Recorder, logger *slog.Logger) *RankingsService {
	if logger == nil {
		logger = slog.Default()
	}
	return &RankingsService{
		fetcher:     fetcher,
		repo:        repo,
		recorder:    recorder,
		logger:      logger,
		now:         time.Now,
		subscribers: make(map[string]chan models.View),
	}
}

// Refresh runs one fetch and render cycle. It never fails: fetch, parse and
// origin errors come back as an error view. The result is committed only if
// no newer refresh has committed first; a stale result is still returned to
// the caller that asked for it.
func (s *RankingsService) Refresh(ctx context.Context, trigger Trigger) models.View {
	generation := s.repo.Begin()
	logger := s.logger.With(logging.FieldTrigger, string(trigger), logging.FieldGeneration, generation)
	start := s.now()

	var view models.View
	snapshot, err := s.fetcher.Fetch(ctx)
	outcome := outcomeFor(err)
	if err != nil {
		logger.Error("Error fetching rankings", "error", err, logging.FieldOutcome, outcome)
		view = render.RenderError(errorMessage(err))
		if previous, ok := s.repo.GetView(); ok {
			view.League = previous.League
			view.WeekLabel = previous.WeekLabel
		}
	} else {
		view = render.RenderList(*snapshot)
	}
	view.Generation = generation
	view.RenderedAt = s.now()

	duration := view.RenderedAt.Sub(start)
	s.recorder.RecordRefresh(outcome, duration)

	if !s.repo.Commit(generation, view) {
		s.recorder.RecordStale()
		logger.Info("Dropping stale rankings", logging.FieldDurationMS, duration.Milliseconds())
		return view
	}

	if err == nil {
		logger.Info("Rankings rendered",
			logging.FieldTeams, len(snapshot.Teams),
			logging.FieldDurationMS, duration.Milliseconds(),
		)
	}
	if trigger != TriggerPageLoad {
		s.publish(view)
	}
	return view
}

// Latest returns the last committed view.
func (s *RankingsService) Latest() (models.View, bool) {
	return s.repo.GetView()
}

// LatestOrRefresh returns the last committed view, refreshing first when
// nothing has been rendered yet.
func (s *RankingsService) LatestOrRefresh(ctx context.Context) models.View {
	if view, ok := s.Latest(); ok {
		return view
	}
	return s.Refresh(ctx, TriggerPageLoad)
}

func (s *RankingsService) State() models.State {
	return s.repo.GetState()
}

// Subscribe registers a listener for committed views. The channel is closed
// by Unsubscribe.
func (s *RankingsService) Subscribe() (string, <-chan models.View) {
	id := uuid.NewString()
	ch := make(chan models.View, subscriberBuffer)

	s.mu.Lock()
	s.subscribers[id] = ch
	s.mu.Unlock()

	s.recorder.SubscriberAdded()
	return id, ch
}

func (s *RankingsService) Unsubscribe(id string) {
	s.mu.Lock()
	ch, ok := s.subscribers[id]
	delete(s.subscribers, id)
	s.mu.Unlock()

	if ok {
		close(ch)
		s.recorder.SubscriberRemoved()
	}
}

func (s *RankingsService) publish(view models.View) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, ch := range s.subscribers {
		select {
		case ch <- view:
		default:
			s.logger.Warn("Subscriber too slow, dropping update", "subscriber", id)
		}
	}
}
