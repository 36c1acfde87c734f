package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/omarshaarawi/powerboard/internal/config"
	"github.com/omarshaarawi/powerboard/internal/metrics"
	"github.com/omarshaarawi/powerboard/internal/render"
	"github.com/omarshaarawi/powerboard/internal/service"
)

const shutdownTimeout = 10 * time.Second

type Server struct {
	cfg      config.Server
	rankings *service.RankingsService
	page     *render.Page
	recorder *metrics.Recorder
	logger   *slog.Logger
	router   chi.Router
}

func New(cfg config.Server, rankings *service.RankingsService, page *render.Page, recorder *metrics.Recorder, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		cfg:      cfg,
		rankings: rankings,
		page:     page,
		recorder: recorder,
		logger:   logger,
	}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(s.logger, s.recorder))

	r.Get("/", s.handlePage)
	r.Post("/refresh", s.handleRefresh)
	r.Get("/api/rankings", s.handleRankings)
	r.Get("/api/teams", s.handleTeam)
	r.Get("/ws", s.handleLive)
	r.Handle("/data/*", http.StripPrefix("/data/", http.FileServer(http.Dir(s.cfg.DataDir))))
	r.Get("/healthz", healthCheckHandler)
	r.Handle("/metrics", s.recorder.Handler())
	return r
}

func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves until ctx is cancelled, then drains in-flight requests.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.ListenAddr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("HTTP server listening", "addr", s.cfg.ListenAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}
