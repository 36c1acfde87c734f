package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/omarshaarawi/powerboard/internal/config"
)

const (
	FieldTrigger    = "trigger"
	FieldGeneration = "generation"
	FieldOutcome    = "outcome"
	FieldTeams      = "teams"
	FieldDurationMS = "duration_ms"
)

// New returns a structured logger writing to stdout.
func New(cfg config.Log) *slog.Logger {
	return newLogger(os.Stdout, cfg)
}

func newLogger(w io.Writer, cfg config.Log) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLevel(cfg.Level)}
	if strings.EqualFold(cfg.Format, "json") {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func parseLevel(raw string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(raw))); err != nil {
		return slog.LevelInfo
	}
	return level
}
