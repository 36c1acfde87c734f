package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaults(t *testing.T) {
	cfg, err := New()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.ListenAddr)
	assert.Equal(t, "data", cfg.Server.DataDir)
	assert.Equal(t, "http://localhost:8080/data/chat_prompt.json", cfg.Snapshot.URL)
	assert.Zero(t, cfg.Snapshot.Timeout)
	assert.False(t, cfg.Render.SanitizeSummaries)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.False(t, cfg.TelegramBot.Enabled())
	assert.False(t, cfg.Schedule.Enabled())
	assert.Equal(t, "America/Chicago", cfg.Schedule.Location)
}

func TestNewOverrides(t *testing.T) {
	t.Setenv("LISTEN_ADDR", ":9000")
	t.Setenv("SNAPSHOT_URL", "https://example.com/chat_prompt.json")
	t.Setenv("SNAPSHOT_TIMEOUT", "5s")
	t.Setenv("SANITIZE_SUMMARIES", "true")
	t.Setenv("TELEGRAM_TOKEN", "token")
	t.Setenv("CHAT_ID", "42")
	t.Setenv("POST_SCHEDULE", "30 7 * * 3")
	t.Setenv("SCHEDULE_TZ", "UTC")

	cfg, err := New()
	require.NoError(t, err)

	assert.Equal(t, ":9000", cfg.Server.ListenAddr)
	assert.Equal(t, "https://example.com/chat_prompt.json", cfg.Snapshot.URL)
	assert.Equal(t, 5*time.Second, cfg.Snapshot.Timeout)
	assert.True(t, cfg.Render.SanitizeSummaries)
	assert.True(t, cfg.TelegramBot.Enabled())
	assert.Equal(t, int64(42), cfg.TelegramBot.ChatID)
	assert.True(t, cfg.Schedule.Enabled())
	assert.Equal(t, "UTC", cfg.Schedule.Location)
}

func TestNewRejectsInvalidSchedule(t *testing.T) {
	cases := map[string]map[string]string{
		"bad cron": {
			"TELEGRAM_TOKEN": "token", "CHAT_ID": "1", "POST_SCHEDULE": "every tuesday",
		},
		"bad timezone": {
			"TELEGRAM_TOKEN": "token", "CHAT_ID": "1", "POST_SCHEDULE": "0 8 * * 2", "SCHEDULE_TZ": "Mars/Olympus",
		},
		"no bot": {
			"POST_SCHEDULE": "0 8 * * 2",
		},
		"no chat": {
			"TELEGRAM_TOKEN": "token", "POST_SCHEDULE": "0 8 * * 2",
		},
	}

	for name, env := range cases {
		t.Run(name, func(t *testing.T) {
			for k, v := range env {
				t.Setenv(k, v)
			}
			_, err := New()
			assert.Error(t, err)
		})
	}
}

func TestNewRejectsNegativeTimeout(t *testing.T) {
	t.Setenv("SNAPSHOT_TIMEOUT", "-1s")
	_, err := New()
	assert.Error(t, err)
}
