package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/robfig/cron/v3"
)

type Config struct {
	Server      Server
	Snapshot    Snapshot
	Render      Render
	Log         Log
	TelegramBot TelegramBot
	Schedule    Schedule
}

type Server struct {
	ListenAddr string `envconfig:"LISTEN_ADDR" default:":8080"`
	DataDir    string `envconfig:"DATA_DIR" default:"data"`
}

type Snapshot struct {
	URL     string        `envconfig:"SNAPSHOT_URL" default:"http://localhost:8080/data/chat_prompt.json"`
	Timeout time.Duration `envconfig:"SNAPSHOT_TIMEOUT" default:"0s"`
}

type Render struct {
	SanitizeSummaries bool `envconfig:"SANITIZE_SUMMARIES" default:"false"`
}

type Log struct {
	Level  string `envconfig:"LOG_LEVEL" default:"info"`
	Format string `envconfig:"LOG_FORMAT" default:"text"`
}

// TelegramBot is optional; an empty token disables the bot.
type TelegramBot struct {
	Token  string `envconfig:"TELEGRAM_TOKEN"`
	ChatID int64  `envconfig:"CHAT_ID"`
}

func (t TelegramBot) Enabled() bool { return t.Token != "" }

// Schedule posts the rankings to the Telegram chat on a standard 5-field cron expression.
type Schedule struct {
	Cron     string `envconfig:"POST_SCHEDULE"`
	Location string `envconfig:"SCHEDULE_TZ" default:"America/Chicago"`
}

func (s Schedule) Enabled() bool { return s.Cron != "" }

func New() (*Config, error) {
	var c Config
	err := envconfig.Process("", &c)
	if err != nil {
		return nil, err
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Config) validate() error {
	if c.Snapshot.URL == "" {
		return fmt.Errorf("SNAPSHOT_URL must not be empty")
	}
	if c.Snapshot.Timeout < 0 {
		return fmt.Errorf("SNAPSHOT_TIMEOUT must not be negative, got %s", c.Snapshot.Timeout)
	}
	if c.Schedule.Enabled() {
		if !c.TelegramBot.Enabled() {
			return fmt.Errorf("POST_SCHEDULE requires TELEGRAM_TOKEN")
		}
		if c.TelegramBot.ChatID == 0 {
			return fmt.Errorf("POST_SCHEDULE requires CHAT_ID")
		}
		if _, err := cron.ParseStandard(c.Schedule.Cron); err != nil {
			return fmt.Errorf("invalid POST_SCHEDULE %q: %w", c.Schedule.Cron, err)
		}
		if _, err := time.LoadLocation(c.Schedule.Location); err != nil {
			return fmt.Errorf("invalid SCHEDULE_TZ %q: %w", c.Schedule.Location, err)
		}
	}
	return nil
}
