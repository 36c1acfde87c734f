package bot

import (
	"context"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/omarshaarawi/powerboard/internal/models"
	"github.com/omarshaarawi/powerboard/internal/service"
)

const helpText = "Available commands:\n" +
	"/rankings - Show the current power rankings\n" +
	"/refresh - Reload the rankings data and show it\n" +
	"/team <name> - Show one team's card"

// Rankings is the part of the rankings service the bot talks to.
type Rankings interface {
	Refresh(ctx context.Context, trigger service.Trigger) models.View
	LatestOrRefresh(ctx context.Context) models.View
	FindTeam(name string) (models.Card, bool)
}

type Handler struct {
	rankings Rankings
}

func NewHandler(rankings Rankings) *Handler {
	return &Handler{rankings: rankings}
}

func (h *Handler) HandleCommand(ctx context.Context, update tgbotapi.Update) tgbotapi.MessageConfig {
	msg := tgbotapi.NewMessage(update.Message.Chat.ID, "")
	command := strings.ToLower(update.Message.Command())
	args := strings.TrimSpace(update.Message.CommandArguments())
	msg.ParseMode = service.ParseMode

	switch command {
	case "start":
		msg.Text = service.EscapeMarkdown("Welcome to Powerboard! Use /help to see available commands.")
	case "help":
		msg.Text = service.EscapeMarkdown(helpText)
	case "rankings":
		msg.Text = service.FormatMarkdown(h.rankings.LatestOrRefresh(ctx))
	case "refresh":
		msg.Text = service.FormatMarkdown(h.rankings.Refresh(ctx, service.TriggerManual))
	case "team":
		h.handleTeam(ctx, &msg, args)
	default:
		msg.Text = service.EscapeMarkdown("Unknown command. Use /help to see available commands.")
	}

	return msg
}

func (h *Handler) handleTeam(ctx context.Context, msg *tgbotapi.MessageConfig, name string) {
	if name == "" {
		msg.Text = service.EscapeMarkdown("Please provide a team name. Usage: /team <team name>")
		return
	}
	// Make sure there is something to search.
	h.rankings.LatestOrRefresh(ctx)

	card, ok := h.rankings.FindTeam(name)
	if !ok {
		msg.Text = service.EscapeMarkdown(fmt.Sprintf("No team found matching %q.", name))
		return
	}
	msg.Text = service.FormatCard(card)
}
