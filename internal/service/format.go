package service

import (
	"fmt"
	"html"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/microcosm-cc/bluemonday"

	"github.com/omarshaarawi/powerboard/internal/models"
)

// ParseMode is the Telegram parse mode FormatMarkdown output is written for.
// Unlike legacy Markdown it honors escapes inside bold and italic entities.
const ParseMode = tgbotapi.ModeMarkdownV2

var (
	stripTags = bluemonday.StrictPolicy()

	tierEmoji = map[models.Tier]string{
		models.TierGood: "🟢",
		models.TierMid:  "🟡",
		models.TierBad:  "🔴",
	}
)

// FormatMarkdown renders a view for Telegram's MarkdownV2 parse mode.
func FormatMarkdown(view models.View) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("🏆 *%s*", EscapeMarkdown(view.League)))
	if view.WeekLabel != "" {
		sb.WriteString(fmt.Sprintf(" \\(%s\\)", EscapeMarkdown(view.WeekLabel)))
	}
	sb.WriteString("\n\n")

	for _, card := range view.Cards {
		switch card.Kind {
		case models.CardTeam:
			sb.WriteString(FormatCard(card))
			sb.WriteString("\n")
		case models.CardError:
			sb.WriteString(fmt.Sprintf("⚠️ %s\n", EscapeMarkdown(card.Message)))
		default:
			sb.WriteString(fmt.Sprintf("%s\n", EscapeMarkdown(card.Message)))
		}
	}

	return strings.TrimRight(sb.String(), "\n")
}

// FormatCard renders a single ranked team.
func FormatCard(card models.Card) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d\\. %s *%s*", card.Rank, tierEmoji[card.Tier], EscapeMarkdown(card.TeamName)))
	if len(card.Badges) > 0 {
		labels := make([]string, 0, len(card.Badges))
		for _, badge := range card.Badges {
			labels = append(labels, EscapeMarkdown(badge.Label))
		}
		sb.WriteString(fmt.Sprintf(" \\(%s\\)", strings.Join(labels, ", ")))
	}
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("   %s\n", EscapeMarkdown(card.SubLine)))
	if summary := summaryText(card.SummaryHTML); summary != "" {
		sb.WriteString(fmt.Sprintf("   _%s_\n", EscapeMarkdown(summary)))
	}
	return sb.String()
}

func summaryText(raw string) string {
	text := html.UnescapeString(stripTags.Sanitize(raw))
	return strings.Join(strings.Fields(text), " ")
}

// EscapeMarkdown makes s literal MarkdownV2 text. EscapeText leaves the
// backslash itself alone, so that is escaped first.
func EscapeMarkdown(s string) string {
	return tgbotapi.EscapeText(ParseMode, strings.ReplaceAll(s, `\`, `\\`))
}
