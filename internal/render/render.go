// Package render turns a league snapshot into a View. Everything here is pure;
// writing the view somewhere is the job of the adapters.
package render

import (
	"fmt"
	"strings"

	"github.com/omarshaarawi/powerboard/internal/models"
)

const (
	DefaultLeagueTitle = "Power Rankings"
	EmptyMessage       = "No rankings available yet."
)

// RenderList maps every team to a card in snapshot order. An empty team list
// yields a single placeholder card.
func RenderList(snapshot models.LeagueSnapshot) models.View {
	view := models.View{
		League:    leagueTitle(snapshot.League),
		WeekLabel: WeekLabel(snapshot.Week),
		State:     models.StateRendered,
	}

	if len(snapshot.Teams) == 0 {
		view.Cards = []models.Card{{Kind: models.CardPlaceholder, Message: EmptyMessage}}
		return view
	}

	total := len(snapshot.Teams)
	view.Cards = make([]models.Card, 0, total)
	for i, team := range snapshot.Teams {
		view.Cards = append(view.Cards, teamCard(team, i+1, total))
	}
	return view
}

// RenderError produces a view whose list is replaced by a single error card.
func RenderError(message string) models.View {
	return models.View{
		League: DefaultLeagueTitle,
		State:  models.StateErrored,
		Cards:  []models.Card{{Kind: models.CardError, Message: message}},
	}
}

func teamCard(team models.Team, rank, total int) models.Card {
	badgeTier := ClassifyTier(rank, total)
	card := models.Card{
		Kind:        models.CardTeam,
		Rank:        rank,
		TeamName:    teamName(team.Name),
		SubLine:     SubLine(team),
		SummaryHTML: team.SummaryHTML,
		Tier:        CardTier(rank),
		Badges:      []models.Badge{{Label: TierLabel(badgeTier), Tier: badgeTier}},
	}

	if team.WinStreak != nil && *team.WinStreak != 0 {
		card.Badges = append(card.Badges, streakBadge(*team.WinStreak))
	}
	if len(team.Injuries) > 0 {
		card.Badges = append(card.Badges, models.Badge{
			Label: fmt.Sprintf("Injuries: %d", len(team.Injuries)),
			Tier:  models.TierBad,
		})
	}
	return card
}

// SubLine joins record, points-for and star players, e.g. "3-1 · PF 120 · Stars: A, B".
func SubLine(team models.Team) string {
	record := team.Record
	if record == "" {
		record = "-"
	}
	parts := []string{record, "PF " + models.FormatPoints(team.PointsFor)}
	if len(team.Stars) > 0 {
		parts = append(parts, "Stars: "+strings.Join(team.Stars, ", "))
	}
	return strings.Join(parts, " · ")
}

func WeekLabel(week string) string {
	if week == "" {
		return ""
	}
	return "Week " + week
}

func streakBadge(streak int) models.Badge {
	streak = min(max(streak, -models.MaxStreak), models.MaxStreak)
	if streak > 0 {
		return models.Badge{Label: fmt.Sprintf("W%d", streak), Tier: models.TierGood}
	}
	return models.Badge{Label: fmt.Sprintf("L%d", -streak), Tier: models.TierBad}
}

func leagueTitle(league string) string {
	if strings.TrimSpace(league) == "" {
		return DefaultLeagueTitle
	}
	return league
}

func teamName(name string) string {
	if strings.TrimSpace(name) == "" {
		return "-"
	}
	return name
}
