package service

import (
	"strings"
	"unicode/utf8"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/omarshaarawi/powerboard/internal/models"
)

const (
	teamMatchThreshold = 0.5
	// Score given to names that contain the query's letters in order
	// ("cursed" in "Beyond Cursed") when the edit distance alone is too far.
	subsequenceScore = 0.75
	// Shorter queries are a subsequence of too many names to mean anything.
	minSubsequenceQuery = 3
)

// FindTeam looks a team up by name in the last committed view.
func (s *RankingsService) FindTeam(name string) (models.Card, bool) {
	view, ok := s.Latest()
	if !ok {
		return models.Card{}, false
	}
	return bestTeamMatch(view.TeamCards(), name)
}

func bestTeamMatch(cards []models.Card, query string) (models.Card, bool) {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return models.Card{}, false
	}

	bestScore := -1.0
	var best models.Card
	for _, card := range cards {
		name := strings.ToLower(card.TeamName)
		if name == query {
			return card, true
		}

		distance := fuzzy.LevenshteinDistance(query, name)
		longest := max(utf8.RuneCountInString(query), utf8.RuneCountInString(name))
		similarity := 1 - float64(distance)/float64(longest)
		if utf8.RuneCountInString(query) >= minSubsequenceQuery && fuzzy.Match(query, name) {
			similarity = max(similarity, subsequenceScore)
		}

		if similarity > teamMatchThreshold && similarity > bestScore {
			bestScore = similarity
			best = card
		}
	}
	return best, bestScore > 0
}
