package render

import "github.com/omarshaarawi/powerboard/internal/models"

// ClassifyTier splits the league into thirds by rank position. It drives the
// tier badge.
func ClassifyTier(rank, total int) models.Tier {
	if total <= 0 {
		return models.TierBad
	}
	ratio := float64(rank) / float64(total)
	switch {
	case ratio <= 0.33:
		return models.TierGood
	case ratio <= 0.66:
		return models.TierMid
	default:
		return models.TierBad
	}
}

// CardTier colors the card itself with fixed cut-offs that do not depend on
// league size. It intentionally differs from ClassifyTier.
func CardTier(rank int) models.Tier {
	switch {
	case rank <= 6:
		return models.TierGood
	case rank <= 9:
		return models.TierMid
	default:
		return models.TierBad
	}
}

var tierLabels = map[models.Tier]string{
	models.TierGood: "Contender",
	models.TierMid:  "Bubble",
	models.TierBad:  "Long shot",
}

func TierLabel(tier models.Tier) string {
	return tierLabels[tier]
}
