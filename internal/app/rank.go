package app

import (
	"math"

	"drb-quiz-service/internal/domain"
)

type rankTier struct {
	minPercent float64
	rank       domain.Rank
}

// Highest threshold first; the first tier whose lower bound is met wins.
var rankTiers = []rankTier{
	{90, domain.Rank{Label: "LEGENDARY DEGEN", Emoji: "👑"}},
	{70, domain.Rank{Label: "CRYPTO CHAD", Emoji: "💎"}},
	{50, domain.Rank{Label: "DIAMOND HANDS", Emoji: "🚀"}},
	{30, domain.Rank{Label: "PAPER HANDS", Emoji: "📄"}},
	{0, domain.Rank{Label: "NGMI", Emoji: "💀"}},
}

// Percentage returns score/total*100, or 0 when total is not positive.
func Percentage(score, total int) float64 {
	if total <= 0 {
		return 0
	}
	return float64(score) / float64(total) * 100
}

// RoundedPercentage rounds Percentage half away from zero.
func RoundedPercentage(score, total int) int {
	return int(math.Round(Percentage(score, total)))
}

// DeriveRank maps a final score to its rank label and emoji.
func DeriveRank(score, total int) domain.Rank {
	pct := Percentage(score, total)
	for _, tier := range rankTiers {
		if pct >= tier.minPercent {
			return tier.rank
		}
	}
	return rankTiers[len(rankTiers)-1].rank
}
