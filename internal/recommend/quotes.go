package recommend

import (
	"sort"

	"github.com/rcliao/pm-philosophy/internal/model"
)

// Quote weights by how central the zone is to the user.
const (
	primaryQuoteWeight   = 3.0
	secondaryQuoteWeight = 2.0
	otherQuoteWeight     = 1.0
)

type scoredQuote struct {
	quote model.Quote
	score float64
}

// QuoteRelevance scores a quote against the profile: each tagged zone the
// user holds contributes its share, weighted up for the primary and
// secondary zones.
func QuoteRelevance(profile *model.UserProfile, q model.Quote) float64 {
	score := 0.0
	for _, z := range q.Zones {
		pct := profile.Strength(z)
		if pct <= 0 {
			continue
		}
		weight := otherQuoteWeight
		switch z {
		case profile.PrimaryZone:
			weight = primaryQuoteWeight
		case profile.SecondaryZone:
			weight = secondaryQuoteWeight
		}
		score += weight * pct / 100
	}
	return score
}

// FindBestMatchingQuotes returns up to limit quotes with positive
// relevance, highest first. Equal scores keep source order.
func FindBestMatchingQuotes(profile *model.UserProfile, quotes []model.Quote, limit int) []model.Quote {
	scored := make([]scoredQuote, 0, len(quotes))
	for _, q := range quotes {
		if s := QuoteRelevance(profile, q); s > 0 {
			scored = append(scored, scoredQuote{quote: q, score: s})
		}
	}
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].score > scored[j].score
	})

	if limit >= 0 && len(scored) > limit {
		scored = scored[:limit]
	}
	out := make([]model.Quote, 0, len(scored))
	for _, s := range scored {
		out = append(out, s.quote)
	}
	return out
}
