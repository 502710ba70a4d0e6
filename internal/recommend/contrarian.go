package recommend

import (
	"sort"

	"github.com/rcliao/pm-philosophy/internal/model"
)

// Contrarian candidate weights by which of the user's zones they challenge.
const (
	contrarianPrimaryWeight   = 3
	contrarianSecondaryWeight = 2
	contrarianBlindSpotWeight = 1
)

// ContrarianScore rates how directly a candidate challenges the user.
func ContrarianScore(profile *model.UserProfile, c model.ContrarianCandidate) int {
	score := 0
	if c.RelatesTo(profile.PrimaryZone) {
		score += contrarianPrimaryWeight
	}
	if c.RelatesTo(profile.SecondaryZone) {
		score += contrarianSecondaryWeight
	}
	if c.RelatesTo(profile.BlindSpotZone) {
		score += contrarianBlindSpotWeight
	}
	return score
}

// FindBestContrarianQuote picks the episode's most challenging candidate
// whose quote resolves. Candidates that point at a missing quote are
// skipped in favour of the next best. It reports false when none resolve.
func FindBestContrarianQuote(profile *model.UserProfile, enrichment *model.EpisodeEnrichment) (model.ContrarianPick, bool) {
	if enrichment == nil || len(enrichment.ContrarianCandidates) == 0 {
		return model.ContrarianPick{}, false
	}

	type scored struct {
		candidate model.ContrarianCandidate
		score     int
	}
	ranked := make([]scored, 0, len(enrichment.ContrarianCandidates))
	for _, c := range enrichment.ContrarianCandidates {
		ranked = append(ranked, scored{candidate: c, score: ContrarianScore(profile, c)})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].score > ranked[j].score
	})

	for _, r := range ranked {
		if q, ok := enrichment.QuoteByID(r.candidate.QuoteID); ok {
			return model.ContrarianPick{Quote: q, Why: r.candidate.Why}, true
		}
	}
	return model.ContrarianPick{}, false
}
