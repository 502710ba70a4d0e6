package recommend

import (
	"math"

	"github.com/rcliao/pm-philosophy/internal/model"
)

// Scoring constants. Changing any of these changes every published score.
const (
	scoreScale = 120

	matchedZoneFloor = 0.1

	strongPrimaryInfluence = 0.25
	strongPrimaryBonus     = 0.3
	primaryInfluence       = 0.15
	primaryBonus           = 0.15
	secondaryInfluence     = 0.15
	secondaryBonus         = 0.1
	breadthZones           = 3
	breadthBonus           = 0.05

	overlapInfluence = 0.2
	overlapStep      = 0.1
	maxPenalty       = 0.3
)

// AlignmentScore rates how well an episode's zone influence fits the user,
// on a 0..100 scale.
func AlignmentScore(profile *model.UserProfile, influence model.ZoneVector) int {
	base := profile.ZonePercentages.Dot(influence) / 100
	matched := 0
	for _, z := range model.AllZones() {
		if profile.Strength(z)/100 > matchedZoneFloor && influence.Get(z) > matchedZoneFloor {
			matched++
		}
	}

	bonus := 0.0
	switch p := influence.Get(profile.PrimaryZone); {
	case p > strongPrimaryInfluence:
		bonus += strongPrimaryBonus
	case p > primaryInfluence:
		bonus += primaryBonus
	}
	if influence.Get(profile.SecondaryZone) > secondaryInfluence {
		bonus += secondaryBonus
	}
	if matched >= breadthZones {
		bonus += breadthBonus
	}

	score := int(math.Round((base + bonus) * scoreScale))
	if score > 100 {
		score = 100
	}
	return score
}

// SimilarityPenalty measures how much a candidate overlaps episodes that
// are already selected. Each zone where both carry strong influence adds a
// step; the worst overlap counts, capped at maxPenalty.
func SimilarityPenalty(candidate model.ZoneVector, selected []model.EpisodeAlignment) float64 {
	worst := 0.0
	for _, s := range selected {
		similarity := 0.0
		for _, z := range model.AllZones() {
			if candidate.Get(z) > overlapInfluence && s.EpisodeZones.Get(z) > overlapInfluence {
				similarity += overlapStep
			}
		}
		worst = math.Max(worst, similarity)
	}
	return math.Min(worst, maxPenalty)
}

// ApplyPenalty scales a score down by penalty and rounds.
func ApplyPenalty(score int, penalty float64) int {
	return int(math.Round(float64(score) * (1 - penalty)))
}
