package recommend

import "github.com/rcliao/pm-philosophy/internal/model"

// topZoneThreshold is the share a zone needs to count as a top zone.
const topZoneThreshold = 15

// NewUserProfile derives a profile from raw zone scores.
func NewUserProfile(scores model.ZoneScores) model.UserProfile {
	return ProfileFromPercentages(scores.Complete(), model.Percentages(scores))
}

// ProfileFromPercentages ranks an already-normalized distribution.
// Ties are broken by zone enumeration order: the earliest tied zone ranks
// higher, so the blind spot is the latest of the lowest zones.
func ProfileFromPercentages(scores model.ZoneScores, pct model.ZoneVector) model.UserProfile {
	pct = pct.Complete()
	ranked := pct.Ranked()

	top := make([]model.ZoneID, 0, len(ranked))
	for _, r := range ranked {
		if r.Value > topZoneThreshold {
			top = append(top, r.Zone)
		}
	}

	return model.UserProfile{
		ZoneScores:      scores.Complete(),
		ZonePercentages: pct,
		PrimaryZone:     ranked[0].Zone,
		SecondaryZone:   ranked[1].Zone,
		BlindSpotZone:   ranked[len(ranked)-1].Zone,
		TopZones:        top,
	}
}
