package model

// UserProfile summarises a user's quiz-driven zone distribution.
type UserProfile struct {
	ZoneScores      ZoneScores `json:"zone_scores"`
	ZonePercentages ZoneVector `json:"zone_percentages"`
	PrimaryZone     ZoneID     `json:"primary_zone"`
	SecondaryZone   ZoneID     `json:"secondary_zone"`
	BlindSpotZone   ZoneID     `json:"blind_spot_zone"`
	TopZones        []ZoneID   `json:"top_zones"`
}

// Strength returns the user's percentage in z.
func (p *UserProfile) Strength(z ZoneID) float64 {
	return p.ZonePercentages.Get(z)
}

// ContrarianPick is the challenging quote chosen for an episode.
type ContrarianPick struct {
	Quote Quote  `json:"quote"`
	Why   string `json:"why"`
}

// EpisodeAlignment is the engine's per-episode result.
type EpisodeAlignment struct {
	Slug           string          `json:"slug"`
	Guest          string          `json:"guest"`
	Title          string          `json:"title"`
	AlignmentScore int             `json:"alignment_score"`
	MatchingQuotes []Quote         `json:"matching_quotes"`
	MatchReason    string          `json:"match_reason"`
	EpisodeZones   ZoneVector      `json:"episode_zones"`
	Contrarian     *ContrarianPick `json:"contrarian,omitempty"`
	GuestType      string          `json:"guest_type,omitempty"`
}

// Recommendations is the full output of one recommendation request.
type Recommendations struct {
	UserProfile          UserProfile        `json:"user_profile"`
	Primary              []EpisodeAlignment `json:"primary"`
	Contrarian           []EpisodeAlignment `json:"contrarian"`
	BlindSpotDescription string             `json:"blind_spot_description"`
}
