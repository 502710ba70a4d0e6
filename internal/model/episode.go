package model

// Episode is one entry of the static episode catalog.
type Episode struct {
	Slug            string   `json:"slug" validate:"required"`
	Guest           string   `json:"guest" validate:"required"`
	Company         string   `json:"company,omitempty"`
	TopSkills       []string `json:"topSkills,omitempty"`
	Title           string   `json:"title" validate:"required"`
	PublishDate     string   `json:"publishDate,omitempty"`
	Duration        string   `json:"duration,omitempty"`
	DurationSeconds int      `json:"durationSeconds,omitempty" validate:"min=0"`
	ViewCount       int      `json:"viewCount,omitempty" validate:"min=0"`
	YouTubeURL      string   `json:"youtubeUrl,omitempty"`
	VideoID         string   `json:"videoId,omitempty"`
	Description     string   `json:"description,omitempty"`
	Keywords        []string `json:"keywords,omitempty"`
	DialogueCount   int      `json:"dialogueCount,omitempty"`
	KeyQuotesCount  int      `json:"keyQuotesCount,omitempty"`
	ContrarianCount int      `json:"contrarianCount,omitempty"`
}

// QuoteSource locates a quote in its transcript.
type QuoteSource struct {
	Slug      string `json:"slug" validate:"required"`
	Path      string `json:"path"`
	LineStart int    `json:"lineStart" validate:"min=0"`
	LineEnd   int    `json:"lineEnd" validate:"min=0"`
}

// Quote is a verified, zone-tagged excerpt from one episode.
type Quote struct {
	ID        string      `json:"id" validate:"required"`
	Text      string      `json:"text" validate:"required"`
	Speaker   string      `json:"speaker" validate:"required"`
	Timestamp string      `json:"timestamp" validate:"required"`
	Zones     []ZoneID    `json:"zones" validate:"unique,dive,zone"`
	Themes    []string    `json:"themes"`
	Source    QuoteSource `json:"source"`
}

// HasZone reports whether the quote is tagged with z.
func (q Quote) HasZone(z ZoneID) bool {
	for _, id := range q.Zones {
		if id == z {
			return true
		}
	}
	return false
}

// ContrarianCandidate points at a quote in the same episode that
// challenges the listed zones.
type ContrarianCandidate struct {
	QuoteID      string   `json:"quoteId" validate:"required"`
	RelatedZones []ZoneID `json:"related_zones" validate:"dive,zone"`
	Why          string   `json:"why"`
}

// RelatesTo reports whether z is among the candidate's related zones.
func (c ContrarianCandidate) RelatesTo(z ZoneID) bool {
	for _, id := range c.RelatedZones {
		if id == z {
			return true
		}
	}
	return false
}

// GuestMetadata describes the guest for diversity and display.
type GuestMetadata struct {
	GuestType     string   `json:"guest_type,omitempty"`
	CompanyStage  string   `json:"company_stage,omitempty"`
	PrimaryTopics []string `json:"primary_topics,omitempty"`
}

// EpisodeEnrichment is the curated, per-episode record used for matching.
type EpisodeEnrichment struct {
	Slug                 string                `json:"slug" validate:"required"`
	Quotes               []Quote               `json:"quotes" validate:"dive"`
	ZoneInfluence        ZoneVector            `json:"zone_influence" validate:"dive,keys,zone,endkeys,min=0"`
	ContrarianCandidates []ContrarianCandidate `json:"contrarian_candidates" validate:"dive"`
	Takeaways            []string              `json:"takeaways"`
	Themes               []string              `json:"themes"`
	GuestMetadata        *GuestMetadata        `json:"guest_metadata,omitempty"`
}

// QuoteByID resolves id against the episode's own quotes.
func (e *EpisodeEnrichment) QuoteByID(id string) (Quote, bool) {
	for _, q := range e.Quotes {
		if q.ID == id {
			return q, true
		}
	}
	return Quote{}, false
}
