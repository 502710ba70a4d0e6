// Package recommend turns quiz answers into a philosophy profile and ranks
// curated episodes against it.
package recommend

import (
	"errors"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/rcliao/pm-philosophy/internal/model"
	"github.com/rcliao/pm-philosophy/internal/quiz"
)

// ErrTooFewAnswers is returned by CheckAnswers when the quiz is not
// complete enough to profile.
var ErrTooFewAnswers = errors.New("too few answers")

// Catalog is the episode metadata source.
type Catalog interface {
	Episode(slug string) (model.Episode, bool)
	Episodes() []model.Episode
}

// EnrichmentStore is the curated per-episode data source. VerifiedSlugs
// fixes the candidate order for every request.
type EnrichmentStore interface {
	Enrichment(slug string) (*model.EpisodeEnrichment, bool)
	VerifiedSlugs() []string
}

// EngineParams holds the collaborators for NewEngine.
type EngineParams struct {
	Catalog     Catalog
	Enrichments EnrichmentStore
	Quiz        *quiz.Quiz    // defaults to quiz.Default()
	Ranking     RankingConfig // zero value means DefaultRankingConfig()
	MinAnswers  int           // defaults to quiz.DefaultMinAnswers
	Logger      *zap.Logger   // defaults to a no-op logger
}

// Engine produces recommendations over a fixed, read-only library. It
// holds no per-request state and is safe for concurrent use.
type Engine struct {
	catalog     Catalog
	enrichments EnrichmentStore
	quiz        *quiz.Quiz
	cfg         RankingConfig
	minAnswers  int
	logger      *zap.Logger
}

// NewEngine wires an engine from p.
func NewEngine(p EngineParams) (*Engine, error) {
	if p.Catalog == nil || p.Enrichments == nil {
		return nil, fmt.Errorf("engine needs a catalog and an enrichment store")
	}
	if p.Quiz == nil {
		p.Quiz = quiz.Default()
	}
	if p.Ranking == (RankingConfig{}) {
		p.Ranking = DefaultRankingConfig()
	}
	if err := p.Ranking.Validate(); err != nil {
		return nil, fmt.Errorf("ranking config: %w", err)
	}
	if p.MinAnswers <= 0 {
		p.MinAnswers = quiz.DefaultMinAnswers
	}
	if p.Logger == nil {
		p.Logger = zap.NewNop()
	}
	return &Engine{
		catalog:     p.Catalog,
		enrichments: p.Enrichments,
		quiz:        p.Quiz,
		cfg:         p.Ranking,
		minAnswers:  p.MinAnswers,
		logger:      p.Logger,
	}, nil
}

// Quiz returns the question set the engine scores against.
func (e *Engine) Quiz() *quiz.Quiz { return e.quiz }

// Ranking returns the active ranking parameters.
func (e *Engine) Ranking() RankingConfig { return e.cfg }

// MinAnswers is the smallest answer set CheckAnswers accepts.
func (e *Engine) MinAnswers() int { return e.minAnswers }

// CheckAnswers rejects unknown question or answer ids and answer sets
// smaller than the configured minimum.
func (e *Engine) CheckAnswers(answers quiz.Answers) error {
	if err := e.quiz.Validate(answers); err != nil {
		return err
	}
	if n := e.quiz.Answered(answers); n < e.minAnswers {
		return fmt.Errorf("%w: got %d, need at least %d", ErrTooFewAnswers, n, e.minAnswers)
	}
	return nil
}

// Profile scores answers and derives the user's profile.
func (e *Engine) Profile(answers quiz.Answers) model.UserProfile {
	return NewUserProfile(e.quiz.Score(answers))
}

// candidate is a scored episode before ranking.
type candidate struct {
	alignment  model.EpisodeAlignment
	enrichment *model.EpisodeEnrichment
}

// align scores one episode without any diversity penalty. It reports false
// when the slug lacks enrichment or catalog metadata.
func (e *Engine) align(profile *model.UserProfile, slug string) (candidate, bool) {
	enrichment, ok := e.enrichments.Enrichment(slug)
	if !ok {
		return candidate{}, false
	}
	episode, ok := e.catalog.Episode(slug)
	if !ok {
		return candidate{}, false
	}

	influence := enrichment.ZoneInfluence.Complete()
	quotes := FindBestMatchingQuotes(profile, enrichment.Quotes, e.cfg.MaxQuotes)
	var best *model.Quote
	if len(quotes) > 0 {
		best = &quotes[0]
	}

	a := model.EpisodeAlignment{
		Slug:           slug,
		Guest:          episode.Guest,
		Title:          episode.Title,
		AlignmentScore: AlignmentScore(profile, influence),
		MatchingQuotes: quotes,
		MatchReason:    MatchReason(profile, episode.Guest, influence, best),
		EpisodeZones:   influence,
	}
	if enrichment.GuestMetadata != nil {
		a.GuestType = enrichment.GuestMetadata.GuestType
	}
	return candidate{alignment: a, enrichment: enrichment}, true
}

// EpisodeAlignment scores a single episode for the profile, discounted for
// overlap with existing. It reports false for unknown or uncurated slugs.
func (e *Engine) EpisodeAlignment(profile model.UserProfile, slug string, existing []model.EpisodeAlignment) (model.EpisodeAlignment, bool) {
	c, ok := e.align(&profile, slug)
	if !ok {
		return model.EpisodeAlignment{}, false
	}
	a := c.alignment
	a.AlignmentScore = ApplyPenalty(a.AlignmentScore, SimilarityPenalty(a.EpisodeZones, existing))
	return a, true
}

// Generate runs the full pipeline for a set of answers. Callers are
// expected to have checked the answers with CheckAnswers.
func (e *Engine) Generate(answers quiz.Answers) model.Recommendations {
	return e.GenerateForProfile(e.Profile(answers))
}

// GenerateForProfile builds the primary and contrarian lists for profile.
func (e *Engine) GenerateForProfile(profile model.UserProfile) model.Recommendations {
	slugs := e.enrichments.VerifiedSlugs()
	candidates := make([]candidate, 0, len(slugs))
	for _, slug := range slugs {
		c, ok := e.align(&profile, slug)
		if !ok {
			e.logger.Debug("skipping episode without metadata or enrichment", zap.String("slug", slug))
			continue
		}
		candidates = append(candidates, c)
	}

	primary := e.selectPrimary(candidates)
	contrarian := e.selectContrarian(&profile, candidates, primary)

	e.logger.Debug("generated recommendations",
		zap.Int("candidates", len(candidates)),
		zap.Int("primary", len(primary)),
		zap.Int("contrarian", len(contrarian)),
		zap.String("primary_zone", string(profile.PrimaryZone)))

	return model.Recommendations{
		UserProfile:          profile,
		Primary:              primary,
		Contrarian:           contrarian,
		BlindSpotDescription: model.BlindSpotDescription(profile.BlindSpotZone),
	}
}

// selectPrimary walks candidates best-first, discounting each for overlap
// with the picks so far. Once MinBeforeCutoff picks exist (and never
// before the first), a candidate whose discounted score falls below
// CutoffRatio of the latest pick is passed over.
func (e *Engine) selectPrimary(candidates []candidate) []model.EpisodeAlignment {
	ranked := make([]candidate, len(candidates))
	copy(ranked, candidates)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].alignment.AlignmentScore > ranked[j].alignment.AlignmentScore
	})

	primary := make([]model.EpisodeAlignment, 0, e.cfg.PrimaryLimit)
	for _, c := range ranked {
		if len(primary) >= e.cfg.PrimaryLimit {
			break
		}
		penalty := SimilarityPenalty(c.alignment.EpisodeZones, primary)
		adjusted := ApplyPenalty(c.alignment.AlignmentScore, penalty)
		if len(primary) > 0 && len(primary) >= e.cfg.MinBeforeCutoff {
			last := primary[len(primary)-1].AlignmentScore
			if float64(adjusted) < float64(last)*e.cfg.CutoffRatio {
				continue
			}
		}
		a := c.alignment
		a.AlignmentScore = adjusted
		primary = append(primary, a)
	}

	sort.SliceStable(primary, func(i, j int) bool {
		return primary[i].AlignmentScore > primary[j].AlignmentScore
	})
	return primary
}

// selectContrarian picks episodes outside the primary list that carry a
// resolvable challenging quote, in verified order, then orders them by the
// episode's weight in the user's blind spot.
func (e *Engine) selectContrarian(profile *model.UserProfile, candidates []candidate, primary []model.EpisodeAlignment) []model.EpisodeAlignment {
	taken := make(map[string]bool, len(primary))
	for _, p := range primary {
		taken[p.Slug] = true
	}

	out := make([]model.EpisodeAlignment, 0, e.cfg.ContrarianLimit)
	for _, c := range candidates {
		if len(out) >= e.cfg.ContrarianLimit {
			break
		}
		if taken[c.alignment.Slug] {
			continue
		}
		pick, ok := FindBestContrarianQuote(profile, c.enrichment)
		if !ok {
			continue
		}
		a := c.alignment
		a.MatchingQuotes = []model.Quote{pick.Quote}
		a.MatchReason = fmt.Sprintf("Challenges your thinking: \"%s\"", pick.Why)
		a.Contrarian = &pick
		out = append(out, a)
	}

	blind := profile.BlindSpotZone
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].EpisodeZones.Get(blind) > out[j].EpisodeZones.Get(blind)
	})
	return out
}
