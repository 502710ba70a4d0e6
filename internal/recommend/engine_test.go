package recommend

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/rcliao/pm-philosophy/internal/model"
	"github.com/rcliao/pm-philosophy/internal/quiz"
)

func enrichment(influence model.ZoneVector, withContrarian bool) *model.EpisodeEnrichment {
	e := &model.EpisodeEnrichment{
		Quotes: []model.Quote{
			quote("main", "Move fast, then move faster than anyone thinks is reasonable for your team.", model.ZoneVelocity),
			quote("pushback", "The best teams I know slow down on purpose.", model.ZonePerfection, model.ZoneChaos),
		},
		ZoneInfluence: influence,
	}
	if withContrarian {
		e.ContrarianCandidates = []model.ContrarianCandidate{
			{QuoteID: "pushback", RelatedZones: []model.ZoneID{model.ZoneVelocity}, Why: "speed is not free"},
		}
	}
	return e
}

// cutoffLibrary ranks alpha (82), beta (68), gamma (58) and delta (3) for
// speedProfile. After similarity discounts the first three land on 82, 61
// and 52, and delta falls under the 70% cutoff.
func cutoffLibrary() *fakeLibrary {
	lib := newFakeLibrary()
	lib.add("alpha", "Alice Anders", enrichment(model.ZoneVector{model.ZoneVelocity: 0.4, model.ZoneFocus: 0.2}, true))
	lib.add("gale", "Gil Gale", enrichment(model.ZoneVector{model.ZoneChaos: 0.9}, false))
	lib.add("beta", "Ben Bauer", enrichment(model.ZoneVector{model.ZoneVelocity: 0.4, model.ZoneFocus: 0.15}, true))
	lib.add("gamma", "Gus Grant", enrichment(model.ZoneVector{model.ZoneVelocity: 0.3}, true))
	lib.add("delta", "Dee Dunn", enrichment(model.ZoneVector{model.ZoneData: 0.5}, true))
	lib.add("epsilon", "Eve Ernst", enrichment(model.ZoneVector{model.ZoneChaos: 0.6}, true))
	lib.add("zeta", "Zed Zorn", enrichment(model.ZoneVector{model.ZoneChaos: 0.3}, true))
	return lib
}

func slugs(as []model.EpisodeAlignment) []string {
	out := make([]string, 0, len(as))
	for _, a := range as {
		out = append(out, a.Slug)
	}
	return out
}

func TestGenerateForProfile(t *testing.T) {
	e := newTestEngine(t, cutoffLibrary())
	recs := e.GenerateForProfile(speedProfile(t))

	if diff := cmp.Diff([]string{"alpha", "beta", "gamma"}, slugs(recs.Primary)); diff != "" {
		t.Errorf("primary mismatch (-want +got):\n%s", diff)
	}
	var scores []int
	for _, a := range recs.Primary {
		scores = append(scores, a.AlignmentScore)
	}
	if diff := cmp.Diff([]int{82, 61, 52}, scores); diff != "" {
		t.Errorf("primary scores mismatch (-want +got):\n%s", diff)
	}

	// gale has the strongest blind-spot influence but no contrarian
	// candidates, so it never appears.
	if diff := cmp.Diff([]string{"epsilon", "zeta", "delta"}, slugs(recs.Contrarian)); diff != "" {
		t.Errorf("contrarian mismatch (-want +got):\n%s", diff)
	}
	for _, c := range recs.Contrarian {
		if c.Contrarian == nil || c.Contrarian.Quote.ID != "pushback" {
			t.Fatalf("%s: missing contrarian pick", c.Slug)
		}
		if len(c.MatchingQuotes) != 1 || c.MatchingQuotes[0].ID != "pushback" {
			t.Errorf("%s: matching quotes should be the contrarian quote, got %+v", c.Slug, c.MatchingQuotes)
		}
		if c.MatchReason != `Challenges your thinking: "speed is not free"` {
			t.Errorf("%s: reason = %q", c.Slug, c.MatchReason)
		}
	}

	if recs.UserProfile.PrimaryZone != model.ZoneVelocity {
		t.Errorf("profile not carried through: %+v", recs.UserProfile)
	}
	if recs.BlindSpotDescription != model.BlindSpotDescription(model.ZoneChaos) {
		t.Errorf("blind spot description = %q", recs.BlindSpotDescription)
	}
}

func TestGenerateCapsAndDisjoint(t *testing.T) {
	lib := newFakeLibrary()
	for i, z := range model.AllZones() {
		for j := 0; j < 3; j++ {
			influence := model.ZoneVector{z: 0.2 + 0.1*float64(j), model.ZoneVelocity: 0.05 * float64(i)}
			lib.add(string(z)+"-"+string(rune('a'+j)), "Guest Number", enrichment(influence, true))
		}
	}
	e := newTestEngine(t, lib)

	profiles := []model.UserProfile{
		speedProfile(t),
		NewUserProfile(model.ZoneScores{model.ZoneData: 3, model.ZoneDiscovery: 2}),
		NewUserProfile(nil),
	}
	for _, p := range profiles {
		recs := e.GenerateForProfile(p)
		if len(recs.Primary) > 5 || len(recs.Contrarian) > 3 {
			t.Fatalf("caps exceeded: %d primary, %d contrarian", len(recs.Primary), len(recs.Contrarian))
		}
		seen := make(map[string]bool)
		for i, a := range recs.Primary {
			seen[a.Slug] = true
			if i > 0 && a.AlignmentScore > recs.Primary[i-1].AlignmentScore {
				t.Errorf("primary not sorted at %d", i)
			}
			if a.AlignmentScore < 0 || a.AlignmentScore > 100 {
				t.Errorf("%s: score %d out of range", a.Slug, a.AlignmentScore)
			}
		}
		for _, c := range recs.Contrarian {
			if seen[c.Slug] {
				t.Errorf("%s appears in both lists", c.Slug)
			}
		}
	}
}

func TestGenerateDeterministic(t *testing.T) {
	e := newTestEngine(t, cutoffLibrary())
	answers := quiz.Answers{
		"q1": "q1a", "q2": "q2d", "q3": "q3a", "q4": "q4b", "q5": "q5a",
		"q6": "q6c", "q7": "q7a", "q8": "q8a", "q9": "q9b", "q10": "q10a",
	}
	if err := e.CheckAnswers(answers); err != nil {
		t.Fatalf("CheckAnswers: %v", err)
	}

	first := e.Generate(answers)
	second := e.Generate(answers)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("repeated runs differ (-first +second):\n%s", diff)
	}
}

func TestGenerateSkipsUncataloged(t *testing.T) {
	lib := cutoffLibrary()
	delete(lib.episodes, "alpha")
	e := newTestEngine(t, lib)

	recs := e.GenerateForProfile(speedProfile(t))
	for _, a := range append(recs.Primary, recs.Contrarian...) {
		if a.Slug == "alpha" {
			t.Fatal("episode without catalog metadata was recommended")
		}
	}
	if len(recs.Primary) == 0 || recs.Primary[0].Slug != "beta" {
		t.Errorf("primary = %v", slugs(recs.Primary))
	}
}

func TestGenerateEmptyLibrary(t *testing.T) {
	e := newTestEngine(t, newFakeLibrary())
	recs := e.GenerateForProfile(speedProfile(t))
	if len(recs.Primary) != 0 || len(recs.Contrarian) != 0 {
		t.Errorf("expected empty lists, got %+v", recs)
	}
}

func TestEpisodeAlignment(t *testing.T) {
	lib := cutoffLibrary()
	lib.enriched["beta"].GuestMetadata = &model.GuestMetadata{GuestType: "founder"}
	e := newTestEngine(t, lib)
	p := speedProfile(t)

	alpha, ok := e.EpisodeAlignment(p, "alpha", nil)
	if !ok {
		t.Fatal("alpha should align")
	}
	if alpha.AlignmentScore != 82 || alpha.Guest != "Alice Anders" || alpha.Title != "Episode alpha" {
		t.Errorf("alpha = %+v", alpha)
	}
	// pushback still scores through the small perfection share.
	if len(alpha.MatchingQuotes) != 2 || alpha.MatchingQuotes[0].ID != "main" {
		t.Errorf("alpha quotes = %+v", alpha.MatchingQuotes)
	}
	if alpha.MatchReason != `Alice on speed: "Move fast, then move faster than anyone thinks is reasonable for your team"` {
		t.Errorf("alpha reason = %q", alpha.MatchReason)
	}
	if len(alpha.EpisodeZones) != model.NumZones {
		t.Errorf("episode zones should be complete, got %v", alpha.EpisodeZones)
	}

	beta, ok := e.EpisodeAlignment(p, "beta", []model.EpisodeAlignment{alpha})
	if !ok {
		t.Fatal("beta should align")
	}
	if beta.AlignmentScore != 61 {
		t.Errorf("discounted beta = %d, want 61", beta.AlignmentScore)
	}
	if beta.GuestType != "founder" {
		t.Errorf("guest type = %q", beta.GuestType)
	}

	if _, ok := e.EpisodeAlignment(p, "missing", nil); ok {
		t.Error("unknown slug should not align")
	}
}

func TestCheckAnswers(t *testing.T) {
	e := newTestEngine(t, newFakeLibrary())

	six := quiz.Answers{"q1": "q1a", "q2": "q2a", "q3": "q3a", "q4": "q4a", "q5": "q5a", "q6": "q6a"}
	if err := e.CheckAnswers(six); !errors.Is(err, ErrTooFewAnswers) {
		t.Errorf("six answers: err = %v, want ErrTooFewAnswers", err)
	}

	seven := quiz.Answers{"q7": "q7a"}
	for k, v := range six {
		seven[k] = v
	}
	if err := e.CheckAnswers(seven); err != nil {
		t.Errorf("seven answers: %v", err)
	}

	seven["q1"] = "bogus"
	if err := e.CheckAnswers(seven); err == nil || errors.Is(err, ErrTooFewAnswers) {
		t.Errorf("unknown answer: err = %v", err)
	}
}

func TestNewEngine(t *testing.T) {
	lib := newFakeLibrary()
	if _, err := NewEngine(EngineParams{}); err == nil {
		t.Error("expected error without collaborators")
	}
	bad := DefaultRankingConfig()
	bad.CutoffRatio = 1.5
	if _, err := NewEngine(EngineParams{Catalog: lib, Enrichments: lib, Ranking: bad}); err == nil {
		t.Error("expected ranking validation error")
	}

	e, err := NewEngine(EngineParams{Catalog: lib, Enrichments: lib})
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	if diff := cmp.Diff(DefaultRankingConfig(), e.Ranking()); diff != "" {
		t.Errorf("default ranking mismatch (-want +got):\n%s", diff)
	}
	if e.Quiz().Len() != 10 {
		t.Errorf("default quiz has %d questions", e.Quiz().Len())
	}
}

func TestGenerateWithRankingConfig(t *testing.T) {
	tests := []struct {
		name       string
		tune       func(*RankingConfig)
		primary    []string
		scores     []int
		contrarian []string
	}{
		{
			name:       "cutoff from the first pick",
			tune:       func(c *RankingConfig) { c.MinBeforeCutoff = 0 },
			primary:    []string{"alpha", "beta", "gamma"},
			scores:     []int{82, 61, 52},
			contrarian: []string{"epsilon", "zeta", "delta"},
		},
		{
			name: "strict cutoff",
			tune: func(c *RankingConfig) {
				c.MinBeforeCutoff = 0
				c.CutoffRatio = 0.8
				c.ContrarianLimit = 2
				c.MaxQuotes = 1
			},
			primary:    []string{"alpha"},
			scores:     []int{82},
			contrarian: []string{"beta", "gamma"},
		},
		{
			name:       "short primary list",
			tune:       func(c *RankingConfig) { c.PrimaryLimit = 2 },
			primary:    []string{"alpha", "beta"},
			scores:     []int{82, 61},
			contrarian: []string{"epsilon", "gamma", "delta"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultRankingConfig()
			tt.tune(&cfg)
			lib := cutoffLibrary()
			e, err := NewEngine(EngineParams{Catalog: lib, Enrichments: lib, Ranking: cfg})
			if err != nil {
				t.Fatalf("NewEngine: %v", err)
			}

			recs := e.GenerateForProfile(speedProfile(t))
			if diff := cmp.Diff(tt.primary, slugs(recs.Primary)); diff != "" {
				t.Errorf("primary mismatch (-want +got):\n%s", diff)
			}
			var scores []int
			for _, a := range recs.Primary {
				scores = append(scores, a.AlignmentScore)
				if len(a.MatchingQuotes) > cfg.MaxQuotes {
					t.Errorf("%s: %d quotes, max %d", a.Slug, len(a.MatchingQuotes), cfg.MaxQuotes)
				}
			}
			if diff := cmp.Diff(tt.scores, scores); diff != "" {
				t.Errorf("primary scores mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(tt.contrarian, slugs(recs.Contrarian)); diff != "" {
				t.Errorf("contrarian mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
