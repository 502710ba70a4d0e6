package recommend

import (
	"testing"

	"github.com/rcliao/pm-philosophy/internal/model"
)

// speedProfile is velocity 60, focus 20, with chaos as the blind spot.
func speedProfile(t *testing.T) model.UserProfile {
	t.Helper()
	pct := model.ZoneVector{
		model.ZoneVelocity:   60,
		model.ZoneFocus:      20,
		model.ZonePerfection: 5,
		model.ZoneDiscovery:  5,
		model.ZoneData:       5,
		model.ZoneIntuition:  5,
	}
	p := ProfileFromPercentages(pct, pct)
	if p.PrimaryZone != model.ZoneVelocity || p.SecondaryZone != model.ZoneFocus || p.BlindSpotZone != model.ZoneChaos {
		t.Fatalf("unexpected fixture profile: %+v", p)
	}
	return p
}

func sumZones(v model.ZoneVector) float64 {
	total := 0.0
	for _, x := range v {
		total += x
	}
	return total
}

func quote(id, text string, zones ...model.ZoneID) model.Quote {
	return model.Quote{
		ID:        id,
		Text:      text,
		Speaker:   "Guest",
		Timestamp: "00:01:00",
		Zones:     zones,
		Source:    model.QuoteSource{Slug: "fixture"},
	}
}

type fakeLibrary struct {
	episodes map[string]model.Episode
	enriched map[string]*model.EpisodeEnrichment
	order    []string
}

func newFakeLibrary() *fakeLibrary {
	return &fakeLibrary{
		episodes: make(map[string]model.Episode),
		enriched: make(map[string]*model.EpisodeEnrichment),
	}
}

// add registers an episode with both metadata and enrichment.
func (f *fakeLibrary) add(slug, guest string, e *model.EpisodeEnrichment) {
	f.episodes[slug] = model.Episode{Slug: slug, Guest: guest, Title: "Episode " + slug}
	e.Slug = slug
	f.enriched[slug] = e
	f.order = append(f.order, slug)
}

func (f *fakeLibrary) Episode(slug string) (model.Episode, bool) {
	ep, ok := f.episodes[slug]
	return ep, ok
}

func (f *fakeLibrary) Episodes() []model.Episode {
	out := make([]model.Episode, 0, len(f.order))
	for _, s := range f.order {
		if ep, ok := f.episodes[s]; ok {
			out = append(out, ep)
		}
	}
	return out
}

func (f *fakeLibrary) Enrichment(slug string) (*model.EpisodeEnrichment, bool) {
	e, ok := f.enriched[slug]
	return e, ok
}

func (f *fakeLibrary) VerifiedSlugs() []string {
	return append([]string(nil), f.order...)
}

func newTestEngine(t *testing.T, lib *fakeLibrary) *Engine {
	t.Helper()
	e, err := NewEngine(EngineParams{Catalog: lib, Enrichments: lib})
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	return e
}
