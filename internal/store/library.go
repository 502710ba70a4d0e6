package store

import (
	"fmt"
	"sort"

	"github.com/rcliao/pm-philosophy/internal/model"
)

// KeywordCount is how many catalog episodes carry a keyword.
type KeywordCount struct {
	Keyword string `json:"keyword"`
	Count   int    `json:"count"`
}

// quoteRef locates a quote inside an enrichment record.
type quoteRef struct {
	slug  string
	index int
}

// Library is the immutable in-memory catalog plus enrichment store. It is
// built once and shared read-only by every request.
type Library struct {
	episodes []model.Episode
	bySlug   map[string]int
	enriched map[string]*model.EpisodeEnrichment
	verified []string
	quotes   map[string]quoteRef
}

// NewLibrary indexes a catalog and its enrichment records. Enrichment order
// becomes the verified-slug order. Duplicate slugs or quote ids are
// rejected.
func NewLibrary(episodes []model.Episode, enrichments []*model.EpisodeEnrichment) (*Library, error) {
	lib := &Library{
		episodes: make([]model.Episode, 0, len(episodes)),
		bySlug:   make(map[string]int, len(episodes)),
		enriched: make(map[string]*model.EpisodeEnrichment, len(enrichments)),
		verified: make([]string, 0, len(enrichments)),
		quotes:   make(map[string]quoteRef),
	}

	for _, ep := range episodes {
		if _, dup := lib.bySlug[ep.Slug]; dup {
			return nil, fmt.Errorf("%w: duplicate catalog slug %q", ErrInvalidRecord, ep.Slug)
		}
		lib.bySlug[ep.Slug] = len(lib.episodes)
		lib.episodes = append(lib.episodes, ep)
	}

	for _, e := range enrichments {
		if _, dup := lib.enriched[e.Slug]; dup {
			return nil, fmt.Errorf("%w: duplicate enrichment slug %q", ErrInvalidRecord, e.Slug)
		}
		for i, q := range e.Quotes {
			if prev, dup := lib.quotes[q.ID]; dup {
				return nil, fmt.Errorf("%w: quote id %q in %s already used by %s", ErrInvalidRecord, q.ID, e.Slug, prev.slug)
			}
			lib.quotes[q.ID] = quoteRef{slug: e.Slug, index: i}
		}
		lib.enriched[e.Slug] = e
		lib.verified = append(lib.verified, e.Slug)
	}
	return lib, nil
}

// Episode returns catalog metadata for slug.
func (l *Library) Episode(slug string) (model.Episode, bool) {
	i, ok := l.bySlug[slug]
	if !ok {
		return model.Episode{}, false
	}
	return l.episodes[i], true
}

// Episodes returns the catalog in source order.
func (l *Library) Episodes() []model.Episode {
	out := make([]model.Episode, len(l.episodes))
	copy(out, l.episodes)
	return out
}

// Enrichment returns the curated record for slug. Callers must not modify it.
func (l *Library) Enrichment(slug string) (*model.EpisodeEnrichment, bool) {
	e, ok := l.enriched[slug]
	return e, ok
}

// VerifiedSlugs lists curated episodes in load order.
func (l *Library) VerifiedSlugs() []string {
	out := make([]string, len(l.verified))
	copy(out, l.verified)
	return out
}

// Curated reports whether slug has enrichment.
func (l *Library) Curated(slug string) bool {
	_, ok := l.enriched[slug]
	return ok
}

// Quote resolves a quote id across every enrichment record.
func (l *Library) Quote(id string) (model.Quote, bool) {
	ref, ok := l.quotes[id]
	if !ok {
		return model.Quote{}, false
	}
	return l.enriched[ref.slug].Quotes[ref.index], true
}

// Keywords counts keyword usage across the catalog, most used first and
// alphabetical within a count.
func (l *Library) Keywords() []KeywordCount {
	counts := make(map[string]int)
	for _, ep := range l.episodes {
		for _, kw := range ep.Keywords {
			counts[kw]++
		}
	}
	out := make([]KeywordCount, 0, len(counts))
	for kw, n := range counts {
		out = append(out, KeywordCount{Keyword: kw, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Keyword < out[j].Keyword
	})
	return out
}

// Orphans lists enrichment slugs with no catalog entry. The engine skips
// them, so they are usually a data-preparation mistake.
func (l *Library) Orphans() []string {
	var out []string
	for _, slug := range l.verified {
		if _, ok := l.bySlug[slug]; !ok {
			out = append(out, slug)
		}
	}
	return out
}

// Summary describes the library's size.
type Summary struct {
	Episodes             int `json:"episodes"`
	Curated              int `json:"curated"`
	Quotes               int `json:"quotes"`
	ContrarianCandidates int `json:"contrarian_candidates"`
	Orphans              int `json:"orphans"`
}

// Summary counts the library's contents.
func (l *Library) Summary() Summary {
	s := Summary{
		Episodes: len(l.episodes),
		Curated:  len(l.verified),
		Quotes:   len(l.quotes),
		Orphans:  len(l.Orphans()),
	}
	for _, e := range l.enriched {
		s.ContrarianCandidates += len(e.ContrarianCandidates)
	}
	return s
}
