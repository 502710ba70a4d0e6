package store

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/rcliao/pm-philosophy/internal/model"
)

func TestLibraryLookups(t *testing.T) {
	lib := loadFixture(t)

	ep, ok := lib.Episode("julie-zhuo")
	if !ok || ep.Guest != "Julie Zhuo" {
		t.Fatalf("Episode(julie-zhuo) = %+v, %v", ep, ok)
	}
	if _, ok := lib.Episode("nobody"); ok {
		t.Error("unknown slug should not resolve")
	}

	q, ok := lib.Quote("brian-chesky-q2")
	if !ok || q.Speaker != "Brian Chesky" {
		t.Fatalf("Quote = %+v, %v", q, ok)
	}
	if _, ok := lib.Quote("missing-q9"); ok {
		t.Error("unknown quote should not resolve")
	}
}

func TestLibraryKeywords(t *testing.T) {
	lib := loadFixture(t)
	got := lib.Keywords()
	if len(got) == 0 || got[0] != (KeywordCount{Keyword: "design", Count: 2}) {
		t.Fatalf("top keyword = %+v", got)
	}
	// Equal counts are alphabetical.
	if got[1].Keyword != "data" {
		t.Errorf("second keyword = %s, want data", got[1].Keyword)
	}
}

func TestLibrarySummary(t *testing.T) {
	lib := loadFixture(t)
	want := Summary{Episodes: 4, Curated: 3, Quotes: 5, ContrarianCandidates: 2}
	if diff := cmp.Diff(want, lib.Summary()); diff != "" {
		t.Errorf("summary mismatch (-want +got):\n%s", diff)
	}
}

func TestLibraryCopies(t *testing.T) {
	lib := loadFixture(t)
	slugs := lib.VerifiedSlugs()
	slugs[0] = "mutated"
	if lib.VerifiedSlugs()[0] == "mutated" {
		t.Error("VerifiedSlugs should return a copy")
	}
	eps := lib.Episodes()
	eps[0].Guest = "mutated"
	if lib.Episodes()[0].Guest == "mutated" {
		t.Error("Episodes should return a copy")
	}
}

func TestNewLibraryRejectsDuplicates(t *testing.T) {
	eps := []model.Episode{{Slug: "a", Guest: "A", Title: "A"}, {Slug: "a", Guest: "B", Title: "B"}}
	if _, err := NewLibrary(eps, nil); !errors.Is(err, ErrInvalidRecord) {
		t.Errorf("duplicate catalog slug: err = %v", err)
	}

	en := []*model.EpisodeEnrichment{{Slug: "a"}, {Slug: "a"}}
	if _, err := NewLibrary(eps[:1], en); !errors.Is(err, ErrInvalidRecord) {
		t.Errorf("duplicate enrichment slug: err = %v", err)
	}
}

func TestLibraryOrphans(t *testing.T) {
	lib, err := NewLibrary(
		[]model.Episode{{Slug: "a", Guest: "A", Title: "A"}},
		[]*model.EpisodeEnrichment{{Slug: "a"}, {Slug: "ghost"}},
	)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"ghost"}, lib.Orphans()); diff != "" {
		t.Errorf("orphans mismatch (-want +got):\n%s", diff)
	}
}
