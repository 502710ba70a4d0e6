// Package store loads the episode catalog and enrichment records and keeps
// a searchable SQLite index of them.
package store

import (
	"context"
	"errors"
)

var (
	// ErrNotFound is returned when a slug or quote id is unknown.
	ErrNotFound = errors.New("not found")

	// ErrLegacyFormat marks an enrichment file in a pre-normalization shape.
	ErrLegacyFormat = errors.New("legacy enrichment format")

	// ErrInvalidRecord marks a record that fails schema validation.
	ErrInvalidRecord = errors.New("invalid record")
)

// Sort orders for episode search.
const (
	SortDateDesc     = "date-desc"
	SortDateAsc      = "date-asc"
	SortViewsDesc    = "views-desc"
	SortGuestAsc     = "guest-asc"
	SortDurationDesc = "duration-desc"
)

// SortOrders lists every accepted sort value.
var SortOrders = []string{SortDateDesc, SortDateAsc, SortViewsDesc, SortGuestAsc, SortDurationDesc}

// SearchParams holds parameters for searching episodes.
type SearchParams struct {
	Query       string   // substring over guest, title, description and quote text
	Keywords    []string // every keyword must be present
	Sort        string   // one of SortOrders, default date-desc
	CuratedOnly bool     // only episodes with enrichment
	Limit       int
}

// Index is the persistent episode index.
type Index interface {
	// Import replaces the index contents with lib and records the run.
	Import(ctx context.Context, lib *Library, source string) (*ImportRun, error)

	// Search finds episodes matching the given filters.
	Search(ctx context.Context, p SearchParams) ([]SearchResult, error)

	// Episode returns one catalog entry by slug.
	Episode(ctx context.Context, slug string) (*EpisodeRecord, error)

	// Keywords counts keyword usage across the catalog.
	Keywords(ctx context.Context) ([]KeywordCount, error)

	// Library rebuilds an in-memory library from the index.
	Library(ctx context.Context) (*Library, error)

	// Close closes the index.
	Close() error
}
