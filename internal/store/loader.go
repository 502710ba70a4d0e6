package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/sourcegraph/conc/pool"
	"go.uber.org/zap"

	"github.com/rcliao/pm-philosophy/internal/model"
	"github.com/rcliao/pm-philosophy/internal/validation"
)

// Data directory layout.
const (
	CatalogFile = "episodes.json"
	VerifiedDir = "verified"

	// aggregateFile is a combined dump some exports leave next to the
	// per-episode files.
	aggregateFile = "verified-content.json"
)

// LoadOptions tunes LoadDir.
type LoadOptions struct {
	Workers int         // parallel enrichment decoders, default GOMAXPROCS
	Logger  *zap.Logger // default no-op
}

// LoadDir reads <dir>/episodes.json and every <dir>/verified/*.json into a
// Library. Any unreadable, legacy-shaped or invalid file fails the load.
func LoadDir(ctx context.Context, dir string, opts LoadOptions) (*Library, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	start := time.Now()

	episodes, err := ReadCatalog(filepath.Join(dir, CatalogFile))
	if err != nil {
		return nil, err
	}

	files, err := EnrichmentFiles(filepath.Join(dir, VerifiedDir))
	if err != nil {
		return nil, err
	}

	enrichments, err := readEnrichments(ctx, files, opts.Workers)
	if err != nil {
		return nil, err
	}

	lib, err := NewLibrary(episodes, enrichments)
	if err != nil {
		return nil, err
	}

	for _, e := range enrichments {
		for _, c := range e.ContrarianCandidates {
			if _, ok := e.QuoteByID(c.QuoteID); !ok {
				logger.Warn("contrarian candidate points at a missing quote",
					zap.String("slug", e.Slug), zap.String("quote_id", c.QuoteID))
			}
		}
	}
	if orphans := lib.Orphans(); len(orphans) > 0 {
		logger.Warn("enrichment without catalog entry", zap.Strings("slugs", orphans))
	}

	sum := lib.Summary()
	logger.Info("library loaded",
		zap.String("dir", dir),
		zap.Int("episodes", sum.Episodes),
		zap.Int("curated", sum.Curated),
		zap.Int("quotes", sum.Quotes),
		zap.Duration("took", time.Since(start)))
	return lib, nil
}

// ReadCatalog decodes and validates the episode catalog file.
func ReadCatalog(path string) ([]model.Episode, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	var episodes []model.Episode
	if err := json.Unmarshal(data, &episodes); err != nil {
		return nil, fmt.Errorf("parse catalog %s: %w", path, err)
	}
	for i := range episodes {
		if err := validation.Struct(episodes[i]); err != nil {
			return nil, fmt.Errorf("catalog entry %d (%s): %w: %v", i, episodes[i].Slug, ErrInvalidRecord, err)
		}
	}
	return episodes, nil
}

// EnrichmentFiles lists the per-episode JSON files in dir, sorted by name.
func EnrichmentFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read enrichment dir: %w", err)
	}
	var files []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".json") || name == aggregateFile {
			continue
		}
		files = append(files, filepath.Join(dir, name))
	}
	sort.Strings(files)
	return files, nil
}

func readEnrichments(ctx context.Context, files []string, workers int) ([]*model.EpisodeEnrichment, error) {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	results := make([]*model.EpisodeEnrichment, len(files))

	p := pool.New().WithContext(ctx).WithMaxGoroutines(workers).WithCancelOnError().WithFirstError()
	for idx, path := range files {
		idx, path := idx, path
		p.Go(func(ctx context.Context) error {
			if err := ctx.Err(); err != nil {
				return err
			}
			data, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("read %s: %w", path, err)
			}
			slug := strings.TrimSuffix(filepath.Base(path), ".json")
			e, err := DecodeEnrichment(data, slug)
			if err != nil {
				return fmt.Errorf("%s: %w", filepath.Base(path), err)
			}
			results[idx] = e
			return nil
		})
	}
	if err := p.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// legacyProbe picks out the fields that only pre-normalization files have.
type legacyProbe struct {
	ZoneInfluenceCamel json.RawMessage `json:"zoneInfluence"`
	Quotes             []struct {
		Source map[string]json.RawMessage `json:"source"`
	} `json:"quotes"`
}

var legacySourceKeys = []string{"speaker", "timestamp", "line_start", "line_end"}

// DecodeEnrichment parses one enrichment record in the canonical shape.
// A missing slug defaults to fallbackSlug.
func DecodeEnrichment(data []byte, fallbackSlug string) (*model.EpisodeEnrichment, error) {
	var probe legacyProbe
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, fmt.Errorf("parse enrichment: %w", err)
	}
	if len(probe.ZoneInfluenceCamel) > 0 {
		return nil, fmt.Errorf("%w: zoneInfluence instead of zone_influence", ErrLegacyFormat)
	}
	for i, q := range probe.Quotes {
		for _, k := range legacySourceKeys {
			if _, ok := q.Source[k]; ok {
				return nil, fmt.Errorf("%w: quote %d has source.%s", ErrLegacyFormat, i, k)
			}
		}
	}

	var e model.EpisodeEnrichment
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, fmt.Errorf("parse enrichment: %w", err)
	}
	if e.Slug == "" {
		e.Slug = fallbackSlug
	}
	if err := validation.Struct(e); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRecord, err)
	}
	for _, z := range model.AllZones() {
		if _, ok := e.ZoneInfluence[z]; !ok {
			return nil, fmt.Errorf("%w: zone_influence is missing %s", ErrInvalidRecord, z)
		}
	}
	return &e, nil
}
