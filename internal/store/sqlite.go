package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"github.com/oklog/ulid/v2"
	_ "modernc.org/sqlite"

	"github.com/rcliao/pm-philosophy/internal/model"
)

// SQLiteStore implements Index using SQLite.
type SQLiteStore struct {
	db *sql.DB

	mu      sync.Mutex
	entropy *rand.Rand
}

var _ Index = (*SQLiteStore)(nil)

// NewSQLiteStore opens or creates a SQLite database at the given path.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=foreign_keys(on)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	s := &SQLiteStore{
		db:      db,
		entropy: rand.New(rand.NewSource(time.Now().UnixNano())),
	}

	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return s, nil
}

func (s *SQLiteStore) newID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return ulid.MustNew(ulid.Timestamp(time.Now()), s.entropy).String()
}

func (s *SQLiteStore) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS episodes (
		slug             TEXT PRIMARY KEY,
		position         INTEGER NOT NULL,
		guest            TEXT NOT NULL,
		title            TEXT NOT NULL,
		company          TEXT,
		description      TEXT,
		publish_date     TEXT,
		duration_seconds INTEGER NOT NULL DEFAULT 0,
		view_count       INTEGER NOT NULL DEFAULT 0,
		keywords         TEXT,
		data             TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_episodes_date ON episodes(publish_date DESC);
	CREATE INDEX IF NOT EXISTS idx_episodes_views ON episodes(view_count DESC);

	CREATE TABLE IF NOT EXISTS enrichments (
		slug             TEXT PRIMARY KEY,
		position         INTEGER NOT NULL,
		guest_type       TEXT,
		quote_count      INTEGER NOT NULL DEFAULT 0,
		contrarian_count INTEGER NOT NULL DEFAULT 0,
		data             TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS zone_influence (
		slug   TEXT NOT NULL REFERENCES enrichments(slug) ON DELETE CASCADE,
		zone   TEXT NOT NULL,
		weight REAL NOT NULL,
		PRIMARY KEY (slug, zone)
	);

	CREATE TABLE IF NOT EXISTS quotes (
		id        TEXT PRIMARY KEY,
		slug      TEXT NOT NULL REFERENCES enrichments(slug) ON DELETE CASCADE,
		seq       INTEGER NOT NULL,
		speaker   TEXT NOT NULL,
		text      TEXT NOT NULL,
		timestamp TEXT NOT NULL,
		data      TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_quotes_slug ON quotes(slug, seq);

	CREATE TABLE IF NOT EXISTS imports (
		id          TEXT PRIMARY KEY,
		source      TEXT NOT NULL,
		imported_at TEXT NOT NULL,
		episodes    INTEGER NOT NULL,
		curated     INTEGER NOT NULL,
		quotes      INTEGER NOT NULL
	);

	CREATE VIRTUAL TABLE IF NOT EXISTS quotes_fts USING fts5(
		text,
		content=quotes,
		content_rowid=rowid
	);
	`
	if _, err := s.db.Exec(schema); err != nil {
		return err
	}

	// FTS5 triggers for automatic sync
	s.db.Exec(`CREATE TRIGGER IF NOT EXISTS quotes_ai AFTER INSERT ON quotes BEGIN
		INSERT INTO quotes_fts(rowid, text) VALUES (new.rowid, new.text);
	END`)
	s.db.Exec(`CREATE TRIGGER IF NOT EXISTS quotes_ad AFTER DELETE ON quotes BEGIN
		INSERT INTO quotes_fts(quotes_fts, rowid, text) VALUES('delete', old.rowid, old.text);
	END`)
	s.db.Exec(`CREATE TRIGGER IF NOT EXISTS quotes_au AFTER UPDATE ON quotes BEGIN
		INSERT INTO quotes_fts(quotes_fts, rowid, text) VALUES('delete', old.rowid, old.text);
		INSERT INTO quotes_fts(rowid, text) VALUES (new.rowid, new.text);
	END`)

	return nil
}

// ImportRun records one import into the index.
type ImportRun struct {
	ID         string    `json:"id"`
	Source     string    `json:"source"`
	ImportedAt time.Time `json:"imported_at"`
	Episodes   int       `json:"episodes"`
	Curated    int       `json:"curated"`
	Quotes     int       `json:"quotes"`
}

// Import replaces everything in the index with lib in one transaction.
func (s *SQLiteStore) Import(ctx context.Context, lib *Library, source string) (*ImportRun, error) {
	now := time.Now().UTC()
	run := &ImportRun{ID: s.newID(), Source: source, ImportedAt: now}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	for _, table := range []string{"quotes", "zone_influence", "enrichments", "episodes"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return nil, fmt.Errorf("clear %s: %w", table, err)
		}
	}

	for i, ep := range lib.Episodes() {
		if err := insertEpisode(ctx, tx, i, ep); err != nil {
			return nil, err
		}
		run.Episodes++
	}

	for i, slug := range lib.VerifiedSlugs() {
		e, _ := lib.Enrichment(slug)
		n, err := insertEnrichment(ctx, tx, i, e)
		if err != nil {
			return nil, err
		}
		run.Curated++
		run.Quotes += n
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO imports (id, source, imported_at, episodes, curated, quotes) VALUES (?, ?, ?, ?, ?, ?)`,
		run.ID, run.Source, now.Format(time.RFC3339), run.Episodes, run.Curated, run.Quotes)
	if err != nil {
		return nil, fmt.Errorf("record import: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return run, nil
}

func insertEpisode(ctx context.Context, tx *sql.Tx, pos int, ep model.Episode) error {
	data, err := json.Marshal(ep)
	if err != nil {
		return err
	}
	var keywords *string
	if len(ep.Keywords) > 0 {
		b, _ := json.Marshal(ep.Keywords)
		k := string(b)
		keywords = &k
	}
	_, err = tx.ExecContext(ctx,
		`INSERT INTO episodes (slug, position, guest, title, company, description, publish_date,
		                       duration_seconds, view_count, keywords, data)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		ep.Slug, pos, ep.Guest, ep.Title, ep.Company, ep.Description, ep.PublishDate,
		ep.DurationSeconds, ep.ViewCount, keywords, string(data))
	if err != nil {
		return fmt.Errorf("insert episode %s: %w", ep.Slug, err)
	}
	return nil
}

func insertEnrichment(ctx context.Context, tx *sql.Tx, pos int, e *model.EpisodeEnrichment) (int, error) {
	data, err := json.Marshal(e)
	if err != nil {
		return 0, err
	}
	var guestType *string
	if e.GuestMetadata != nil && e.GuestMetadata.GuestType != "" {
		guestType = &e.GuestMetadata.GuestType
	}
	_, err = tx.ExecContext(ctx,
		`INSERT INTO enrichments (slug, position, guest_type, quote_count, contrarian_count, data)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		e.Slug, pos, guestType, len(e.Quotes), len(e.ContrarianCandidates), string(data))
	if err != nil {
		return 0, fmt.Errorf("insert enrichment %s: %w", e.Slug, err)
	}

	for _, z := range model.AllZones() {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO zone_influence (slug, zone, weight) VALUES (?, ?, ?)`,
			e.Slug, string(z), e.ZoneInfluence.Get(z))
		if err != nil {
			return 0, fmt.Errorf("insert zone influence %s: %w", e.Slug, err)
		}
	}

	for i, q := range e.Quotes {
		qdata, err := json.Marshal(q)
		if err != nil {
			return 0, err
		}
		_, err = tx.ExecContext(ctx,
			`INSERT INTO quotes (id, slug, seq, speaker, text, timestamp, data) VALUES (?, ?, ?, ?, ?, ?, ?)`,
			q.ID, e.Slug, i, q.Speaker, q.Text, q.Timestamp, string(qdata))
		if err != nil {
			return 0, fmt.Errorf("insert quote %s: %w", q.ID, err)
		}
	}
	return len(e.Quotes), nil
}

// EpisodeRecord is a catalog entry with its enrichment, if curated.
type EpisodeRecord struct {
	model.Episode
	Curated    bool                     `json:"curated"`
	Enrichment *model.EpisodeEnrichment `json:"enrichment,omitempty"`
}

// Episode returns one catalog entry by slug.
func (s *SQLiteStore) Episode(ctx context.Context, slug string) (*EpisodeRecord, error) {
	var epData string
	var enData sql.NullString
	err := s.db.QueryRowContext(ctx,
		`SELECT e.data, n.data FROM episodes e
		 LEFT JOIN enrichments n ON n.slug = e.slug
		 WHERE e.slug = ?`, slug).Scan(&epData, &enData)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("episode %s: %w", slug, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}

	rec := &EpisodeRecord{}
	if err := json.Unmarshal([]byte(epData), &rec.Episode); err != nil {
		return nil, fmt.Errorf("decode episode %s: %w", slug, err)
	}
	if enData.Valid {
		rec.Curated = true
		rec.Enrichment = &model.EpisodeEnrichment{}
		if err := json.Unmarshal([]byte(enData.String), rec.Enrichment); err != nil {
			return nil, fmt.Errorf("decode enrichment %s: %w", slug, err)
		}
	}
	return rec, nil
}

// Quote returns one quote by id.
func (s *SQLiteStore) Quote(ctx context.Context, id string) (*model.Quote, error) {
	var data string
	err := s.db.QueryRowContext(ctx, `SELECT data FROM quotes WHERE id = ?`, id).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("quote %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	var q model.Quote
	if err := json.Unmarshal([]byte(data), &q); err != nil {
		return nil, fmt.Errorf("decode quote %s: %w", id, err)
	}
	return &q, nil
}

// LastImport returns the most recent import run, or nil if the index has
// never been populated.
func (s *SQLiteStore) LastImport(ctx context.Context) (*ImportRun, error) {
	var run ImportRun
	var importedAt string
	err := s.db.QueryRowContext(ctx,
		`SELECT id, source, imported_at, episodes, curated, quotes FROM imports
		 ORDER BY id DESC LIMIT 1`).Scan(&run.ID, &run.Source, &importedAt, &run.Episodes, &run.Curated, &run.Quotes)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	run.ImportedAt, _ = time.Parse(time.RFC3339, importedAt)
	return &run, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
