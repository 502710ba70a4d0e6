package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/goccy/go-json"

	"github.com/rcliao/pm-philosophy/internal/model"
)

// SearchResult wraps an episode with its first matching quote, if the
// query matched quote text.
type SearchResult struct {
	model.Episode
	Curated    bool         `json:"curated"`
	MatchQuote *model.Quote `json:"match_quote,omitempty"`
}

var sortClauses = map[string]string{
	SortDateDesc:     "e.publish_date DESC, e.position",
	SortDateAsc:      "e.publish_date ASC, e.position",
	SortViewsDesc:    "e.view_count DESC, e.position",
	SortGuestAsc:     "e.guest COLLATE NOCASE ASC, e.position",
	SortDurationDesc: "e.duration_seconds DESC, e.position",
}

// ValidSort reports whether sort is accepted by Search. Empty means the
// default order.
func ValidSort(sort string) bool {
	if sort == "" {
		return true
	}
	_, ok := sortClauses[sort]
	return ok
}

// Search finds episodes whose metadata or quotes match the query substring.
func (s *SQLiteStore) Search(ctx context.Context, p SearchParams) ([]SearchResult, error) {
	limit := p.Limit
	if limit <= 0 {
		limit = 20
	}
	sortKey := p.Sort
	if sortKey == "" {
		sortKey = SortDateDesc
	}
	order, ok := sortClauses[sortKey]
	if !ok {
		return nil, fmt.Errorf("unknown sort %q (use one of %s)", p.Sort, strings.Join(SortOrders, ", "))
	}

	query := "%" + p.Query + "%"
	where := []string{"1 = 1"}
	var args []interface{}

	// First matching quote, used both for filtering and for display.
	args = append(args, query)

	if p.Query != "" {
		where = append(where, `(e.guest LIKE ? OR e.title LIKE ? OR e.description LIKE ? OR e.company LIKE ? OR match_quote IS NOT NULL)`)
		args = append(args, query, query, query, query)
	}
	for _, kw := range p.Keywords {
		where = append(where, "e.keywords LIKE ?")
		args = append(args, "%\""+kw+"\"%")
	}
	if p.CuratedOnly {
		where = append(where, "n.slug IS NOT NULL")
	}

	stmt := fmt.Sprintf(`
		SELECT e.data, n.slug IS NOT NULL AS curated, match_quote
		FROM (
			SELECT e.*, (
				SELECT q.data FROM quotes q
				WHERE q.slug = e.slug AND q.text LIKE ?
				ORDER BY q.seq LIMIT 1
			) AS match_quote
			FROM episodes e
		) e
		LEFT JOIN enrichments n ON n.slug = e.slug
		WHERE %s
		ORDER BY %s
		LIMIT ?`, strings.Join(where, " AND "), order)
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []SearchResult
	for rows.Next() {
		r, err := scanSearchResult(rows, p.Query != "")
		if err != nil {
			return nil, err
		}
		results = append(results, r)
	}
	return results, rows.Err()
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanSearchResult(row scanner, withQuote bool) (SearchResult, error) {
	var r SearchResult
	var data string
	var quote sql.NullString
	if err := row.Scan(&data, &r.Curated, &quote); err != nil {
		return r, err
	}
	if err := json.Unmarshal([]byte(data), &r.Episode); err != nil {
		return r, fmt.Errorf("decode episode: %w", err)
	}
	if withQuote && quote.Valid {
		r.MatchQuote = &model.Quote{}
		if err := json.Unmarshal([]byte(quote.String), r.MatchQuote); err != nil {
			return r, fmt.Errorf("decode quote: %w", err)
		}
	}
	return r, nil
}

// SearchQuotes runs a full-text query over quote text, best match first.
func (s *SQLiteStore) SearchQuotes(ctx context.Context, query string, limit int) ([]model.Quote, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT q.data FROM quotes_fts f
		JOIN quotes q ON q.rowid = f.rowid
		WHERE quotes_fts MATCH ?
		ORDER BY rank
		LIMIT ?`, ftsQuery(query), limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var quotes []model.Quote
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, err
		}
		var q model.Quote
		if err := json.Unmarshal([]byte(data), &q); err != nil {
			return nil, fmt.Errorf("decode quote: %w", err)
		}
		quotes = append(quotes, q)
	}
	return quotes, rows.Err()
}

// ftsQuery quotes each term so user input cannot inject FTS5 syntax.
func ftsQuery(q string) string {
	terms := strings.Fields(q)
	for i, t := range terms {
		terms[i] = `"` + strings.ReplaceAll(t, `"`, `""`) + `"`
	}
	return strings.Join(terms, " ")
}

// Keywords counts keyword usage across the catalog, most used first.
func (s *SQLiteStore) Keywords(ctx context.Context) ([]KeywordCount, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT k.value, COUNT(*) AS cnt
		FROM episodes e, json_each(e.keywords) k
		WHERE e.keywords IS NOT NULL
		GROUP BY k.value
		ORDER BY cnt DESC, k.value`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []KeywordCount
	for rows.Next() {
		var kc KeywordCount
		if err := rows.Scan(&kc.Keyword, &kc.Count); err != nil {
			return nil, err
		}
		out = append(out, kc)
	}
	return out, rows.Err()
}
