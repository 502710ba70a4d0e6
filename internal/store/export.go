package store

import (
	"context"
	"fmt"

	"github.com/goccy/go-json"

	"github.com/rcliao/pm-philosophy/internal/model"
)

// Snapshot is the full index contents in load order.
type Snapshot struct {
	Episodes    []model.Episode            `json:"episodes"`
	Enrichments []*model.EpisodeEnrichment `json:"enrichments"`
}

// Export reads every catalog entry and enrichment record from the index.
func (s *SQLiteStore) Export(ctx context.Context) (*Snapshot, error) {
	snap := &Snapshot{}

	rows, err := s.db.QueryContext(ctx, `SELECT data FROM episodes ORDER BY position`)
	if err != nil {
		return nil, err
	}
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			rows.Close()
			return nil, err
		}
		var ep model.Episode
		if err := json.Unmarshal([]byte(data), &ep); err != nil {
			rows.Close()
			return nil, fmt.Errorf("decode episode: %w", err)
		}
		snap.Episodes = append(snap.Episodes, ep)
	}
	rows.Close()

	rows, err = s.db.QueryContext(ctx, `SELECT data FROM enrichments ORDER BY position`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, err
		}
		e := &model.EpisodeEnrichment{}
		if err := json.Unmarshal([]byte(data), e); err != nil {
			return nil, fmt.Errorf("decode enrichment: %w", err)
		}
		snap.Enrichments = append(snap.Enrichments, e)
	}
	return snap, rows.Err()
}

// Library rebuilds an in-memory library from the index.
func (s *SQLiteStore) Library(ctx context.Context) (*Library, error) {
	snap, err := s.Export(ctx)
	if err != nil {
		return nil, err
	}
	if len(snap.Episodes) == 0 {
		return nil, fmt.Errorf("index is empty, run import first: %w", ErrNotFound)
	}
	return NewLibrary(snap.Episodes, snap.Enrichments)
}
