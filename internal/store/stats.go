package store

import (
	"context"
	"os"

	"github.com/rcliao/pm-philosophy/internal/model"
)

// Stats holds index statistics.
type Stats struct {
	DBPath               string      `json:"db_path"`
	DBSizeBytes          int64       `json:"db_size_bytes"`
	Episodes             int         `json:"episodes"`
	Curated              int         `json:"curated"`
	Quotes               int         `json:"quotes"`
	ContrarianCandidates int         `json:"contrarian_candidates"`
	Zones                []ZoneStats `json:"zones"`
	GuestTypes           []TypeCount `json:"guest_types"`
	LastImport           *ImportRun  `json:"last_import,omitempty"`
}

// ZoneStats summarises one zone's influence across curated episodes.
type ZoneStats struct {
	Zone model.ZoneID `json:"zone"`
	Avg  float64      `json:"avg_influence"`
	Max  float64      `json:"max_influence"`
	// Strong counts episodes where the zone clears the primary-bonus bar.
	Strong int `json:"strong"`
}

// TypeCount is how many curated episodes have a guest type.
type TypeCount struct {
	Type  string `json:"type"`
	Count int    `json:"count"`
}

// Stats returns index statistics.
func (s *SQLiteStore) Stats(ctx context.Context, dbPath string) (*Stats, error) {
	st := &Stats{DBPath: dbPath}

	// DB file size
	if info, err := os.Stat(dbPath); err == nil {
		st.DBSizeBytes = info.Size()
	}

	s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM episodes`).Scan(&st.Episodes)
	s.db.QueryRowContext(ctx, `SELECT COUNT(*), COALESCE(SUM(contrarian_count), 0) FROM enrichments`).Scan(&st.Curated, &st.ContrarianCandidates)
	s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM quotes`).Scan(&st.Quotes)

	byZone := make(map[model.ZoneID]ZoneStats, model.NumZones)
	rows, err := s.db.QueryContext(ctx, `
		SELECT zone, AVG(weight), MAX(weight), SUM(CASE WHEN weight > 0.25 THEN 1 ELSE 0 END)
		FROM zone_influence GROUP BY zone`)
	if err != nil {
		return st, err
	}
	for rows.Next() {
		var zs ZoneStats
		rows.Scan(&zs.Zone, &zs.Avg, &zs.Max, &zs.Strong)
		byZone[zs.Zone] = zs
	}
	rows.Close()
	for _, z := range model.AllZones() {
		zs := byZone[z]
		zs.Zone = z
		st.Zones = append(st.Zones, zs)
	}

	rows, err = s.db.QueryContext(ctx, `
		SELECT COALESCE(guest_type, 'unknown'), COUNT(*) AS cnt
		FROM enrichments GROUP BY 1 ORDER BY cnt DESC, 1`)
	if err != nil {
		return st, err
	}
	defer rows.Close()
	for rows.Next() {
		var tc TypeCount
		rows.Scan(&tc.Type, &tc.Count)
		st.GuestTypes = append(st.GuestTypes, tc)
	}

	last, err := s.LastImport(ctx)
	if err != nil {
		return st, err
	}
	st.LastImport = last

	return st, nil
}
