// Package sqlite persists borehole datasets to an embedded SQLite
// database. It is a convenience catalog for exploratory work; the
// in-memory model never requires it.
package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"math"

	_ "modernc.org/sqlite"

	"github.com/subsurface-tools/gobore/borehole"
	"github.com/subsurface-tools/gobore/deviation"
)

// Store is a borehole catalog backed by one SQLite database file.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the database at path and applies
// any pending schema migrations.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA foreign_keys=ON",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("apply %q: %w", pragma, err)
		}
	}

	s := &Store{db: db}
	if err := s.MigrateUp(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the underlying database.
func (s *Store) Close() error { return s.db.Close() }

// SaveRecord persists a record, its curves, and its survey stations.
// An existing record with the same ID is replaced wholesale.
func (s *Store) SaveRecord(r *borehole.Record) error {
	if r == nil {
		return fmt.Errorf("save borehole: nil record")
	}

	meta, err := json.Marshal(r.Metadata)
	if err != nil {
		return fmt.Errorf("save borehole %s: encode metadata: %w", r.ID, err)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("save borehole %s: %w", r.ID, err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM boreholes WHERE id = ?`, r.ID); err != nil {
		return fmt.Errorf("save borehole %s: %w", r.ID, err)
	}
	if _, err := tx.Exec(`
		INSERT INTO boreholes (id, name, x, y, crs, elevation, total_depth, metadata)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.Name, r.X, r.Y, r.CRS, r.Elevation, r.TotalDepth, string(meta),
	); err != nil {
		return fmt.Errorf("save borehole %s: %w", r.ID, err)
	}

	for _, c := range r.Logs() {
		if _, err := tx.Exec(`
			INSERT INTO log_curves (borehole_id, name, unit) VALUES (?, ?, ?)`,
			r.ID, c.Name, c.Unit,
		); err != nil {
			return fmt.Errorf("save borehole %s curve %q: %w", r.ID, c.Name, err)
		}
		for i, sample := range c.Samples() {
			// NaN samples (log null values) are stored as NULL.
			var value any
			if !math.IsNaN(sample.Value) {
				value = sample.Value
			}
			if _, err := tx.Exec(`
				INSERT INTO log_samples (borehole_id, curve_name, seq, depth, value)
				VALUES (?, ?, ?, ?, ?)`,
				r.ID, c.Name, i, sample.Depth, value,
			); err != nil {
				return fmt.Errorf("save borehole %s curve %q sample %d: %w", r.ID, c.Name, i, err)
			}
		}
	}

	if r.HasDeviation() {
		survey, err := r.Survey()
		if err != nil {
			return fmt.Errorf("save borehole %s: %w", r.ID, err)
		}
		for i, st := range survey.Stations() {
			if _, err := tx.Exec(`
				INSERT INTO survey_stations (borehole_id, seq, md, inclination, azimuth)
				VALUES (?, ?, ?, ?, ?)`,
				r.ID, i, st.MD, st.Inclination, st.Azimuth,
			); err != nil {
				return fmt.Errorf("save borehole %s station %d: %w", r.ID, i, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("save borehole %s: %w", r.ID, err)
	}
	return nil
}

// LoadRecord rebuilds a record with its curves and survey. Missing
// IDs return borehole.ErrNotFound.
func (s *Store) LoadRecord(id string) (*borehole.Record, error) {
	var (
		r    = borehole.New(id, "")
		meta string
	)
	err := s.db.QueryRow(`
		SELECT name, x, y, crs, elevation, total_depth, metadata
		FROM boreholes WHERE id = ?`, id,
	).Scan(&r.Name, &r.X, &r.Y, &r.CRS, &r.Elevation, &r.TotalDepth, &meta)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("borehole %q: %w", id, borehole.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("load borehole %s: %w", id, err)
	}
	if meta != "" {
		if err := json.Unmarshal([]byte(meta), &r.Metadata); err != nil {
			return nil, fmt.Errorf("load borehole %s: decode metadata: %w", id, err)
		}
	}

	if err := s.loadCurves(r); err != nil {
		return nil, err
	}
	if err := s.loadSurvey(r); err != nil {
		return nil, err
	}
	return r, nil
}

func (s *Store) loadCurves(r *borehole.Record) error {
	rows, err := s.db.Query(`
		SELECT name, unit FROM log_curves WHERE borehole_id = ? ORDER BY rowid`, r.ID)
	if err != nil {
		return fmt.Errorf("load borehole %s curves: %w", r.ID, err)
	}
	defer rows.Close()

	type curveHead struct{ name, unit string }
	var heads []curveHead
	for rows.Next() {
		var h curveHead
		if err := rows.Scan(&h.name, &h.unit); err != nil {
			return fmt.Errorf("load borehole %s curves: %w", r.ID, err)
		}
		heads = append(heads, h)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("load borehole %s curves: %w", r.ID, err)
	}

	for _, h := range heads {
		samples, err := s.loadSamples(r.ID, h.name)
		if err != nil {
			return err
		}
		c, err := borehole.NewLogCurve(h.name, h.unit, samples)
		if err != nil {
			return fmt.Errorf("load borehole %s curve %q: %w", r.ID, h.name, err)
		}
		if err := r.AttachLog(c); err != nil {
			return fmt.Errorf("load borehole %s curve %q: %w", r.ID, h.name, err)
		}
	}
	return nil
}

func (s *Store) loadSamples(boreholeID, curveName string) ([]borehole.Sample, error) {
	rows, err := s.db.Query(`
		SELECT depth, value FROM log_samples
		WHERE borehole_id = ? AND curve_name = ? ORDER BY seq`, boreholeID, curveName)
	if err != nil {
		return nil, fmt.Errorf("load borehole %s samples for %q: %w", boreholeID, curveName, err)
	}
	defer rows.Close()

	var samples []borehole.Sample
	for rows.Next() {
		var (
			sm    borehole.Sample
			value sql.NullFloat64
		)
		if err := rows.Scan(&sm.Depth, &value); err != nil {
			return nil, fmt.Errorf("load borehole %s samples for %q: %w", boreholeID, curveName, err)
		}
		if value.Valid {
			sm.Value = value.Float64
		} else {
			sm.Value = math.NaN()
		}
		samples = append(samples, sm)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load borehole %s samples for %q: %w", boreholeID, curveName, err)
	}
	return samples, nil
}

func (s *Store) loadSurvey(r *borehole.Record) error {
	rows, err := s.db.Query(`
		SELECT md, inclination, azimuth FROM survey_stations
		WHERE borehole_id = ? ORDER BY seq`, r.ID)
	if err != nil {
		return fmt.Errorf("load borehole %s survey: %w", r.ID, err)
	}
	defer rows.Close()

	var stations []deviation.Station
	for rows.Next() {
		var st deviation.Station
		if err := rows.Scan(&st.MD, &st.Inclination, &st.Azimuth); err != nil {
			return fmt.Errorf("load borehole %s survey: %w", r.ID, err)
		}
		stations = append(stations, st)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("load borehole %s survey: %w", r.ID, err)
	}
	if len(stations) == 0 {
		return nil
	}

	survey, err := deviation.NewSurvey(stations)
	if err != nil {
		return fmt.Errorf("load borehole %s survey: %w", r.ID, err)
	}
	return r.AttachDeviation(survey)
}

// ListIDs returns all stored borehole IDs, ordered by ID.
func (s *Store) ListIDs() ([]string, error) {
	rows, err := s.db.Query(`SELECT id FROM boreholes ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list boreholes: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("list boreholes: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list boreholes: %w", err)
	}
	return ids, nil
}

// Delete removes a stored record and its curves and stations.
// Missing IDs return borehole.ErrNotFound.
func (s *Store) Delete(id string) error {
	res, err := s.db.Exec(`DELETE FROM boreholes WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete borehole %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete borehole %s: %w", id, err)
	}
	if n == 0 {
		return fmt.Errorf("borehole %q: %w", id, borehole.ErrNotFound)
	}
	return nil
}
