// Package stats persists page-view counts in SQLite. Views are
// aggregated per (path, day); no visitor identifiers are stored.
package stats

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// Store provides database operations for page-view stats.
type Store struct {
	db *sql.DB
}

// PageCount is one row of the top-pages report.
type PageCount struct {
	Path  string `json:"path"`
	Views int64  `json:"views"`
}

// NewStore opens (or creates) the stats database at dbPath.
func NewStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open stats db: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Hour)

	if _, err := db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
		return nil, fmt.Errorf("enable WAL: %w", err)
	}

	s := &Store{db: db}
	if err := s.ensureSchema(); err != nil {
		return nil, fmt.Errorf("ensure schema: %w", err)
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) ensureSchema() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS page_views (
			path TEXT NOT NULL,
			day TEXT NOT NULL,
			views INTEGER NOT NULL DEFAULT 0,
			PRIMARY KEY (path, day)
		);

		CREATE INDEX IF NOT EXISTS idx_page_views_day ON page_views(day);
	`)
	return err
}

// RecordView increments the view counter for path on the day of at.
func (s *Store) RecordView(path string, at time.Time) error {
	_, err := s.db.Exec(`
		INSERT INTO page_views (path, day, views) VALUES (?, ?, 1)
		ON CONFLICT (path, day) DO UPDATE SET views = views + 1
	`, path, at.UTC().Format(time.DateOnly))
	return err
}

// TotalViews returns the total view count since the given time.
func (s *Store) TotalViews(since time.Time) (int64, error) {
	var total sql.NullInt64
	err := s.db.QueryRow(`
		SELECT SUM(views) FROM page_views WHERE day >= ?
	`, since.UTC().Format(time.DateOnly)).Scan(&total)
	if err != nil {
		return 0, err
	}
	return total.Int64, nil
}

// TopPages returns the most viewed paths since the given time.
func (s *Store) TopPages(since time.Time, limit int) ([]PageCount, error) {
	rows, err := s.db.Query(`
		SELECT path, SUM(views) AS total
		FROM page_views
		WHERE day >= ?
		GROUP BY path
		ORDER BY total DESC, path ASC
		LIMIT ?
	`, since.UTC().Format(time.DateOnly), limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []PageCount
	for rows.Next() {
		var pc PageCount
		if err := rows.Scan(&pc.Path, &pc.Views); err != nil {
			return nil, err
		}
		out = append(out, pc)
	}
	return out, rows.Err()
}
