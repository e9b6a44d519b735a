package repository

import (
	"context"
	"database/sql"
	"time"

	_ "modernc.org/sqlite"

	"github.com/SebJones333/Receipt-Scanner/internal/extraction"
)

// History is a local sqlite-backed log of past scans, used by the offline CLI
// so a reviewer can recall recent extractions without a server.
type History struct {
	db *sql.DB
}

// HistoryEntry is one recorded scan.
type HistoryEntry struct {
	Store     string
	Date      string
	Total     string
	Source    string
	ScannedAt time.Time
}

const historySchema = `
CREATE TABLE IF NOT EXISTS scans (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	store      TEXT NOT NULL,
	date       TEXT NOT NULL,
	total      TEXT NOT NULL,
	source     TEXT NOT NULL,
	scanned_at TIMESTAMP NOT NULL
);`

// OpenHistory opens (creating if needed) the scan history at path.
func OpenHistory(path string) (*History, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(historySchema); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &History{db: db}, nil
}

// Record appends one extraction result to the history.
func (h *History) Record(ctx context.Context, res extraction.Result, scannedAt time.Time) error {
	const q = `INSERT INTO scans (store, date, total, source, scanned_at) VALUES (?, ?, ?, ?, ?)`
	_, err := h.db.ExecContext(ctx, q,
		res.Brand, res.Date, res.TotalString(), string(res.TotalSource), scannedAt.UTC())
	return err
}

// Recent returns up to limit entries, newest first.
func (h *History) Recent(ctx context.Context, limit int) ([]HistoryEntry, error) {
	const q = `SELECT store, date, total, source, scanned_at FROM scans ORDER BY id DESC LIMIT ?`
	rows, err := h.db.QueryContext(ctx, q, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []HistoryEntry
	for rows.Next() {
		var e HistoryEntry
		if err := rows.Scan(&e.Store, &e.Date, &e.Total, &e.Source, &e.ScannedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// Close releases the underlying database handle.
func (h *History) Close() error {
	return h.db.Close()
}
