// Package store keeps a local SQLite history of produced QR artifacts.
// Writes are best-effort from the caller's point of view; a failed
// insert never fails the conversion that triggered it.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"url2qr-mcp/qrcode"

	_ "modernc.org/sqlite"
)

// DBFileName is the default database file, created inside the artifact
// output directory unless configuration points elsewhere.
const DBFileName = "url2qr.db"

// Conversion is one recorded QR artifact row.
type Conversion struct {
	ID              int64  `json:"id" yaml:"id"`
	Filename        string `json:"filename" yaml:"filename"`
	SourceURL       string `json:"source_url" yaml:"source_url"`
	Width           int    `json:"width" yaml:"width"`
	ErrorCorrection string `json:"error_correction" yaml:"error_correction"`
	DownloadURL     string `json:"download_url" yaml:"download_url"`
	CreatedAt       string `json:"created_at" yaml:"created_at"`
}

// Store wraps the SQLite handle.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the history database at path and
// ensures the schema exists.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := createTables(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}
	return &Store{db: db}, nil
}

// createTables initializes the schema. Idempotent.
func createTables(db *sql.DB) error {
	_, err := db.Exec(`CREATE TABLE IF NOT EXISTS conversions (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		filename TEXT UNIQUE,
		source_url TEXT,
		width INTEGER,
		error_correction TEXT,
		download_url TEXT,
		created_at TEXT
	)`)
	if err != nil {
		return fmt.Errorf("failed to create conversions table: %w", err)
	}
	return nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// Record inserts one conversion row.
func (s *Store) Record(ctx context.Context, art qrcode.Artifact) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO conversions (filename, source_url, width, error_correction, download_url, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		art.Filename, art.SourceURL, art.Width, art.ErrorCorrection, art.DownloadURL,
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to insert conversion: %w", err)
	}
	return nil
}

// Recent returns up to limit conversions, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Conversion, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, filename, source_url, width, error_correction, download_url, created_at
		 FROM conversions ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query conversions: %w", err)
	}
	defer rows.Close()

	var out []Conversion
	for rows.Next() {
		var c Conversion
		if err := rows.Scan(&c.ID, &c.Filename, &c.SourceURL, &c.Width, &c.ErrorCorrection, &c.DownloadURL, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan conversion: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// Count reports the number of recorded conversions.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM conversions`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count conversions: %w", err)
	}
	return n, nil
}
