// Package sqlite implements store.Store on SQLite.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/cognicore/promoforge/pkg/promoforge/store"
)

// sqliteStore implements the Store interface using SQLite
type sqliteStore struct {
	db *sql.DB
}

// Open opens a SQLite database with WAL mode enabled and initializes
// the schema.
func Open(ctx context.Context, path string) (store.Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	// Enable WAL mode for better concurrency
	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, err
	}

	if err := initSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	return &sqliteStore{db: db}, nil
}

// Close closes the database connection
func (s *sqliteStore) Close() error {
	return s.db.Close()
}

// initSchema creates tables if they don't exist
func initSchema(ctx context.Context, db *sql.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS found (
	id TEXT PRIMARY KEY,
	code TEXT NOT NULL,
	source_url TEXT,
	discovered_at TEXT
);

CREATE TABLE IF NOT EXISTS generated (
	id TEXT PRIMARY KEY,
	code TEXT NOT NULL,
	template TEXT,
	generated_at TEXT,
	marker TEXT
);

CREATE INDEX IF NOT EXISTS idx_found_code ON found(code);
CREATE INDEX IF NOT EXISTS idx_generated_template ON generated(template);
`
	_, err := db.ExecContext(ctx, schema)
	return err
}

// InsertFound writes found records in one transaction, assigning IDs
// when missing.
func (s *sqliteStore) InsertFound(ctx context.Context, recs []store.Found) error {
	if len(recs) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx,
		"INSERT INTO found (id, code, source_url, discovered_at) VALUES (?, ?, ?, ?)")
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, r := range recs {
		if r.ID == "" {
			r.ID = store.NewID()
		}
		if _, err := stmt.ExecContext(ctx, r.ID, r.Code, r.SourceURL,
			r.DiscoveredAt.UTC().Format(time.RFC3339Nano)); err != nil {
			return fmt.Errorf("insert found %s: %w", r.Code, err)
		}
	}
	return tx.Commit()
}

// ListFound returns all found records ordered by insertion (ULIDs sort
// by creation time).
func (s *sqliteStore) ListFound(ctx context.Context) ([]store.Found, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, code, source_url, discovered_at FROM found ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []store.Found
	for rows.Next() {
		var r store.Found
		var discovered string
		if err := rows.Scan(&r.ID, &r.Code, &r.SourceURL, &discovered); err != nil {
			return nil, err
		}
		r.DiscoveredAt, _ = time.Parse(time.RFC3339Nano, discovered)
		out = append(out, r)
	}
	return out, rows.Err()
}

// InsertGenerated writes generated records in one transaction,
// assigning IDs when missing.
func (s *sqliteStore) InsertGenerated(ctx context.Context, recs []store.Generated) error {
	if len(recs) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx,
		"INSERT INTO generated (id, code, template, generated_at, marker) VALUES (?, ?, ?, ?, ?)")
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, r := range recs {
		if r.ID == "" {
			r.ID = store.NewID()
		}
		if _, err := stmt.ExecContext(ctx, r.ID, r.Code, r.Template,
			r.GeneratedAt.UTC().Format(time.RFC3339Nano), r.Marker); err != nil {
			return fmt.Errorf("insert generated %s: %w", r.Code, err)
		}
	}
	return tx.Commit()
}

// ListGenerated returns all generated records ordered by insertion.
func (s *sqliteStore) ListGenerated(ctx context.Context) ([]store.Generated, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, code, template, generated_at, marker FROM generated ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []store.Generated
	for rows.Next() {
		var r store.Generated
		var generated string
		if err := rows.Scan(&r.ID, &r.Code, &r.Template, &generated, &r.Marker); err != nil {
			return nil, err
		}
		r.GeneratedAt, _ = time.Parse(time.RFC3339Nano, generated)
		out = append(out, r)
	}
	return out, rows.Err()
}
