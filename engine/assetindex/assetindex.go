// Package assetindex keeps a searchable record of created assets in
// SQLite. The resolver's last-resort strategy scans it when exact and
// conventional lookups miss.
package assetindex

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/veleiro/marionette/engine"
)

// Index implements engine.AssetIndex on a SQLite database.
type Index struct {
	db *sql.DB
}

// Open opens (or creates) the index database at dbPath and runs the
// schema migration. Use ":memory:" for a throwaway index.
func Open(dbPath string) (*Index, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open asset index: %w", err)
	}
	// WAL mode for better concurrent reads.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}
	if err := migrate(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate asset index: %w", err)
	}
	return &Index{db: db}, nil
}

func migrate(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS assets (
			name  TEXT PRIMARY KEY,
			path  TEXT NOT NULL,
			class TEXT NOT NULL
		)
	`)
	return err
}

// Close closes the underlying database connection.
func (x *Index) Close() error {
	return x.db.Close()
}

// Record inserts or replaces an asset row.
func (x *Index) Record(rec engine.AssetRecord) error {
	_, err := x.db.Exec(
		"INSERT OR REPLACE INTO assets (name, path, class) VALUES (?, ?, ?)",
		rec.Name, rec.Path, rec.Class,
	)
	if err != nil {
		return fmt.Errorf("record asset %q: %w", rec.Name, err)
	}
	return nil
}

// FindFold looks an asset up by name, case-insensitively.
func (x *Index) FindFold(name string) (engine.AssetRecord, bool) {
	row := x.db.QueryRow(
		"SELECT name, path, class FROM assets WHERE name = ? COLLATE NOCASE", name,
	)
	var rec engine.AssetRecord
	if err := row.Scan(&rec.Name, &rec.Path, &rec.Class); err != nil {
		return engine.AssetRecord{}, false
	}
	return rec, true
}

// All returns every recorded asset, ordered by name.
func (x *Index) All() ([]engine.AssetRecord, error) {
	rows, err := x.db.Query("SELECT name, path, class FROM assets ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("list assets: %w", err)
	}
	defer rows.Close()

	var out []engine.AssetRecord
	for rows.Next() {
		var rec engine.AssetRecord
		if err := rows.Scan(&rec.Name, &rec.Path, &rec.Class); err != nil {
			return nil, fmt.Errorf("scan asset row: %w", err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}
