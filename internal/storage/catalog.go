package storage

import (
	"database/sql"
	"time"

	_ "modernc.org/sqlite"
)

// Catalog indexes runs in a SQLite database so they can be queried without
// scanning the run directories.
type Catalog struct {
	db *sql.DB
}

const catalogSchema = `
CREATE TABLE IF NOT EXISTS runs (
	id          TEXT PRIMARY KEY,
	preset      TEXT NOT NULL,
	quantity    TEXT NOT NULL,
	created_at  TEXT NOT NULL,
	rows        INTEGER NOT NULL,
	cols        INTEGER NOT NULL,
	pixel_scale REAL NOT NULL,
	sub         INTEGER NOT NULL
);`

// OpenCatalog opens (creating if needed) the catalog database at path.
func OpenCatalog(path string) (*Catalog, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(catalogSchema); err != nil {
		db.Close()
		return nil, err
	}
	return &Catalog{db: db}, nil
}

func (c *Catalog) Close() error {
	return c.db.Close()
}

// Insert records a run. Re-inserting the same ID overwrites the row.
func (c *Catalog) Insert(meta RunMetadata) error {
	_, err := c.db.Exec(
		`INSERT OR REPLACE INTO runs (id, preset, quantity, created_at, rows, cols, pixel_scale, sub)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		meta.ID, meta.Preset, meta.Quantity, meta.Timestamp.Format(time.RFC3339Nano),
		meta.Rows, meta.Cols, meta.PixelScale, meta.Sub,
	)
	return err
}

// List returns all catalogued runs, newest first.
func (c *Catalog) List() ([]RunMetadata, error) {
	rows, err := c.db.Query(
		`SELECT id, preset, quantity, created_at, rows, cols, pixel_scale, sub
		 FROM runs ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []RunMetadata
	for rows.Next() {
		var meta RunMetadata
		var created string
		if err := rows.Scan(&meta.ID, &meta.Preset, &meta.Quantity, &created,
			&meta.Rows, &meta.Cols, &meta.PixelScale, &meta.Sub); err != nil {
			return nil, err
		}
		if t, err := time.Parse(time.RFC3339Nano, created); err == nil {
			meta.Timestamp = t
		}
		runs = append(runs, meta)
	}
	return runs, rows.Err()
}

// Get returns a single catalogued run, or nil when the ID is unknown.
func (c *Catalog) Get(id string) (*RunMetadata, error) {
	row := c.db.QueryRow(
		`SELECT id, preset, quantity, created_at, rows, cols, pixel_scale, sub
		 FROM runs WHERE id = ?`, id)

	var meta RunMetadata
	var created string
	err := row.Scan(&meta.ID, &meta.Preset, &meta.Quantity, &created,
		&meta.Rows, &meta.Cols, &meta.PixelScale, &meta.Sub)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if t, err := time.Parse(time.RFC3339Nano, created); err == nil {
		meta.Timestamp = t
	}
	return &meta, nil
}
