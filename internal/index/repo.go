package index

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/mlund/partdex/internal/catalog"
)

// Rebuild replaces the whole index with entries inside one transaction.
// The catalogue artifact is the source of truth; the SQLite index is a
// derived, queryable view and is always rebuilt wholesale, never patched.
func (db *DB) Rebuild(entries []catalog.Entry) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("index: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // best-effort on failure path

	if _, err := tx.Exec(`DELETE FROM parts`); err != nil {
		return fmt.Errorf("index: clear parts: %w", err)
	}
	ftsClear(tx)

	stmt, err := tx.Prepare(`INSERT INTO parts (id, name, path) VALUES (?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("index: prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, e := range entries {
		if _, err := stmt.Exec(e.ID, e.Name, e.Path); err != nil {
			return fmt.Errorf("index: insert part %s: %w", e.ID, err)
		}
		if err := ftsInsert(tx, e.ID, e.Name); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// Get returns the entry with the given id, or nil when absent.
func (db *DB) Get(id string) (*catalog.Entry, error) {
	var e catalog.Entry
	err := db.conn.QueryRow(`SELECT id, name, path FROM parts WHERE id = ?`, id).
		Scan(&e.ID, &e.Name, &e.Path)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("index: get %s: %w", id, err)
	}
	return &e, nil
}

// List returns entries ordered by id. limit <= 0 means no limit.
func (db *DB) List(limit, offset int) ([]catalog.Entry, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := db.conn.Query(`SELECT id, name, path FROM parts ORDER BY id LIMIT ? OFFSET ?`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("index: list: %w", err)
	}
	defer rows.Close()

	var out []catalog.Entry
	for rows.Next() {
		var e catalog.Entry
		if err := rows.Scan(&e.ID, &e.Name, &e.Path); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// Count returns the number of indexed parts.
func (db *DB) Count() (int, error) {
	var n int
	if err := db.conn.QueryRow(`SELECT COUNT(*) FROM parts`).Scan(&n); err != nil {
		return 0, fmt.Errorf("index: count: %w", err)
	}
	return n, nil
}
