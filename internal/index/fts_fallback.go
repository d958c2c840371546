//go:build !sqlite_fts5

package index

import (
	"database/sql"
	"fmt"

	"github.com/mlund/partdex/internal/catalog"
)

func initFTS(_ *sql.DB) error {
	// FTS5 not available; search uses a LIKE fallback on the parts table.
	return nil
}

func ftsClear(_ *sql.Tx) {}

func ftsInsert(_ *sql.Tx, _, _ string) error {
	// Name is already stored in the parts table; nothing extra to do.
	return nil
}

// Search performs a LIKE-based search (fallback when FTS5 is not compiled in).
func (db *DB) Search(query string, limit int) ([]catalog.Entry, error) {
	if limit <= 0 {
		limit = 20
	}
	like := "%" + query + "%"
	rows, err := db.conn.Query(`
		SELECT id, name, path
		FROM parts
		WHERE id LIKE ? OR name LIKE ?
		ORDER BY id
		LIMIT ?
	`, like, like, limit)
	if err != nil {
		return nil, fmt.Errorf("index: search: %w", err)
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
