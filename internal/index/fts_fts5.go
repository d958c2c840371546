//go:build sqlite_fts5

package index

import (
	"database/sql"
	"fmt"

	"github.com/mlund/partdex/internal/catalog"
)

func initFTS(conn *sql.DB) error {
	_, err := conn.Exec(`
		CREATE VIRTUAL TABLE IF NOT EXISTS parts_fts USING fts5(
			id UNINDEXED,
			name,
			tokenize = 'unicode61 remove_diacritics 2'
		);
	`)
	return err
}

func ftsClear(tx *sql.Tx) {
	_, _ = tx.Exec(`DELETE FROM parts_fts`)
}

func ftsInsert(tx *sql.Tx, id, name string) error {
	_, err := tx.Exec(`INSERT INTO parts_fts (id, name) VALUES (?, ?)`, id, name)
	if err != nil {
		return fmt.Errorf("index: insert fts: %w", err)
	}
	return nil
}

// Search performs an FTS5 search over part names and returns matches
// ordered by rank.
func (db *DB) Search(query string, limit int) ([]catalog.Entry, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := db.conn.Query(`
		SELECT p.id, p.name, p.path
		FROM parts_fts f
		JOIN parts p ON p.id = f.id
		WHERE parts_fts MATCH ?
		ORDER BY rank
		LIMIT ?
	`, query, limit)
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
