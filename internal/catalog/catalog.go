// Package catalog assembles scanned parts into the deterministic, sorted
// catalogue artifact consumed by viewers.
package catalog

import (
	"iter"
	"log/slog"
	"sort"

	"github.com/mlund/partdex/internal/scanner"
)

// Entry is one row of the catalogue: the sole contract downstream viewers
// depend on.
type Entry struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Path string `json:"path"`
}

// Build consumes the scanner's sequence, deduplicates by identifier
// (first seen in traversal order wins), sorts by identifier, and applies
// limit (0 means unlimited). Duplicates are logged and dropped, never
// silently duplicated.
func Build(parts iter.Seq[scanner.Part], limit int, logger *slog.Logger) []Entry {
	if logger == nil {
		logger = slog.Default()
	}

	seen := make(map[string]string) // id → path of the winning candidate
	entries := []Entry{}
	for p := range parts {
		if prev, dup := seen[p.ID]; dup {
			logger.Warn("catalog: duplicate identifier, dropping later candidate",
				slog.String("id", p.ID),
				slog.String("kept", prev),
				slog.String("dropped", p.Path))
			continue
		}
		seen[p.ID] = p.Path
		entries = append(entries, Entry{ID: p.ID, Name: p.Name, Path: p.Path})
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].ID < entries[j].ID })

	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries
}
