package index

import "github.com/mlund/partdex/internal/catalog"

// PartIndex defines the interface for part index operations. Consumers
// should depend on this interface rather than the concrete *DB type to
// facilitate testing with mocks.
type PartIndex interface {
	Rebuild(entries []catalog.Entry) error
	Get(id string) (*catalog.Entry, error)
	List(limit, offset int) ([]catalog.Entry, error)
	Count() (int, error)
	Search(query string, limit int) ([]catalog.Entry, error)
	Close() error
}

// Verify *DB satisfies PartIndex at compile time.
var _ PartIndex = (*DB)(nil)
