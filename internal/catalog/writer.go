package catalog

import (
	"fmt"
	"os"
	"path/filepath"

	json "github.com/goccy/go-json"

	"github.com/mlund/partdex/internal/apperr"
)

// Write serializes entries to path atomically: tmp file → fsync → rename.
// A concurrent reader observes either the previous artifact or the new
// one, never a partial write. On failure the previous artifact, if any,
// is left untouched.
func Write(path string, entries []Entry) error {
	if entries == nil {
		entries = []Entry{}
	}
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: encode: %v", apperr.ErrCatalogWrite, err)
	}
	data = append(data, '\n')

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("%w: mkdir: %v", apperr.ErrCatalogWrite, err)
	}

	tmp, err := os.CreateTemp(dir, ".partdex-tmp-*")
	if err != nil {
		return fmt.Errorf("%w: create temp: %v", apperr.ErrCatalogWrite, err)
	}
	tmpName := tmp.Name()

	success := false
	defer func() {
		if !success {
			_ = tmp.Close()
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		return fmt.Errorf("%w: write temp: %v", apperr.ErrCatalogWrite, err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("%w: fsync: %v", apperr.ErrCatalogWrite, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%w: close temp: %v", apperr.ErrCatalogWrite, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("%w: rename: %v", apperr.ErrCatalogWrite, err)
	}
	success = true
	return nil
}

// Read loads a previously written catalogue artifact.
func Read(path string) ([]Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("catalog: read %s: %w", path, err)
	}
	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("catalog: decode %s: %w", path, err)
	}
	return entries, nil
}
