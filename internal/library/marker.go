package library

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	json "github.com/goccy/go-json"
)

// markerName is the completeness marker written at the library root after
// a successful extraction. Its absence means the library cannot be trusted
// (an interrupted run leaves no marker).
const markerName = ".partdex.json"

// markerVersion bumps when the marker format or the extraction semantics
// change, forcing a rebuild of libraries written by older builds.
const markerVersion = 1

// Marker records what the library was extracted from, so the evaluator can
// detect a swapped or updated archive without re-extracting.
type Marker struct {
	Version            int       `json:"version"`
	ArchiveFingerprint string    `json:"archive_fingerprint"`
	ArchiveSize        int64     `json:"archive_size"`
	Files              int       `json:"files"`
	Parts              int       `json:"parts"`
	GeneratedAt        time.Time `json:"generated_at"`
}

// MarkerPath returns the absolute path of the completeness marker.
func (l *Library) MarkerPath() string {
	return filepath.Join(l.root, markerName)
}

// ReadMarker reads and decodes the completeness marker. A missing or
// undecodable marker returns an error; callers treat both as "rebuild".
func (l *Library) ReadMarker() (*Marker, error) {
	data, err := os.ReadFile(l.MarkerPath())
	if err != nil {
		return nil, fmt.Errorf("library: read marker: %w", err)
	}
	var m Marker
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("library: decode marker: %w", err)
	}
	return &m, nil
}

// WriteMarker atomically writes the completeness marker: tmp file → fsync
// → rename, so a crash mid-write never leaves a truncated marker that
// reads as valid.
func (l *Library) WriteMarker(m *Marker) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("library: encode marker: %w", err)
	}

	tmp, err := os.CreateTemp(l.root, ".partdex-tmp-*")
	if err != nil {
		return fmt.Errorf("library: create temp marker: %w", err)
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
		return fmt.Errorf("library: write marker: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("library: fsync marker: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("library: close marker: %w", err)
	}
	if err := os.Rename(tmpName, l.MarkerPath()); err != nil {
		return fmt.Errorf("library: rename marker: %w", err)
	}
	success = true
	return nil
}
