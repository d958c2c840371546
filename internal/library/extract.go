package library

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/klauspost/compress/zip"

	"github.com/mlund/partdex/internal/apperr"
	"github.com/mlund/partdex/internal/fingerprint"
)

// Stat inspects the source archive and returns its identity. Fails with
// ErrArchiveMissing when the archive does not exist or is not a regular
// file. The fingerprint is content-based (xxh3), so replacing the archive
// with one of identical size still invalidates the cache.
func Stat(archivePath string) (Source, error) {
	info, err := os.Stat(archivePath)
	if err != nil || info.IsDir() {
		return Source{}, fmt.Errorf("%w: %s", apperr.ErrArchiveMissing, archivePath)
	}
	fp, err := fingerprint.File(archivePath)
	if err != nil {
		return Source{}, fmt.Errorf("%w: %s: %v", apperr.ErrArchiveCorrupt, archivePath, err)
	}
	return Source{Path: archivePath, Size: info.Size(), Fingerprint: fp}, nil
}

// Extract materializes the archive into the library root.
//
// Destructive-safe: any existing target directory is removed in full
// before extraction, so partial old state never coexists with new state.
// On any mid-extraction failure the target is removed again and
// ErrExtraction is returned, so callers never treat a failed extraction
// as a valid cache.
//
// After a successful extraction the colour configuration asset (if any)
// is copied in and the completeness marker is written.
func (l *Library) Extract(src Source, colourAsset string) error {
	r, err := zip.OpenReader(src.Path)
	if err != nil && !errors.Is(err, zip.ErrInsecurePath) {
		return fmt.Errorf("%w: %s: %v", apperr.ErrArchiveCorrupt, src.Path, err)
	}
	// ErrInsecurePath still yields a usable reader; the per-entry path
	// guard below rejects the offending entries itself.
	defer r.Close()

	if err := os.RemoveAll(l.root); err != nil {
		return fmt.Errorf("%w: remove stale target: %v", apperr.ErrExtraction, err)
	}
	if err := os.MkdirAll(l.root, 0o755); err != nil {
		return fmt.Errorf("%w: create target: %v", apperr.ErrExtraction, err)
	}

	files := 0
	parts := 0
	for _, f := range r.File {
		if err := l.extractEntry(f); err != nil {
			_ = os.RemoveAll(l.root)
			return fmt.Errorf("%w: %s: %v", apperr.ErrExtraction, f.Name, err)
		}
		if !f.FileInfo().IsDir() {
			files++
			if l.isPartEntry(f.Name) {
				parts++
			}
		}
	}

	if err := l.CopyColourConfig(colourAsset); err != nil {
		_ = os.RemoveAll(l.root)
		return fmt.Errorf("%w: %v", apperr.ErrExtraction, err)
	}

	m := &Marker{
		Version:            markerVersion,
		ArchiveFingerprint: src.Fingerprint,
		ArchiveSize:        src.Size,
		Files:              files,
		Parts:              parts,
		GeneratedAt:        time.Now().UTC(),
	}
	if err := l.WriteMarker(m); err != nil {
		_ = os.RemoveAll(l.root)
		return fmt.Errorf("%w: %v", apperr.ErrExtraction, err)
	}
	return nil
}

// extractEntry writes a single archive entry under the library root,
// rejecting entries whose cleaned path would escape it.
func (l *Library) extractEntry(f *zip.File) error {
	target, err := l.safePath(filepath.FromSlash(f.Name))
	if err != nil {
		return err
	}

	if f.FileInfo().IsDir() {
		return os.MkdirAll(target, 0o755)
	}

	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return err
	}

	in, err := f.Open()
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// isPartEntry reports whether an archive entry path (slash-separated)
// names a part file under the parts area.
func (l *Library) isPartEntry(name string) bool {
	prefix := l.layout.PartsDir + "/"
	return strings.HasPrefix(name, prefix) && strings.EqualFold(filepath.Ext(name), ".dat")
}
