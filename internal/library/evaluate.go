package library

import (
	"os"
	"path/filepath"
	"strings"
)

// Decision is the cache state evaluator's verdict for a target directory.
type Decision int

const (
	// Reuse: the library is complete and matches the archive; skip extraction.
	Reuse Decision = iota
	// ExtractFresh: the target directory does not exist yet.
	ExtractFresh
	// RebuildAndReindex: a rebuild was forced, or the directory exists but
	// failed a completeness check.
	RebuildAndReindex
)

// String returns the decision name for logging.
func (d Decision) String() string {
	switch d {
	case Reuse:
		return "reuse"
	case ExtractFresh:
		return "extract-fresh"
	case RebuildAndReindex:
		return "rebuild-and-reindex"
	default:
		return "unknown"
	}
}

// Source identifies the compressed archive a library is extracted from.
// Read-only; prepared once per run by the caller.
type Source struct {
	Path        string
	Size        int64
	Fingerprint string
}

// Evaluate decides whether the library can be reused as-is, must be
// extracted fresh, or must be rebuilt. It is a pure function over
// observable directory state: it never deletes or writes.
//
// The completeness check is deliberately shallow (marker read, a few
// stats, a bounded directory listing) since it runs on every invocation.
// An interrupted extraction leaves no marker and therefore rebuilds.
func Evaluate(l *Library, src Source, force bool) Decision {
	if !l.Exists() {
		return ExtractFresh
	}
	if force {
		return RebuildAndReindex
	}

	m, err := l.ReadMarker()
	if err != nil || m.Version != markerVersion {
		return RebuildAndReindex
	}
	if m.ArchiveSize != src.Size || m.ArchiveFingerprint != src.Fingerprint {
		return RebuildAndReindex
	}

	if l.layout.ColourFile != "" {
		if _, err := os.Stat(filepath.Join(l.root, l.layout.ColourFile)); err != nil {
			return RebuildAndReindex
		}
	}

	if shallowPartCount(l.PartsRoot(), l.layout.MinParts) < l.layout.MinParts {
		return RebuildAndReindex
	}

	return Reuse
}

// shallowPartCount counts part files directly under the parts dir, stopping
// as soon as want is reached. A sampled check, not a full deep scan.
func shallowPartCount(partsRoot string, want int) int {
	entries, err := os.ReadDir(partsRoot)
	if err != nil {
		return 0
	}
	count := 0
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if strings.EqualFold(filepath.Ext(e.Name()), ".dat") {
			count++
			if count >= want {
				return count
			}
		}
	}
	return count
}
