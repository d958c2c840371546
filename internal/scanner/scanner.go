package scanner

import (
	"context"
	"fmt"
	"iter"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/sourcegraph/conc/pool"
)

// Part is one indexable candidate discovered during the tree walk.
type Part struct {
	// ID is the stable identifier: lowercased filename stem. Uniqueness
	// across the catalogue is enforced downstream by the writer.
	ID string
	// Name is the display name: the declared title, or the filename stem
	// when the file declares none.
	Name string
	// Path is the file path relative to the library root, slash-separated.
	Path string
	// Kind is PlainPart or PatternedVariant; Excluded files are never yielded.
	Kind Kind
}

// Scanner walks the parts area of a materialized library.
type Scanner struct {
	libRoot   string // absolute library root
	partsDir  string // parts subdirectory name
	isVariant func(string) bool
	workers   int
	logger    *slog.Logger

	err     error
	skipped int
}

// New creates a Scanner over the library rooted at libRoot. variantDirs
// lists directory names whose part files are patterned variants.
func New(libRoot, partsDir string, variantDirs []string, logger *slog.Logger) *Scanner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Scanner{
		libRoot:   libRoot,
		partsDir:  partsDir,
		isVariant: VariantDirSet(variantDirs),
		workers:   min(max(runtime.NumCPU()*2, 4), 32),
		logger:    logger,
	}
}

// Parts returns a lazy, single-pass sequence of indexable parts in
// lexicographic path order. Title reads within a directory run on a
// bounded worker pool; results are restored to walk order before being
// yielded, so consumers observe a deterministic sequence. Per-file read
// failures are logged and skipped, never aborting the walk. Call Err
// after consuming the sequence.
func (s *Scanner) Parts(ctx context.Context) iter.Seq[Part] {
	return func(yield func(Part) bool) {
		partsRoot := filepath.Join(s.libRoot, s.partsDir)
		if _, statErr := os.Stat(partsRoot); statErr != nil {
			s.err = fmt.Errorf("scanner: parts dir: %w", statErr)
			return
		}
		s.walk(ctx, partsRoot, "", yield)
	}
}

// Err returns the walk-level error, if any. Per-file problems are not
// errors; see Skipped.
func (s *Scanner) Err() error { return s.err }

// Skipped returns the number of candidates dropped because their file
// could not be read.
func (s *Scanner) Skipped() int { return s.skipped }

// candidate pairs a classified file with its location.
type candidate struct {
	abs  string
	rel  string // relative to parts dir, slash-separated
	kind Kind
}

// walk descends one directory depth-first in sorted entry order, which
// makes the yielded sequence lexicographic by path. Contiguous runs of
// files are batched for the worker pool and flushed, in order, before
// descending into the next subdirectory.
func (s *Scanner) walk(ctx context.Context, dir, rel string, yield func(Part) bool) bool {
	if ctx.Err() != nil {
		return false
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		if rel == "" {
			s.err = fmt.Errorf("scanner: read parts dir: %w", err)
			return false
		}
		s.logger.Warn("scan: unreadable directory, skipping",
			slog.String("path", rel),
			slog.String("error", err.Error()))
		return true
	}

	var batch []candidate
	flush := func() bool {
		for _, p := range s.load(batch) {
			if !yield(p) {
				return false
			}
		}
		batch = batch[:0]
		return true
	}

	for _, e := range entries {
		if e.IsDir() {
			if !flush() {
				return false
			}
			if !s.walk(ctx, filepath.Join(dir, e.Name()), path.Join(rel, e.Name()), yield) {
				return false
			}
			continue
		}
		childRel := path.Join(rel, e.Name())
		kind := Classify(childRel, s.isVariant)
		if kind == Excluded {
			continue
		}
		batch = append(batch, candidate{
			abs:  filepath.Join(dir, e.Name()),
			rel:  childRel,
			kind: kind,
		})
	}
	return flush()
}

// load reads titles for a directory's candidates concurrently and returns
// the resulting parts in the original candidate order. Slots whose file
// could not be read come back empty and are dropped with a warning.
func (s *Scanner) load(batch []candidate) []Part {
	if len(batch) == 0 {
		return nil
	}

	results := make([]Part, len(batch))
	ok := make([]bool, len(batch))

	p := pool.New().WithMaxGoroutines(s.workers)
	for i, c := range batch {
		p.Go(func() {
			results[i], ok[i] = s.loadOne(c)
		})
	}
	p.Wait()

	out := make([]Part, 0, len(batch))
	for i := range results {
		if !ok[i] {
			s.skipped++
			continue
		}
		out = append(out, results[i])
	}
	return out
}

// loadOne builds a Part from one candidate, reading the file head for the
// declared title and falling back to the filename stem.
func (s *Scanner) loadOne(c candidate) (Part, bool) {
	stem := strings.TrimSuffix(path.Base(c.rel), path.Ext(c.rel))

	f, err := os.Open(c.abs)
	if err != nil {
		s.logger.Warn("scan: unreadable part file, skipping",
			slog.String("path", c.rel),
			slog.String("error", err.Error()))
		return Part{}, false
	}
	defer f.Close()

	name, found := Title(f)
	if !found {
		name = stem
	}

	return Part{
		ID:   strings.ToLower(stem),
		Name: name,
		Path: path.Join(s.partsDir, c.rel),
		Kind: c.kind,
	}, true
}
