// Package library manages the materialized part library: cache state
// evaluation, archive extraction, and the completeness marker.
package library

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Layout describes where things live inside a materialized library.
type Layout struct {
	// PartsDir is the subdirectory holding indexable part files.
	PartsDir string
	// VariantDirs are directory names beneath PartsDir whose files are
	// patterned variants of a base part.
	VariantDirs []string
	// ColourFile is the colour configuration file expected at the library
	// root. Its presence is part of the completeness check.
	ColourFile string
	// MinParts is the minimum number of part files a shallow scan must
	// find for the library to count as complete.
	MinParts int
}

// Library is the on-disk extracted tree rooted at a target directory.
type Library struct {
	root   string // absolute path to the library root
	layout Layout
}

// New creates a Library rooted at dir. The directory does not have to
// exist yet; extraction creates it.
func New(dir string, layout Layout) (*Library, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("library: resolve root: %w", err)
	}
	if layout.PartsDir == "" {
		return nil, fmt.Errorf("library: layout needs a parts dir")
	}
	return &Library{root: abs, layout: layout}, nil
}

// Root returns the absolute path of the library root.
func (l *Library) Root() string { return l.root }

// PartsRoot returns the absolute path of the parts area.
func (l *Library) PartsRoot() string { return filepath.Join(l.root, l.layout.PartsDir) }

// Layout returns the library layout.
func (l *Library) Layout() Layout { return l.layout }

// Exists reports whether the library root directory exists.
func (l *Library) Exists() bool {
	info, err := os.Stat(l.root)
	return err == nil && info.IsDir()
}

// safePath resolves a relative path against the library root and rejects
// any result that escapes it (directory traversal).
func (l *Library) safePath(rel string) (string, error) {
	cleaned := filepath.Clean(rel)
	if filepath.IsAbs(cleaned) {
		return "", fmt.Errorf("library: absolute paths not allowed: %s", rel)
	}
	joined := filepath.Join(l.root, cleaned)
	abs, err := filepath.Abs(joined)
	if err != nil {
		return "", fmt.Errorf("library: resolve path: %w", err)
	}
	if !strings.HasPrefix(abs, l.root+string(os.PathSeparator)) && abs != l.root {
		return "", fmt.Errorf("library: path escapes library root: %s", rel)
	}
	return abs, nil
}

// CopyColourConfig copies the colour configuration asset into the library
// root, verbatim. A missing asset is not an error when the layout has no
// colour file configured.
func (l *Library) CopyColourConfig(assetPath string) error {
	if l.layout.ColourFile == "" || assetPath == "" {
		return nil
	}
	src, err := os.Open(assetPath)
	if err != nil {
		return fmt.Errorf("library: open colour asset: %w", err)
	}
	defer src.Close()

	target, err := l.safePath(l.layout.ColourFile)
	if err != nil {
		return err
	}
	dst, err := os.Create(target)
	if err != nil {
		return fmt.Errorf("library: create colour file: %w", err)
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		return fmt.Errorf("library: copy colour file: %w", err)
	}
	if err := dst.Close(); err != nil {
		return fmt.Errorf("library: close colour file: %w", err)
	}
	return nil
}
