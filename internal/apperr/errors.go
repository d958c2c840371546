// Package apperr defines the sentinel errors shared across pipeline stages.
package apperr

import "errors"

var (
	// ErrArchiveMissing: the source archive does not exist.
	ErrArchiveMissing = errors.New("archive missing")
	// ErrArchiveCorrupt: the archive cannot be opened or is truncated.
	ErrArchiveCorrupt = errors.New("archive corrupt")
	// ErrExtraction: extraction failed partway. The target directory is
	// removed before this error propagates, so callers never see a
	// half-populated library.
	ErrExtraction = errors.New("extraction failed")
	// ErrIncomplete: a materialized library failed its completeness check.
	ErrIncomplete = errors.New("library incomplete")
	// ErrCatalogWrite: the catalogue artifact could not be written. The
	// previous artifact, if any, is left untouched.
	ErrCatalogWrite = errors.New("catalogue write failed")
)
