// Package internal provides the main application initialization and runtime logic.
package internal

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/mlund/partdex/internal/catalog"
	"github.com/mlund/partdex/internal/index"
	"github.com/mlund/partdex/internal/library"
	"github.com/mlund/partdex/internal/scanner"
)

// Run executes the catalogue pipeline once: evaluate cache state, extract
// the archive when needed, scan the parts tree, and publish the catalogue
// artifact and the queryable index.
func Run(ctx context.Context, opts ...Option) error {
	app := &application{}

	for _, opt := range opts {
		opt(app)
	}

	if app.config == nil {
		return fmt.Errorf("config is required")
	}

	cfg := app.config
	logger := newLogger(cfg)

	logger.Info("Configuration loaded",
		slog.String("archive_path", cfg.Archive.Path),
		slog.String("library_dir", cfg.Library.Dir),
		slog.String("catalog_path", cfg.Catalog.Path),
		slog.String("log_level", cfg.App.LogLevel.String()))

	_, err := buildOnce(ctx, cfg, app.forceRebuild, app.limit, logger)
	return err
}

// newLogger initializes the structured JSON logger and sets it as default.
func newLogger(cfg *Config) *slog.Logger {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.App.LogLevel,
	}))
	slog.SetDefault(logger)
	return logger
}

// layoutFromConfig maps the library configuration onto the on-disk layout.
func layoutFromConfig(cfg *LibraryConfig) library.Layout {
	return library.Layout{
		PartsDir:    cfg.PartsDir,
		VariantDirs: cfg.VariantDirs,
		ColourFile:  cfg.ColourFile,
		MinParts:    cfg.MinParts,
	}
}

// buildOnce runs one pass of the pipeline and returns the published
// entries. Stage failures are wrapped with the stage name so a fatal
// error states where the run stopped.
func buildOnce(ctx context.Context, cfg *Config, force bool, limit int, logger *slog.Logger) ([]catalog.Entry, error) {
	lib, err := library.New(cfg.Library.Dir, layoutFromConfig(&cfg.Library))
	if err != nil {
		return nil, fmt.Errorf("library setup: %w", err)
	}

	src, err := library.Stat(cfg.Archive.Path)
	if err != nil {
		return nil, fmt.Errorf("archive check: %w", err)
	}

	decision := library.Evaluate(lib, src, force)
	logger.Info("Cache state evaluated",
		slog.String("decision", decision.String()),
		slog.String("library_dir", lib.Root()))

	switch decision {
	case library.ExtractFresh, library.RebuildAndReindex:
		logger.Info("Extracting archive",
			slog.String("archive_path", src.Path),
			slog.Int64("archive_size", src.Size))
		if err := lib.Extract(src, cfg.Library.ColourAsset); err != nil {
			return nil, fmt.Errorf("extraction stage: %w", err)
		}
	case library.Reuse:
		logger.Info("Reusing materialized library")
	}

	sc := scanner.New(lib.Root(), cfg.Library.PartsDir, cfg.Library.VariantDirs, logger)
	entries := catalog.Build(sc.Parts(ctx), limit, logger)
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("scanning stage: %w", err)
	}
	if sc.Skipped() > 0 {
		logger.Warn("Some part files could not be read", slog.Int("skipped", sc.Skipped()))
	}

	if err := catalog.Write(cfg.Catalog.Path, entries); err != nil {
		return nil, fmt.Errorf("indexing stage: %w", err)
	}

	if cfg.Index.Enabled() {
		db, err := index.Open(cfg.Index.Path)
		if err != nil {
			return nil, fmt.Errorf("indexing stage: %w", err)
		}
		defer db.Close()
		if err := db.Rebuild(entries); err != nil {
			return nil, fmt.Errorf("indexing stage: %w", err)
		}
	}

	logger.Info("Indexed part files",
		slog.Int("entries", len(entries)),
		slog.String("catalog_path", cfg.Catalog.Path))
	return entries, nil
}

// Search queries the SQLite index and prints matches to stdout.
func Search(ctx context.Context, query string, limit int, opts ...Option) error {
	app := &application{}
	for _, opt := range opts {
		opt(app)
	}
	if app.config == nil {
		return fmt.Errorf("config is required")
	}
	cfg := app.config
	newLogger(cfg)

	if !cfg.Index.Enabled() {
		return fmt.Errorf("search requires the SQLite index; set index.path in the config")
	}

	db, err := index.Open(cfg.Index.Path)
	if err != nil {
		return err
	}
	defer db.Close()

	results, err := db.Search(query, limit)
	if err != nil {
		return err
	}
	for _, e := range results {
		fmt.Printf("%s\t%s\t%s\n", e.ID, e.Name, e.Path)
	}
	if len(results) == 0 {
		fmt.Println("no matches")
	}
	return nil
}
