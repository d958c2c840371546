package internal

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"golang.org/x/sync/errgroup"
)

// rebuildDelay debounces bursts of file events (an editor save or a bulk
// copy into the library fires many) into a single catalogue rebuild.
const rebuildDelay = 500 * time.Millisecond

// Watch runs the pipeline once, then watches the materialized library and
// republishes the catalogue whenever part files change on disk. Extraction
// is not repeated; the evaluator reuses the library and the scan picks up
// whatever is on disk. Intended for curating unofficial parts into a
// library between archive releases.
func Watch(ctx context.Context, opts ...Option) error {
	app := &application{}
	for _, opt := range opts {
		opt(app)
	}
	if app.config == nil {
		return fmt.Errorf("config is required")
	}
	cfg := app.config
	logger := newLogger(cfg)

	if _, err := buildOnce(ctx, cfg, app.forceRebuild, app.limit, logger); err != nil {
		return err
	}

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return watchLoop(gCtx, cfg, app.limit, logger)
	})

	g.Go(func() error {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(quit)

		select {
		case sig := <-quit:
			logger.Info("Received shutdown signal", slog.String("signal", sig.String()))
			return context.Canceled
		case <-gCtx.Done():
			return nil
		}
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	logger.Info("Watch stopped")
	return nil
}

// watchLoop processes fsnotify events until ctx is cancelled. New
// directories created at runtime are added to the watch list; relevant
// events schedule a debounced rebuild.
func watchLoop(ctx context.Context, cfg *Config, limit int, logger *slog.Logger) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	partsRoot := cfg.Library.PartsPath()
	if err := addDirsRecursive(w, partsRoot); err != nil {
		return err
	}

	logger.Info("watcher: started", slog.String("root", partsRoot))

	var rebuildTimer *time.Timer
	var rebuildCh <-chan time.Time

	scheduleRebuild := func() {
		if rebuildTimer == nil {
			rebuildTimer = time.NewTimer(rebuildDelay)
			rebuildCh = rebuildTimer.C
		} else {
			rebuildTimer.Reset(rebuildDelay)
		}
	}

	for {
		select {
		case <-ctx.Done():
			if rebuildTimer != nil {
				rebuildTimer.Stop()
			}
			logger.Info("watcher: stopped")
			return nil

		case <-rebuildCh:
			if _, err := buildOnce(ctx, cfg, false, limit, logger); err != nil {
				logger.Error("watcher: rebuild failed", slog.String("error", err.Error()))
			}

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}

			if ev.Op&fsnotify.Create != 0 {
				if info, statErr := os.Stat(ev.Name); statErr == nil && info.IsDir() {
					if addErr := addDirsRecursive(w, ev.Name); addErr != nil {
						logger.Warn("watcher: add new dir failed",
							slog.String("path", ev.Name),
							slog.String("error", addErr.Error()))
					}
					scheduleRebuild()
					continue
				}
			}

			// Only part file changes trigger a rebuild.
			if filepath.Ext(ev.Name) != ".dat" {
				continue
			}
			logger.Debug("watcher: change detected",
				slog.String("path", ev.Name),
				slog.String("op", ev.Op.String()))
			scheduleRebuild()

		case watchErr, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Error("watcher: error", slog.String("error", watchErr.Error()))
		}
	}
}

// addDirsRecursive adds root and all its subdirectories to the watcher.
func addDirsRecursive(w *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return w.Add(path)
		}
		return nil
	})
}
