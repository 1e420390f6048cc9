// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package watch re-runs a full build whenever a source file changes.
package watch

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is how long the watcher waits for further changes before
// rebuilding.
const DefaultDebounce = 500 * time.Millisecond

// Watcher watches the directories behind a set of glob patterns and calls
// rebuild once changes settle.
type Watcher struct {
	fsw      *fsnotify.Watcher
	patterns []string
	debounce time.Duration
	rebuild  func(ctx context.Context) error
	logger   *slog.Logger
}

// New creates a watcher over the base directories of patterns
// ("data/**/*.yaml" watches data/ and its subdirectories).
func New(patterns []string, debounce time.Duration, rebuild func(ctx context.Context) error, logger *slog.Logger) (*Watcher, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}
	w := &Watcher{
		fsw:      fsw,
		patterns: patterns,
		debounce: debounce,
		rebuild:  rebuild,
		logger:   logger,
	}
	for _, dir := range BaseDirs(patterns) {
		if err := w.addRecursive(dir); err != nil {
			fsw.Close()
			return nil, err
		}
	}
	return w, nil
}

// BaseDirs returns the sorted, distinct directories that contain the
// matches of patterns: the static prefix of each glob.
func BaseDirs(patterns []string) []string {
	seen := make(map[string]bool)
	var dirs []string
	for _, p := range patterns {
		base, _ := doublestar.SplitPattern(filepath.ToSlash(p))
		if base == "" {
			base = "."
		}
		if !strings.ContainsAny(p, "*?[{") {
			base = filepath.Dir(p)
		}
		base = filepath.Clean(base)
		if !seen[base] {
			seen[base] = true
			dirs = append(dirs, base)
		}
	}
	sort.Strings(dirs)
	return dirs
}

func (w *Watcher) addRecursive(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("watching %s: %w", root, err)
		}
		if !d.IsDir() {
			return nil
		}
		if name := d.Name(); strings.HasPrefix(name, ".") && path != root {
			return filepath.SkipDir
		}
		if err := w.fsw.Add(path); err != nil {
			return fmt.Errorf("watching %s: %w", path, err)
		}
		w.logger.Debug("watching directory", "path", path)
		return nil
	})
}

// matches reports whether path is selected by one of the patterns.
func (w *Watcher) matches(path string) bool {
	slashed := filepath.ToSlash(filepath.Clean(path))
	for _, p := range w.patterns {
		if ok, _ := doublestar.Match(filepath.ToSlash(filepath.Clean(p)), slashed); ok {
			return true
		}
	}
	return false
}

// Run processes file events until ctx is cancelled. Relevant changes start
// a timer; when no further change arrives within the debounce interval the
// rebuild runs. Rebuild errors are logged and watching continues.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.fsw.Close()

	timer := time.NewTimer(w.debounce)
	timer.Stop()

	for {
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()

		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := w.addRecursive(event.Name); err != nil {
						w.logger.Warn("failed to watch new directory", "path", event.Name, "error", err)
					}
					continue
				}
			}
			if event.Has(fsnotify.Chmod) && !event.Has(fsnotify.Write) {
				continue
			}
			if !w.matches(event.Name) {
				continue
			}
			w.logger.Debug("change detected", "path", event.Name, "op", event.Op.String())
			timer.Reset(w.debounce)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Error("watcher error", "error", err)

		case <-timer.C:
			w.logger.Info("rebuilding")
			if err := w.rebuild(ctx); err != nil {
				w.logger.Error("rebuild failed", "error", err)
			}
		}
	}
}
