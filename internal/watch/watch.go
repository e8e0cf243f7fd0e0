// Package watch re-runs a callback whenever the fixture tree changes.
package watch

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// DefaultDebounce batches bursts of events such as editor saves.
const DefaultDebounce = 200 * time.Millisecond

// Config describes the tree to watch. Recursive and MaxDepth follow the
// fixture index semantics.
type Config struct {
	Root      string
	Recursive bool
	MaxDepth  int
	Debounce  time.Duration
	Logger    *zap.Logger
}

// Run watches cfg.Root and calls onChange once per debounced burst of
// create, write, remove or rename events. It blocks until ctx is done and
// returns nil then. onChange runs on the watching goroutine, so calls never
// overlap.
func Run(ctx context.Context, cfg Config, onChange func(context.Context)) error {
	if cfg.Debounce <= 0 {
		cfg.Debounce = DefaultDebounce
	}
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}

	root, err := filepath.Abs(cfg.Root)
	if err != nil {
		return fmt.Errorf("failed to resolve watch root %s: %w", cfg.Root, err)
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer w.Close()

	tw := &treeWatcher{cfg: cfg, root: root, w: w, log: log}
	if err := tw.add(root); err != nil {
		return err
	}
	log.Info("watching fixtures", zap.String("root", root))

	timer := time.NewTimer(cfg.Debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Debug("watcher stopped")
			return nil

		case event, ok := <-w.Events:
			if !ok {
				return errors.New("watcher event channel closed")
			}
			if !tw.handle(event) {
				continue
			}
			timer.Reset(cfg.Debounce)

		case err, ok := <-w.Errors:
			if !ok {
				return errors.New("watcher error channel closed")
			}
			log.Warn("watcher error", zap.Error(err))

		case <-timer.C:
			onChange(ctx)
		}
	}
}

type treeWatcher struct {
	cfg  Config
	root string
	w    *fsnotify.Watcher
	log  *zap.Logger
}

// handle reports whether the event should trigger a run, registering newly
// created directories on the way.
func (tw *treeWatcher) handle(event fsnotify.Event) bool {
	var kind string
	switch {
	case event.Has(fsnotify.Create):
		kind = "create"
	case event.Has(fsnotify.Write):
		kind = "modify"
	case event.Has(fsnotify.Remove):
		kind = "delete"
	case event.Has(fsnotify.Rename):
		kind = "rename"
	default:
		return false
	}
	tw.log.Debug("fixture tree changed", zap.String("event", kind), zap.String("path", event.Name))

	if kind == "create" {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if err := tw.add(event.Name); err != nil {
				tw.log.Warn("failed to watch new directory", zap.String("path", event.Name), zap.Error(err))
			}
		}
	}
	return true
}

// add registers dir and, when recursive, its subdirectories within depth.
func (tw *treeWatcher) add(dir string) error {
	return filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if p != tw.root && !tw.within(p) {
			return filepath.SkipDir
		}
		if err := tw.w.Add(p); err != nil {
			return fmt.Errorf("failed to watch %s: %w", p, err)
		}
		return nil
	})
}

func (tw *treeWatcher) within(dir string) bool {
	if !tw.cfg.Recursive {
		return false
	}
	if tw.cfg.MaxDepth == 0 {
		return true
	}
	rel, err := filepath.Rel(tw.root, dir)
	if err != nil {
		return false
	}
	return strings.Count(filepath.ToSlash(rel), "/")+1 <= tw.cfg.MaxDepth
}
