// Package watch triggers rebuilds when files under a core's setup directory
// change. Events are debounced so a burst of writes produces one rebuild.
package watch

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"git.home.luguber.info/inful/corebuilder/internal/logfields"
)

// Watcher observes one directory tree and invokes a callback after changes
// settle for the debounce interval.
type Watcher struct {
	root     string
	debounce time.Duration
	watcher  *fsnotify.Watcher
	onChange func(ctx context.Context)
}

// New creates a Watcher over root. onChange runs after each debounced burst
// of filesystem events.
func New(root string, debounce time.Duration, onChange func(ctx context.Context)) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		root:     root,
		debounce: debounce,
		watcher:  fsw,
		onChange: onChange,
	}
	if err := w.addTree(root); err != nil {
		_ = fsw.Close()
		return nil, err
	}
	return w, nil
}

// addTree registers root and every subdirectory. fsnotify watches are not
// recursive, so new directories are added as create events arrive.
func (w *Watcher) addTree(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return w.watcher.Add(path)
		}
		return nil
	})
}

// Run blocks until ctx is canceled, dispatching debounced change callbacks.
func (w *Watcher) Run(ctx context.Context) error {
	defer func() { _ = w.watcher.Close() }()

	var timer *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return ctx.Err()

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&fsnotify.Create != 0 {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := w.watcher.Add(event.Name); err != nil {
						slog.Warn("Cannot watch new directory", logfields.Path(event.Name), logfields.Error(err))
					}
				}
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			slog.Debug("Change detected", logfields.Path(event.Name))
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Stop()
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			w.onChange(ctx)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			slog.Error("Watcher error", logfields.Error(err))
		}
	}
}
