package schema

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// watchSettle is how long a schema file must stay quiet before it is
// reloaded. Editors often write a file in several steps.
const watchSettle = 50 * time.Millisecond

// Watch loads the schema file at path and reloads it every time it changes,
// reporting each result to fn. The first call to fn carries the initial
// load. Watch blocks until ctx is done.
//
// The parent directory is watched rather than the file itself so that
// editors which save by renaming a temporary file are followed.
func Watch(ctx context.Context, path string, fn func(*Registry, error)) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating schema watcher: %w", err)
	}
	defer w.Close()

	if err := w.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("watching %s: %w", filepath.Dir(abs), err)
	}
	fn(LoadFile(abs))

	var settle *time.Timer
	var fire <-chan time.Time
	defer func() {
		if settle != nil {
			settle.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != abs || !ev.Has(fsnotify.Write|fsnotify.Create) {
				continue
			}
			if settle == nil {
				settle = time.NewTimer(watchSettle)
			} else {
				settle.Reset(watchSettle)
			}
			fire = settle.C
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			fn(nil, fmt.Errorf("watching %s: %w", abs, err))
		case <-fire:
			fire = nil
			fn(LoadFile(abs))
		}
	}
}
