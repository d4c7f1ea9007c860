package fixture

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/mitchellh/go-homedir"

	"github.com/grindlemire/go-waterfall/internal/debug"
)

// Event carries a freshly loaded fixture, or the error that prevented loading it.
type Event struct {
	File File
	Err  error
}

// reloadDelay coalesces the burst of writes editors produce when saving.
const reloadDelay = 100 * time.Millisecond

// Watch reloads the fixture at path whenever it changes and streams the result
// until ctx is cancelled. The parent directory is watched so that editors that
// replace the file by renaming keep working. The channel is closed when ctx is
// done or the watcher fails.
func Watch(ctx context.Context, path string) (<-chan Event, error) {
	expanded, err := homedir.Expand(path)
	if err != nil {
		return nil, fmt.Errorf("fixture: expand %q: %w", path, err)
	}
	target, err := filepath.Abs(expanded)
	if err != nil {
		return nil, fmt.Errorf("fixture: resolve %s: %w", expanded, err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("fixture: create watcher: %w", err)
	}
	if err := watcher.Add(filepath.Dir(target)); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("fixture: watch %s: %w", filepath.Dir(target), err)
	}

	events := make(chan Event, 8)

	go func() {
		defer close(events)
		defer func() {
			if err := watcher.Close(); err != nil {
				debug.Log("fixture: watcher close: %v", err)
			}
		}()

		var fire <-chan time.Time
		for {
			select {
			case <-ctx.Done():
				return
			case <-fire:
				fire = nil
				f, err := Load(target)
				select {
				case events <- Event{File: f, Err: err}:
				case <-ctx.Done():
					return
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				debug.Log("fixture: watcher error: %v", err)
			case evt, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(evt.Name) != target {
					continue
				}
				if !evt.Has(fsnotify.Write) && !evt.Has(fsnotify.Create) && !evt.Has(fsnotify.Rename) {
					continue
				}
				debug.Log("fixture: %s %s", evt.Op, evt.Name)
				if fire == nil {
					fire = time.After(reloadDelay)
				}
			}
		}
	}()

	return events, nil
}
