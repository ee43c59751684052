package collection

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/ramonehamilton/cr-tools/internal/planner"
)

// minPoll bounds how often the debounce deadline is checked.
const minPoll = 10 * time.Millisecond

// ChangeFunc receives the reloaded collection, or the error that stopped it loading.
type ChangeFunc func(cards []*planner.Card, err error)

// Watch calls onChange with the freshly loaded collection every time the
// file at path settles after a change. Bursts of events closer together
// than debounce produce a single reload.
//
// The parent directory is watched so editors that save by rename are
// picked up. Watch blocks until ctx is cancelled.
func Watch(ctx context.Context, path string, debounce time.Duration, onChange ChangeFunc) (err error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolve collection path: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer func() {
		if closeErr := watcher.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	if err := watcher.Add(filepath.Dir(absPath)); err != nil {
		return fmt.Errorf("failed to watch collection directory: %w", err)
	}

	poll := debounce / 4
	if poll < minPoll {
		poll = minPoll
	}
	ticker := time.NewTicker(poll)
	defer ticker.Stop()

	var (
		pending  bool
		deadline time.Time
	)

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != absPath || !relevant(event.Op) {
				continue
			}
			pending = true
			deadline = time.Now().Add(debounce)
		case werr, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			onChange(nil, fmt.Errorf("file watcher: %w", werr))
		case now := <-ticker.C:
			if !pending || now.Before(deadline) {
				continue
			}
			pending = false
			onChange(Load(absPath))
		}
	}
}

func relevant(op fsnotify.Op) bool {
	return op.Has(fsnotify.Write) || op.Has(fsnotify.Create) || op.Has(fsnotify.Rename)
}
