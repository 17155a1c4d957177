package watch

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/bnema/drivefocus/internal/domain"
	"github.com/bnema/drivefocus/internal/logger"
	"github.com/bnema/drivefocus/internal/ports"
)

const changeBuffer = 16

var _ ports.ChangeFeed = (*Feed)(nil)

// Feed watches the directory holding an on-disk store. Any filesystem event
// there (database or WAL writes from any process) triggers a re-read, and the
// poll interval covers platforms where events are unreliable.
type Feed struct {
	store ports.StateStore
	dir   string
	poll  time.Duration
	clock ports.Clock
}

func NewFeed(store ports.StateStore, dir string, poll time.Duration) *Feed {
	return &Feed{
		store: store,
		dir:   dir,
		poll:  poll,
		clock: ports.SystemClock{},
	}
}

func (f *Feed) Watch(ctx context.Context, keys ...string) (<-chan domain.StateChange, error) {
	if len(keys) == 0 {
		return nil, errors.New("watch requires at least one key")
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := watcher.Add(f.dir); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("watch %s: %w", f.dir, err)
	}

	signal := make(chan struct{}, 1)
	out := make(chan domain.StateChange, changeBuffer)

	go func() {
		defer watcher.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case _, ok := <-watcher.Events:
				if !ok {
					return
				}
				Notify(signal)
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Warn("watch: filesystem watcher error", "dir", f.dir, "error", err)
			}
		}
	}()

	go func() {
		defer close(out)
		Follow(ctx, f.store, keys, signal, f.poll, f.clock, out)
	}()

	return out, nil
}
