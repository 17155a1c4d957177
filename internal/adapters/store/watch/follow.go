// Package watch turns state store writes into a stream of boolean key changes.
//
// Writers never publish events directly. Instead a watcher re-reads the keys
// it cares about whenever something hints at a write (a filesystem event on
// the store directory, an in-process signal, or a poll tick) and emits only
// the keys whose value differs from what it last saw. Bursts of writes
// coalesce and the final value is always delivered.
package watch

import (
	"context"
	"time"

	"github.com/bnema/drivefocus/internal/domain"
	"github.com/bnema/drivefocus/internal/logger"
	"github.com/bnema/drivefocus/internal/ports"
)

// Follow emits the current value of every key once, then every change, until
// ctx is done. A missing key reads as false. Keys that fail to read keep
// their last known value.
func Follow(
	ctx context.Context,
	store ports.StateStore,
	keys []string,
	signal <-chan struct{},
	poll time.Duration,
	clock ports.Clock,
	out chan<- domain.StateChange,
) {
	if clock == nil {
		clock = ports.SystemClock{}
	}

	var tick <-chan time.Time
	if poll > 0 {
		ticker := time.NewTicker(poll)
		defer ticker.Stop()
		tick = ticker.C
	}

	known := make(map[string]bool, len(keys))
	refresh := func() bool {
		for _, key := range keys {
			value, err := store.GetBool(ctx, key, false)
			if err != nil {
				logger.Debug("watch: read failed", "key", key, "error", err)
				continue
			}
			if last, seen := known[key]; seen && last == value {
				continue
			}
			known[key] = value

			select {
			case out <- domain.StateChange{Key: key, Value: value, At: clock.Now()}:
			case <-ctx.Done():
				return false
			}
		}
		return true
	}

	if !refresh() {
		return
	}

	for {
		select {
		case <-ctx.Done():
			return
		case <-signal:
		case <-tick:
		}
		if !refresh() {
			return
		}
	}
}

// Notify performs a non-blocking send on a one-slot signal channel.
func Notify(signal chan struct{}) {
	select {
	case signal <- struct{}{}:
	default:
	}
}
