package application

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/bnema/drivefocus/internal/domain"
	"github.com/bnema/drivefocus/internal/logger"
	"github.com/bnema/drivefocus/internal/ports"
)

// History reads and prunes the rejection history. The call screener never
// prunes; entries older than the retention are removed here.
type History struct {
	store     ports.StateStore
	window    time.Duration
	retention time.Duration
}

func NewHistory(store ports.StateStore, window, retention time.Duration) *History {
	if window <= 0 {
		window = domain.DefaultEmergencyWindow
	}
	if retention < window {
		retention = window
	}

	return &History{store: store, window: window, retention: retention}
}

// List returns every recorded rejection, most recent first.
func (h *History) List(ctx context.Context, now time.Time) ([]HistoryEntry, error) {
	keys, err := h.store.Keys(ctx, domain.RejectedCallPrefix)
	if err != nil {
		return nil, fmt.Errorf("list rejection history: %w", err)
	}

	entries := make([]HistoryEntry, 0, len(keys))
	for _, key := range keys {
		caller, ok := domain.CallerFromKey(key)
		if !ok {
			continue
		}

		rejectedAt, found, err := h.store.GetTimestamp(ctx, key)
		if err != nil {
			if errors.Is(err, domain.ErrTypeMismatch) {
				logger.Warn("history: skipping malformed entry", "key", key, "error", err)
				continue
			}
			return nil, fmt.Errorf("read rejection %s: %w", caller, err)
		}
		if !found {
			continue
		}

		entry := domain.RejectionEntry{CallerID: caller, RejectedAt: rejectedAt}
		entries = append(entries, HistoryEntry{
			RejectionEntry:  entry,
			WindowRemaining: entry.WindowRemaining(now, h.window),
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].RejectedAt.After(entries[j].RejectedAt)
	})

	return entries, nil
}

// Prune deletes entries older than the retention and reports how many were
// removed. Entries still inside the emergency window are never removed.
func (h *History) Prune(ctx context.Context, now time.Time) (int, error) {
	entries, err := h.List(ctx, now)
	if err != nil {
		return 0, err
	}

	removed := 0
	var errs error
	for _, entry := range entries {
		if !entry.Expired(now, h.retention) {
			continue
		}
		if err := h.store.Delete(ctx, domain.RejectedCallKey(entry.CallerID)); err != nil {
			errs = errors.Join(errs, fmt.Errorf("delete rejection %s: %w", entry.CallerID, err))
			continue
		}
		removed++
	}

	if removed > 0 {
		logger.Info("history: pruned expired rejections", "removed", removed, "retention", h.retention)
	}

	return removed, errs
}

// Clear deletes the whole rejection history.
func (h *History) Clear(ctx context.Context) (int, error) {
	keys, err := h.store.Keys(ctx, domain.RejectedCallPrefix)
	if err != nil {
		return 0, fmt.Errorf("list rejection history: %w", err)
	}

	removed := 0
	var errs error
	for _, key := range keys {
		if err := h.store.Delete(ctx, key); err != nil {
			errs = errors.Join(errs, fmt.Errorf("delete %s: %w", key, err))
			continue
		}
		removed++
	}

	return removed, errs
}
