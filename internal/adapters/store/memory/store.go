// Package memory provides an in-process state store. It backs tests and the
// "memory" backend, where state only lives as long as the process.
package memory

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/bnema/drivefocus/internal/adapters/store/watch"
	"github.com/bnema/drivefocus/internal/domain"
	"github.com/bnema/drivefocus/internal/ports"
)

var (
	_ ports.StateStore = (*Store)(nil)
	_ ports.ChangeFeed = (*Store)(nil)
)

var errClosed = errors.New("state store is closed")

type value struct {
	isBool bool
	flag   bool
	at     time.Time
}

type Store struct {
	mu      sync.RWMutex
	values  map[string]value
	signals map[chan struct{}]struct{}
	closed  bool
}

func NewStore() *Store {
	return &Store{
		values:  make(map[string]value),
		signals: make(map[chan struct{}]struct{}),
	}
}

func (s *Store) GetBool(ctx context.Context, key string, fallback bool) (bool, error) {
	v, found, err := s.get(ctx, key)
	if err != nil || !found {
		return fallback, err
	}
	if !v.isBool {
		return fallback, fmt.Errorf("reading %s as bool: %w", key, domain.ErrTypeMismatch)
	}
	return v.flag, nil
}

func (s *Store) SetBool(ctx context.Context, key string, flag bool) error {
	return s.put(ctx, key, value{isBool: true, flag: flag})
}

func (s *Store) GetTimestamp(ctx context.Context, key string) (time.Time, bool, error) {
	v, found, err := s.get(ctx, key)
	if err != nil || !found {
		return time.Time{}, false, err
	}
	if v.isBool {
		return time.Time{}, false, fmt.Errorf("reading %s as timestamp: %w", key, domain.ErrTypeMismatch)
	}
	return v.at, true, nil
}

// SetTimestamp stores at with millisecond precision, matching the on-disk store.
func (s *Store) SetTimestamp(ctx context.Context, key string, at time.Time) error {
	return s.put(ctx, key, value{at: time.UnixMilli(at.UnixMilli())})
}

func (s *Store) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return errClosed
	}
	delete(s.values, key)
	s.mu.Unlock()

	s.notify()
	return nil
}

func (s *Store) Keys(ctx context.Context, prefix string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil, errClosed
	}

	var keys []string
	for key := range s.values {
		if strings.HasPrefix(key, prefix) {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	return keys, nil
}

func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

// Watch follows keys until ctx is done. Every write signals each watcher.
func (s *Store) Watch(ctx context.Context, keys ...string) (<-chan domain.StateChange, error) {
	if len(keys) == 0 {
		return nil, errors.New("watch requires at least one key")
	}

	signal := make(chan struct{}, 1)
	s.mu.Lock()
	s.signals[signal] = struct{}{}
	s.mu.Unlock()

	out := make(chan domain.StateChange, len(keys))
	go func() {
		defer close(out)
		defer func() {
			s.mu.Lock()
			delete(s.signals, signal)
			s.mu.Unlock()
		}()
		watch.Follow(ctx, s, keys, signal, 0, nil, out)
	}()

	return out, nil
}

func (s *Store) get(ctx context.Context, key string) (value, bool, error) {
	if err := ctx.Err(); err != nil {
		return value{}, false, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return value{}, false, errClosed
	}
	v, found := s.values[key]
	return v, found, nil
}

func (s *Store) put(ctx context.Context, key string, v value) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return errClosed
	}
	s.values[key] = v
	s.mu.Unlock()

	s.notify()
	return nil
}

func (s *Store) notify() {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for signal := range s.signals {
		watch.Notify(signal)
	}
}
