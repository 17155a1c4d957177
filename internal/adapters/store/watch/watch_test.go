package watch

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/bnema/drivefocus/internal/adapters/store/sqlite"
	"github.com/bnema/drivefocus/internal/domain"
	"github.com/bnema/drivefocus/internal/ports/mocks"
)

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

func TestFollowSkipsFailedReadsAndUnchangedValues(t *testing.T) {
	store := mocks.NewMockStateStore(t)
	store.EXPECT().GetBool(mock.Anything, domain.KeyIsDriving, false).Return(false, errors.New("locked")).Once()
	store.EXPECT().GetBool(mock.Anything, domain.KeyIsDriving, false).Return(true, nil)

	ctx, cancel := context.WithCancel(context.Background())
	signal := make(chan struct{}, 1)
	out := make(chan domain.StateChange, 4)
	done := make(chan struct{})
	clock := fixedClock{now: time.UnixMilli(5000)}

	go func() {
		defer close(done)
		Follow(ctx, store, []string{domain.KeyIsDriving}, signal, 0, clock, out)
	}()

	signal <- struct{}{}
	change := receive(t, out)
	assert.Equal(t, domain.StateChange{Key: domain.KeyIsDriving, Value: true, At: clock.now}, change)

	signal <- struct{}{}
	select {
	case extra := <-out:
		t.Fatalf("unexpected change %+v", extra)
	case <-time.After(50 * time.Millisecond):
	}

	cancel()
	<-done
}

func TestFollowPollsWithoutSignals(t *testing.T) {
	store := mocks.NewMockStateStore(t)
	store.EXPECT().GetBool(mock.Anything, domain.KeyMonitoringEnabled, false).Return(true, nil).Once()
	store.EXPECT().GetBool(mock.Anything, domain.KeyMonitoringEnabled, false).Return(false, nil)

	ctx, cancel := context.WithCancel(context.Background())
	out := make(chan domain.StateChange, 4)
	done := make(chan struct{})

	go func() {
		defer close(done)
		Follow(ctx, store, []string{domain.KeyMonitoringEnabled}, nil, 10*time.Millisecond, nil, out)
	}()

	assert.True(t, receive(t, out).Value)
	assert.False(t, receive(t, out).Value)

	cancel()
	<-done
}

func TestNotifyNeverBlocks(t *testing.T) {
	signal := make(chan struct{}, 1)
	Notify(signal)
	Notify(signal)
	assert.Len(t, signal, 1)
}

func TestFeedSeesWritesFromAnotherHandle(t *testing.T) {
	dir := t.TempDir()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reader, err := sqlite.NewStore(dir, time.Second)
	require.NoError(t, err)
	defer reader.Close()
	writer, err := sqlite.NewStore(dir, time.Second)
	require.NoError(t, err)
	defer writer.Close()

	feed := NewFeed(reader, reader.Dir(), 200*time.Millisecond)
	changes, err := feed.Watch(ctx, domain.KeyMonitoringEnabled)
	require.NoError(t, err)

	assert.False(t, receive(t, changes).Value)

	require.NoError(t, writer.SetBool(ctx, domain.KeyMonitoringEnabled, true))
	change := receive(t, changes)
	assert.Equal(t, domain.KeyMonitoringEnabled, change.Key)
	assert.True(t, change.Value)

	cancel()
	for range changes {
	}
}

func TestFeedErrors(t *testing.T) {
	feed := NewFeed(nil, filepath.Join(t.TempDir(), "missing"), time.Second)

	_, err := feed.Watch(context.Background(), domain.KeyIsDriving)
	assert.ErrorContains(t, err, "watch")

	_, err = feed.Watch(context.Background())
	assert.ErrorContains(t, err, "at least one key")
}

func receive(t *testing.T, changes <-chan domain.StateChange) domain.StateChange {
	t.Helper()

	select {
	case change, ok := <-changes:
		require.True(t, ok, "channel closed")
		return change
	case <-time.After(2 * time.Second):
		t.Fatal("timeout waiting for state change")
		return domain.StateChange{}
	}
}
