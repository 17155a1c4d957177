package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bnema/drivefocus/internal/adapters/store/memory"
	"github.com/bnema/drivefocus/internal/domain"
	"github.com/bnema/drivefocus/internal/ports/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistoryListNewestFirstWithRemainingWindow(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	now := time.UnixMilli(100_000)

	require.NoError(t, store.SetTimestamp(ctx, domain.RejectedCallKey("+a"), now.Add(-90*time.Second)))
	require.NoError(t, store.SetTimestamp(ctx, domain.RejectedCallKey("+b"), now.Add(-15*time.Second)))
	require.NoError(t, store.SetBool(ctx, domain.KeyIsDriving, true))

	history := NewHistory(store, time.Minute, time.Hour)
	entries, err := history.List(ctx, now)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, "+b", entries[0].CallerID)
	assert.Equal(t, 45*time.Second, entries[0].WindowRemaining)
	assert.Equal(t, "+a", entries[1].CallerID)
	assert.Zero(t, entries[1].WindowRemaining)
}

func TestHistoryListSkipsMalformedEntries(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()

	require.NoError(t, store.SetBool(ctx, domain.RejectedCallKey("+bad"), true))
	require.NoError(t, store.SetTimestamp(ctx, domain.RejectedCallKey("+good"), time.UnixMilli(0)))

	entries, err := NewHistory(store, 0, 0).List(ctx, time.UnixMilli(0))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "+good", entries[0].CallerID)
}

func TestHistoryPruneKeepsRecentEntries(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	now := time.UnixMilli(0).Add(72 * time.Hour)

	require.NoError(t, store.SetTimestamp(ctx, domain.RejectedCallKey("+old"), now.Add(-48*time.Hour)))
	require.NoError(t, store.SetTimestamp(ctx, domain.RejectedCallKey("+recent"), now.Add(-time.Hour)))

	removed, err := NewHistory(store, time.Minute, 24*time.Hour).Prune(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, 1, removed)

	keys, err := store.Keys(ctx, domain.RejectedCallPrefix)
	require.NoError(t, err)
	assert.Equal(t, []string{domain.RejectedCallKey("+recent")}, keys)
}

func TestHistoryRetentionNeverBelowWindow(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	now := time.UnixMilli(100_000)

	require.NoError(t, store.SetTimestamp(ctx, domain.RejectedCallKey("+1"), now.Add(-30*time.Second)))

	removed, err := NewHistory(store, time.Minute, time.Second).Prune(ctx, now)
	require.NoError(t, err)
	assert.Zero(t, removed)
}

func TestHistoryPruneJoinsDeleteErrors(t *testing.T) {
	store := mocks.NewMockStateStore(t)
	now := time.UnixMilli(0).Add(100 * time.Hour)

	store.EXPECT().Keys(mockAnyContext(), domain.RejectedCallPrefix).Return([]string{domain.RejectedCallKey("+1")}, nil).Once()
	store.EXPECT().GetTimestamp(mockAnyContext(), domain.RejectedCallKey("+1")).Return(time.UnixMilli(0), true, nil).Once()
	store.EXPECT().Delete(mockAnyContext(), domain.RejectedCallKey("+1")).Return(errors.New("locked")).Once()

	removed, err := NewHistory(store, time.Minute, time.Hour).Prune(context.Background(), now)
	assert.Zero(t, removed)
	assert.ErrorContains(t, err, "locked")
}

func TestHistoryClear(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()

	require.NoError(t, store.SetTimestamp(ctx, domain.RejectedCallKey("+1"), time.UnixMilli(0)))
	require.NoError(t, store.SetTimestamp(ctx, domain.RejectedCallKey("+2"), time.UnixMilli(0)))
	require.NoError(t, store.SetBool(ctx, domain.KeyMonitoringEnabled, true))

	removed, err := NewHistory(store, 0, 0).Clear(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, removed)

	monitoring, err := store.GetBool(ctx, domain.KeyMonitoringEnabled, false)
	require.NoError(t, err)
	assert.True(t, monitoring)
}
