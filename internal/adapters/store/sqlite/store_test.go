package sqlite

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/bnema/drivefocus/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestStore(t *testing.T) (*Store, string) {
	t.Helper()

	dir := t.TempDir()
	store, err := NewStore(dir, 0)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	return store, dir
}

func TestNewStoreRejectsEmptyDir(t *testing.T) {
	_, err := NewStore("  ", time.Second)
	assert.ErrorContains(t, err, "state directory is empty")
}

func TestStoreBoolRoundTrip(t *testing.T) {
	store, _ := setupTestStore(t)
	ctx := context.Background()

	got, err := store.GetBool(ctx, domain.KeyIsDriving, true)
	require.NoError(t, err)
	assert.True(t, got, "missing key yields fallback")

	require.NoError(t, store.SetBool(ctx, domain.KeyIsDriving, false))
	got, err = store.GetBool(ctx, domain.KeyIsDriving, true)
	require.NoError(t, err)
	assert.False(t, got)

	require.NoError(t, store.SetBool(ctx, domain.KeyIsDriving, true))
	got, err = store.GetBool(ctx, domain.KeyIsDriving, false)
	require.NoError(t, err)
	assert.True(t, got)
}

func TestStoreTimestampRoundTripMillis(t *testing.T) {
	store, _ := setupTestStore(t)
	ctx := context.Background()
	key := domain.RejectedCallKey("+15551234567")

	_, found, err := store.GetTimestamp(ctx, key)
	require.NoError(t, err)
	assert.False(t, found)

	at := time.UnixMilli(1_700_000_000_123).Add(456 * time.Microsecond)
	require.NoError(t, store.SetTimestamp(ctx, key, at))

	got, found, err := store.GetTimestamp(ctx, key)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, int64(1_700_000_000_123), got.UnixMilli())
}

func TestStoreTypeMismatch(t *testing.T) {
	store, _ := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SetTimestamp(ctx, "mixed", time.UnixMilli(5)))

	got, err := store.GetBool(ctx, "mixed", true)
	assert.ErrorIs(t, err, domain.ErrTypeMismatch)
	assert.True(t, got)

	require.NoError(t, store.SetBool(ctx, "mixed", true))
	_, found, err := store.GetTimestamp(ctx, "mixed")
	assert.ErrorIs(t, err, domain.ErrTypeMismatch)
	assert.False(t, found)
}

func TestStoreDeleteIsIdempotent(t *testing.T) {
	store, _ := setupTestStore(t)
	ctx := context.Background()
	key := domain.RejectedCallKey("+15551234567")

	require.NoError(t, store.SetTimestamp(ctx, key, time.UnixMilli(1000)))
	require.NoError(t, store.Delete(ctx, key))
	require.NoError(t, store.Delete(ctx, key))

	_, found, err := store.GetTimestamp(ctx, key)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestStoreKeysByPrefix(t *testing.T) {
	store, _ := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SetBool(ctx, domain.KeyMonitoringEnabled, true))
	require.NoError(t, store.SetTimestamp(ctx, domain.RejectedCallKey("+2"), time.UnixMilli(2)))
	require.NoError(t, store.SetTimestamp(ctx, domain.RejectedCallKey("+1"), time.UnixMilli(1)))
	require.NoError(t, store.SetTimestamp(ctx, "rejected_call_other", time.UnixMilli(3)))

	keys, err := store.Keys(ctx, domain.RejectedCallPrefix)
	require.NoError(t, err)
	assert.Equal(t, []string{"rejected_call::+1", "rejected_call::+2"}, keys)

	all, err := store.Keys(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 4)
}

func TestStoreKeysTreatsLikeWildcardsLiterally(t *testing.T) {
	store, _ := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SetBool(ctx, "a_b", true))
	require.NoError(t, store.SetBool(ctx, "axb", true))
	require.NoError(t, store.SetBool(ctx, "a%c", true))

	keys, err := store.Keys(ctx, "a_")
	require.NoError(t, err)
	assert.Equal(t, []string{"a_b"}, keys)
}

func TestStoreSurvivesReopen(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	first, err := NewStore(dir, time.Second)
	require.NoError(t, err)
	require.NoError(t, first.SetBool(ctx, domain.KeyMonitoringEnabled, true))
	require.NoError(t, first.SetTimestamp(ctx, domain.RejectedCallKey("+1"), time.UnixMilli(42)))
	require.NoError(t, first.Close())

	second, err := NewStore(dir, time.Second)
	require.NoError(t, err)
	defer second.Close()

	monitoring, err := second.GetBool(ctx, domain.KeyMonitoringEnabled, false)
	require.NoError(t, err)
	assert.True(t, monitoring)

	at, found, err := second.GetTimestamp(ctx, domain.RejectedCallKey("+1"))
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, int64(42), at.UnixMilli())
}

func TestStoreConcurrentHandlesShareState(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	writer, err := NewStore(dir, time.Second)
	require.NoError(t, err)
	defer writer.Close()
	reader, err := NewStore(dir, time.Second)
	require.NoError(t, err)
	defer reader.Close()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			assert.NoError(t, writer.SetTimestamp(ctx, domain.RejectedCallKey(fmt.Sprintf("+%02d", i)), time.UnixMilli(int64(i))))
		}(i)
	}
	wg.Wait()

	keys, err := reader.Keys(ctx, domain.RejectedCallPrefix)
	require.NoError(t, err)
	assert.Len(t, keys, 20)
}

func TestStoreHonoursCanceledContext(t *testing.T) {
	store, _ := setupTestStore(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	got, err := store.GetBool(ctx, domain.KeyIsDriving, true)
	assert.Error(t, err)
	assert.True(t, got)
}

func TestStorePathInsideDir(t *testing.T) {
	store, dir := setupTestStore(t)

	assert.Equal(t, dir, store.Dir())
	assert.Contains(t, store.Path(), databaseName)
}
