package application

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/bnema/drivefocus/internal/adapters/store/memory"
	"github.com/bnema/drivefocus/internal/domain"
	"github.com/bnema/drivefocus/internal/ports/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifierStartsDrivingAndWritesEverySample(t *testing.T) {
	store := mocks.NewMockStateStore(t)
	classifier := NewClassifier(store, domain.DefaultThresholds(), time.Second)
	assert.True(t, classifier.Driving())

	store.EXPECT().SetBool(mockAnyContext(), domain.KeyIsDriving, true).Return(nil).Times(2)
	store.EXPECT().SetBool(mockAnyContext(), domain.KeyIsDriving, false).Return(nil).Once()

	for _, speed := range []float64{1, 2, 0} {
		_, err := classifier.OnSpeedSample(context.Background(), domain.NewSpeedSample(speed, time.UnixMilli(0)))
		require.NoError(t, err)
	}
	assert.False(t, classifier.Driving())
}

func TestClassifierDropsInvalidSamples(t *testing.T) {
	store := mocks.NewMockStateStore(t)
	classifier := NewClassifier(store, domain.DefaultThresholds(), time.Second)

	invalid := []domain.SpeedSample{
		{At: time.UnixMilli(0)},
		domain.NewSpeedSample(math.NaN(), time.UnixMilli(0)),
		domain.NewSpeedSample(math.Inf(1), time.UnixMilli(0)),
		domain.NewSpeedSample(-3, time.UnixMilli(0)),
	}
	for _, sample := range invalid {
		driving, err := classifier.OnSpeedSample(context.Background(), sample)
		assert.ErrorIs(t, err, domain.ErrInvalidSample)
		assert.True(t, driving)
	}
}

func TestClassifierInvalidSamplesDoNotBreakRuns(t *testing.T) {
	store := memory.NewStore()
	classifier := NewClassifier(store, domain.DefaultThresholds(), time.Second)
	ctx := context.Background()

	samples := []domain.SpeedSample{
		domain.NewSpeedSample(1, time.UnixMilli(0)),
		{At: time.UnixMilli(1)},
		domain.NewSpeedSample(1, time.UnixMilli(2)),
		domain.NewSpeedSample(math.NaN(), time.UnixMilli(3)),
		domain.NewSpeedSample(1, time.UnixMilli(4)),
	}
	for _, sample := range samples {
		_, _ = classifier.OnSpeedSample(ctx, sample)
	}

	driving, err := store.GetBool(ctx, domain.KeyIsDriving, true)
	require.NoError(t, err)
	assert.False(t, driving)
}

func TestClassifierWriteFailureIsReportedNotFatal(t *testing.T) {
	store := mocks.NewMockStateStore(t)
	classifier := NewClassifier(store, domain.DefaultThresholds(), time.Second)

	store.EXPECT().SetBool(mockAnyContext(), domain.KeyIsDriving, true).Return(errors.New("disk full")).Once()
	_, err := classifier.OnSpeedSample(context.Background(), domain.NewSpeedSample(9, time.UnixMilli(0)))
	assert.ErrorContains(t, err, "disk full")

	store.EXPECT().SetBool(mockAnyContext(), domain.KeyIsDriving, true).Return(nil).Once()
	driving, err := classifier.OnSpeedSample(context.Background(), domain.NewSpeedSample(9, time.UnixMilli(1)))
	require.NoError(t, err)
	assert.True(t, driving)
}
