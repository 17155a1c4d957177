package ndjson

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/bnema/drivefocus/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

func drain(t *testing.T, src *Source) []domain.SpeedSample {
	t.Helper()

	var samples []domain.SpeedSample
	for {
		sample, err := src.Next(context.Background())
		if err == io.EOF {
			return samples
		}
		require.NoError(t, err)
		samples = append(samples, sample)
	}
}

func TestSourceParsesLines(t *testing.T) {
	now := time.UnixMilli(1000)
	input := strings.Join([]string{
		"7.5",
		"",
		`{"speed_mps": 12, "at": "2024-05-01T08:00:00Z"}`,
		"null",
		`{"speed_mps": null}`,
		"fast",
		`{"speed_mps": 3, "at": "yesterday"}`,
		"-2",
	}, "\n")

	src := NewSource(strings.NewReader(input), WithClock(fixedClock{now: now}))
	samples := drain(t, src)
	require.Len(t, samples, 7)

	assert.Equal(t, domain.NewSpeedSample(7.5, now), samples[0])
	assert.Equal(t, 12.0, samples[1].SpeedMetersPerSecond)
	assert.True(t, samples[1].At.Equal(time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)))
	assert.False(t, samples[2].Valid())
	assert.False(t, samples[3].Valid())
	assert.False(t, samples[4].Valid())
	assert.Equal(t, domain.NewSpeedSample(3, now), samples[5])
	assert.False(t, samples[6].Valid())
}

func TestSourceEOFOnEmptyInput(t *testing.T) {
	src := NewSource(strings.NewReader(""))

	_, err := src.Next(context.Background())
	assert.ErrorIs(t, err, io.EOF)
	_, err = src.Next(context.Background())
	assert.ErrorIs(t, err, io.EOF)
}

func TestSourceStopsOnCanceledContext(t *testing.T) {
	reader, writer := io.Pipe()
	defer writer.Close()

	src := NewSource(reader)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := src.Next(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSourcePacing(t *testing.T) {
	src := NewSource(strings.NewReader("1\n2\n3\n"), WithPacing(20*time.Millisecond, 10*time.Millisecond))

	started := time.Now()
	samples := drain(t, src)
	require.Len(t, samples, 3)
	assert.GreaterOrEqual(t, time.Since(started), 35*time.Millisecond)
}

func TestWithPacingNeverFasterThanMinimum(t *testing.T) {
	src := NewSource(strings.NewReader(""), WithPacing(time.Millisecond, time.Second))
	require.NotNil(t, src.limiter)
	assert.InDelta(t, 1.0, float64(src.limiter.Limit()), 0.0001)

	unpaced := NewSource(strings.NewReader(""), WithPacing(0, 0))
	assert.Nil(t, unpaced.limiter)
}

func TestSourceSkipsOversizedLine(t *testing.T) {
	now := time.UnixMilli(1000)
	input := "1\n" + strings.Repeat("x", 70*1024) + "\n9\n9\n9\n"

	samples := drain(t, NewSource(strings.NewReader(input), WithClock(fixedClock{now: now})))

	require.Len(t, samples, 5)
	assert.Equal(t, domain.NewSpeedSample(1, now), samples[0])
	assert.False(t, samples[1].Valid())
	for _, sample := range samples[2:] {
		assert.Equal(t, domain.NewSpeedSample(9, now), sample)
	}
}

func TestSourceOversizedFinalLineWithoutNewline(t *testing.T) {
	input := "3\n" + strings.Repeat("7", 65*1024)

	samples := drain(t, NewSource(strings.NewReader(input)))

	require.Len(t, samples, 2)
	assert.True(t, samples[0].Valid())
	assert.False(t, samples[1].Valid())
}

type endlessReader struct{}

func (endlessReader) Read(p []byte) (int, error) {
	for i := range p {
		if i%2 == 0 {
			p[i] = '5'
		} else {
			p[i] = '\n'
		}
	}
	return len(p), nil
}

func TestSourceCloseReleasesReader(t *testing.T) {
	src := NewSource(endlessReader{})

	sample, err := src.Next(context.Background())
	require.NoError(t, err)
	assert.True(t, sample.Valid())

	require.NoError(t, src.Close())
	require.NoError(t, src.Close())

	deadline := time.After(2 * time.Second)
	for {
		select {
		case _, ok := <-src.lines:
			if !ok {
				return
			}
		case <-deadline:
			t.Fatal("reader goroutine still running after Close")
		}
	}
}
