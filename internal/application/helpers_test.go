package application

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/bnema/drivefocus/internal/domain"
	"github.com/stretchr/testify/mock"
)

type stubClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *stubClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *stubClock) Set(now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = now
}

func mockAnyContext() interface{} {
	return mock.MatchedBy(func(ctx context.Context) bool { return ctx != nil })
}

// sliceSource replays samples then reports io.EOF, calling onEOF first.
type sliceSource struct {
	samples []domain.SpeedSample
	onEOF   func()
}

func (s *sliceSource) Next(ctx context.Context) (domain.SpeedSample, error) {
	if err := ctx.Err(); err != nil {
		return domain.SpeedSample{}, err
	}
	if len(s.samples) == 0 {
		if s.onEOF != nil {
			s.onEOF()
			s.onEOF = nil
		}
		return domain.SpeedSample{}, io.EOF
	}

	next := s.samples[0]
	s.samples = s.samples[1:]
	return next, nil
}

// blockingSource never yields a sample; it returns once ctx is done.
type blockingSource struct {
	waiting chan struct{}
}

func (s *blockingSource) Next(ctx context.Context) (domain.SpeedSample, error) {
	close(s.waiting)
	<-ctx.Done()
	return domain.SpeedSample{}, ctx.Err()
}

func speeds(at time.Time, values ...float64) []domain.SpeedSample {
	samples := make([]domain.SpeedSample, 0, len(values))
	for _, v := range values {
		samples = append(samples, domain.NewSpeedSample(v, at))
	}
	return samples
}
