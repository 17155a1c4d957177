// Package ndjson reads speed samples from newline-delimited JSON.
//
// Each line is either a bare number in meters per second or an object such
// as {"speed_mps": 7.2, "at": "2024-05-01T08:00:00Z"}. A null speed or a line
// that cannot be parsed yields a sample without speed, which the classifier
// drops. Lines longer than 64 KiB are skipped whole and also yield a sample
// without speed. Blank lines are skipped.
package ndjson

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/bnema/drivefocus/internal/domain"
	"github.com/bnema/drivefocus/internal/logger"
	"github.com/bnema/drivefocus/internal/ports"
)

const maxLineBytes = 64 * 1024

var _ ports.SampleSource = (*Source)(nil)

type Option func(*Source)

// WithPacing delivers at most one sample per interval, and never faster than
// minInterval. Zero intervals disable pacing.
func WithPacing(interval, minInterval time.Duration) Option {
	return func(s *Source) {
		if interval < minInterval {
			interval = minInterval
		}
		if interval > 0 {
			s.limiter = rate.NewLimiter(rate.Every(interval), 1)
		}
	}
}

func WithClock(clock ports.Clock) Option {
	return func(s *Source) {
		s.clock = clock
	}
}

type line struct {
	data      []byte
	oversized bool
	err       error
}

type Source struct {
	reader  io.Reader
	clock   ports.Clock
	limiter *rate.Limiter

	start sync.Once
	stop  sync.Once
	lines chan line
	done  chan struct{}
}

func NewSource(r io.Reader, opts ...Option) *Source {
	s := &Source{
		reader: r,
		clock:  ports.SystemClock{},
		lines:  make(chan line),
		done:   make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Next returns the next sample, or io.EOF once the input is exhausted.
func (s *Source) Next(ctx context.Context) (domain.SpeedSample, error) {
	s.start.Do(func() { go s.scan() })

	for {
		var next line
		select {
		case <-ctx.Done():
			return domain.SpeedSample{}, ctx.Err()
		case l, ok := <-s.lines:
			if !ok {
				return domain.SpeedSample{}, io.EOF
			}
			next = l
		}
		if next.err != nil {
			return domain.SpeedSample{}, next.err
		}
		if next.oversized {
			logger.Debug("ndjson: skipping oversized line", "limit_bytes", maxLineBytes)
			return domain.SpeedSample{At: s.clock.Now()}, nil
		}

		trimmed := bytes.TrimSpace(next.data)
		if len(trimmed) == 0 {
			continue
		}

		if s.limiter != nil {
			if err := s.limiter.Wait(ctx); err != nil {
				return domain.SpeedSample{}, err
			}
		}

		return s.parse(trimmed), nil
	}
}

// Close stops the reader goroutine once it next hands over a line. It does
// not close the underlying reader.
func (s *Source) Close() error {
	s.stop.Do(func() { close(s.done) })
	return nil
}

func (s *Source) scan() {
	defer close(s.lines)

	reader := bufio.NewReaderSize(s.reader, maxLineBytes)
	for {
		data, err := reader.ReadSlice('\n')
		next := line{data: append([]byte(nil), data...)}
		if errors.Is(err, bufio.ErrBufferFull) {
			for errors.Is(err, bufio.ErrBufferFull) {
				_, err = reader.ReadSlice('\n')
			}
			next = line{oversized: true}
		}

		if len(next.data) > 0 || next.oversized {
			if !s.send(next) {
				return
			}
		}

		if err != nil {
			if !errors.Is(err, io.EOF) {
				s.send(line{err: fmt.Errorf("read samples: %w", err)})
			}
			return
		}
	}
}

func (s *Source) send(l line) bool {
	select {
	case s.lines <- l:
		return true
	case <-s.done:
		return false
	}
}

type sampleRecord struct {
	SpeedMPS *float64 `json:"speed_mps"`
	At       string   `json:"at"`
}

func (s *Source) parse(data []byte) domain.SpeedSample {
	now := s.clock.Now()

	if data[0] != '{' {
		var speed *float64
		if err := json.Unmarshal(data, &speed); err != nil {
			logger.Debug("ndjson: unparsable sample", "line", string(data), "error", err)
			return domain.SpeedSample{At: now}
		}
		if speed == nil {
			return domain.SpeedSample{At: now}
		}
		return domain.NewSpeedSample(*speed, now)
	}

	var record sampleRecord
	if err := json.Unmarshal(data, &record); err != nil {
		logger.Debug("ndjson: unparsable sample", "line", string(data), "error", err)
		return domain.SpeedSample{At: now}
	}

	at := now
	if record.At != "" {
		parsed, err := time.Parse(time.RFC3339Nano, record.At)
		if err != nil {
			logger.Debug("ndjson: bad sample time", "at", record.At, "error", err)
		} else {
			at = parsed
		}
	}

	if record.SpeedMPS == nil {
		return domain.SpeedSample{At: at}
	}
	return domain.NewSpeedSample(*record.SpeedMPS, at)
}
