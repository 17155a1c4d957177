package application

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/bnema/drivefocus/internal/domain"
	"github.com/bnema/drivefocus/internal/logger"
	"github.com/bnema/drivefocus/internal/ports"
)

// Classifier turns speed samples into the persisted driving flag.
type Classifier struct {
	store        ports.StateStore
	storeTimeout time.Duration

	mu         sync.Mutex
	hysteresis *domain.Hysteresis
}

// NewClassifier starts out classified as driving so calls are screened until
// enough slow samples say otherwise.
func NewClassifier(store ports.StateStore, thresholds domain.Thresholds, storeTimeout time.Duration) *Classifier {
	return &Classifier{
		store:        store,
		storeTimeout: storeTimeout,
		hysteresis:   domain.NewHysteresis(thresholds, true),
	}
}

// OnSpeedSample feeds one sample and persists the resulting classification.
// Invalid samples are dropped with domain.ErrInvalidSample. A failed write is
// not retried; the next valid sample writes again.
func (c *Classifier) OnSpeedSample(ctx context.Context, sample domain.SpeedSample) (bool, error) {
	c.mu.Lock()
	if !sample.Valid() {
		driving := c.hysteresis.Driving()
		c.mu.Unlock()
		logger.Debug("classifier: dropping invalid sample", "speed", sample.SpeedMetersPerSecond, "has_speed", sample.HasSpeed)
		return driving, domain.ErrInvalidSample
	}

	before := c.hysteresis.Driving()
	driving := c.hysteresis.Observe(sample.SpeedMetersPerSecond)
	high, low := c.hysteresis.Counters()
	c.mu.Unlock()

	if driving != before {
		logger.Info("classifier: driving state changed", "driving", driving, "speed", sample.SpeedMetersPerSecond)
	} else {
		logger.Debug("classifier: sample", "speed", sample.SpeedMetersPerSecond, "high", high, "low", low, "driving", driving)
	}

	opCtx, cancel := withTimeout(ctx, c.storeTimeout)
	defer cancel()
	if err := c.store.SetBool(opCtx, domain.KeyIsDriving, driving); err != nil {
		logger.Warn("classifier: persist driving state failed", "driving", driving, "error", err)
		return driving, fmt.Errorf("persist driving state: %w", err)
	}

	return driving, nil
}

func (c *Classifier) Driving() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hysteresis.Driving()
}
