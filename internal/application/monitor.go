package application

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/bnema/drivefocus/internal/domain"
	"github.com/bnema/drivefocus/internal/logger"
	"github.com/bnema/drivefocus/internal/ports"
)

// Monitor owns the monitoring lifecycle. While running it holds the only
// classifier; stopping discards it so counters never carry over.
type Monitor struct {
	store   ports.StateStore
	feed    ports.ChangeFeed
	history *History
	clock   ports.Clock
	cfg     MonitorConfig

	// mu is held for reading across a whole sample so Stop waits for
	// in-flight writes before clearing the flags.
	mu         sync.RWMutex
	classifier *Classifier
}

func NewMonitor(store ports.StateStore, feed ports.ChangeFeed, clock ports.Clock, cfg MonitorConfig) *Monitor {
	if clock == nil {
		clock = ports.SystemClock{}
	}
	cfg = cfg.withDefaults()

	return &Monitor{
		store:   store,
		feed:    feed,
		history: NewHistory(store, cfg.EmergencyWindow, cfg.HistoryRetention),
		clock:   clock,
		cfg:     cfg,
	}
}

// Start enables monitoring. The driving flag is set to true up front so calls
// are screened until the classifier has seen enough slow samples.
func (m *Monitor) Start(ctx context.Context) error {
	m.mu.Lock()
	m.classifier = NewClassifier(m.store, m.cfg.Thresholds, m.cfg.StoreTimeout)
	m.mu.Unlock()

	if err := m.setBool(ctx, domain.KeyIsDriving, true); err != nil {
		return fmt.Errorf("start monitoring: %w", err)
	}
	if err := m.setBool(ctx, domain.KeyMonitoringEnabled, true); err != nil {
		return fmt.Errorf("start monitoring: %w", err)
	}

	m.prune(ctx)
	logger.Info("monitor: started", "threshold_mps", m.cfg.Thresholds.SpeedMetersPerSecond)
	return nil
}

// OnSpeedSample forwards a sample to the running classifier.
func (m *Monitor) OnSpeedSample(ctx context.Context, sample domain.SpeedSample) error {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.classifier == nil {
		return domain.ErrNotMonitoring
	}

	_, err := m.classifier.OnSpeedSample(ctx, sample)
	return err
}

// Stop tears monitoring down: it waits for any sample still being written,
// drops the classifier and clears both flags. It is safe to call when monitoring is not running, including from
// a process other than the one running the monitor.
func (m *Monitor) Stop(ctx context.Context) error {
	m.mu.Lock()
	m.classifier = nil
	m.mu.Unlock()

	var errs error
	if err := m.setBool(ctx, domain.KeyMonitoringEnabled, false); err != nil {
		errs = errors.Join(errs, err)
	}
	if err := m.setBool(ctx, domain.KeyIsDriving, false); err != nil {
		errs = errors.Join(errs, err)
	}

	m.prune(ctx)

	if errs != nil {
		return fmt.Errorf("stop monitoring: %w", errs)
	}
	logger.Info("monitor: stopped")
	return nil
}

func (m *Monitor) Running() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.classifier != nil
}

// Run starts monitoring, feeds samples from source and tears down when the
// source is exhausted, ctx is done, or monitoring is switched off elsewhere.
func (m *Monitor) Run(ctx context.Context, source ports.SampleSource) error {
	if err := m.Start(ctx); err != nil {
		return err
	}

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	if m.feed != nil {
		changes, err := m.feed.Watch(runCtx, domain.KeyMonitoringEnabled)
		if err != nil {
			logger.Warn("monitor: cannot watch for remote stop", "error", err)
		} else {
			go func() {
				for change := range changes {
					if !change.Value {
						logger.Info("monitor: monitoring switched off externally")
						cancel()
						return
					}
				}
			}()
		}
	}

	var runErr error
	for {
		sample, err := source.Next(runCtx)
		if err != nil {
			if !errors.Is(err, io.EOF) && runCtx.Err() == nil {
				runErr = fmt.Errorf("read speed sample: %w", err)
			}
			break
		}

		if err := m.OnSpeedSample(runCtx, sample); err != nil && !errors.Is(err, domain.ErrInvalidSample) {
			logger.Debug("monitor: sample not applied", "error", err)
		}
	}

	stopCtx, stopCancel := withTimeout(context.WithoutCancel(ctx), 4*m.cfg.StoreTimeout)
	defer stopCancel()
	return errors.Join(runErr, m.Stop(stopCtx))
}

func (m *Monitor) setBool(ctx context.Context, key string, value bool) error {
	opCtx, cancel := withTimeout(ctx, m.cfg.StoreTimeout)
	defer cancel()

	if err := m.store.SetBool(opCtx, key, value); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}

func (m *Monitor) prune(ctx context.Context) {
	if _, err := m.history.Prune(ctx, m.clock.Now()); err != nil {
		logger.Warn("monitor: pruning rejection history failed", "error", err)
	}
}
