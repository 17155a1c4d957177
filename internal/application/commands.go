package application

import (
	"time"

	"github.com/bnema/drivefocus/internal/domain"
)

const (
	defaultStoreTimeout = 750 * time.Millisecond
	defaultSendTimeout  = 5 * time.Second
)

// ScreenerConfig tunes the call policy.
type ScreenerConfig struct {
	EmergencyWindow time.Duration
	ApologyMessage  string
	// StoreTimeout bounds every individual store operation.
	StoreTimeout time.Duration
	SendTimeout  time.Duration
}

func (c ScreenerConfig) withDefaults() ScreenerConfig {
	if c.EmergencyWindow <= 0 {
		c.EmergencyWindow = domain.DefaultEmergencyWindow
	}
	if c.ApologyMessage == "" {
		c.ApologyMessage = domain.DefaultApologyMessage
	}
	if c.StoreTimeout <= 0 {
		c.StoreTimeout = defaultStoreTimeout
	}
	if c.SendTimeout <= 0 {
		c.SendTimeout = defaultSendTimeout
	}
	return c
}

type MonitorConfig struct {
	Thresholds       domain.Thresholds
	StoreTimeout     time.Duration
	EmergencyWindow  time.Duration
	HistoryRetention time.Duration
}

func (c MonitorConfig) withDefaults() MonitorConfig {
	if c.Thresholds == (domain.Thresholds{}) {
		c.Thresholds = domain.DefaultThresholds()
	}
	if c.StoreTimeout <= 0 {
		c.StoreTimeout = defaultStoreTimeout
	}
	if c.EmergencyWindow <= 0 {
		c.EmergencyWindow = domain.DefaultEmergencyWindow
	}
	if c.HistoryRetention < c.EmergencyWindow {
		c.HistoryRetention = c.EmergencyWindow
	}
	return c
}
