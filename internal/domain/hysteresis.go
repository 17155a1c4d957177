package domain

import "fmt"

const (
	DefaultSpeedThresholdMPS = 5.0
	DefaultRequiredHigh      = 3
	DefaultRequiredLow       = 3
)

type Thresholds struct {
	SpeedMetersPerSecond float64
	RequiredHigh         int
	RequiredLow          int
}

func DefaultThresholds() Thresholds {
	return Thresholds{
		SpeedMetersPerSecond: DefaultSpeedThresholdMPS,
		RequiredHigh:         DefaultRequiredHigh,
		RequiredLow:          DefaultRequiredLow,
	}
}

func (t Thresholds) Validate() error {
	if t.SpeedMetersPerSecond <= 0 {
		return fmt.Errorf("speed threshold must be positive, got %v", t.SpeedMetersPerSecond)
	}
	if t.RequiredHigh < 1 {
		return fmt.Errorf("required high count must be at least 1, got %d", t.RequiredHigh)
	}
	if t.RequiredLow < 1 {
		return fmt.Errorf("required low count must be at least 1, got %d", t.RequiredLow)
	}

	return nil
}

// Hysteresis debounces speed readings into a driving classification.
// At most one of the two counters is non-zero at any time.
type Hysteresis struct {
	thresholds      Thresholds
	consecutiveHigh int
	consecutiveLow  int
	driving         bool
}

func NewHysteresis(thresholds Thresholds, initialDriving bool) *Hysteresis {
	return &Hysteresis{thresholds: thresholds, driving: initialDriving}
}

// Observe applies one valid speed reading and reports the classification
// after it. The classification only changes once a debounce count is reached.
func (h *Hysteresis) Observe(speed float64) bool {
	if speed > h.thresholds.SpeedMetersPerSecond {
		h.consecutiveHigh++
		h.consecutiveLow = 0
		if h.consecutiveHigh >= h.thresholds.RequiredHigh {
			h.driving = true
		}
		return h.driving
	}

	h.consecutiveLow++
	h.consecutiveHigh = 0
	if h.consecutiveLow >= h.thresholds.RequiredLow {
		h.driving = false
	}
	return h.driving
}

func (h *Hysteresis) Driving() bool {
	return h.driving
}

func (h *Hysteresis) Counters() (high int, low int) {
	return h.consecutiveHigh, h.consecutiveLow
}
