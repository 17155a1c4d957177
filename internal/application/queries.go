package application

import (
	"time"

	"github.com/bnema/drivefocus/internal/domain"
)

type HistoryEntry struct {
	domain.RejectionEntry
	// WindowRemaining is how long a callback from this caller would still
	// be let through. Zero once the window has passed.
	WindowRemaining time.Duration
}

type Status struct {
	At                time.Time
	MonitoringEnabled bool
	Driving           bool
	DefaultHandler    bool
	History           []HistoryEntry
}
