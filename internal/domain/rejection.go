package domain

import "time"

const DefaultEmergencyWindow = 60 * time.Second

type RejectionEntry struct {
	CallerID   string
	RejectedAt time.Time
}

// WithinEmergencyWindow reports whether a callback at now still counts as
// urgent. The bound is exclusive: a callback exactly one window later does not.
func (e RejectionEntry) WithinEmergencyWindow(now time.Time, window time.Duration) bool {
	return now.Sub(e.RejectedAt) < window
}

func (e RejectionEntry) WindowRemaining(now time.Time, window time.Duration) time.Duration {
	remaining := window - now.Sub(e.RejectedAt)
	if remaining < 0 {
		return 0
	}
	if remaining > window {
		return window
	}

	return remaining
}

func (e RejectionEntry) Expired(now time.Time, retention time.Duration) bool {
	if retention <= 0 {
		return false
	}

	return now.Sub(e.RejectedAt) > retention
}
