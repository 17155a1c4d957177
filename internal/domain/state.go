package domain

import (
	"strings"
	"time"
)

const (
	KeyMonitoringEnabled = "monitoring_enabled"
	KeyIsDriving         = "is_driving"

	// RejectedCallPrefix namespaces rejection history entries by caller.
	RejectedCallPrefix = "rejected_call::"
)

type StateChange struct {
	Key   string
	Value bool
	At    time.Time
}

func RejectedCallKey(callerID string) string {
	return RejectedCallPrefix + callerID
}

func CallerFromKey(key string) (string, bool) {
	if !strings.HasPrefix(key, RejectedCallPrefix) {
		return "", false
	}

	caller := strings.TrimPrefix(key, RejectedCallPrefix)
	if caller == "" {
		return "", false
	}

	return caller, true
}
