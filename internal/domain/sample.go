package domain

import (
	"math"
	"time"
)

type SpeedSample struct {
	SpeedMetersPerSecond float64
	// HasSpeed is false when the location fix carried no speed reading.
	HasSpeed bool
	At       time.Time
}

func NewSpeedSample(speed float64, at time.Time) SpeedSample {
	return SpeedSample{SpeedMetersPerSecond: speed, HasSpeed: true, At: at}
}

func (s SpeedSample) Valid() bool {
	if !s.HasSpeed {
		return false
	}

	v := s.SpeedMetersPerSecond
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v >= 0
}
