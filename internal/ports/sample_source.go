package ports

import (
	"context"

	"github.com/bnema/drivefocus/internal/domain"
)

// SampleSource yields speed samples until it returns io.EOF.
type SampleSource interface {
	Next(ctx context.Context) (domain.SpeedSample, error)
}
