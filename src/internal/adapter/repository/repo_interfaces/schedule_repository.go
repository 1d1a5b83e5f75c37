package repo_interfaces

import (
	"context"

	"github.com/api-sage/statutory-interest-service/src/internal/domain"
)

// RateSource yields the key-rate steps from the configured remote table.
type RateSource interface {
	Fetch(ctx context.Context) ([]domain.RateStep, error)
}

// ScheduleRepository persists the last successfully fetched schedule so a
// restarted instance can serve rates before its first remote fetch.
type ScheduleRepository interface {
	Load(ctx context.Context) ([]domain.RateStep, error)
	Replace(ctx context.Context, steps []domain.RateStep) error
}
