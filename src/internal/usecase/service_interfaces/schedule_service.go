package service_interfaces

import (
	"context"

	"github.com/api-sage/statutory-interest-service/src/internal/domain"
)

type ScheduleService interface {
	Steps(ctx context.Context) (domain.Schedule, error)
	SetSteps(steps []domain.RateStep)
	Configured() bool
}
