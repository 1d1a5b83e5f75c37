package service_interfaces

import (
	"context"

	"github.com/api-sage/statutory-interest-service/src/internal/adapter/http/models"
)

type CalcService interface {
	Calculate(ctx context.Context, req models.CalcRequest) (models.CalcResponse, error)
	Rates(ctx context.Context) ([]models.RateItem, error)
}
