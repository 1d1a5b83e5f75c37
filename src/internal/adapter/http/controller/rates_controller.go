package controller

import (
	"context"
	"net/http"
	"time"

	"github.com/api-sage/statutory-interest-service/src/internal/adapter/http/models"
	"github.com/api-sage/statutory-interest-service/src/internal/commons"
	"github.com/api-sage/statutory-interest-service/src/internal/logger"
)

type RatesService interface {
	Rates(ctx context.Context) ([]models.RateItem, error)
}

type RatesController struct {
	service RatesService
}

func NewRatesController(service RatesService) *RatesController {
	return &RatesController{service: service}
}

func (c *RatesController) RegisterRoutes(mux *http.ServeMux) {
	mux.Handle("/rates", http.HandlerFunc(c.rates))
}

func (c *RatesController) rates(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	if r.Method != http.MethodGet {
		response := commons.ErrorResponse[[]models.RateItem]("method not allowed")
		writeJSON(w, http.StatusMethodNotAllowed, response)
		logResponse(r, http.StatusMethodNotAllowed, start)
		return
	}
	logRequest(r)

	items, err := c.service.Rates(r.Context())
	if err != nil {
		logError(r, err, logger.Fields{"status": http.StatusServiceUnavailable})
		response := commons.ErrorResponse[[]models.RateItem]("rate data unavailable", err.Error())
		writeJSON(w, http.StatusServiceUnavailable, response)
		logResponse(r, http.StatusServiceUnavailable, start)
		return
	}

	writeJSON(w, http.StatusOK, items)
	logResponse(r, http.StatusOK, start)
}
