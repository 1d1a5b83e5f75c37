package controller

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/api-sage/statutory-interest-service/src/internal/adapter/http/models"
	"github.com/api-sage/statutory-interest-service/src/internal/commons"
	"github.com/api-sage/statutory-interest-service/src/internal/logger"
)

type CalcService interface {
	Calculate(ctx context.Context, req models.CalcRequest) (models.CalcResponse, error)
}

type CalcController struct {
	service CalcService
}

func NewCalcController(service CalcService) *CalcController {
	return &CalcController{service: service}
}

func (c *CalcController) RegisterRoutes(mux *http.ServeMux) {
	mux.Handle("/calc395", http.HandlerFunc(c.calc))
}

func (c *CalcController) calc(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	if r.Method != http.MethodGet {
		response := commons.ErrorResponse[models.CalcResponse]("method not allowed")
		writeJSON(w, http.StatusMethodNotAllowed, response)
		logResponse(r, http.StatusMethodNotAllowed, start)
		return
	}

	query := r.URL.Query()
	req := models.CalcRequest{
		Amount:       query.Get("amount"),
		StartDate:    query.Get("start_date"),
		EndDate:      query.Get("end_date"),
		EndInclusive: query.Get("end_inclusive"),
		DayCount:     query.Get("day_count"),
	}
	logRequest(r)

	response, err := c.service.Calculate(r.Context(), req)
	if err != nil {
		status := http.StatusServiceUnavailable
		message := "rate data unavailable"

		var valErr *models.ValidationError
		if errors.As(err, &valErr) {
			status = http.StatusBadRequest
			message = "validation failed"
		}

		logError(r, err, logger.Fields{"status": status})
		writeJSON(w, status, commons.ErrorResponse[models.CalcResponse](message, err.Error()))
		logResponse(r, status, start)
		return
	}

	writeJSON(w, http.StatusOK, response)
	logResponse(r, http.StatusOK, start)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
