package controller

import (
	"net/http"

	"github.com/api-sage/statutory-interest-service/src/internal/adapter/http/models"
)

const Version = "1.0.0"

type HealthService interface {
	Configured() bool
}

type HealthController struct {
	service HealthService
}

func NewHealthController(service HealthService) *HealthController {
	return &HealthController{service: service}
}

func (c *HealthController) RegisterRoutes(mux *http.ServeMux) {
	mux.Handle("/health", http.HandlerFunc(c.health))
}

func (c *HealthController) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, models.HealthResponse{
		OK:                 true,
		Version:            Version,
		RatesURLConfigured: c.service.Configured(),
	})
}
