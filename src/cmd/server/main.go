package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"time"

	_ "github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/api-sage/statutory-interest-service/src/internal/adapter/http/controller"
	"github.com/api-sage/statutory-interest-service/src/internal/adapter/ratesource"
	"github.com/api-sage/statutory-interest-service/src/internal/adapter/repository/postgres"
	"github.com/api-sage/statutory-interest-service/src/internal/adapter/repository/repo_interfaces"
	"github.com/api-sage/statutory-interest-service/src/internal/config"
	"github.com/api-sage/statutory-interest-service/src/internal/logger"
	"github.com/api-sage/statutory-interest-service/src/internal/usecase/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	zl, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer func() { _ = zl.Sync() }()
	logger.Init(zl)

	var snapshots repo_interfaces.ScheduleRepository
	var snapshotRepo *postgres.ScheduleRepository
	if cfg.DatabaseDSN != "" {
		db, err := sql.Open("postgres", cfg.DatabaseDSN)
		if err != nil {
			log.Fatalf("open postgres: %v", err)
		}

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		if err := db.PingContext(ctx); err != nil {
			cancel()
			log.Fatalf("ping postgres: %v", err)
		}

		snapshotRepo = postgres.NewScheduleRepository(db)
		if err := snapshotRepo.Init(ctx); err != nil {
			cancel()
			log.Fatalf("init schedule repository: %v", err)
		}
		cancel()
		snapshots = snapshotRepo
	}

	var source repo_interfaces.RateSource
	if cfg.RatesURL != "" {
		source = ratesource.NewHTTPSource(cfg.RatesURL, cfg.FetchTimeout)
	}

	schedule := services.NewScheduleService(source, snapshots, cfg.RefreshInterval)
	preloadSnapshot(schedule, snapshotRepo)

	calc := services.NewCalcService(schedule)

	mux := http.NewServeMux()
	controller.NewCalcController(calc).RegisterRoutes(mux)
	controller.NewRatesController(calc).RegisterRoutes(mux)
	controller.NewHealthController(schedule).RegisterRoutes(mux)

	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      cfg.FetchTimeout + 10*time.Second,
	}

	logger.Info("server listening", logger.Fields{
		"addr":                 cfg.HTTPAddr,
		"rates_url_configured": cfg.RatesURL != "",
		"snapshots_enabled":    snapshots != nil,
	})
	if err := server.ListenAndServe(); err != nil {
		log.Fatalf("serve: %v", err)
	}
}

// preloadSnapshot installs the persisted schedule, if any, so the service
// can answer before its first remote fetch. A failed preload only delays
// rate availability, so it is logged and ignored.
func preloadSnapshot(schedule *services.ScheduleService, repo *postgres.ScheduleRepository) {
	if repo == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	steps, err := repo.Load(ctx)
	if err != nil {
		logger.Error("schedule snapshot preload failed", err, nil)
		return
	}
	if len(steps) == 0 {
		return
	}

	schedule.SetSteps(steps)
}
