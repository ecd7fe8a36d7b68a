package main

import (
	"os"
	"time"

	httpapi "github.com/Edgar-Klewert/restaurant-delivery/analytics-svc/internal/api/http"
	"github.com/Edgar-Klewert/restaurant-delivery/analytics-svc/internal/service"
	"github.com/Edgar-Klewert/restaurant-delivery/analytics-svc/internal/storage"
	"github.com/Edgar-Klewert/restaurant-delivery/config"
	"github.com/Edgar-Klewert/restaurant-delivery/httpserver"
	"github.com/Edgar-Klewert/restaurant-delivery/logger"
	"github.com/Edgar-Klewert/restaurant-delivery/metrics"
	"github.com/Edgar-Klewert/restaurant-delivery/resilience"
)

const defaultPort = 8083

func main() {
	cfg := config.MustLoad()
	log := logger.New("analytics-svc", cfg.Log.Level)
	m := metrics.New("analytics-svc")

	loc, err := time.LoadLocation(cfg.Analytics.Timezone)
	if err != nil {
		log.Error("invalid analytics timezone", "timezone", cfg.Analytics.Timezone, "error", err)
		os.Exit(1)
	}

	ctx, stop := httpserver.SignalContext()
	defer stop()

	db := config.MustInitPostgres(cfg.DB)
	defer db.Close()
	rdb := config.MustInitRedis(cfg.Redis)
	defer rdb.Close()

	repo := storage.NewPostgresRepository(db)
	opts := service.Options{
		Policy: resilience.Policy{
			Timeout:  cfg.Storage.Timeout,
			Attempts: cfg.Storage.RetryAttempts,
			Backoff:  cfg.Storage.RetryBackoff,
		},
		Location: loc,
	}
	analytics := service.NewAnalyticsService(
		service.NewFoldProjection(repo, opts),
		repo,
		storage.NewRedisPopularity(rdb),
		opts,
	)

	router := httpapi.NewRouter(httpapi.NewHandler(analytics, loc), httpserver.Options{
		Metrics:        m,
		Logger:         log,
		AllowedOrigins: cfg.HTTP.AllowedOrigins,
	})

	log.Info("analytics-svc ready", "timezone", loc.String())
	if err := httpserver.Run(ctx, cfg.HTTPAddr(defaultPort), router); err != nil {
		log.Error("analytics-svc stopped", "error", err)
		os.Exit(1)
	}
}
