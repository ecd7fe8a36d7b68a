package main

import (
	"os"
	"time"

	"github.com/Edgar-Klewert/restaurant-delivery/config"
	"github.com/Edgar-Klewert/restaurant-delivery/httpserver"
	"github.com/Edgar-Klewert/restaurant-delivery/logger"
	"github.com/Edgar-Klewert/restaurant-delivery/metrics"
	httpapi "github.com/Edgar-Klewert/restaurant-delivery/rate-svc/internal/api/http"
	"github.com/Edgar-Klewert/restaurant-delivery/rate-svc/internal/service"
	"github.com/Edgar-Klewert/restaurant-delivery/rate-svc/internal/storage"
	"github.com/Edgar-Klewert/restaurant-delivery/resilience"
)

const (
	defaultPort = 8082
	markerTTL   = 24 * 7 * time.Hour
)

func main() {
	cfg := config.MustLoad()
	log := logger.New("rate-svc", cfg.Log.Level)
	m := metrics.New("rate-svc")

	ctx, stop := httpserver.SignalContext()
	defer stop()

	db := config.MustInitPostgres(cfg.DB)
	defer db.Close()
	rdb := config.MustInitRedis(cfg.Redis)
	defer rdb.Close()
	writer := config.NewKafkaWriter(cfg.Kafka, cfg.Kafka.RatingsTopic)
	defer writer.Close()

	repo := storage.NewPostgresRepository(db)
	if err := repo.EnsureSchema(); err != nil {
		log.Error("failed to ensure schema", "error", err)
		os.Exit(1)
	}

	ratings := service.NewRatingService(
		repo,
		storage.NewRedisCache(rdb, markerTTL),
		storage.NewKafkaPublisher(writer),
		service.Options{
			Policy: resilience.Policy{
				Timeout:  cfg.Storage.Timeout,
				Attempts: cfg.Storage.RetryAttempts,
				Backoff:  cfg.Storage.RetryBackoff,
			},
			Metrics: m,
		},
	)

	router := httpapi.NewRouter(httpapi.NewHandler(ratings), httpserver.Options{
		Metrics:        m,
		Logger:         log,
		AllowedOrigins: cfg.HTTP.AllowedOrigins,
	})

	log.Info("rate-svc ready", "topic", cfg.Kafka.RatingsTopic)
	if err := httpserver.Run(ctx, cfg.HTTPAddr(defaultPort), router); err != nil {
		log.Error("rate-svc stopped", "error", err)
		os.Exit(1)
	}
}
