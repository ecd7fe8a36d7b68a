package main

import (
	"os"

	httpapi "github.com/Edgar-Klewert/restaurant-delivery/catalog-svc/internal/api/http"
	"github.com/Edgar-Klewert/restaurant-delivery/catalog-svc/internal/service"
	"github.com/Edgar-Klewert/restaurant-delivery/catalog-svc/internal/storage"
	"github.com/Edgar-Klewert/restaurant-delivery/config"
	"github.com/Edgar-Klewert/restaurant-delivery/httpserver"
	"github.com/Edgar-Klewert/restaurant-delivery/logger"
	"github.com/Edgar-Klewert/restaurant-delivery/metrics"
	"github.com/Edgar-Klewert/restaurant-delivery/resilience"
)

const defaultPort = 8081

type catalogRepository interface {
	service.CategoryRepository
	service.DishRepository
}

func main() {
	cfg := config.MustLoad()
	log := logger.New("catalog-svc", cfg.Log.Level)
	m := metrics.New("catalog-svc")

	ctx, stop := httpserver.SignalContext()
	defer stop()

	var repo catalogRepository
	switch cfg.Storage.Driver {
	case "memory":
		repo = storage.NewMemoryRepository()
	default:
		db := config.MustInitPostgres(cfg.DB)
		defer db.Close()

		pg := storage.NewPostgresRepository(db)
		if err := pg.EnsureSchema(); err != nil {
			log.Error("failed to ensure schema", "error", err)
			os.Exit(1)
		}
		repo = pg
	}
	log.Info("storage ready", "driver", cfg.Storage.Driver)

	opts := service.Options{
		Policy: resilience.Policy{
			Timeout:  cfg.Storage.Timeout,
			Attempts: cfg.Storage.RetryAttempts,
			Backoff:  cfg.Storage.RetryBackoff,
		},
		Metrics: m,
	}
	categories := service.NewCategoryService(repo, opts)
	dishes := service.NewDishService(repo, repo, opts)

	handler := httpapi.NewHandler(categories, dishes)
	router := httpapi.NewRouter(handler, httpserver.Options{
		Metrics:        m,
		Logger:         log,
		AllowedOrigins: cfg.HTTP.AllowedOrigins,
	})

	if err := httpserver.Run(ctx, cfg.HTTPAddr(defaultPort), router); err != nil {
		log.Error("catalog-svc stopped", "error", err)
		os.Exit(1)
	}
}
