package main

import (
	"net/http"
	"os"

	"github.com/Edgar-Klewert/restaurant-delivery/config"
	"github.com/Edgar-Klewert/restaurant-delivery/httpserver"
	"github.com/Edgar-Klewert/restaurant-delivery/logger"
	"github.com/Edgar-Klewert/restaurant-delivery/metrics"
	httpapi "github.com/Edgar-Klewert/restaurant-delivery/order-svc/internal/api/http"
	"github.com/Edgar-Klewert/restaurant-delivery/order-svc/internal/service"
	"github.com/Edgar-Klewert/restaurant-delivery/order-svc/internal/storage"
	"github.com/Edgar-Klewert/restaurant-delivery/resilience"
)

const defaultPort = 8084

func main() {
	cfg := config.MustLoad()
	log := logger.New("order-svc", cfg.Log.Level)
	m := metrics.New("order-svc")

	ctx, stop := httpserver.SignalContext()
	defer stop()

	opts := service.Options{
		Policy: resilience.Policy{
			Timeout:  cfg.Storage.Timeout,
			Attempts: cfg.Storage.RetryAttempts,
			Backoff:  cfg.Storage.RetryBackoff,
		},
		DeliveryETA: cfg.Orders.DeliveryETA,
		TakeawayETA: cfg.Orders.TakeawayETA,
		Locks:       service.NewKeyedMutex(),
		Metrics:     m,
	}

	var (
		orders   service.OrderRepository
		couriers service.CourierRepository
		catalog  service.DishCatalog
	)
	switch cfg.Storage.Driver {
	case "memory":
		store := storage.NewMemoryStore()
		orders = store.Orders()
		couriers = store.Couriers()
		catalog = storage.NewCatalogClient(cfg.Gateway.CatalogURL, &http.Client{Timeout: cfg.Storage.Timeout})
	default:
		db := config.MustInitPostgres(cfg.DB)
		defer db.Close()

		repo := storage.NewPostgresOrderRepository(db)
		if err := repo.EnsureSchema(); err != nil {
			log.Error("failed to ensure schema", "error", err)
			os.Exit(1)
		}
		orders = repo
		couriers = storage.NewPostgresCourierRepository(db)
		catalog = storage.NewPostgresDishCatalog(db)
	}
	log.Info("storage ready", "driver", cfg.Storage.Driver)

	rdb := config.MustInitRedis(cfg.Redis)
	defer rdb.Close()

	writer := config.NewKafkaWriter(cfg.Kafka, cfg.Kafka.OrdersTopic)
	defer writer.Close()

	delivery := service.NewDeliveryService(couriers, orders, service.FeeSettings{
		BaseFee:   cfg.Delivery.BaseFee,
		PerKm:     cfg.Delivery.PerKm,
		Distances: cfg.Delivery.Distances,
	}, opts)
	orderSvc := service.NewOrderService(orders, catalog, delivery, storage.NewKafkaPublisher(writer),
		service.DefaultQRGenerator{BaseURL: cfg.QR.BaseURL}, opts)
	carts := service.NewCartService(storage.NewRedisCartStore(rdb, cfg.Cart.TTL), catalog, orderSvc, opts)

	handler := httpapi.NewHandler(orderSvc, delivery, carts)
	router := httpapi.NewRouter(handler, httpserver.Options{
		Metrics:        m,
		Logger:         log,
		AllowedOrigins: cfg.HTTP.AllowedOrigins,
	})

	if err := httpserver.Run(ctx, cfg.HTTPAddr(defaultPort), router); err != nil {
		log.Error("order-svc stopped", "error", err)
		os.Exit(1)
	}
}
