package main

import (
	"os"
	"sync"
	"time"

	"github.com/Edgar-Klewert/restaurant-delivery/agg-svc/internal/service"
	"github.com/Edgar-Klewert/restaurant-delivery/agg-svc/internal/storage"
	"github.com/Edgar-Klewert/restaurant-delivery/config"
	"github.com/Edgar-Klewert/restaurant-delivery/httpserver"
	"github.com/Edgar-Klewert/restaurant-delivery/logger"
	"github.com/Edgar-Klewert/restaurant-delivery/metrics"
	"github.com/Edgar-Klewert/restaurant-delivery/respond"

	"github.com/gorilla/mux"
)

const defaultPort = 8085

func main() {
	cfg := config.MustLoad()
	log := logger.New("agg-svc", cfg.Log.Level)
	m := metrics.New("agg-svc")

	loc, err := time.LoadLocation(cfg.Analytics.Timezone)
	if err != nil {
		log.Error("invalid analytics timezone", "timezone", cfg.Analytics.Timezone, "error", err)
		os.Exit(1)
	}

	ctx, stop := httpserver.SignalContext()
	defer stop()

	rdb := config.MustInitRedis(cfg.Redis)
	defer rdb.Close()
	store := storage.NewRedisStore(rdb, loc)

	ordersReader := config.NewKafkaReader(cfg.Kafka, cfg.Kafka.OrdersTopic)
	defer ordersReader.Close()
	ratingsReader := config.NewKafkaReader(cfg.Kafka, cfg.Kafka.RatingsTopic)
	defer ratingsReader.Close()

	consumers := []*service.Consumer{
		service.NewConsumer(cfg.Kafka.OrdersTopic, ordersReader, store, m),
		service.NewConsumer(cfg.Kafka.RatingsTopic, ratingsReader, store, m),
	}
	var wg sync.WaitGroup
	for _, consumer := range consumers {
		wg.Add(1)
		go func(c *service.Consumer) {
			defer wg.Done()
			c.Start(logger.InjectLogger(ctx, log))
		}(consumer)
	}

	r := mux.NewRouter()
	r.HandleFunc("/health", respond.Health("agg-svc")).Methods("GET")
	router := httpserver.Wrap(r, httpserver.Options{Metrics: m, Logger: log})

	if err := httpserver.Run(ctx, cfg.HTTPAddr(defaultPort), router); err != nil {
		log.Error("agg-svc stopped", "error", err)
		stop()
	}
	wg.Wait()
}
