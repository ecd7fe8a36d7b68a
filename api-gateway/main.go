package main

import (
	"net/http"
	"os"
	"time"

	"github.com/Edgar-Klewert/restaurant-delivery/api-gateway/internal/gateway"
	"github.com/Edgar-Klewert/restaurant-delivery/config"
	"github.com/Edgar-Klewert/restaurant-delivery/httpserver"
	"github.com/Edgar-Klewert/restaurant-delivery/logger"
	"github.com/Edgar-Klewert/restaurant-delivery/metrics"

	"github.com/gorilla/mux"
)

const (
	defaultPort     = 8080
	upstreamTimeout = 15 * time.Second
)

func main() {
	cfg := config.MustLoad()
	log := logger.New("api-gateway", cfg.Log.Level)
	m := metrics.New("api-gateway")

	ctx, stop := httpserver.SignalContext()
	defer stop()

	gw := gateway.NewGateway(gateway.Config{
		CatalogURL:   cfg.Gateway.CatalogURL,
		OrderURL:     cfg.Gateway.OrderURL,
		RateURL:      cfg.Gateway.RateURL,
		AnalyticsURL: cfg.Gateway.AnalyticsURL,
	}, &http.Client{Timeout: upstreamTimeout})

	r := mux.NewRouter()
	gw.RegisterRoutes(r)
	handler := httpserver.Wrap(r, httpserver.Options{
		Metrics:        m,
		Logger:         log,
		AllowedOrigins: cfg.HTTP.AllowedOrigins,
	})

	log.Info("api-gateway ready",
		"catalog", cfg.Gateway.CatalogURL, "orders", cfg.Gateway.OrderURL,
		"ratings", cfg.Gateway.RateURL, "analytics", cfg.Gateway.AnalyticsURL)
	if err := httpserver.Run(ctx, cfg.HTTPAddr(defaultPort), handler); err != nil {
		log.Error("api-gateway stopped", "error", err)
		os.Exit(1)
	}
}
