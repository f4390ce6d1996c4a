package main

import (
	"context"
	"log"

	"purchase-manager/internal/client"
	"purchase-manager/internal/config"
	"purchase-manager/internal/handlers"
	"purchase-manager/internal/logger"
	"purchase-manager/internal/metrics"
	"purchase-manager/internal/server"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}
	if err := cfg.CheckWeb(); err != nil {
		log.Fatalf("config error: %v", err)
	}

	logg := logger.New(cfg.Env, cfg.LogFile).With("service", "web")
	if cfg.Env == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}

	m := metrics.New("purchase_web")
	api := client.New(cfg.APIBaseURL, cfg.APITimeout, client.WithMetrics(m))

	h := handlers.New(api.Customers, api.Lots, logg)
	r, err := server.NewWebRouter(h, cfg.SessionSecret, logg, m)
	if err != nil {
		log.Fatalf("router error: %v", err)
	}

	err = server.Run(context.Background(), logg,
		server.New(cfg.WebPort, r),
		server.New(cfg.WebMetricsPort, m.Handler()),
	)
	if err != nil {
		logg.Error("server error", "error", err)
		log.Fatal(err)
	}
	logg.Info("web stopped")
}
