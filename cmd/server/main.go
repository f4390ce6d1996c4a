package main

import (
	"context"
	"log"

	"purchase-manager/internal/api"
	"purchase-manager/internal/config"
	"purchase-manager/internal/database"
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
	if err := cfg.CheckServer(); err != nil {
		log.Fatalf("config error: %v", err)
	}

	logg := logger.New(cfg.Env, cfg.LogFile).With("service", "api")
	if cfg.Env == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx := context.Background()

	db, err := database.Open(ctx, cfg, logg)
	if err != nil {
		logg.Error("database error", "error", err)
		log.Fatal(err)
	}
	defer database.Close(db)

	m := metrics.New("purchase_api")
	h := api.NewHandler(database.NewCustomerStore(db), database.NewLotStore(db), logg)
	r := server.NewAPIRouter(h, logg, m)

	err = server.Run(ctx, logg,
		server.New(cfg.ServerPort, r),
		server.New(cfg.MetricsPort, m.Handler()),
	)
	if err != nil {
		logg.Error("server error", "error", err)
		log.Fatal(err)
	}
	logg.Info("server stopped")
}
