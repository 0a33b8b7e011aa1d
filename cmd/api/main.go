package main

import (
	"context"
	"os"
	"time"

	_ "go.uber.org/automaxprocs"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"go-gin-gorm-shop/internal/app"
	"go-gin-gorm-shop/internal/core/config"
	"go-gin-gorm-shop/internal/core/logger"
	"go-gin-gorm-shop/internal/core/server"
	"go-gin-gorm-shop/internal/transport/http/handler"
	"go-gin-gorm-shop/internal/transport/http/router"
)

func main() {
	_ = godotenv.Load()
	cfg, err := config.Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		logger.Console("info").Fatal("load config", zap.Error(err))
	}
	log, cleanup := app.NewLogger(cfg)
	defer cleanup()

	a, err := app.New(context.Background(), cfg, log)
	if err != nil {
		log.Fatal("bootstrap failed", zap.Error(err))
	}
	defer a.Close()

	reg := new(router.Registry).Register(
		handler.NewAuthHandler(a.Auth, cfg.Cookie, log),
		handler.NewProductHandler(a.Products, log),
		handler.NewUserHandler(a.Users, log),
		handler.NewOrderHandler(a.Orders, log),
		handler.NewPaymentHandler(a.Payments, log),
	)
	r := router.NewAPIEngine(a.RouterDeps(), reg)

	h := cfg.App.HTTP
	srv := server.BuildServer(server.Addr(h.Host, h.Port), r,
		secs(h.ReadTimeoutSec), secs(h.WriteTimeoutSec), secs(h.IdleTimeoutSec))

	base := app.BaseURL(h.Host, h.Port)
	log.Info("user api starting",
		zap.String("addr", srv.Addr),
		zap.String("health", base+"/health"),
		zap.String("api_v1", base+"/api/v1"),
	)
	if err := app.Run("user api", srv, log); err != nil {
		log.Error("user api exited", zap.Error(err))
	}
}

func secs(n int) time.Duration { return time.Duration(n) * time.Second }
