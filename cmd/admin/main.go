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
	log = log.Named("admin")

	a, err := app.New(context.Background(), cfg, log)
	if err != nil {
		log.Fatal("bootstrap failed", zap.Error(err))
	}
	defer a.Close()
	if len(cfg.Admin.Emails) == 0 {
		log.Warn("admin.emails is empty, every admin request will be rejected")
	}

	reg := new(router.Registry).Register(handler.NewAdminHandler(a.Products, a.Users, log))
	r := router.NewAdminEngine(a.RouterDeps(), reg)

	addr := server.Addr(cfg.App.Admin.Host, cfg.App.Admin.Port)
	srv := server.BuildServer(addr, r, 5*time.Second, 10*time.Second, 60*time.Second)

	base := app.BaseURL(cfg.App.Admin.Host, cfg.App.Admin.Port)
	log.Info("admin api starting",
		zap.String("addr", addr),
		zap.String("health", base+"/health"),
		zap.String("admin_v1", base+"/admin/v1"),
	)
	if err := app.Run("admin api", srv, log); err != nil {
		log.Error("admin api exited", zap.Error(err))
	}
}
