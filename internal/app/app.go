// Package app 组装 api / admin 两个进程共用的依赖
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/gorm"

	"go-gin-gorm-shop/internal/core/auth"
	"go-gin-gorm-shop/internal/core/cache"
	"go-gin-gorm-shop/internal/core/config"
	"go-gin-gorm-shop/internal/core/database"
	"go-gin-gorm-shop/internal/core/logger"
	"go-gin-gorm-shop/internal/core/server"
	"go-gin-gorm-shop/internal/repo"
	"go-gin-gorm-shop/internal/service"
	"go-gin-gorm-shop/internal/transport/http/router"
	"go-gin-gorm-shop/pkg/utils"
)

func init() {
	// 金额在 JSON 中输出为数字
	decimal.MarshalJSONWithoutQuotes = true
}

type App struct {
	Cfg *config.Config
	Log *zap.Logger
	DB  *gorm.DB
	JWT *auth.JWTer

	Products *service.ProductService
	Users    *service.UserService
	Orders   *service.OrderService
	Payments *service.PaymentService
	Auth     *service.AuthService

	closers []func()
}

// NewLogger 按配置构建 zap，并接管标准库 log
func NewLogger(cfg *config.Config) (*zap.Logger, func()) {
	l, sync := logger.New(logger.Options{
		Level:       cfg.Log.Level,
		JSON:        cfg.Log.JSON,
		AddCaller:   true,
		Development: cfg.App.Env == "local",
		Rotate: logger.FileRotate{
			Enable:     cfg.Log.File.Enable,
			Filename:   cfg.Log.File.Filename,
			MaxSizeMB:  cfg.Log.File.MaxSizeMB,
			MaxBackups: cfg.Log.File.MaxBackups,
			MaxAgeDays: cfg.Log.File.MaxAgeDays,
			Compress:   cfg.Log.File.Compress,
		},
	})
	undo := logger.RedirectStdLog(l, zapcore.InfoLevel)
	return l, func() { undo(); sync() }
}

// New 打开数据库、按需迁移/填充、连接 redis，并装配 service
func New(ctx context.Context, cfg *config.Config, l *zap.Logger) (*App, error) {
	db, err := database.NewGorm(database.Opts{
		Driver:             cfg.DB.Driver,
		DSN:                cfg.DB.DSN,
		Username:           cfg.DB.Username,
		Password:           cfg.DB.Password,
		MaxOpenConns:       cfg.DB.MaxOpenConns,
		MaxIdleConns:       cfg.DB.MaxIdleConns,
		ConnMaxLifetimeMin: cfg.DB.ConnMaxLifetimeMin,
		LogLevel:           cfg.DB.LogLevel,
	}, l)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	a := &App{Cfg: cfg, Log: l, DB: db}
	a.closers = append(a.closers, func() { _ = database.Close(db) })
	l.Info("database connected", zap.String("driver", cfg.DB.Driver))

	if cfg.DB.AutoMigrate {
		if err := repo.AutoMigrate(db); err != nil {
			a.Close()
			return nil, fmt.Errorf("automigrate: %w", err)
		}
		l.Info("automigrate done")
	}
	if cfg.DB.Seed {
		n, err := repo.SeedProducts(ctx, db)
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("seed products: %w", err)
		}
		if n > 0 {
			l.Info("products seeded", zap.Int("count", n))
		}
	}

	reports := a.reportCache(ctx)

	a.JWT = &auth.JWTer{
		Secret: []byte(cfg.JWT.Secret),
		Issuer: cfg.JWT.Issuer,
		TTL:    cfg.JWT.TTL(),
		Leeway: cfg.JWT.Leeway(),
	}
	hasher := utils.BcryptHasher{}
	users := repo.NewUserRepo(db)

	a.Products = service.NewProductService(repo.NewProductRepo(db))
	a.Users = service.NewUserService(users, hasher)
	a.Orders = service.NewOrderService(repo.NewOrderRepo(db), reports, cfg.Cache.TTL())
	a.Payments = service.NewPaymentService(repo.NewPaymentRepo(db), reports, cfg.Cache.TTL())
	a.Auth = service.NewAuthService(users, hasher, a.JWT)
	return a, nil
}

// redis 未启用或不可达时退化为不缓存
func (a *App) reportCache(ctx context.Context) cache.Store {
	rc := a.Cfg.Redis
	if !rc.Enabled {
		return cache.Nop{}
	}
	c := cache.New(rc.Addr, rc.Password, rc.DB)
	c.Prefix = a.Cfg.Cache.Prefix
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := c.Ping(pingCtx); err != nil {
		a.Log.Warn("redis unavailable, report cache disabled", zap.String("addr", rc.Addr), zap.Error(err))
		_ = c.Close()
		return cache.Nop{}
	}
	a.closers = append(a.closers, func() { _ = c.Close() })
	a.Log.Info("redis connected", zap.String("addr", rc.Addr))
	return c
}

// RouterDeps 路由层依赖
func (a *App) RouterDeps() router.Deps {
	return router.Deps{
		Log:    a.Log,
		Tokens: a.JWT,
		Cookie: a.Cfg.Cookie.Name,
		Limits: a.Cfg.Limits,
		CORS:   a.Cfg.CORS.AllowOrigins,
		Admins: a.Cfg.Admin.Emails,
	}
}

func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}

// Run 启动 HTTP 服务，收到 SIGINT/SIGTERM 后优雅关闭
func Run(name string, srv *http.Server, l *zap.Logger) error {
	if el, err := logger.ToStdLogger(l.Named("http"), zapcore.WarnLevel); err == nil {
		srv.ErrorLog = el
	}
	errCh := make(chan error, 1)
	go func() {
		if err := server.StartHTTP(srv, l.With(zap.String("server", name))); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("%s start: %w", name, err)
		}
		return nil
	case <-quit:
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("%s shutdown: %w", name, err)
	}
	l.Info(name + " stopped gracefully")
	return nil
}

// BaseURL 启动日志里可点击的地址
func BaseURL(host string, port int) string {
	if host == "" || host == "0.0.0.0" {
		host = "127.0.0.1"
	}
	return "http://" + server.Addr(host, port)
}
