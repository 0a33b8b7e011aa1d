package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"go-gin-gorm-shop/internal/core/config"
	"go-gin-gorm-shop/internal/core/server"
	mdw "go-gin-gorm-shop/internal/transport/http/middleware"
)

// Deps 两个引擎共用的依赖
type Deps struct {
	Log    *zap.Logger
	Tokens mdw.TokenParser
	Cookie string
	Limits config.Limits
	CORS   []string
	Admins []string
}

func newEngine(name string, d Deps) *gin.Engine {
	r := server.NewRouter(d.Log, server.Options{AllowOrigins: d.CORS})

	// 限流类中间件：对应配置 <= 0 视为关闭
	lim := d.Limits
	r.Use(mdw.RequestID())
	if lim.RPS > 0 {
		r.Use(mdw.RateLimitPerIP(rate.Limit(lim.RPS), max(lim.Burst, 1)))
	}
	if lim.MaxConcurrent > 0 {
		r.Use(mdw.ConcurrencyLimit(lim.MaxConcurrent))
	}
	if lim.MaxBodyBytes > 0 {
		r.Use(mdw.MaxBodyBytes(lim.MaxBodyBytes))
	}
	if lim.TimeoutSec > 0 {
		r.Use(mdw.Timeout(time.Duration(lim.TimeoutSec) * time.Second))
	}
	r.Use(mdw.Metrics(name), mdw.AccessLog(d.Log))

	// 健康检查
	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": 1}) })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	return r
}

// NewAPIEngine 用户端：/api/v1 下公开分组 + cookie JWT 分组
func NewAPIEngine(d Deps, reg *Registry) *gin.Engine {
	r := newEngine("api", d)

	api := r.Group("/api/v1")
	guard := mdw.AuthJWT(d.Tokens, d.Cookie)
	protected := api.Group("")
	protected.Use(guard)

	reg.mountAPI(Groups{Public: api, Protected: protected, Guard: guard})
	return r
}
