package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"go-gin-gorm-shop/internal/domain"
	"go-gin-gorm-shop/internal/service"
	"go-gin-gorm-shop/internal/transport/http/ez"
	"go-gin-gorm-shop/internal/transport/http/router"
)

type OrderService interface {
	ez.Service[domain.Order, service.OrderFields]
	ListByCustomer(ctx context.Context, customerID string) ([]domain.Order, error)
	ListByStatus(ctx context.Context, status string) ([]domain.Order, error)
	ListByDateRange(ctx context.Context, start, end string) ([]domain.Order, error)
	Stats(ctx context.Context) ([]domain.StatusTotal, error)
	CustomerTotals(ctx context.Context, customerID string) (domain.CustomerTotals, error)
	MonthlyStats(ctx context.Context, year string) ([]domain.MonthlyStat, error)
}

type OrderHandler struct {
	svc OrderService
	log *zap.Logger
}

func NewOrderHandler(svc OrderService, l *zap.Logger) *OrderHandler {
	return &OrderHandler{svc: svc, log: l}
}

func (h *OrderHandler) MountAPI(groups router.Groups) {
	g := groups.Protected
	g.GET("/orders/customer/:customerId", list(h.log, func(c *gin.Context) ([]domain.Order, error) {
		return h.svc.ListByCustomer(c.Request.Context(), c.Param("customerId"))
	}))
	g.GET("/orders/status/:status", list(h.log, func(c *gin.Context) ([]domain.Order, error) {
		return h.svc.ListByStatus(c.Request.Context(), c.Param("status"))
	}))
	g.GET("/orders/date-range", list(h.log, func(c *gin.Context) ([]domain.Order, error) {
		return h.svc.ListByDateRange(c.Request.Context(), c.Query("startDate"), c.Query("endDate"))
	}))
	g.GET("/orders/stats/overview", list(h.log, func(c *gin.Context) ([]domain.StatusTotal, error) {
		return h.svc.Stats(c.Request.Context())
	}))
	g.GET("/orders/stats/customer/:customerId", func(c *gin.Context) {
		out, err := h.svc.CustomerTotals(c.Request.Context(), c.Param("customerId"))
		if err != nil {
			ez.Fail(c, h.log, err)
			return
		}
		ez.OK(c, out)
	})
	g.GET("/orders/stats/monthly/:year", list(h.log, func(c *gin.Context) ([]domain.MonthlyStat, error) {
		return h.svc.MonthlyStats(c.Request.Context(), c.Param("year"))
	}))

	ez.Crud(ez.CrudConfig[domain.Order, service.OrderFields]{
		Group:  g,
		Path:   "/orders",
		Svc:    h.svc,
		Log:    h.log,
		Entity: "Order",
	})
}

// list 列表类接口：错误按分类映射，nil 输出 []
func list[T any](l *zap.Logger, fetch func(c *gin.Context) ([]T, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		items, err := fetch(c)
		if err != nil {
			ez.Fail(c, l, err)
			return
		}
		ez.OK(c, ez.List(items))
	}
}
