package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"go-gin-gorm-shop/internal/domain"
	"go-gin-gorm-shop/internal/service"
	"go-gin-gorm-shop/internal/transport/http/ez"
	"go-gin-gorm-shop/internal/transport/http/router"
)

type PaymentService interface {
	ez.Service[domain.Payment, service.PaymentFields]
	ListByOrder(ctx context.Context, orderID string) ([]domain.Payment, error)
	ListByStatus(ctx context.Context, status string) ([]domain.Payment, error)
	ListByDateRange(ctx context.Context, start, end string) ([]domain.Payment, error)
	Summary(ctx context.Context) ([]domain.PaymentStatusTotal, error)
	TotalByStatus(ctx context.Context, status string) (decimal.Decimal, error)
}

type PaymentHandler struct {
	svc PaymentService
	log *zap.Logger
}

func NewPaymentHandler(svc PaymentService, l *zap.Logger) *PaymentHandler {
	return &PaymentHandler{svc: svc, log: l}
}

func (h *PaymentHandler) MountAPI(groups router.Groups) {
	g := groups.Protected
	g.GET("/payments/order/:orderId", list(h.log, func(c *gin.Context) ([]domain.Payment, error) {
		return h.svc.ListByOrder(c.Request.Context(), c.Param("orderId"))
	}))
	g.GET("/payments/status/:status", list(h.log, func(c *gin.Context) ([]domain.Payment, error) {
		return h.svc.ListByStatus(c.Request.Context(), c.Param("status"))
	}))
	g.GET("/payments/date-range", list(h.log, func(c *gin.Context) ([]domain.Payment, error) {
		return h.svc.ListByDateRange(c.Request.Context(), c.Query("startDate"), c.Query("endDate"))
	}))
	g.GET("/payments/summary", list(h.log, func(c *gin.Context) ([]domain.PaymentStatusTotal, error) {
		return h.svc.Summary(c.Request.Context())
	}))
	g.GET("/payments/total/:status", func(c *gin.Context) {
		status := c.Param("status")
		total, err := h.svc.TotalByStatus(c.Request.Context(), status)
		if err != nil {
			ez.Fail(c, h.log, err)
			return
		}
		ez.OK(c, gin.H{"status": status, "total": total})
	})

	ez.Crud(ez.CrudConfig[domain.Payment, service.PaymentFields]{
		Group:  g,
		Path:   "/payments",
		Svc:    h.svc,
		Log:    h.log,
		Entity: "Payment",
	})
}
