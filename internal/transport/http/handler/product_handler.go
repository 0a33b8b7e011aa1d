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

type ProductService interface {
	ez.Service[domain.Product, service.ProductFields]
	ListByGenre(ctx context.Context, genreID string) ([]domain.Product, error)
}

type ProductHandler struct {
	svc ProductService
	log *zap.Logger
}

func NewProductHandler(svc ProductService, l *zap.Logger) *ProductHandler {
	return &ProductHandler{svc: svc, log: l}
}

// MountAPI 读接口公开，写接口走 Guard
func (h *ProductHandler) MountAPI(g router.Groups) {
	g.Public.GET("/products/genre/:genreId", h.listByGenre)
	ez.Crud(ez.CrudConfig[domain.Product, service.ProductFields]{
		Group:  g.Public,
		Path:   "/products",
		Svc:    h.svc,
		Log:    h.log,
		Entity: "Product",
		Write:  []gin.HandlerFunc{g.Guard},
	})
}

func (h *ProductHandler) listByGenre(c *gin.Context) {
	ps, err := h.svc.ListByGenre(c.Request.Context(), c.Param("genreId"))
	if err != nil {
		ez.Fail(c, h.log, err)
		return
	}
	ez.OK(c, ez.List(ps))
}
