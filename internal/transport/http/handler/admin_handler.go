package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"go-gin-gorm-shop/internal/domain"
	"go-gin-gorm-shop/internal/transport/http/ez"
)

type ProductPurger interface {
	HardDelete(ctx context.Context, id int64) (*domain.Product, error)
}

type UserPurger interface {
	HardDelete(ctx context.Context, id int64) (*domain.User, error)
}

// AdminHandler 管理端：物理删除
type AdminHandler struct {
	products ProductPurger
	users    UserPurger
	log      *zap.Logger
}

func NewAdminHandler(products ProductPurger, users UserPurger, l *zap.Logger) *AdminHandler {
	return &AdminHandler{products: products, users: users, log: l}
}

func (h *AdminHandler) MountAdmin(g *gin.RouterGroup) {
	g.DELETE("/products/:id", func(c *gin.Context) {
		p, err := h.products.HardDelete(c.Request.Context(), ez.ParamID(c, "id"))
		ez.Found(c, h.log, p, err, "Product not found", "Product permanently deleted")
	})
	g.DELETE("/users/:id", func(c *gin.Context) {
		u, err := h.users.HardDelete(c.Request.Context(), ez.ParamID(c, "id"))
		ez.Found(c, h.log, u, err, "User not found", "User permanently deleted")
	})
}
