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

type UserService interface {
	ez.Service[domain.User, service.UserFields]
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
}

type UserHandler struct {
	svc UserService
	log *zap.Logger
}

func NewUserHandler(svc UserService, l *zap.Logger) *UserHandler {
	return &UserHandler{svc: svc, log: l}
}

func (h *UserHandler) MountAPI(g router.Groups) {
	g.Protected.GET("/users/email/:email", func(c *gin.Context) {
		u, err := h.svc.FindByEmail(c.Request.Context(), c.Param("email"))
		ez.Found(c, h.log, u, err, "User not found", "")
	})
	ez.Crud(ez.CrudConfig[domain.User, service.UserFields]{
		Group:  g.Protected,
		Path:   "/users",
		Svc:    h.svc,
		Log:    h.log,
		Entity: "User",
	})
}
