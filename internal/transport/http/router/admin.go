package router

import (
	"github.com/gin-gonic/gin"

	mdw "go-gin-gorm-shop/internal/transport/http/middleware"
)

// NewAdminEngine 管理端 v1：登录且邮箱在 admin.emails 中
func NewAdminEngine(d Deps, reg *Registry) *gin.Engine {
	r := newEngine("admin", d)

	admin := r.Group("/admin/v1")
	admin.Use(mdw.AuthJWT(d.Tokens, d.Cookie), mdw.AdminOnly(d.Admins))

	reg.mountAdmin(admin)
	return r
}
