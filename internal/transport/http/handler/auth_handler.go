package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"go-gin-gorm-shop/internal/core/auth"
	"go-gin-gorm-shop/internal/core/config"
	"go-gin-gorm-shop/internal/service"
	"go-gin-gorm-shop/internal/transport/http/ez"
	mdw "go-gin-gorm-shop/internal/transport/http/middleware"
	resp "go-gin-gorm-shop/internal/transport/http/response"
	"go-gin-gorm-shop/internal/transport/http/router"
)

type AuthService interface {
	Register(ctx context.Context, in service.UserFields) (*service.Registration, error)
	Login(ctx context.Context, email, password string) (*service.Session, error)
	Verify(token string) (*auth.Claims, error)
}

type AuthHandler struct {
	svc    AuthService
	cookie config.Cookie
	log    *zap.Logger
}

func NewAuthHandler(svc AuthService, cookie config.Cookie, l *zap.Logger) *AuthHandler {
	if cookie.Name == "" {
		cookie.Name = "token"
	}
	return &AuthHandler{svc: svc, cookie: cookie, log: l}
}

// 认证接口先挂
func (h *AuthHandler) Priority() int { return 10 }

func (h *AuthHandler) MountAPI(g router.Groups) {
	g.Public.POST("/auth/register", h.register)
	g.Public.POST("/auth/login", h.login)
	g.Public.POST("/auth/logout", h.logout)
	g.Public.GET("/auth/check", h.check)
}

type authOut struct {
	User  service.Profile `json:"user"`
	Token string          `json:"token"`
}

func (h *AuthHandler) register(c *gin.Context) {
	in, ok := ez.Bind[service.UserFields](c)
	if !ok {
		return
	}
	r, err := h.svc.Register(c.Request.Context(), in)
	if err != nil {
		ez.Fail(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, resp.Done("User registered successfully", authOut{User: r.User, Token: r.Token}))
}

type loginIn struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) login(c *gin.Context) {
	in, ok := ez.Bind[loginIn](c)
	if !ok {
		return
	}
	s, err := h.svc.Login(c.Request.Context(), in.Email, in.Password)
	if err != nil {
		ez.Fail(c, h.log, err)
		return
	}
	h.setCookie(c, s.Token, h.cookie.MaxAgeSec)
	c.JSON(http.StatusOK, resp.Done("Login successful", authOut{User: service.ProfileOf(s.User), Token: s.Token}))
}

func (h *AuthHandler) logout(c *gin.Context) {
	h.setCookie(c, "", -1)
	c.JSON(http.StatusOK, resp.Done("Logout successful", nil))
}

func (h *AuthHandler) check(c *gin.Context) {
	tok := mdw.TokenFrom(c, h.cookie.Name)
	if tok == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, resp.Error(resp.CodeUnauthorized, "Not authenticated"))
		return
	}
	claims, err := h.svc.Verify(tok)
	if err != nil {
		ez.Fail(c, h.log, err)
		return
	}
	ez.OK(c, gin.H{
		"authenticated": true,
		"user":          gin.H{"id": claims.UserID, "email": claims.Email},
	})
}

// httpOnly 固定开启，SameSite=Lax
func (h *AuthHandler) setCookie(c *gin.Context, value string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookie.Name, value, maxAge, "/", h.cookie.Domain, h.cookie.Secure, true)
}
