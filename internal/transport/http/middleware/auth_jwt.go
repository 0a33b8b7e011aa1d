package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"go-gin-gorm-shop/internal/core/auth"
	resp "go-gin-gorm-shop/internal/transport/http/response"
)

const KeyClaims = "claims"

const msgNoToken = "Access denied. No token provided"

type TokenParser interface {
	Parse(token string) (*auth.Claims, error)
}

// TokenFrom 优先取 cookie，其次 Authorization: Bearer
func TokenFrom(c *gin.Context, cookie string) string {
	if v, err := c.Cookie(cookie); err == nil && v != "" {
		return v
	}
	if ah := c.GetHeader("Authorization"); strings.HasPrefix(ah, "Bearer ") {
		return strings.TrimPrefix(ah, "Bearer ")
	}
	return ""
}

func AuthJWT(p TokenParser, cookie string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tok := TokenFrom(c, cookie)
		if tok == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, resp.Error(resp.CodeUnauthorized, msgNoToken))
			return
		}
		claims, err := p.Parse(tok)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, resp.Error(resp.CodeUnauthorized, "Invalid or expired token"))
			return
		}
		c.Set(KeyClaims, claims)
		c.Next()
	}
}

// AdminOnly 须在 AuthJWT 之后；邮箱不区分大小写
func AdminOnly(emails []string) gin.HandlerFunc {
	allowed := make(map[string]struct{}, len(emails))
	for _, e := range emails {
		allowed[strings.ToLower(strings.TrimSpace(e))] = struct{}{}
	}
	return func(c *gin.Context) {
		claims, ok := ClaimsFrom(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, resp.Error(resp.CodeUnauthorized, msgNoToken))
			return
		}
		if _, ok := allowed[strings.ToLower(claims.Email)]; !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, resp.Error(resp.CodeForbidden, "forbidden"))
			return
		}
		c.Next()
	}
}

func ClaimsFrom(c *gin.Context) (*auth.Claims, bool) {
	v, ok := c.Get(KeyClaims)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*auth.Claims)
	return claims, ok
}
