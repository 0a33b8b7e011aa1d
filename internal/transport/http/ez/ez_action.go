package ez

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"go-gin-gorm-shop/internal/domain"
	"go-gin-gorm-shop/internal/transport/http/middleware"
	resp "go-gin-gorm-shop/internal/transport/http/response"
)

// Service 通用 CRUD 能力；F 为 merge-patch 输入
type Service[T any, F any] interface {
	List(ctx context.Context) ([]T, error)
	Get(ctx context.Context, id int64) (*T, error)
	Create(ctx context.Context, in F) (*T, error)
	Update(ctx context.Context, id int64, in F) (*T, error)
	SoftDelete(ctx context.Context, id int64) (*T, error)
}

type CrudConfig[T any, F any] struct {
	Group *gin.RouterGroup
	Path  string
	Svc   Service[T, F]
	Log   *zap.Logger

	// Entity 用于提示文案，如 "Product" → "Product not found"
	Entity string
	// Write 写操作（POST/PUT/DELETE）额外的中间件，如鉴权
	Write []gin.HandlerFunc
}

// Crud 挂载 GET / 、GET /:id 、POST / 、PUT /:id 、DELETE /:id
func Crud[T any, F any](cfg CrudConfig[T, F]) {
	notFound := cfg.Entity + " not found"
	l := cfg.Log
	if l == nil {
		l = zap.NewNop()
	}

	cfg.Group.GET(cfg.Path, func(c *gin.Context) {
		items, err := cfg.Svc.List(c.Request.Context())
		if err != nil {
			Fail(c, l, err)
			return
		}
		OK(c, List(items))
	})

	cfg.Group.GET(cfg.Path+"/:id", func(c *gin.Context) {
		v, err := cfg.Svc.Get(c.Request.Context(), ParamID(c, "id"))
		Found(c, l, v, err, notFound, "")
	})

	w := func(h gin.HandlerFunc) []gin.HandlerFunc {
		return append(append([]gin.HandlerFunc{}, cfg.Write...), h)
	}

	cfg.Group.POST(cfg.Path, w(func(c *gin.Context) {
		in, ok := Bind[F](c)
		if !ok {
			return
		}
		v, err := cfg.Svc.Create(c.Request.Context(), in)
		if err != nil {
			Fail(c, l, err)
			return
		}
		c.JSON(http.StatusCreated, resp.Done(cfg.Entity+" created successfully", v))
	})...)

	cfg.Group.PUT(cfg.Path+"/:id", w(func(c *gin.Context) {
		in, ok := Bind[F](c)
		if !ok {
			return
		}
		v, err := cfg.Svc.Update(c.Request.Context(), ParamID(c, "id"), in)
		Found(c, l, v, err, notFound, cfg.Entity+" updated successfully")
	})...)

	cfg.Group.DELETE(cfg.Path+"/:id", w(func(c *gin.Context) {
		v, err := cfg.Svc.SoftDelete(c.Request.Context(), ParamID(c, "id"))
		Found(c, l, v, err, notFound, cfg.Entity+" deleted successfully")
	})...)
}

// StatusOf 错误分类 → HTTP 状态码
func StatusOf(err error) int {
	switch domain.KindOf(err) {
	case domain.KindValidation, domain.KindConflict:
		return http.StatusBadRequest
	case domain.KindUnauthorized:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// Fail 写错误响应；5xx 记录日志
func Fail(c *gin.Context, l *zap.Logger, err error) {
	status := StatusOf(err)
	if status >= http.StatusInternalServerError {
		l.Error("request failed",
			zap.String("rid", c.GetString(middleware.KeyRequestID)),
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
	}
	_ = c.Error(err)
	c.AbortWithStatusJSON(status, resp.Error(status, err.Error()))
}

func OK(c *gin.Context, data any) { c.JSON(http.StatusOK, resp.OK(data)) }

func NotFound(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusNotFound, resp.Error(resp.CodeNotFound, msg))
}

// Found 服务返回 nil 时 404；msg 为空用默认 "OK"
func Found[T any](c *gin.Context, l *zap.Logger, v *T, err error, notFound, msg string) {
	if err != nil {
		Fail(c, l, err)
		return
	}
	if v == nil {
		NotFound(c, notFound)
		return
	}
	if msg == "" {
		OK(c, v)
		return
	}
	c.JSON(http.StatusOK, resp.Done(msg, v))
}

// List nil 切片输出为 []
func List[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}

// ParamID 非数字的 id 视为 0，交由 service 报 "ID is required"
func ParamID(c *gin.Context, name string) int64 {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		return 0
	}
	return id
}

func Bind[F any](c *gin.Context) (F, bool) {
	var in F
	if err := c.ShouldBindJSON(&in); err != nil {
		var mbe *http.MaxBytesError
		if errors.As(err, &mbe) {
			c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, resp.Error(resp.CodeTooLarge, "request body too large"))
			return in, false
		}
		c.AbortWithStatusJSON(http.StatusBadRequest, resp.Error(resp.CodeBadRequest, "Invalid request body: "+err.Error()))
		return in, false
	}
	return in, true
}
