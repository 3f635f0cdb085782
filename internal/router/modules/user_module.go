package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/go-ddd-user-service/internal/interface/http"
)

// UserModule exposes the user CRUD endpoints under <api>/users.
// WriteLimiter, when set, is applied to mutating routes on top of the API-wide limiter.
type UserModule struct {
	Handler      *handlers.UserHandler
	WriteLimiter gin.HandlerFunc
}

func NewUserModule(h *handlers.UserHandler, writeLimiter gin.HandlerFunc) *UserModule {
	return &UserModule{Handler: h, WriteLimiter: writeLimiter}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	users := rg.Group("/users")
	users.GET("", m.Handler.List)
	users.GET("/search", m.Handler.Search)
	users.GET("/username/:username", m.Handler.GetByUsername)
	users.GET("/:id", m.Handler.Get)

	writes := users.Group("")
	if m.WriteLimiter != nil {
		writes.Use(m.WriteLimiter)
	}
	writes.POST("", m.Handler.Create)
	writes.PUT("/:id", m.Handler.Update)
	writes.PATCH("/:id/status", m.Handler.ChangeStatus)
	writes.DELETE("/:id", m.Handler.Delete)
}
