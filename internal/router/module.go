package router

import "github.com/gin-gonic/gin"

// Module registers a feature's routes. API modules receive the /api/v1 group,
// root modules (health, metrics) the bare engine group.
type Module interface {
	Register(rg *gin.RouterGroup)
}
