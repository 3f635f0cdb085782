package modules

import (
	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-ddd-user-service/pkg/metrics"
)

// DebugModule serves Prometheus metrics on /metrics.
type DebugModule struct {
	Metrics *metrics.Metrics
}

func NewDebugModule(m *metrics.Metrics) *DebugModule {
	return &DebugModule{Metrics: m}
}

func (m *DebugModule) Register(rg *gin.RouterGroup) {
	if m.Metrics == nil {
		return
	}
	rg.GET("/metrics", gin.WrapH(m.Metrics.Handler()))
}
