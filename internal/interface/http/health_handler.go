package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Check reports the health of one dependency.
type Check func(ctx context.Context) error

// HealthHandler answers liveness with per-dependency results. Only critical
// checks failing turn the response into a 503.
type HealthHandler struct {
	critical map[string]Check
	optional map[string]Check
	started  time.Time
}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{
		critical: map[string]Check{},
		optional: map[string]Check{},
		started:  time.Now(),
	}
}

func (h *HealthHandler) Critical(name string, c Check) *HealthHandler {
	h.critical[name] = c
	return h
}

func (h *HealthHandler) Optional(name string, c Check) *HealthHandler {
	h.optional[name] = c
	return h
}

func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	checks := gin.H{}
	status, code := "ok", http.StatusOK
	for name, check := range h.critical {
		if err := check(ctx); err != nil {
			checks[name] = err.Error()
			status, code = "unavailable", http.StatusServiceUnavailable
			continue
		}
		checks[name] = "ok"
	}
	for name, check := range h.optional {
		if err := check(ctx); err != nil {
			checks[name] = err.Error()
			if code == http.StatusOK {
				status = "degraded"
			}
			continue
		}
		checks[name] = "ok"
	}

	c.JSON(code, gin.H{
		"status": status,
		"checks": checks,
		"uptime": time.Since(h.started).Round(time.Second).String(),
	})
}
