package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-ddd-user-service/pkg/apperror"
	"github.com/oksasatya/go-ddd-user-service/pkg/metrics"
	"github.com/oksasatya/go-ddd-user-service/pkg/response"
)

// statusFor maps the outermost error kind to an HTTP status. Unknown kinds are 500.
func statusFor(k apperror.Kind) int {
	switch k {
	case apperror.ErrValidation:
		return http.StatusBadRequest
	case apperror.ErrNotFound:
		return http.StatusNotFound
	case apperror.ErrAlreadyExists:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// writeError renders err with its mapped status. Server-side failures are
// logged and their message is never shown to the caller.
func writeError(c *gin.Context, logger *logrus.Logger, m *metrics.Metrics, err error) {
	kind := apperror.KindOf(err)
	if kind == nil {
		kind = apperror.ErrInfrastructure
	}
	if m != nil {
		m.DomainErrors.WithLabelValues(kind.Error()).Inc()
	}

	status := statusFor(kind)
	if status >= http.StatusInternalServerError {
		if logger != nil {
			logger.WithError(err).WithFields(logrus.Fields{
				"request_id": c.GetString("request_id"),
				"route":      c.FullPath(),
			}).Error("request failed")
		}
		_ = c.Error(err)
		response.Error(c, status, kind.Error(), "internal server error", nil)
		return
	}
	response.Error(c, status, kind.Error(), err.Error(), nil)
}
