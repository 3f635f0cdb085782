package metrics_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-ddd-user-service/pkg/metrics"
)

func TestHandlerExposesCollectors(t *testing.T) {
	m := metrics.New()
	m.HTTPRequests.WithLabelValues("GET", "/api/v1/users", "200").Inc()
	m.RateLimited.WithLabelValues("/api/v1/users").Add(2)

	require.Equal(t, 1.0, testutil.ToFloat64(m.HTTPRequests.WithLabelValues("GET", "/api/v1/users", "200")))
	require.Equal(t, 2.0, testutil.ToFloat64(m.RateLimited.WithLabelValues("/api/v1/users")))

	srv := httptest.NewServer(m.Handler())
	defer srv.Close()

	res, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer func() { _ = res.Body.Close() }()
	body, err := io.ReadAll(res.Body)
	require.NoError(t, err)

	require.Equal(t, http.StatusOK, res.StatusCode)
	require.Contains(t, string(body), `user_service_http_requests_total{method="GET",route="/api/v1/users",status="200"} 1`)
	require.Contains(t, string(body), "go_goroutines")
}

func TestNewIsIsolated(t *testing.T) {
	// separate registries must not collide on registration
	a := metrics.New()
	b := metrics.New()
	a.DomainErrors.WithLabelValues("NOT_FOUND").Inc()
	require.Equal(t, 0.0, testutil.ToFloat64(b.DomainErrors.WithLabelValues("NOT_FOUND")))
}
