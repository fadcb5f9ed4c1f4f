package observability_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/bizdash/internal/observability"
)

func TestMetricsSnapshot(t *testing.T) {
	m := observability.NewMetrics()
	m.RecordRequest("/overview", "GET", 200, time.Millisecond)
	m.RecordRequest("/overview", "GET", 200, time.Millisecond)
	m.RecordError("/overview", "GET", "UPSTREAM_UNAVAILABLE")
	m.RecordForcedLogout("admin")

	snap := m.Snapshot()
	require.Equal(t, int64(2), snap.Requests["/overview|GET|200"])
	require.Equal(t, int64(1), snap.Errors["/overview|GET|UPSTREAM_UNAVAILABLE"])
	require.Equal(t, int64(1), snap.ForcedLogouts["admin"])
}

func TestNilMetricsIsSafe(t *testing.T) {
	var m *observability.Metrics
	m.RecordForcedLogout("staff")
	require.Empty(t, m.Snapshot().ForcedLogouts)
}

func TestRequestIDIsReusedOrMinted(t *testing.T) {
	app := fiber.New()
	app.Use(observability.RequestID(), observability.RequestLogger(zap.NewNop(), observability.NewMetrics()))
	app.Get("/", func(c *fiber.Ctx) error { return c.SendString(observability.RequestIDFrom(c)) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-Id", "given")
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, "given", resp.Header.Get("X-Request-Id"))

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	require.Len(t, resp.Header.Get("X-Request-Id"), 36)
}
