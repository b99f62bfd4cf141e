package status

import (
	"context"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	"go.uber.org/zap"
)

func TestHTTPMetrics_Middleware(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	m := newHTTPMetrics(mp.Meter("test"), zap.NewNop())

	e := echo.New()
	e.Use(m.Middleware())
	e.GET("/healthz", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/boom", func(c echo.Context) error { return echo.NewHTTPError(http.StatusServiceUnavailable) })

	server := &Server{echo: e}
	get(t, server, "/healthz")
	get(t, server, "/healthz")
	assert.Equal(t, http.StatusServiceUnavailable, get(t, server, "/boom").Code)

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	counts := map[string]int64{}
	for _, sm := range rm.ScopeMetrics {
		for _, metric := range sm.Metrics {
			if metric.Name != "keepsake.http.requests_total" {
				continue
			}
			sum, ok := metric.Data.(metricdata.Sum[int64])
			require.True(t, ok)
			for _, dp := range sum.DataPoints {
				endpoint, _ := dp.Attributes.Value("endpoint")
				status, _ := dp.Attributes.Value("status")
				counts[endpoint.AsString()+" "+status.Emit()] += dp.Value
			}
		}
	}
	assert.Equal(t, int64(2), counts["/healthz 200"])
	assert.Equal(t, int64(1), counts["/boom 503"])
}

func TestNewHTTPMetrics_NilLogger(t *testing.T) {
	m := NewHTTPMetrics(nil)
	require.NotNil(t, m)
	assert.NotNil(t, m.logger)
}
