package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMiddlewareRecordsRequests(t *testing.T) {
	gin.SetMode(gin.TestMode)

	registry := prometheus.NewRegistry()
	collector := NewCollector(registry)

	router := gin.New()
	router.Use(collector.Middleware())
	router.GET("/todos", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/todos", nil)
	router.ServeHTTP(httptest.NewRecorder(), req)

	req = httptest.NewRequest(http.MethodGet, "/missing", nil)
	router.ServeHTTP(httptest.NewRecorder(), req)

	families, err := registry.Gather()
	require.NoError(t, err)

	names := map[string]bool{}
	for _, fam := range families {
		names[fam.GetName()] = true
	}
	assert.True(t, names["todo_http_requests_total"])
	assert.True(t, names["todo_http_request_duration_seconds"])

	var total float64
	for _, fam := range families {
		if fam.GetName() != "todo_http_requests_total" {
			continue
		}
		for _, metric := range fam.GetMetric() {
			total += metric.GetCounter().GetValue()
		}
	}
	assert.Equal(t, 2.0, total)
}
