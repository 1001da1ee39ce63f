package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/barberhub/booking-service/pkg/metrics"
)

// *metrics.Metrics обязан удовлетворять MetricsCollector — шов ломается на компиляции
var _ MetricsCollector = (*metrics.Metrics)(nil)

type fakeCollector struct {
	method   string
	path     string
	status   int
	duration time.Duration
	calls    int
}

func (c *fakeCollector) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	c.method = method
	c.path = path
	c.status = status
	c.duration = duration
	c.calls++
}

func TestMetrics_UsesRouteTemplateAsPath(t *testing.T) {
	collector := &fakeCollector{}

	r := mux.NewRouter()
	r.Use(Metrics(collector))
	r.HandleFunc("/api/v1/bookings/{bookingId}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}).Methods(http.MethodGet)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/bookings/123", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, 1, collector.calls)
	assert.Equal(t, http.MethodGet, collector.method)
	// Label пути — шаблон роута, а не конкретный URL
	assert.Equal(t, "/api/v1/bookings/{bookingId}", collector.path)
	assert.Equal(t, http.StatusNotFound, collector.status)
	assert.GreaterOrEqual(t, collector.duration, time.Duration(0))
}

func TestMetrics_DefaultsToOKStatus(t *testing.T) {
	collector := &fakeCollector{}

	r := mux.NewRouter()
	r.Use(Metrics(collector))
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		// Обработчик не вызывает WriteHeader явно
		_, _ = w.Write([]byte("ok"))
	}).Methods(http.MethodGet)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, 1, collector.calls)
	assert.Equal(t, http.StatusOK, collector.status)
}
