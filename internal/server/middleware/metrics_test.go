package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_Middleware(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := NewMetrics(reg)

	r := chi.NewRouter()
	r.Use(metrics.Middleware)
	r.Get("/api/v1/projects/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	for _, id := range []string{"1", "2", "3"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/v1/projects/"+id, nil))
	}

	// Все запросы попадают в одну серию по шаблону маршрута
	count := testutil.ToFloat64(metrics.requests.WithLabelValues(http.MethodGet, "/api/v1/projects/{id}", "404"))
	assert.Equal(t, float64(3), count)
	assert.Equal(t, 1, testutil.CollectAndCount(metrics.duration))
}

func TestMetrics_ObserveAuth(t *testing.T) {
	metrics := NewMetrics(prometheus.NewRegistry())

	metrics.ObserveAuth("login", "success")
	metrics.ObserveAuth("login", "success")
	metrics.ObserveAuth("login", "invalid_credentials")

	assert.Equal(t, float64(2), testutil.ToFloat64(metrics.authOutcomes.WithLabelValues("login", "success")))
	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.authOutcomes.WithLabelValues("login", "invalid_credentials")))
}
