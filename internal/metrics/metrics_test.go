package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMiddlewareCollapsesMealPaths(t *testing.T) {
	handler := Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))

	// Two distinct meal IDs must land on the same series.
	for i := 0; i < 2; i++ {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/meals/"+uuid.New().String(), nil))
		require.Equal(t, http.StatusNotFound, rec.Code)
	}

	assert.Equal(t, float64(2),
		testutil.ToFloat64(httpRequests.WithLabelValues("GET", "/meals/{mealID}", "404")))
}

func TestMiddlewareSkipsOwnEndpoint(t *testing.T) {
	handler := Middleware(Handler())

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(0),
		testutil.ToFloat64(httpRequests.WithLabelValues("GET", "/metrics", "200")))
}

func TestCanonicalPath(t *testing.T) {
	cases := map[string]string{
		"/":              "/",
		"/health":        "/health",
		"/users":         "/users",
		"/users/me":      "/users/me",
		"/meals":         "/meals",
		"/meals/":        "/meals",
		"/meals/metrics": "/meals/metrics",
		"/meals/" + uuid.New().String(): "/meals/{mealID}",
		"/swagger/index.html":           "/swagger",
	}

	for raw, want := range cases {
		assert.Equal(t, want, canonicalPath(raw), raw)
	}
}

func TestHandlerServesExposition(t *testing.T) {
	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
}
