package server

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/CamiloTriana75/ProyectoElden/internal/auth"
	"github.com/CamiloTriana75/ProyectoElden/internal/metrics"
)

func newRouter(mw ...gin.HandlerFunc) *gin.Engine {
	router := gin.New()
	router.Use(mw...)
	router.GET("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	return router
}

func serve(router http.Handler, method, path string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestMetricsMiddleware(t *testing.T) {
	router := newRouter(MetricsMiddleware())

	ok := metrics.HTTPRequestsTotal.WithLabelValues("GET", "/test", "200")
	unmatched := metrics.HTTPRequestsTotal.WithLabelValues("GET", "unmatched", "404")
	okBefore, unmatchedBefore := testutil.ToFloat64(ok), testutil.ToFloat64(unmatched)

	assert.Equal(t, http.StatusOK, serve(router, "GET", "/test", nil).Code)
	assert.Equal(t, http.StatusNotFound, serve(router, "GET", "/nowhere/123", nil).Code)

	assert.Equal(t, okBefore+1, testutil.ToFloat64(ok))
	assert.Equal(t, unmatchedBefore+1, testutil.ToFloat64(unmatched))
}

func TestRequestLoggingMiddleware_RequestID(t *testing.T) {
	router := newRouter(RequestLoggingMiddleware())

	w := serve(router, "GET", "/test", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get(requestIDHeader))

	w = serve(router, "GET", "/test", map[string]string{requestIDHeader: "req-42"})
	assert.Equal(t, "req-42", w.Header().Get(requestIDHeader))
}

func TestRateLimitMiddleware(t *testing.T) {
	router := newRouter(RateLimitMiddleware(2, 3))

	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusOK, serve(router, "GET", "/test", nil).Code, "request %d is within burst", i)
	}
	assert.Equal(t, http.StatusTooManyRequests, serve(router, "GET", "/test", nil).Code)
}

func TestRateLimitMiddleware_PerActor(t *testing.T) {
	router := newRouter(func(c *gin.Context) {
		auth.SetActor(c, auth.Actor{ID: c.GetHeader("X-User"), Role: auth.RoleClient})
		c.Next()
	}, RateLimitMiddleware(0.001, 1))

	assert.Equal(t, http.StatusOK, serve(router, "GET", "/test", map[string]string{"X-User": "u1"}).Code)
	assert.Equal(t, http.StatusTooManyRequests, serve(router, "GET", "/test", map[string]string{"X-User": "u1"}).Code)
	assert.Equal(t, http.StatusOK, serve(router, "GET", "/test", map[string]string{"X-User": "u2"}).Code)
}

func TestRateLimiter_EvictsIdleCallers(t *testing.T) {
	now := time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC)
	rl := NewRateLimiter(1, 1, time.Minute)
	rl.now = func() time.Time { return now }

	assert.True(t, rl.Allow("a"))
	assert.True(t, rl.Allow("b"))
	assert.Equal(t, 2, rl.Len())

	now = now.Add(2 * time.Minute)
	assert.True(t, rl.Allow("c"))
	assert.Equal(t, 1, rl.Len())
}

func TestCorsMiddleware(t *testing.T) {
	router := newRouter(corsMiddleware())

	w := serve(router, "GET", "/test", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), "PATCH")

	w = serve(router, "OPTIONS", "/test", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
}
