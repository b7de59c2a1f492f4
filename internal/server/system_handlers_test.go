package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReady(t *testing.T) {
	healthy := func(context.Context) error { return nil }
	down := func(context.Context) error { return errors.New("connection refused") }

	tests := []struct {
		name   string
		checks map[string]Check
		code   int
		status string
	}{
		{name: "all healthy", checks: map[string]Check{"postgres": healthy, "redis": healthy}, code: http.StatusOK, status: "ok"},
		{name: "redis down", checks: map[string]Check{"postgres": healthy, "redis": down}, code: http.StatusServiceUnavailable, status: "degraded"},
		{name: "no checks", checks: nil, code: http.StatusOK, status: "ok"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			router.GET("/ready", Ready(tt.checks))

			w := serve(router, "GET", "/ready", nil)
			require.Equal(t, tt.code, w.Code)

			var body ReadinessResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tt.status, body.Status)
			assert.Len(t, body.Checks, len(tt.checks))
		})
	}
}
