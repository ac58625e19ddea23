package app

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type pinger struct{ err error }

func (p pinger) Ping(context.Context) error { return p.err }

func newHealthRouter(checks ReadinessChecks) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	RegisterHealthRoutes(r, checks, zap.NewNop())
	return r
}

func get(r *gin.Engine, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestHealth(t *testing.T) {
	w := get(newHealthRouter(nil), "/health")
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "healthy") {
		t.Errorf("%d %s", w.Code, w.Body.String())
	}
}

func TestReady(t *testing.T) {
	down := pinger{err: errors.New("connection refused")}
	tests := []struct {
		name   string
		checks ReadinessChecks
		status int
	}{
		{"all up", ReadinessChecks{"postgres": pinger{}, "redis": pinger{}, "mongodb": pinger{}}, http.StatusOK},
		{"mongodb optional", ReadinessChecks{"postgres": pinger{}, "redis": pinger{}, "mongodb": down}, http.StatusOK},
		{"postgres down", ReadinessChecks{"postgres": down, "redis": pinger{}, "mongodb": pinger{}}, http.StatusServiceUnavailable},
		{"redis down", ReadinessChecks{"postgres": pinger{}, "redis": down, "mongodb": pinger{}}, http.StatusServiceUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := get(newHealthRouter(tt.checks), "/ready")
			if w.Code != tt.status {
				t.Errorf("status = %d, body = %s", w.Code, w.Body.String())
			}
		})
	}
}
