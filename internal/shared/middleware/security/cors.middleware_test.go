package security

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"fpm-inspections-core/internal/app/config"
)

func newCORSRouter(env string, origins ...string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{
		Environment: env,
		CORS: config.CORSConfig{
			AllowedOrigins: origins,
			AllowedMethods: []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders: []string{"Content-Type"},
			MaxAge:         600,
		},
	}
	r := gin.New()
	r.Use(gin.HandlerFunc(CORSMiddleware(cfg)))
	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
	return r
}

func allowedOrigin(r *gin.Engine, origin string) string {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("Origin", origin)
	r.ServeHTTP(w, req)
	return w.Header().Get("Access-Control-Allow-Origin")
}

func TestCORSMiddleware(t *testing.T) {
	tests := []struct {
		name    string
		env     string
		origins []string
		origin  string
		allowed bool
	}{
		{"configured origin", "docker", []string{"https://inspections.fpm.ci"}, "https://inspections.fpm.ci", true},
		{"unknown origin", "docker", []string{"https://inspections.fpm.ci"}, "https://evil.example", false},
		{"localhost in development", "development", nil, "http://localhost:5173", true},
		{"localhost outside development", "docker", nil, "http://localhost:5173", false},
		{"wildcard", "docker", []string{"*"}, "https://any.example", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := allowedOrigin(newCORSRouter(tt.env, tt.origins...), tt.origin)
			if (got != "") != tt.allowed {
				t.Errorf("Access-Control-Allow-Origin = %q, allowed = %v", got, tt.allowed)
			}
		})
	}
}
