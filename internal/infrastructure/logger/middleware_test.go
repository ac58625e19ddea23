package logger

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func newTestRouter(t *testing.T) (*gin.Engine, *observer.ObservedLogs) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	core, logs := observer.New(zapcore.InfoLevel)
	lm := NewMiddleware(zap.New(core))

	r := gin.New()
	r.Use(lm.RequestID(), lm.GinLogger(), lm.GinRecovery())
	r.GET("/ok", func(c *gin.Context) { c.Status(http.StatusNoContent) })
	r.GET("/health", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/boom", func(c *gin.Context) { panic("boom") })
	return r, logs
}

func TestRequestIDPropagatedOrGenerated(t *testing.T) {
	r, _ := newTestRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ok", nil))
	if w.Header().Get("X-Request-Id") == "" {
		t.Fatal("expected a generated X-Request-Id")
	}

	req := httptest.NewRequest(http.MethodGet, "/ok", nil)
	req.Header.Set("X-Request-Id", "abc-123")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if got := w.Header().Get("X-Request-Id"); got != "abc-123" {
		t.Fatalf("X-Request-Id = %q", got)
	}
}

func TestGinLoggerSkipsHealthAndLogsRequests(t *testing.T) {
	r, logs := newTestRouter(t)

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health", nil))
	if logs.Len() != 0 {
		t.Fatalf("health check logged: %d entries", logs.Len())
	}

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/ok?page=2", nil))
	entries := logs.FilterMessage("requête HTTP").All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 request log, got %d", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["path"] != "/ok" || fields["query"] != "page=2" || fields["status"] != int64(http.StatusNoContent) {
		t.Errorf("unexpected fields %v", fields)
	}
}

func TestGinRecovery(t *testing.T) {
	r, logs := newTestRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", w.Code)
	}
	var body struct {
		Details map[string]any `json:"details"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body.Details["code"] != "INTERNAL_ERROR" {
		t.Errorf("details = %v", body.Details)
	}
	if logs.FilterMessage("panic recovered").Len() != 1 {
		t.Error("panic not logged")
	}
}

func TestNewLogger(t *testing.T) {
	if _, err := NewLogger(Config{Level: "info", Environment: "docker"}); err != nil {
		t.Fatalf("NewLogger: %v", err)
	}
	if _, err := NewLogger(Config{Level: "verbeux"}); err == nil {
		t.Error("expected invalid level error")
	}
	if _, err := NewLogger(Config{Level: "debug", Format: "xml"}); err == nil {
		t.Error("expected unknown format error")
	}
}
