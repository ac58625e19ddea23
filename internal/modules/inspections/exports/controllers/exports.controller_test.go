package controllers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"fpm-inspections-core/internal/app/config"
	"fpm-inspections-core/internal/modules/core-services/claims/claimstest"
	claimsServices "fpm-inspections-core/internal/modules/core-services/claims/services"
	"fpm-inspections-core/internal/modules/inspections/exports/services"
)

func newRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	store := claimstest.NewMemoryStore().Add(
		claimstest.ActeLine("C-1", "1001", "Consultation", 5000, 1, "2025-01-10"),
	)
	cfg := &config.Config{Reports: config.ReportsConfig{ExportPageSizeDefault: 5000, ExportPageSizeMax: 50000}}
	svc := services.NewExportService(
		claimsServices.NewConsolidationEngine(zap.NewNop()),
		claimsServices.NewEtatSynthetiqueService(zap.NewNop()),
		claimstest.Runner{Store: store},
		cfg,
		zap.NewNop(),
	)
	ctrl := NewExportsController(svc, zap.NewNop())

	r := gin.New()
	r.POST("/api/v1/inspections/exports/consolidation", ctrl.Consolidation)
	r.POST("/api/v1/inspections/exports/etat-synthetique", ctrl.EtatSynthetique)
	return r
}

func post(path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	newRouter().ServeHTTP(w, req)
	return w
}

func TestExportConsolidation_CSVAttachment(t *testing.T) {
	w := post("/api/v1/inspections/exports/consolidation?format=csv", `{"date_debut":"2025-01-01","date_fin":"2025-01-31"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	if cd := w.Header().Get("Content-Disposition"); !strings.Contains(cd, "consolidation_2025-01-01_2025-01-31.csv") {
		t.Errorf("Content-Disposition = %q", cd)
	}
	if !strings.HasPrefix(w.Header().Get("Content-Type"), "text/csv") {
		t.Errorf("Content-Type = %q", w.Header().Get("Content-Type"))
	}
	if !strings.Contains(w.Body.String(), "Numéro PEC") || !strings.Contains(w.Body.String(), "C-1") {
		t.Errorf("body = %s", w.Body.String())
	}
}

func TestExportEtatSynthetique_Parquet(t *testing.T) {
	w := post("/api/v1/inspections/exports/etat-synthetique?format=parquet", `{"date_debut":"2025-01-01","date_fin":"2025-01-31"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if !strings.HasPrefix(w.Body.String(), "PAR1") {
		t.Error("missing parquet magic")
	}
}

func TestExport_Errors(t *testing.T) {
	tests := []struct {
		name string
		path string
		body string
	}{
		{"unknown format", "/api/v1/inspections/exports/consolidation?format=xlsx", `{"date_debut":"2025-01-01","date_fin":"2025-01-31"}`},
		{"missing dates", "/api/v1/inspections/exports/etat-synthetique", `{}`},
		{"malformed body", "/api/v1/inspections/exports/consolidation", `{`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := post(tt.path, tt.body)
			if w.Code != http.StatusBadRequest || !strings.Contains(w.Body.String(), "VALIDATION_ERROR") {
				t.Errorf("status = %d, body = %s", w.Code, w.Body.String())
			}
		})
	}
}
