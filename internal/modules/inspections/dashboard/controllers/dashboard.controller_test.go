package controllers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	claimsDto "fpm-inspections-core/internal/modules/core-services/claims/dto"
	claimsServices "fpm-inspections-core/internal/modules/core-services/claims/services"
	analysesDto "fpm-inspections-core/internal/modules/inspections/analyses/dto"
	"fpm-inspections-core/internal/modules/inspections/dashboard/services"
)

type reference struct{ err error }

func (r reference) ActiveStructures(context.Context) ([]claimsDto.Structure, error) {
	if r.err != nil {
		return nil, r.err
	}
	return []claimsDto.Structure{{ID: "1", Name: "CHU de Cocody"}}, nil
}

func (r reference) CountClaimsToday(context.Context) (int64, error) { return 3, r.err }

type history struct{}

func (history) Recent(context.Context, int) ([]analysesDto.Analysis, error) { return nil, nil }
func (history) Count(context.Context) (int64, error)                        { return 0, nil }

func newRouter(ref services.ReferenceReader) *gin.Engine {
	gin.SetMode(gin.TestMode)
	ctrl := NewDashboardController(services.NewDashboardService(ref, history{}, zap.NewNop()))
	r := gin.New()
	r.GET("/api/v1/inspections/dashboard", ctrl.Summary)
	r.GET("/api/v1/inspections/structures", ctrl.Structures)
	return r
}

func get(r *gin.Engine, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestDashboard(t *testing.T) {
	w := get(newRouter(reference{}), "/api/v1/inspections/dashboard")
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"pec_aujourdhui":3`) {
		t.Errorf("%d %s", w.Code, w.Body.String())
	}

	w = get(newRouter(reference{}), "/api/v1/inspections/structures")
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"nom_structure":"CHU de Cocody"`) {
		t.Errorf("%d %s", w.Code, w.Body.String())
	}
}

func TestDashboard_StorageError(t *testing.T) {
	ref := reference{err: claimsServices.NewStorageError("active_structures", errors.New("pg down"))}
	for _, path := range []string{"/api/v1/inspections/dashboard", "/api/v1/inspections/structures"} {
		w := get(newRouter(ref), path)
		if w.Code != http.StatusBadGateway || !strings.Contains(w.Body.String(), "STORAGE_ERROR") {
			t.Errorf("%s: %d %s", path, w.Code, w.Body.String())
		}
	}
}
