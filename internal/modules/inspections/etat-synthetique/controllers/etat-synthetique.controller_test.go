package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"fpm-inspections-core/internal/app/config"
	"fpm-inspections-core/internal/modules/core-services/claims/claimstest"
	claimsDto "fpm-inspections-core/internal/modules/core-services/claims/dto"
	claimsServices "fpm-inspections-core/internal/modules/core-services/claims/services"
	"fpm-inspections-core/internal/modules/inspections/etat-synthetique/services"
)

func strp(s string) *string { return &s }

func demoStore() *claimstest.MemoryStore {
	store := claimstest.NewMemoryStore().Add(
		claimstest.ActeLine("C-1", "1001", "Consultation", 5000, 1, "2025-01-10"),
		claimstest.ActeLine("C-1", "1001", "Consultation", 5000, 2, "2025-01-12"),
		claimstest.ActeLine("C-3", "1003", "Chirurgie", 69000, 1, "2025-01-15"),
	)
	store.Headers = []claimsDto.ClaimHeader{
		{ClaimID: "C-1", StartedAt: claimstest.Day("2025-01-10"), BeneficiaryFullName: strp("KOUASSI Jean"), BeneficiaryPhone: strp("0707123456")},
		{ClaimID: "C-2", StartedAt: claimstest.Day("2025-01-11")},
		{ClaimID: "C-3", StartedAt: claimstest.Day("2025-01-15"), BeneficiaryFullName: strp("DE SOUZA Marc")},
		{ClaimID: "C-9", StartedAt: claimstest.Day("2025-03-01")},
	}
	return store
}

func newRouter(store *claimstest.MemoryStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{Reports: config.ReportsConfig{PageSizeDefault: 50, PageSizeMax: 500}}
	cfg.Reports.Overrides.Labels.EtatSynthetique = map[string]string{"num_pec": "N° dossier"}
	svc := services.NewEtatSynthetiqueReportService(
		claimsServices.NewEtatSynthetiqueService(zap.NewNop()),
		claimstest.Runner{Store: store},
		cfg,
		zap.NewNop(),
	)
	r := gin.New()
	r.POST("/api/v1/inspections/etat-synthetique", NewEtatSynthetiqueController(svc).Generate)
	return r
}

func post(r *gin.Engine, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/inspections/etat-synthetique", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

type etatBody struct {
	Data struct {
		Rows         []map[string]any  `json:"rows"`
		Columns      []string          `json:"columns"`
		ColumnLabels map[string]string `json:"column_labels"`
		Pagination   struct {
			Total int `json:"total"`
		} `json:"pagination"`
		Exclusions struct {
			Eligible   int `json:"eligibles"`
			ZeroAmount int `json:"montant_nul"`
			OutOfRange int `json:"hors_plage"`
		} `json:"exclusions"`
	} `json:"data"`
}

func TestGenerate_FiltersAndFormats(t *testing.T) {
	w := post(newRouter(demoStore()), `{"date_debut":"2025-01-01","date_fin":"2025-01-31","mask_telephone":true}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	var body etatBody
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	d := body.Data
	if len(d.Rows) != 2 || d.Pagination.Total != 2 {
		t.Fatalf("rows = %v", d.Rows)
	}
	if d.Exclusions.Eligible != 3 || d.Exclusions.ZeroAmount != 1 {
		t.Errorf("exclusions = %+v", d.Exclusions)
	}
	first := d.Rows[0]
	if first["num_pec"] != "C-1" || first["montant_total_pec"] != "15000" {
		t.Errorf("first row = %v", first)
	}
	if first["telephone"] != "XXXXXX3456" || first["nom_beneficiaire"] != "KOUASSI" || first["prenom_beneficiaire"] != "Jean" {
		t.Errorf("beneficiary columns = %v", first)
	}
	if len(d.Columns) != 24 || d.ColumnLabels["num_pec"] != "N° dossier" {
		t.Errorf("columns = %d, label = %q", len(d.Columns), d.ColumnLabels["num_pec"])
	}
}

func TestGenerate_StrictAmountBounds(t *testing.T) {
	w := post(newRouter(demoStore()), `{"date_debut":"2025-01-01","date_fin":"2025-01-31","montant_min":15000}`)

	var body etatBody
	_ = json.Unmarshal(w.Body.Bytes(), &body)
	if len(body.Data.Rows) != 1 || body.Data.Rows[0]["num_pec"] != "C-3" {
		t.Fatalf("rows = %v", body.Data.Rows)
	}
	if body.Data.Exclusions.OutOfRange != 1 {
		t.Errorf("exclusions = %+v", body.Data.Exclusions)
	}
}

func TestGenerate_Validation(t *testing.T) {
	tests := []struct {
		name  string
		body  string
		champ string
	}{
		{"missing dates", `{}`, "date_debut"},
		{"bad date", `{"date_debut":"10/01/2025","date_fin":"2025-01-31"}`, "date_debut"},
		{"inverted amounts", `{"date_debut":"2025-01-01","date_fin":"2025-01-31","montant_min":500,"montant_max":100}`, "montant_max"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := post(newRouter(demoStore()), tt.body)
			if w.Code != http.StatusBadRequest {
				t.Fatalf("status = %d", w.Code)
			}
			if !strings.Contains(w.Body.String(), `"`+tt.champ+`"`) {
				t.Errorf("champ %q missing: %s", tt.champ, w.Body.String())
			}
		})
	}
}
