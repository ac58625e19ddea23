package utils

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	claimsServices "fpm-inspections-core/internal/modules/core-services/claims/services"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type errorBody struct {
	Error   string `json:"error"`
	Details struct {
		Code   string            `json:"code"`
		Champs map[string]string `json:"champs"`
	} `json:"details"`
}

func serve(err error) (*httptest.ResponseRecorder, errorBody) {
	w := httptest.NewRecorder()
	ctx, _ := gin.CreateTestContext(w)
	ctx.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	RespondServiceError(ctx, err)

	var body errorBody
	_ = json.Unmarshal(w.Body.Bytes(), &body)
	return w, body
}

func TestRespondServiceError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"validation", claimsServices.NewValidationError(map[string]string{"date_debut": "Champ requis"}), 400, CodeValidation},
		{"not found", claimsServices.NewNotFoundError("PEC introuvable", nil), 404, CodeNotFound},
		{"storage", claimsServices.NewStorageError("lines", errors.New("timeout")), 502, CodeStorage},
		{"other", errors.New("boom"), 500, CodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, body := serve(tt.err)
			if w.Code != tt.status || body.Details.Code != tt.code {
				t.Errorf("got %d %q, want %d %q", w.Code, body.Details.Code, tt.status, tt.code)
			}
		})
	}

	_, body := serve(claimsServices.NewValidationError(map[string]string{"date_debut": "Champ requis"}))
	if body.Details.Champs["date_debut"] != "Champ requis" {
		t.Errorf("champs = %v", body.Details.Champs)
	}
}

func TestValidationChamps_UsesJSONNames(t *testing.T) {
	type req struct {
		Intitule string `json:"intitule" validate:"required"`
		Limit    int    `json:"limit" validate:"min=1"`
	}

	err := NewValidator().Struct(req{})
	champs := ValidationChamps(err)

	if champs["intitule"] != "Champ requis" {
		t.Errorf("intitule = %q", champs["intitule"])
	}
	if champs["limit"] != "Valeur minimale: 1" {
		t.Errorf("limit = %q", champs["limit"])
	}
}
