package utils

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	claimsServices "fpm-inspections-core/internal/modules/core-services/claims/services"
)

// Codes d'erreur renvoyés dans details.code
const (
	CodeValidation = "VALIDATION_ERROR"
	CodeNotFound   = "NOT_FOUND"
	CodeStorage    = "STORAGE_ERROR"
	CodeInternal   = "INTERNAL_ERROR"
)

// RespondSuccess {"success": true, "data": ...}
func RespondSuccess(ctx *gin.Context, status int, data interface{}) {
	ctx.JSON(status, gin.H{
		"success": true,
		"data":    data,
	})
}

// RespondError {"error": msg, "details": {"code": ..., "champs": {...}}}
func RespondError(ctx *gin.Context, status int, message, code string, champs map[string]string) {
	details := map[string]interface{}{"code": code}
	if len(champs) > 0 {
		details["champs"] = champs
	}
	ctx.JSON(status, gin.H{
		"error":   message,
		"details": details,
	})
}

// RespondValidation erreur 400 sur des champs du formulaire
func RespondValidation(ctx *gin.Context, champs map[string]string) {
	RespondError(ctx, http.StatusBadRequest, "Données invalides", CodeValidation, champs)
}

// RespondBindError corps JSON illisible ou mal typé
func RespondBindError(ctx *gin.Context, err error) {
	ctx.JSON(http.StatusBadRequest, gin.H{
		"error": "Données invalides",
		"details": map[string]interface{}{
			"code":    CodeValidation,
			"message": err.Error(),
		},
	})
}

// RespondServiceError traduit une erreur des core services en réponse HTTP
func RespondServiceError(ctx *gin.Context, err error) {
	var se *claimsServices.ServiceError
	if !errors.As(err, &se) {
		RespondError(ctx, http.StatusInternalServerError, "Erreur interne", CodeInternal, nil)
		return
	}

	switch se.Type {
	case claimsServices.ErrorTypeValidation:
		RespondValidation(ctx, stringDetails(se.Details))
	case claimsServices.ErrorTypeNotFound:
		RespondError(ctx, http.StatusNotFound, se.Message, CodeNotFound, nil)
	case claimsServices.ErrorTypeStorage:
		RespondError(ctx, http.StatusBadGateway, se.Message, CodeStorage, nil)
	default:
		RespondError(ctx, http.StatusInternalServerError, se.Message, CodeInternal, nil)
	}
}

func stringDetails(details map[string]interface{}) map[string]string {
	champs := make(map[string]string, len(details))
	for k, v := range details {
		champs[k] = fmt.Sprint(v)
	}
	return champs
}

// NewValidator validator dont les erreurs portent le nom JSON des champs
func NewValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	return v
}

// ValidationChamps champs en erreur -> message
func ValidationChamps(err error) map[string]string {
	champs := make(map[string]string)

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		champs["requete"] = err.Error()
		return champs
	}

	for _, fe := range verrs {
		champs[fe.Field()] = validationMessage(fe)
	}
	return champs
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "Champ requis"
	case "min":
		return fmt.Sprintf("Valeur minimale: %s", fe.Param())
	case "max":
		return fmt.Sprintf("Longueur maximale: %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("Valeur attendue parmi: %s", fe.Param())
	case "uuid4":
		return "Identifiant invalide"
	default:
		return "Valeur invalide"
	}
}
