package seeds

import "fmt"

// SeedingError représente une erreur de seeding
type SeedingError struct {
	Message string                 `json:"message"`
	Type    string                 `json:"type"`
	Details map[string]interface{} `json:"details,omitempty"`
	cause   error
}

// Error implémente l'interface error
func (e *SeedingError) Error() string {
	return e.Message
}

func (e *SeedingError) Unwrap() error {
	return e.cause
}

// NewSeedingError crée une nouvelle erreur de seeding
func NewSeedingError(message, errorType string, details map[string]interface{}) *SeedingError {
	return &SeedingError{
		Message: message,
		Type:    errorType,
		Details: details,
	}
}

// Erreurs prédéfinies pour le seeding
var (
	ErrTableNotExists = func(tableName string) error {
		return NewSeedingError(
			fmt.Sprintf("table %s n'existe pas", tableName),
			"table_not_exists",
			map[string]interface{}{"table_name": tableName},
		)
	}

	ErrDemoForbidden = func(environment string) error {
		return NewSeedingError(
			fmt.Sprintf("jeu de démonstration interdit en environnement %s", environment),
			"demo_forbidden",
			map[string]interface{}{"environment": environment},
		)
	}

	ErrDatabaseOperation = func(operation string, err error) error {
		e := NewSeedingError(
			fmt.Sprintf("erreur base de données lors de %s: %v", operation, err),
			"database_error",
			map[string]interface{}{"operation": operation, "error": err.Error()},
		)
		e.cause = err
		return e
	}
)
