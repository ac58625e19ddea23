package services

import (
	"errors"
	"fmt"
)

const (
	ErrorTypeValidation = "validation"
	ErrorTypeStorage    = "storage"
	ErrorTypeNotFound   = "not_found"
)

// ServiceError - Erreur métier commune pour tous les services du core-service claims
type ServiceError struct {
	Type    string                 `json:"type"` // "validation", "storage", "not_found"
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details"`
	cause   error
}

func (e *ServiceError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.cause)
	}
	return e.Message
}

func (e *ServiceError) Unwrap() error {
	return e.cause
}

// NewValidationError - champs : nom du champ -> message
func NewValidationError(champs map[string]string) *ServiceError {
	details := make(map[string]interface{}, len(champs))
	for k, v := range champs {
		details[k] = v
	}
	return &ServiceError{
		Type:    ErrorTypeValidation,
		Message: "Données invalides",
		Details: details,
	}
}

// NewStorageError - enveloppe une erreur de lecture base, la cause reste accessible
func NewStorageError(operation string, cause error) *ServiceError {
	return &ServiceError{
		Type:    ErrorTypeStorage,
		Message: "Erreur d'accès aux données",
		Details: map[string]interface{}{"operation": operation},
		cause:   cause,
	}
}

func NewNotFoundError(message string, details map[string]interface{}) *ServiceError {
	return &ServiceError{
		Type:    ErrorTypeNotFound,
		Message: message,
		Details: details,
	}
}

func IsValidation(err error) bool { return hasType(err, ErrorTypeValidation) }

func IsStorage(err error) bool { return hasType(err, ErrorTypeStorage) }

func IsNotFound(err error) bool { return hasType(err, ErrorTypeNotFound) }

func hasType(err error, t string) bool {
	var se *ServiceError
	return errors.As(err, &se) && se.Type == t
}

// wrapStorage n'enveloppe qu'une fois
func wrapStorage(operation string, err error) error {
	if err == nil {
		return nil
	}
	var se *ServiceError
	if errors.As(err, &se) {
		return err
	}
	return NewStorageError(operation, err)
}
