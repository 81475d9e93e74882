package services

import (
	"errors"
	"fmt"

	apperrors "github.com/SAP-F-2025/flashcard-quiz-service/internal/errors"
)

// ===== COMMON SERVICE ERRORS =====

var (
	// Generic errors
	ErrNotFound         = errors.New("resource not found")
	ErrValidationFailed = errors.New("validation failed")
	ErrBadRequest       = errors.New("bad request")

	// Question construction errors
	ErrConstructionFailed = errors.New("no valid quiz type")
	ErrInvalidVariant     = errors.New("invalid note variant")
	ErrInvalidCardOrdinal = errors.New("card ordinal must be 1 or more")

	// Note specific errors
	ErrNoteNotFound = errors.New("note not found")

	// Review session errors
	ErrSessionStore = errors.New("session store unavailable")

	// Import/export errors
	ErrUnsupportedFileType = errors.New("unsupported file type")
)

// ===== CUSTOM ERROR TYPES =====

// Use shared validation errors from errors package
type ValidationError = apperrors.ValidationError
type ValidationErrors = apperrors.ValidationErrors

type BusinessRuleError struct {
	Rule    string                 `json:"rule"`
	Message string                 `json:"message"`
	Context map[string]interface{} `json:"context,omitempty"`
}

func (bre *BusinessRuleError) Error() string {
	return fmt.Sprintf("business rule violation (%s): %s", bre.Rule, bre.Message)
}

// ===== ERROR HELPERS =====

// NewValidationError creates a new validation error using the shared type
func NewValidationError(field, message string, value interface{}) *ValidationError {
	return apperrors.NewValidationError(field, message, value)
}

func NewBusinessRuleError(rule, message string, context map[string]interface{}) *BusinessRuleError {
	return &BusinessRuleError{
		Rule:    rule,
		Message: message,
		Context: context,
	}
}

// IsNotFound checks if error represents a "not found" condition
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrNoteNotFound)
}

// IsValidation checks if error represents a validation failure
func IsValidation(err error) bool {
	if errors.Is(err, ErrValidationFailed) ||
		errors.Is(err, ErrInvalidVariant) ||
		errors.Is(err, ErrInvalidCardOrdinal) ||
		errors.Is(err, ErrBadRequest) ||
		errors.Is(err, ErrUnsupportedFileType) {
		return true
	}
	var ve apperrors.ValidationErrors
	if errors.As(err, &ve) {
		return true
	}
	var single *apperrors.ValidationError
	return errors.As(err, &single)
}

// IsConstructionFailed checks if no question could be built for the note
func IsConstructionFailed(err error) bool {
	return errors.Is(err, ErrConstructionFailed)
}

// IsBusinessRule checks if error represents a business rule violation
func IsBusinessRule(err error) bool {
	var bre *BusinessRuleError
	return errors.As(err, &bre)
}
