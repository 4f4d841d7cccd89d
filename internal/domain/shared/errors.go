package shared

import "fmt"

// DomainError is the base error type for all domain errors
type DomainError struct {
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

func NewDomainError(message string) *DomainError {
	return &DomainError{Message: message}
}

// Validation error

type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// InvalidTripInputError rejects a trip before simulation begins: missing
// coordinates or an accumulated weekly total outside [0, 70).
type InvalidTripInputError struct {
	*DomainError
}

func NewInvalidTripInputError(message string) *InvalidTripInputError {
	return &InvalidTripInputError{DomainError: &DomainError{Message: message}}
}
