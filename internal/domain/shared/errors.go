package shared

import (
	"errors"
	"fmt"
)

// Error codes shared across bounded contexts
const (
	CodeNotFound         = "NOT_FOUND"
	CodeValidation       = "VALIDATION_ERROR"
	CodeMissingSelection = "MISSING_SELECTION"
	CodeInvalidAction    = "INVALID_ACTION"
	CodeInvalidCount     = "INVALID_COUNT"
	CodeItemNotFound     = "ITEM_NOT_FOUND"
	CodePersistence      = "PERSISTENCE_ERROR"
	CodeSchema           = "SCHEMA_ERROR"
	CodeUnauthorized     = "UNAUTHORIZED"
	CodeForbidden        = "FORBIDDEN"
	CodeAlreadyExists    = "ALREADY_EXISTS"
)

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	cause   error
}

// Error implements the error interface
func (e *DomainError) Error() string {
	if e.cause != nil {
		return e.Message + ": " + e.cause.Error()
	}
	return e.Message
}

// Unwrap returns the underlying cause, if any
func (e *DomainError) Unwrap() error {
	return e.cause
}

// Is matches domain errors by code so sentinel comparisons survive wrapping
func (e *DomainError) Is(target error) bool {
	var t *DomainError
	if !errors.As(target, &t) {
		return false
	}
	return t.Code == e.Code && t.cause == nil
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrNotFound      = NewDomainError(CodeNotFound, "Resource not found")
	ErrAlreadyExists = NewDomainError(CodeAlreadyExists, "Resource already exists")
	ErrUnauthorized  = NewDomainError(CodeUnauthorized, "Not authorized to perform this action")
	ErrForbidden     = NewDomainError(CodeForbidden, "Access to this resource is forbidden")
	ErrPersistence   = NewDomainError(CodePersistence, "Storage operation failed")
	ErrSchema        = NewDomainError(CodeSchema, "Stored record is malformed")
)

// NewValidationError creates a user-correctable input error
func NewValidationError(code, message string) *DomainError {
	return NewDomainError(code, message)
}

// IsValidationError reports whether err is a user-correctable input error
func IsValidationError(err error) bool {
	var de *DomainError
	if !errors.As(err, &de) {
		return false
	}
	switch de.Code {
	case CodeValidation, CodeMissingSelection, CodeInvalidAction, CodeInvalidCount, CodeItemNotFound:
		return true
	}
	return false
}

// NewPersistenceError wraps an adapter failure. The core never retries these.
func NewPersistenceError(op string, cause error) *DomainError {
	return &DomainError{
		Code:    CodePersistence,
		Message: fmt.Sprintf("failed to %s", op),
		cause:   cause,
	}
}

// NewSchemaError reports a stored row that could not be mapped to a typed record
func NewSchemaError(record, reason string) *DomainError {
	return &DomainError{
		Code:    CodeSchema,
		Message: fmt.Sprintf("malformed %s row: %s", record, reason),
	}
}
