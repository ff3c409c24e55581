// Package errors provides custom error types for the DebtFree Pro API.
// All service-layer errors should use AppError to ensure consistent,
// secure error responses that never leak internal details to clients.
package errors

import (
	"fmt"
	"net/http"
)

// AppError represents a structured application error with an error code,
// human-readable message, HTTP status code, and optional internal error.
type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
	Internal   error  `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string { return e.Message }

// Unwrap returns the internal error for use with errors.Is/As.
func (e *AppError) Unwrap() error { return e.Internal }

// Wrap creates a new AppError with the same code/message/status but wraps an internal error.
func Wrap(sentinel *AppError, internal error) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    sentinel.Message,
		StatusCode: sentinel.StatusCode,
		Internal:   internal,
	}
}

// WithMessage creates a new AppError with a custom message.
func WithMessage(sentinel *AppError, message string) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    message,
		StatusCode: sentinel.StatusCode,
		Internal:   sentinel.Internal,
	}
}

// WithMessagef creates a new AppError with a formatted message.
func WithMessagef(sentinel *AppError, format string, args ...interface{}) *AppError {
	return WithMessage(sentinel, fmt.Sprintf(format, args...))
}

// General errors.
var (
	ErrInvalidInput   = &AppError{Code: "INVALID_INPUT", Message: "Invalid input", StatusCode: http.StatusBadRequest}
	ErrNotFound       = &AppError{Code: "NOT_FOUND", Message: "Resource not found", StatusCode: http.StatusNotFound}
	ErrInternalServer = &AppError{Code: "INTERNAL_ERROR", Message: "An internal error occurred", StatusCode: http.StatusInternalServerError}
)

// Debt errors.
var (
	ErrDebtNotFound   = &AppError{Code: "DEBT_NOT_FOUND", Message: "Debt not found", StatusCode: http.StatusNotFound}
	ErrNoDebtID       = &AppError{Code: "NO_DEBT_ID", Message: "No debt ID provided", StatusCode: http.StatusBadRequest}
	ErrInvalidBalance = &AppError{Code: "INVALID_BALANCE", Message: "Balance and minimum payment must not be negative", StatusCode: http.StatusBadRequest}
	ErrInvalidRate    = &AppError{Code: "INVALID_RATE", Message: "Interest rate must be between 0 and 100", StatusCode: http.StatusBadRequest}
	ErrInvalidDueDay  = &AppError{Code: "INVALID_DUE_DAY", Message: "Due day must be between 1 and 31", StatusCode: http.StatusBadRequest}
)

// Statement errors.
var (
	ErrStatementNotFound = &AppError{Code: "STATEMENT_NOT_FOUND", Message: "Statement not found", StatusCode: http.StatusNotFound}
)

// Document errors.
var (
	ErrDocumentNotFound    = &AppError{Code: "DOCUMENT_NOT_FOUND", Message: "Document not found", StatusCode: http.StatusNotFound}
	ErrUnsupportedFileType = &AppError{Code: "UNSUPPORTED_FILE_TYPE", Message: "Unsupported file type", StatusCode: http.StatusBadRequest}
	ErrInvalidDocument     = &AppError{Code: "INVALID_DOCUMENT", Message: "Document failed validation", StatusCode: http.StatusUnprocessableEntity}
)
