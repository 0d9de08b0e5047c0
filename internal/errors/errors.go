// Package errors provides custom error types for the Expenshare API.
// All service-layer errors should use AppError to ensure consistent,
// secure error responses that never leak internal details to clients.
package errors

import "net/http"

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

// Authentication & authorization errors.
var (
	ErrUnauthorized       = &AppError{Code: "UNAUTHORIZED", Message: "Authentication required", StatusCode: http.StatusUnauthorized}
	ErrInvalidCredentials = &AppError{Code: "INVALID_CREDENTIALS", Message: "Invalid name or PIN", StatusCode: http.StatusUnauthorized}
	ErrForbidden          = &AppError{Code: "FORBIDDEN", Message: "Access denied", StatusCode: http.StatusForbidden}
)

// General errors.
var (
	ErrInvalidInput   = &AppError{Code: "INVALID_INPUT", Message: "Invalid input", StatusCode: http.StatusBadRequest}
	ErrNotFound       = &AppError{Code: "NOT_FOUND", Message: "Resource not found", StatusCode: http.StatusNotFound}
	ErrInternalServer = &AppError{Code: "INTERNAL_ERROR", Message: "An internal error occurred", StatusCode: http.StatusInternalServerError}
	ErrCorruptData    = &AppError{Code: "CORRUPT_DATA", Message: "Stored data is inconsistent", StatusCode: http.StatusInternalServerError}
)

// User errors.
var (
	ErrUserNotFound   = &AppError{Code: "USER_NOT_FOUND", Message: "User not found", StatusCode: http.StatusNotFound}
	ErrDuplicateName  = &AppError{Code: "DUPLICATE_NAME", Message: "A user with this name already exists", StatusCode: http.StatusConflict}
	ErrInvalidPIN     = &AppError{Code: "INVALID_PIN", Message: "PIN must be 4 to 8 digits", StatusCode: http.StatusBadRequest}
	ErrAdminProtected = &AppError{Code: "ADMIN_PROTECTED", Message: "The admin user cannot be deleted", StatusCode: http.StatusConflict}
)

// Project & membership errors.
var (
	ErrProjectNotFound  = &AppError{Code: "PROJECT_NOT_FOUND", Message: "Project not found", StatusCode: http.StatusNotFound}
	ErrDuplicateProject = &AppError{Code: "DUPLICATE_PROJECT", Message: "A project with this name already exists", StatusCode: http.StatusConflict}
	ErrMemberExists     = &AppError{Code: "MEMBER_EXISTS", Message: "User is already a member of this project", StatusCode: http.StatusConflict}
	ErrMemberNotFound   = &AppError{Code: "MEMBER_NOT_FOUND", Message: "User is not a member of this project", StatusCode: http.StatusNotFound}
	ErrOwnerImmutable   = &AppError{Code: "OWNER_IMMUTABLE", Message: "The project owner cannot be removed or demoted", StatusCode: http.StatusConflict}
)

// Category errors.
var (
	ErrCategoryNotFound    = &AppError{Code: "CATEGORY_NOT_FOUND", Message: "Category not found", StatusCode: http.StatusNotFound}
	ErrCategoryHasChildren = &AppError{Code: "CATEGORY_HAS_CHILDREN", Message: "Category has child categories", StatusCode: http.StatusConflict}
	ErrMaxDepthExceeded    = &AppError{Code: "MAX_DEPTH_EXCEEDED", Message: "Category hierarchy is limited to three levels", StatusCode: http.StatusBadRequest}
)

// Transaction & note errors.
var (
	ErrTransactionNotFound    = &AppError{Code: "TRANSACTION_NOT_FOUND", Message: "Transaction not found", StatusCode: http.StatusNotFound}
	ErrInvalidTransactionType = &AppError{Code: "INVALID_TRANSACTION_TYPE", Message: "Unsupported transaction type", StatusCode: http.StatusBadRequest}
	ErrNoteNotFound           = &AppError{Code: "NOTE_NOT_FOUND", Message: "Note not found", StatusCode: http.StatusNotFound}
)
