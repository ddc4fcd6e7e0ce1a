package apperror

import "net/http"

// Shared fallbacks used by handlers and middleware. Feature packages define
// their own errors in their errors/ subpackage.
var (
	ErrInvalidInput = New(CodeInvalidInput, "The provided input is invalid", http.StatusBadRequest)
	ErrUnauthorized = New(CodeUnauthorized, "Authentication is required", http.StatusUnauthorized)
	ErrForbidden    = New(CodeForbidden, "You do not have permission to access this resource", http.StatusForbidden)
	ErrNotFound     = New(CodeNotFound, "Resource not found", http.StatusNotFound)
	ErrInternal     = New(CodeInternalError, "An unexpected error occurred", http.StatusInternalServerError)
)
