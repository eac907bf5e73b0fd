package handlers

// Stable machine-readable error codes returned in the JSON error body.
const (
	CodeInvalidRequest    = "invalid_request"
	CodeValidationFailed  = "validation_failed"
	CodeNotFound          = "not_found"
	CodeConflict          = "conflict"
	CodeInternalError    = "internal_error"
	CodeServiceUnhealthy = "service_unhealthy"
)
