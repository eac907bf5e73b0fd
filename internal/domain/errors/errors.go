package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for handlers to map to HTTP status.
var (
	ErrOrganizationNotFound = errors.New("organization not found")
	ErrProjectNotFound      = errors.New("project not found")
	ErrUserNotFound         = errors.New("user not found")
	ErrAlreadyMember        = errors.New("user is already a member of this organization")
	ErrInvitationExists     = errors.New("a pending invitation already exists for this email")
)

// ValidationError reports malformed input, caught before any store lookup.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// NewValidation builds a ValidationError for a field.
func NewValidation(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsNotFound reports whether err is one of the NotFound sentinels.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrOrganizationNotFound) ||
		errors.Is(err, ErrProjectNotFound) ||
		errors.Is(err, ErrUserNotFound)
}

// IsConflict reports whether err is one of the Conflict sentinels.
func IsConflict(err error) bool {
	return errors.Is(err, ErrAlreadyMember) || errors.Is(err, ErrInvitationExists)
}
