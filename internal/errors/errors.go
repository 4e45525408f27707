package errors

import (
	"errors"
	"fmt"
)

// Common error types for the access gate
var (
	// Input errors
	ErrEmptyEmail = errors.New("email is required")

	// Configuration errors
	ErrCrmNotConfigured = errors.New("crm access token not configured")

	// Verification outcomes (not failures: the caller turns these into guidance)
	ErrContactNotFound = errors.New("contact not found")
	ErrNotMember       = errors.New("contact is not a list member")

	// Upstream errors
	ErrUpstream = errors.New("upstream request failed")

	// Session errors
	ErrInvalidToken = errors.New("invalid session token")

	// Render errors
	ErrRenderFailed = errors.New("failed to generate pdf")
)

// Wrapf wraps an error with context using fmt.Errorf
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}

// Is reports whether any error in err's chain matches target
func Is(err, target error) bool {
	return errors.Is(err, target)
}
