package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNotFound          = errors.New("not found")
	ErrUnauthenticated   = errors.New("sign-in required")
	ErrForbidden         = errors.New("forbidden")
	ErrInvalidTransition = errors.New("invalid transition")
	ErrPaymentRequired   = errors.New("payment required")
	ErrValidation        = errors.New("validation failed")
)

// ValidationError carries a user-facing message and unwraps to ErrValidation.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// Invalidf builds a ValidationError.
func Invalidf(format string, args ...any) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// RequireContent rejects jobs missing required content fields.
func RequireContent(job Job) error {
	if missing := job.MissingRequired(); len(missing) > 0 {
		return Invalidf("required fields missing: %s", strings.Join(missing, ", "))
	}
	return nil
}
