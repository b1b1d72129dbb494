package services

import "errors"

// ValidationError is a rejected input whose message is safe to show the user.
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string {
	return e.msg
}

func newValidationError(msg string) *ValidationError {
	return &ValidationError{msg: msg}
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var verr *ValidationError
	return errors.As(err, &verr)
}

var (
	// ErrForbidden is returned when a resource exists but belongs to another user.
	ErrForbidden = errors.New("resource belongs to another user")
)
