package services

import (
	"errors"
	"fmt"
)

// Error taxonomy for lifecycle operations. Controllers map these to HTTP
// statuses with errors.Is; every mutating operation runs in a transaction so
// a returned error implies no partial writes.
var (
	ErrAuthentication   = errors.New("invalid credentials")
	ErrAuthorization    = errors.New("access denied")
	ErrValidation       = errors.New("validation failed")
	ErrNotFound         = errors.New("record not found")
	ErrConflict         = errors.New("already acted upon, refresh and retry")
	ErrDeadlineExceeded = errors.New("deadline exceeded")
)

func validationf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

func deniedf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrAuthorization, fmt.Sprintf(format, args...))
}

func notFoundf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrNotFound, fmt.Sprintf(format, args...))
}
