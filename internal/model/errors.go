package model

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound = errors.New("not found")
	ErrConflict = errors.New("conflict")
)

// AuthError signals missing or rejected upstream credentials. It is the only
// provider-side failure that surfaces to callers; everything else degrades to
// ErrNotFound inside the adapters.
type AuthError struct {
	Reason string
	Cause  error
}

func (e *AuthError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("auth: %s: %v", e.Reason, e.Cause)
	}
	return "auth: " + e.Reason
}

func (e *AuthError) Unwrap() error { return e.Cause }

// IsAuthError reports whether err is (or wraps) an AuthError.
func IsAuthError(err error) bool {
	var ae *AuthError
	return errors.As(err, &ae)
}
