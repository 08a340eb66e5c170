package nearby

import (
	"errors"
	"fmt"
)

// Error kinds surfaced to callers. Every error returned by this package
// wraps exactly one of them, test with errors.Is.
var (
	ErrValidation      = fmt.Errorf("invalid input")
	ErrConflict        = fmt.Errorf("conflict")
	ErrNotFound        = fmt.Errorf("not found")
	ErrRequestClosed   = fmt.Errorf("request closed")
	ErrAlreadyAccepted = fmt.Errorf("already accepted")
	ErrUnauthorized    = fmt.Errorf("unauthorized")
	ErrUnreachable     = fmt.Errorf("actor unreachable")
)

var kinds = []error{
	ErrValidation,
	ErrConflict,
	ErrNotFound,
	ErrRequestClosed,
	ErrAlreadyAccepted,
	ErrUnauthorized,
	ErrUnreachable,
}

// Kind returns the error kind wrapped by err, or nil for unexpected errors
func Kind(err error) error {
	for _, k := range kinds {
		if errors.Is(err, k) {
			return k
		}
	}
	return nil
}

func newError(kind error, format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", kind, fmt.Sprintf(format, args...))
}
