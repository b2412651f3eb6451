package binder

import "errors"

// Sentinel errors for the binder.
var (
	// ErrNoRoot is returned when no root is given and no default root is set.
	ErrNoRoot = errors.New("no root node to bind to")

	// ErrInvalidSelector is matched by every SelectorError.
	ErrInvalidSelector = errors.New("invalid selector key")
)

// SelectorError names a spec key whose selector probe failed.
type SelectorError struct {
	// Key is the offending spec key.
	Key string

	// Err is the error returned by the tree's selector query.
	Err error
}

// Error implements the error interface.
func (e *SelectorError) Error() string {
	return "binding key " + `"` + e.Key + `"` + ": " + e.Err.Error()
}

// Unwrap returns the underlying query error.
func (e *SelectorError) Unwrap() error {
	return e.Err
}

// Is allows errors.Is to match SelectorError with ErrInvalidSelector.
func (e *SelectorError) Is(target error) bool {
	return target == ErrInvalidSelector
}
