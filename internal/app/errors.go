package app

import "errors"

// ErrNoScript is returned by operations that need behaviors when the
// application was created without a script.
var ErrNoScript = errors.New("no behaviors script loaded")

// InitError represents an initialization error.
type InitError struct {
	Component string
	Err       error
}

func (e *InitError) Error() string {
	return "init " + e.Component + ": " + e.Err.Error()
}

func (e *InitError) Unwrap() error {
	return e.Err
}
