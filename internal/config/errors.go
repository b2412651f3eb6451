package config

import (
	"errors"
	"fmt"
)

// Errors returned by configuration operations.
var (
	// ErrInvalidValue indicates a setting holds a value outside its allowed set.
	ErrInvalidValue = errors.New("invalid value")

	// ErrUnknownSetting indicates a layer named a setting that does not exist.
	ErrUnknownSetting = errors.New("unknown setting")
)

// ValidationError describes a single rejected setting.
type ValidationError struct {
	// Path is the dotted setting path, e.g. "binder.probe_scope".
	Path string
	// Value is the rejected value, when there is one.
	Value any
	// Err is ErrInvalidValue or ErrUnknownSetting.
	Err error
}

func (e *ValidationError) Error() string {
	if e.Value == nil {
		return fmt.Sprintf("config %s: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("config %s = %q: %v", e.Path, fmt.Sprint(e.Value), e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}
