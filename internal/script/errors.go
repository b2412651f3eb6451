package script

import "errors"

var (
	// ErrStateClosed is returned when operating on a closed engine.
	ErrStateClosed = errors.New("lua state is closed")

	// ErrNoBehaviors is returned when a chunk neither returns a table nor
	// sets the behaviors global.
	ErrNoBehaviors = errors.New("script defines no behaviors table")
)
