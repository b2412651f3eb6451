package replay

import (
	"errors"
	"fmt"
)

// ErrNoTarget is returned when a step's selector matches nothing.
var ErrNoTarget = errors.New("no element matches selector")

// ParseError reports a malformed replay line.
type ParseError struct {
	Line int
	Msg  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("replay line %d: %s", e.Line, e.Msg)
}

// StepError wraps the failure of a single step.
type StepError struct {
	Step Step
	Err  error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("replay line %d (%s): %v", e.Step.Line, e.Step, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}
