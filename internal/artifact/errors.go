package artifact

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a source has no artifact under the requested name.
	ErrNotFound = errors.New("artifact not found")
	// ErrUnknownModel is returned for model keys the store was not loaded with.
	ErrUnknownModel = errors.New("unknown model")
)

// Error reports a failure to read, decode or evaluate a named artifact.
type Error struct {
	Name string
	Op   string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("artifact %s: %s: %v", e.Name, e.Op, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }
