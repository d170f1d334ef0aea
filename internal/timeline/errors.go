package timeline

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyPages        = errors.New("page list is empty")
	ErrInvalidFPS        = errors.New("fps must be positive")
	ErrInvalidDuration   = errors.New("duration must be a positive finite number of seconds")
	ErrInvalidPageNumber = errors.New("page number must be positive")
	ErrDuplicatePage     = errors.New("duplicate page number")
)

// ConfigError points at the offending page and field of a rejected page list.
// Index is -1 for errors that concern the whole list.
type ConfigError struct {
	Index int
	Field string
	Err   error
}

func (e *ConfigError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("timeline: %s: %v", e.Field, e.Err)
	}
	return fmt.Sprintf("timeline: page[%d].%s: %v", e.Index, e.Field, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}
