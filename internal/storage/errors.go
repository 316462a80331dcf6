// Package storage provides the data persistence layer for the expense tracker.
package storage

import (
	"errors"
	"fmt"
)

// ErrStorage matches every *Error through errors.Is.
var ErrStorage = errors.New("storage error")

// Error reports a failed read or write of the expense file.
type Error struct {
	Err  error
	Op   string
	Path string
}

func (e *Error) Error() string {
	return fmt.Sprintf("failed to %s expenses file %s: %v", e.Op, e.Path, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrStorage) true for any *Error.
func (e *Error) Is(target error) bool {
	return target == ErrStorage
}
