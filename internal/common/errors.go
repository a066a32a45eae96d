package common

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned by the store when no record matches an id.
var ErrNotFound = errors.New("resource not found")

// WrapError annotates err with message, preserving the chain for
// errors.Is checks.
func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}
