package models

import "errors"

// ErrInvalidInput is matched by every validation failure in this package.
var ErrInvalidInput = errors.New("invalid task input")

// InputError describes a rejected write. The task it was applied to is unchanged.
type InputError struct {
	Field  string
	Reason string
}

func (e *InputError) Error() string {
	return e.Field + ": " + e.Reason
}

// Is reports whether target is ErrInvalidInput
func (e *InputError) Is(target error) bool {
	return target == ErrInvalidInput
}

func invalid(field, reason string) error {
	return &InputError{Field: field, Reason: reason}
}
