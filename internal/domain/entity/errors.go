package entity

import (
	"errors"
)

// ErrInvalidArgument is matched by every constructor precondition failure.
var ErrInvalidArgument = errors.New("invalid argument")

// ArgumentError describes a rejected constructor argument.
// Its message is part of the observable contract and is returned verbatim by Error.
// The values are shared process-wide, so their fields are read-only.
type ArgumentError struct {
	field   string
	message string
}

// Error returns the message exactly as defined for the violated precondition.
func (e *ArgumentError) Error() string {
	return e.message
}

// Field names the rejected argument, such as "speed".
func (e *ArgumentError) Field() string {
	return e.field
}

// Is reports whether target is ErrInvalidArgument, so callers can classify
// the failure without inspecting the message.
func (e *ArgumentError) Is(target error) bool {
	return target == ErrInvalidArgument
}

// Precondition failures for horse and race construction.
var (
	ErrNameNull         = &ArgumentError{field: "name", message: "Name cannot be null."}
	ErrNameBlank        = &ArgumentError{field: "name", message: "Name cannot be blank."}
	ErrSpeedNegative    = &ArgumentError{field: "speed", message: "Speed cannot be negative."}
	ErrDistanceNegative = &ArgumentError{field: "distance", message: "Distance cannot be negative."}
	ErrHorsesNull       = &ArgumentError{field: "horses", message: "Horses cannot be null."}
	ErrHorsesEmpty      = &ArgumentError{field: "horses", message: "Horses cannot be empty."}
)
