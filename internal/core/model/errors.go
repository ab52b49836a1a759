package model

import "errors"

var (
	// ErrInvalidArgument is returned when a constructor receives values that
	// violate its invariants.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrInvalidState is returned when an operation is not allowed in the
	// current state, e.g. starting a finished timer.
	ErrInvalidState = errors.New("invalid state")
	// ErrOutOfRange is returned when advancing past the last interval.
	ErrOutOfRange = errors.New("out of range")
)
