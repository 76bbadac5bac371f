package bitmath

import "errors"

var (
	// ErrNilInput is returned when a nil *big.Int is passed in.
	ErrNilInput = errors.New("bitmath: input is nil")
	// ErrZeroInput is returned when the input is not strictly positive.
	ErrZeroInput = errors.New("bitmath: input must be positive")
)
