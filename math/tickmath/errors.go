package tickmath

import "errors"

var (
	// ErrTickOutOfBounds is returned when a tick falls outside
	// [fixedpoint.MinTick, fixedpoint.MaxTick].
	ErrTickOutOfBounds = errors.New("tickmath: tick out of bounds")
	// ErrSqrtRatioOutOfBounds is returned when a sqrt price falls outside
	// [fixedpoint.MinSqrtRatio, fixedpoint.MaxSqrtRatio).
	ErrSqrtRatioOutOfBounds = errors.New("tickmath: sqrt ratio out of bounds")
)
