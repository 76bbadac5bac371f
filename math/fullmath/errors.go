package fullmath

import "errors"

var (
	// ErrDenominatorZero is returned when the divisor is zero.
	ErrDenominatorZero = errors.New("fullmath: denominator is zero")
	// ErrDenominatorLteProd1 is returned when the denominator is less than
	// or equal to the high 256 bits of the 512-bit product, meaning the
	// quotient does not fit in 256 bits.
	ErrDenominatorLteProd1 = errors.New("fullmath: denominator must be greater than prod1")
	// ErrResultOverflow is returned when a correctly-computed quotient (or
	// its rounded-up successor) would not fit in 256 bits.
	ErrResultOverflow = errors.New("fullmath: result overflows uint256")
)
