package fixedpoint

import "errors"

var (
	// ErrI256OutOfRange is returned when a value falls outside the signed
	// 256-bit range [-2**255, 2**255).
	ErrI256OutOfRange = errors.New("fixedpoint: value out of range for I256")
	// ErrI256ParseFailed is returned when an I256 cannot be parsed from JSON.
	ErrI256ParseFailed = errors.New("fixedpoint: malformed I256 literal")
)
