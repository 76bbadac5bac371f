package pool

import "errors"

var (
	// ErrZeroAmountSpecified is returned when SwapParams.AmountSpecified is
	// zero.
	ErrZeroAmountSpecified = errors.New("pool: amountSpecified must not be zero")
	// ErrInvalidSqrtPriceLimit is returned when the price limit is not
	// strictly between the current price and the relevant MIN/MAX bound on
	// the correct side for the swap direction.
	ErrInvalidSqrtPriceLimit = errors.New("pool: sqrt price limit out of range for swap direction")
	// ErrReentrancy is returned when Swap is entered while Slot0.Unlocked
	// is false.
	ErrReentrancy = errors.New("pool: reentrant swap call")
	// ErrU160Overflow is returned when a sqrt price value exceeds 160 bits.
	ErrU160Overflow = errors.New("pool: sqrt price exceeds uint160")
	// ErrFeeOutOfRange is returned when a fee does not fit in a uint24, the
	// open question spec.md flags around the original's as_limbs() cast.
	ErrFeeOutOfRange = errors.New("pool: fee does not fit in uint24")
	// ErrPositionNotFound is returned by Collect/Burn for an unknown
	// position key.
	ErrPositionNotFound = errors.New("pool: position not found")
	// ErrTicksNotAligned is returned when TickLower/TickUpper are not
	// multiples of the pool's tick spacing.
	ErrTicksNotAligned = errors.New("pool: tick not aligned to tick spacing")
	// ErrTickLowerGteTickUpper is returned when TickLower >= TickUpper.
	ErrTickLowerGteTickUpper = errors.New("pool: tickLower must be less than tickUpper")
	// ErrTickOutOfRange is returned when a tick falls outside
	// [fixedpoint.MinTick, fixedpoint.MaxTick].
	ErrTickOutOfRange = errors.New("pool: tick out of range")
)
