package sqrtpricemath

import "errors"

var (
	// ErrSqrtPriceIsZero is returned when a sqrt price input is not
	// strictly positive.
	ErrSqrtPriceIsZero = errors.New("sqrtpricemath: sqrt price must be positive")
	// ErrLiquidityIsZero is returned when liquidity is not strictly
	// positive.
	ErrLiquidityIsZero = errors.New("sqrtpricemath: liquidity must be positive")
	// ErrSqrtPriceLteQuotient is returned when subtracting a token1 amount
	// would push the sqrt price to zero or below.
	ErrSqrtPriceLteQuotient = errors.New("sqrtpricemath: sqrt price must exceed the amount quotient")
	// ErrAmountOverflow is returned when a token0 amount's product with the
	// current sqrt price does not divide evenly back out, meaning the
	// requested output cannot be reached without over/underflowing.
	ErrAmountOverflow = errors.New("sqrtpricemath: amount overflows the current price")
)
