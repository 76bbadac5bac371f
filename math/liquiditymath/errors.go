package liquiditymath

import "errors"

var (
	// ErrLiquidityAdd is returned when adding a positive delta would push
	// liquidity above the uint128 ceiling.
	ErrLiquidityAdd = errors.New("liquiditymath: liquidity overflows uint128")
	// ErrLiquiditySub is returned when subtracting a negative delta's
	// magnitude would drive liquidity below zero.
	ErrLiquiditySub = errors.New("liquiditymath: liquidity underflows below zero")
)
