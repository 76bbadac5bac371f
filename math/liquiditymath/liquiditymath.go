// Package liquiditymath applies a signed liquidity delta to an unsigned
// liquidity total, the one arithmetic operation every tick crossing and
// every Mint/Burn performs.
package liquiditymath

import (
	"math/big"

	"github.com/tristero-labs/univ3swap/math/fixedpoint"
)

// AddDelta writes x + y into dest, where x is an unsigned uint128 liquidity
// total and y is a signed delta (liquidityNet, or a Mint/Burn amount negated
// for Burn). It fails rather than wrapping: a negative y that would drive
// the result below zero is ErrLiquiditySub, and a result above the uint128
// ceiling is ErrLiquidityAdd.
func AddDelta(dest, x, y *big.Int) error {
	if y.Sign() < 0 {
		abs := new(big.Int).Neg(y)
		if abs.Cmp(x) > 0 {
			return ErrLiquiditySub
		}
		dest.Sub(x, abs)
		return nil
	}

	sum := new(big.Int).Add(x, y)
	if sum.Cmp(fixedpoint.MaxUint128) > 0 {
		return ErrLiquidityAdd
	}
	dest.Set(sum)
	return nil
}
