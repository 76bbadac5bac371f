// Package swapmath computes a single swap step: how far the price can move
// within one initialized-tick range, how much is swapped in that range, and
// the fee charged on it.
package swapmath

import (
	"math/big"
	"sync"

	"github.com/tristero-labs/univ3swap/math/fixedpoint"
	"github.com/tristero-labs/univ3swap/math/fullmath"
	"github.com/tristero-labs/univ3swap/math/sqrtpricemath"
)

type scratch struct {
	sqrtRatioNextX96       *big.Int
	amountIn               *big.Int
	amountOut              *big.Int
	feeAmount              *big.Int
	amountRemainingLessFee *big.Int
	amountRemainingAbs     *big.Int
	tempValue              *big.Int
}

var scratchPool = sync.Pool{
	New: func() any {
		return &scratch{
			sqrtRatioNextX96:       new(big.Int),
			amountIn:               new(big.Int),
			amountOut:              new(big.Int),
			feeAmount:              new(big.Int),
			amountRemainingLessFee: new(big.Int),
			amountRemainingAbs:     new(big.Int),
			tempValue:              new(big.Int),
		}
	},
}

// ComputeSwapStep advances the price from sqrtRatioCurrentX96 towards
// sqrtRatioTargetX96 by as much as amountRemaining (positive: exact input,
// negative: exact output) and liquidity allow, writing the resulting next
// sqrt price, amountIn, amountOut and feeAmount into the four destinations.
func ComputeSwapStep(
	sqrtRatioNextX96, amountIn, amountOut, feeAmount *big.Int,
	sqrtRatioCurrentX96, sqrtRatioTargetX96, liquidity, amountRemaining, feePips *big.Int,
) error {
	s := scratchPool.Get().(*scratch)
	defer scratchPool.Put(s)

	if err := s.computeSwapStep(sqrtRatioCurrentX96, sqrtRatioTargetX96, liquidity, amountRemaining, feePips); err != nil {
		return err
	}

	sqrtRatioNextX96.Set(s.sqrtRatioNextX96)
	amountIn.Set(s.amountIn)
	amountOut.Set(s.amountOut)
	feeAmount.Set(s.feeAmount)
	return nil
}

func (s *scratch) computeSwapStep(sqrtRatioCurrentX96, sqrtRatioTargetX96, liquidity, amountRemaining, feePips *big.Int) error {
	zeroForOne := sqrtRatioCurrentX96.Cmp(sqrtRatioTargetX96) >= 0
	exactIn := amountRemaining.Sign() >= 0

	s.amountIn.SetInt64(0)
	s.amountOut.SetInt64(0)
	s.feeAmount.SetInt64(0)

	if exactIn {
		s.tempValue.Sub(fixedpoint.FeeDenominator, feePips)
		if err := fullmath.MulDiv(s.amountRemainingLessFee, amountRemaining, s.tempValue, fixedpoint.FeeDenominator); err != nil {
			return err
		}

		var err error
		if zeroForOne {
			err = sqrtpricemath.GetAmount0Delta(s.amountIn, sqrtRatioTargetX96, sqrtRatioCurrentX96, liquidity, true)
		} else {
			sqrtpricemath.GetAmount1Delta(s.amountIn, sqrtRatioCurrentX96, sqrtRatioTargetX96, liquidity, true)
		}
		if err != nil {
			return err
		}

		if s.amountRemainingLessFee.Cmp(s.amountIn) >= 0 {
			s.sqrtRatioNextX96.Set(sqrtRatioTargetX96)
		} else if err := sqrtpricemath.GetNextSqrtPriceFromInput(s.sqrtRatioNextX96, sqrtRatioCurrentX96, liquidity, s.amountRemainingLessFee, zeroForOne); err != nil {
			return err
		}
	} else {
		s.amountRemainingAbs.Neg(amountRemaining)

		var err error
		if zeroForOne {
			sqrtpricemath.GetAmount1Delta(s.amountOut, sqrtRatioTargetX96, sqrtRatioCurrentX96, liquidity, false)
		} else {
			err = sqrtpricemath.GetAmount0Delta(s.amountOut, sqrtRatioCurrentX96, sqrtRatioTargetX96, liquidity, false)
		}
		if err != nil {
			return err
		}

		if s.amountRemainingAbs.Cmp(s.amountOut) >= 0 {
			s.sqrtRatioNextX96.Set(sqrtRatioTargetX96)
		} else if err := sqrtpricemath.GetNextSqrtPriceFromOutput(s.sqrtRatioNextX96, sqrtRatioCurrentX96, liquidity, s.amountRemainingAbs, zeroForOne); err != nil {
			return err
		}
	}

	reachedTarget := sqrtRatioTargetX96.Cmp(s.sqrtRatioNextX96) == 0

	var err error
	if zeroForOne {
		if !(reachedTarget && exactIn) {
			err = sqrtpricemath.GetAmount0Delta(s.amountIn, s.sqrtRatioNextX96, sqrtRatioCurrentX96, liquidity, true)
		}
		if err == nil && !(reachedTarget && !exactIn) {
			sqrtpricemath.GetAmount1Delta(s.amountOut, s.sqrtRatioNextX96, sqrtRatioCurrentX96, liquidity, false)
		}
	} else {
		if !(reachedTarget && exactIn) {
			sqrtpricemath.GetAmount1Delta(s.amountIn, sqrtRatioCurrentX96, s.sqrtRatioNextX96, liquidity, true)
		}
		if !(reachedTarget && !exactIn) {
			err = sqrtpricemath.GetAmount0Delta(s.amountOut, sqrtRatioCurrentX96, s.sqrtRatioNextX96, liquidity, false)
		}
	}
	if err != nil {
		return err
	}

	if !exactIn && s.amountOut.Cmp(s.amountRemainingAbs) > 0 {
		s.amountOut.Set(s.amountRemainingAbs)
	}

	if exactIn && s.sqrtRatioNextX96.Cmp(sqrtRatioTargetX96) != 0 {
		// The target range wasn't reached: every unspent unit of the
		// remaining amount is fee, not principal.
		s.feeAmount.Sub(amountRemaining, s.amountIn)
	} else {
		s.tempValue.Sub(fixedpoint.FeeDenominator, feePips)
		if err := fullmath.MulDivRoundingUp(s.feeAmount, s.amountIn, feePips, s.tempValue); err != nil {
			return err
		}
	}

	return nil
}
