package pool

import (
	"fmt"
	"log/slog"
	"math/big"

	"github.com/tristero-labs/univ3swap/math/fixedpoint"
	"github.com/tristero-labs/univ3swap/math/fullmath"
	"github.com/tristero-labs/univ3swap/math/liquiditymath"
	"github.com/tristero-labs/univ3swap/math/swapmath"
	"github.com/tristero-labs/univ3swap/math/tickmath"
)

// swapState is the running state the step loop mutates; remaining and
// calculated are I256-range values threaded through as *big.Int internally
// (never silently wrapping, since big.Int has no fixed width) and range
// checked back into fixedpoint.I256 only at the end.
type swapState struct {
	remaining    *big.Int
	calculated   *big.Int
	sqrtPriceX96 *big.Int
	tick         int32
	liquidity    *big.Int
}

// Swap executes params against p, mutating p's price, tick, liquidity and
// fee-growth accumulators in place and returning the resulting token
// deltas. On any error p is left exactly as it was: internal bookkeeping is
// built up in local variables and committed only once the whole swap
// succeeds.
func (p *Pool) Swap(params SwapParams) (SwapResult, error) {
	return p.SwapWithLogger(params, slog.Default())
}

// SwapWithLogger is Swap with an explicit logger for step-by-step tracing;
// Pool.Swap uses slog.Default(). Tracing is gated behind the logger's
// configured level so a disabled Debug handler costs nothing.
func (p *Pool) SwapWithLogger(params SwapParams, logger *slog.Logger) (SwapResult, error) {
	if params.AmountSpecified.Sign() == 0 {
		return SwapResult{}, ErrZeroAmountSpecified
	}
	if !p.Slot0.Unlocked {
		return SwapResult{}, ErrReentrancy
	}

	if params.ZeroForOne {
		if !(params.SqrtPriceLimitX96.Cmp(fixedpoint.MinSqrtRatio) > 0 && params.SqrtPriceLimitX96.Cmp(p.Slot0.SqrtPriceX96) < 0) {
			return SwapResult{}, ErrInvalidSqrtPriceLimit
		}
	} else {
		if !(params.SqrtPriceLimitX96.Cmp(p.Slot0.SqrtPriceX96) > 0 && params.SqrtPriceLimitX96.Cmp(fixedpoint.MaxSqrtRatio) < 0) {
			return SwapResult{}, ErrInvalidSqrtPriceLimit
		}
	}

	p.Slot0.Unlocked = false
	defer func() { p.Slot0.Unlocked = true }()

	state := &swapState{
		remaining:    params.AmountSpecified.Big(),
		calculated:   new(big.Int),
		sqrtPriceX96: new(big.Int).Set(p.Slot0.SqrtPriceX96),
		tick:         p.Slot0.Tick,
		liquidity:    new(big.Int).Set(p.Liquidity),
	}

	// Crossing a tick mutates its fee-growth-outside mirrors. Operate on a
	// cloned tick map for the duration of the loop and only replace p.Ticks
	// with it once the swap has fully succeeded, so a failure partway
	// through (e.g. a liquidity overflow on the post-cross update) leaves
	// every tick's bookkeeping exactly as it was.
	workingTicks := cloneTicks(p.Ticks)

	exactIn := params.AmountSpecified.Sign() > 0
	feeGrowthGlobalX96 := p.FeeGrowthGlobal0X128
	if !params.ZeroForOne {
		feeGrowthGlobalX96 = p.FeeGrowthGlobal1X128
	}
	// feeGrowthGlobalX96 accumulates in place; operate on a scratch copy so
	// a failed swap never mutates pool state.
	feeGrowthGlobal := new(big.Int).Set(feeGrowthGlobalX96)

	// protocolFeeToken0/1 accumulate the step loop's protocol-fee cut in a
	// scratch variable alongside feeGrowthGlobal, committed into
	// p.ProtocolFees only once the whole swap succeeds.
	protocolFeeToken0 := new(big.Int)
	protocolFeeToken1 := new(big.Int)

	sqrtNextFromTick := new(big.Int)
	sqrtStepTarget := new(big.Int)
	stepSqrtNext := new(big.Int)
	stepAmountIn := new(big.Int)
	stepAmountOut := new(big.Int)
	stepFeeAmount := new(big.Int)

	for state.remaining.Sign() != 0 && state.sqrtPriceX96.Cmp(params.SqrtPriceLimitX96) != 0 {
		stepSqrtStart := new(big.Int).Set(state.sqrtPriceX96)

		stepTickNext, initialized := p.Bitmap.NextInitializedTickWithinOneWord(state.tick, p.TickSpacing, params.ZeroForOne)
		if stepTickNext < fixedpoint.MinTick {
			stepTickNext = fixedpoint.MinTick
		} else if stepTickNext > fixedpoint.MaxTick {
			stepTickNext = fixedpoint.MaxTick
		}

		if err := tickmath.GetSqrtRatioAtTick(sqrtNextFromTick, stepTickNext); err != nil {
			return SwapResult{}, fmt.Errorf("pool: swap step tick math: %w", err)
		}

		if params.ZeroForOne {
			if sqrtNextFromTick.Cmp(params.SqrtPriceLimitX96) < 0 {
				sqrtStepTarget.Set(params.SqrtPriceLimitX96)
			} else {
				sqrtStepTarget.Set(sqrtNextFromTick)
			}
		} else {
			if sqrtNextFromTick.Cmp(params.SqrtPriceLimitX96) > 0 {
				sqrtStepTarget.Set(params.SqrtPriceLimitX96)
			} else {
				sqrtStepTarget.Set(sqrtNextFromTick)
			}
		}

		if err := swapmath.ComputeSwapStep(
			stepSqrtNext, stepAmountIn, stepAmountOut, stepFeeAmount,
			state.sqrtPriceX96, sqrtStepTarget, state.liquidity, state.remaining,
			big.NewInt(int64(p.Fee)),
		); err != nil {
			return SwapResult{}, fmt.Errorf("pool: compute swap step: %w", err)
		}

		if exactIn {
			state.remaining.Sub(state.remaining, new(big.Int).Add(stepAmountIn, stepFeeAmount))
			state.calculated.Sub(state.calculated, stepAmountOut)
		} else {
			state.remaining.Add(state.remaining, stepAmountOut)
			state.calculated.Add(state.calculated, new(big.Int).Add(stepAmountIn, stepFeeAmount))
		}

		if p.protocolFeeDenominator() != 0 {
			protocolFeeShare := new(big.Int).Div(stepFeeAmount, big.NewInt(int64(p.protocolFeeDenominator())))
			stepFeeAmount.Sub(stepFeeAmount, protocolFeeShare)
			accumulateProtocolFee(protocolFeeToken0, protocolFeeToken1, params.ZeroForOne, protocolFeeShare)
		}

		if state.liquidity.Sign() > 0 {
			delta := new(big.Int)
			if err := fullmath.MulDiv(delta, stepFeeAmount, fixedpoint.Q128, state.liquidity); err != nil {
				return SwapResult{}, fmt.Errorf("pool: fee growth accumulation: %w", err)
			}
			feeGrowthGlobal.Add(feeGrowthGlobal, delta)
		}

		logger.Debug("swap step",
			"sqrtStart", stepSqrtStart.String(),
			"sqrtNext", stepSqrtNext.String(),
			"amountIn", stepAmountIn.String(),
			"amountOut", stepAmountOut.String(),
			"feeAmount", stepFeeAmount.String(),
			"tick", state.tick,
		)

		if stepSqrtNext.Cmp(sqrtNextFromTick) == 0 {
			if initialized {
				feeGrowthGlobal0, feeGrowthGlobal1 := p.FeeGrowthGlobal0X128, p.FeeGrowthGlobal1X128
				if params.ZeroForOne {
					feeGrowthGlobal0 = feeGrowthGlobal
				} else {
					feeGrowthGlobal1 = feeGrowthGlobal
				}
				liquidityNet := crossTickIn(workingTicks, stepTickNext, feeGrowthGlobal0, feeGrowthGlobal1)
				if params.ZeroForOne {
					liquidityNet = new(big.Int).Neg(liquidityNet)
				}
				newLiquidity := new(big.Int)
				if err := liquiditymath.AddDelta(newLiquidity, state.liquidity, liquidityNet); err != nil {
					return SwapResult{}, fmt.Errorf("pool: liquidity update on tick cross: %w", err)
				}
				state.liquidity = newLiquidity
			}
			if params.ZeroForOne {
				state.tick = stepTickNext - 1
			} else {
				state.tick = stepTickNext
			}
		} else if stepSqrtNext.Cmp(stepSqrtStart) != 0 {
			tick, err := tickmath.GetTickAtSqrtRatio(stepSqrtNext)
			if err != nil {
				return SwapResult{}, fmt.Errorf("pool: recompute tick from price: %w", err)
			}
			state.tick = tick
		}

		state.sqrtPriceX96.Set(stepSqrtNext)
	}

	var amount0, amount1 *big.Int
	if params.ZeroForOne == exactIn {
		amount0 = new(big.Int).Sub(params.AmountSpecified.Big(), state.remaining)
		amount1 = state.calculated
	} else {
		amount0 = state.calculated
		amount1 = new(big.Int).Sub(params.AmountSpecified.Big(), state.remaining)
	}

	i256Amount0, err := fixedpoint.NewI256FromBig(amount0)
	if err != nil {
		return SwapResult{}, fmt.Errorf("pool: amount0 out of range: %w", err)
	}
	i256Amount1, err := fixedpoint.NewI256FromBig(amount1)
	if err != nil {
		return SwapResult{}, fmt.Errorf("pool: amount1 out of range: %w", err)
	}

	p.Slot0.SqrtPriceX96 = state.sqrtPriceX96
	p.Slot0.Tick = state.tick
	p.Liquidity = state.liquidity
	p.Ticks = workingTicks
	if params.ZeroForOne {
		p.FeeGrowthGlobal0X128 = feeGrowthGlobal
	} else {
		p.FeeGrowthGlobal1X128 = feeGrowthGlobal
	}
	p.ProtocolFees.Token0.Add(p.ProtocolFees.Token0, protocolFeeToken0)
	p.ProtocolFees.Token1.Add(p.ProtocolFees.Token1, protocolFeeToken1)

	return SwapResult{Amount0: i256Amount0, Amount1: i256Amount1}, nil
}

// protocolFeeDenominator returns the 1/N protocol fee share configured on
// Slot0, or 0 when no protocol fee is taken.
func (p *Pool) protocolFeeDenominator() uint8 {
	return p.Slot0.FeeProtocol
}

// accumulateProtocolFee adds amount to whichever of token0/token1 matches
// zeroForOne. It operates on the step loop's scratch accumulators, not
// p.ProtocolFees directly, so a swap that fails partway through never
// leaves a partial protocol-fee cut committed.
func accumulateProtocolFee(token0, token1 *big.Int, zeroForOne bool, amount *big.Int) {
	if zeroForOne {
		token0.Add(token0, amount)
	} else {
		token1.Add(token1, amount)
	}
}

func tickAtSqrtRatio(sqrtPriceX96 *big.Int) (int32, error) {
	tick, err := tickmath.GetTickAtSqrtRatio(sqrtPriceX96)
	if err != nil {
		return 0, fmt.Errorf("pool: %w", err)
	}
	return tick, nil
}
