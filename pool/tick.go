package pool

import (
	"math/big"

	"github.com/tristero-labs/univ3swap/math/liquiditymath"
)

// tickSpacingToMaxLiquidityPerTick mirrors the bound the original pool uses
// to size LiquidityGross: the maximum liquidity representable per tick so
// that, summed across every tick, total liquidity cannot exceed uint128.
func tickSpacingToMaxLiquidityPerTick(tickSpacing int32) *big.Int {
	minTick := (int64(-887272) / int64(tickSpacing)) * int64(tickSpacing)
	maxTick := (int64(887272) / int64(tickSpacing)) * int64(tickSpacing)
	numTicks := (maxTick-minTick)/int64(tickSpacing) + 1
	maxLiquidityPerTick := new(big.Int).Div(maxUint128(), big.NewInt(numTicks))
	return maxLiquidityPerTick
}

func maxUint128() *big.Int {
	return new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 128), big.NewInt(1))
}

// updateTick applies a liquidityDelta to the tick's gross/net liquidity,
// initializing or clearing the tick as needed, and reports whether the tick
// flipped between initialized and cleared; the caller flips its bitmap bit.
// upper indicates whether this call is for the position's upper bound (in
// which case liquidityNet is subtracted rather than added).
func (p *Pool) updateTick(tick int32, liquidityDelta *big.Int, upper bool) (flipped bool, err error) {
	info, ok := p.Ticks[tick]
	if !ok {
		info = &TickInfo{
			LiquidityGross:        new(big.Int),
			LiquidityNet:          new(big.Int),
			FeeGrowthOutside0X128: new(big.Int),
			FeeGrowthOutside1X128: new(big.Int),
		}
	}

	liquidityGrossBefore := new(big.Int).Set(info.LiquidityGross)
	liquidityGrossAfter := new(big.Int)
	if err := liquiditymath.AddDelta(liquidityGrossAfter, liquidityGrossBefore, liquidityDelta); err != nil {
		return false, err
	}

	flipped = (liquidityGrossAfter.Sign() == 0) != (liquidityGrossBefore.Sign() == 0)

	if liquidityGrossBefore.Sign() == 0 {
		// A freshly initialized tick checkpoints fee growth as if all
		// growth to date happened below it, matching the on-chain
		// convention that fee-growth-outside accounting is relative to the
		// tick at which it was first touched.
		if tick <= p.Slot0.Tick {
			info.FeeGrowthOutside0X128.Set(p.FeeGrowthGlobal0X128)
			info.FeeGrowthOutside1X128.Set(p.FeeGrowthGlobal1X128)
		}
		info.Initialized = true
	}

	info.LiquidityGross = liquidityGrossAfter
	netDelta := new(big.Int).Set(liquidityDelta)
	if upper {
		netDelta.Neg(netDelta)
	}
	info.LiquidityNet.Add(info.LiquidityNet, netDelta)

	if liquidityGrossAfter.Sign() == 0 {
		delete(p.Ticks, tick)
	} else {
		p.Ticks[tick] = info
	}

	return flipped, nil
}

// crossTickIn flips a tick's fee-growth-outside mirrors when price crosses
// it and returns the liquidityNet to apply to active liquidity.
// feeGrowthGlobal0/1 are the caller's current accumulators, which during an
// in-progress swap may be ahead of the values still committed on the pool.
// It operates on an explicit ticks map so a swap can run against a working
// copy and discard it on failure without touching the pool's own state.
func crossTickIn(ticks map[int32]*TickInfo, tick int32, feeGrowthGlobal0, feeGrowthGlobal1 *big.Int) *big.Int {
	info, ok := ticks[tick]
	if !ok {
		return new(big.Int)
	}
	info.FeeGrowthOutside0X128.Sub(feeGrowthGlobal0, info.FeeGrowthOutside0X128)
	info.FeeGrowthOutside1X128.Sub(feeGrowthGlobal1, info.FeeGrowthOutside1X128)
	return info.LiquidityNet
}

// cloneTicks deep-copies a tick map so a swap can mutate a working copy and
// either commit it wholesale on success or discard it on error, matching
// the "local working copy, commit at the end" discipline a pure swap
// function needs without the EVM's automatic revert-on-error.
func cloneTicks(src map[int32]*TickInfo) map[int32]*TickInfo {
	dst := make(map[int32]*TickInfo, len(src))
	for k, v := range src {
		dst[k] = &TickInfo{
			LiquidityGross:        new(big.Int).Set(v.LiquidityGross),
			LiquidityNet:          new(big.Int).Set(v.LiquidityNet),
			FeeGrowthOutside0X128: new(big.Int).Set(v.FeeGrowthOutside0X128),
			FeeGrowthOutside1X128: new(big.Int).Set(v.FeeGrowthOutside1X128),
			Initialized:           v.Initialized,
		}
	}
	return dst
}

// feeGrowthInside returns the fee growth accrued inside [tickLower,
// tickUpper] for each token, used to checkpoint a Position on Mint/Burn.
func (p *Pool) feeGrowthInside(tickLower, tickUpper int32) (inside0, inside1 *big.Int) {
	lower := p.Ticks[tickLower]
	upper := p.Ticks[tickUpper]

	var lowerFG0, lowerFG1, upperFG0, upperFG1 *big.Int
	if lower != nil {
		lowerFG0, lowerFG1 = lower.FeeGrowthOutside0X128, lower.FeeGrowthOutside1X128
	} else {
		lowerFG0, lowerFG1 = new(big.Int), new(big.Int)
	}
	if upper != nil {
		upperFG0, upperFG1 = upper.FeeGrowthOutside0X128, upper.FeeGrowthOutside1X128
	} else {
		upperFG0, upperFG1 = new(big.Int), new(big.Int)
	}

	var below0, below1, above0, above1 *big.Int
	if p.Slot0.Tick >= tickLower {
		below0, below1 = lowerFG0, lowerFG1
	} else {
		below0 = new(big.Int).Sub(p.FeeGrowthGlobal0X128, lowerFG0)
		below1 = new(big.Int).Sub(p.FeeGrowthGlobal1X128, lowerFG1)
	}

	if p.Slot0.Tick < tickUpper {
		above0, above1 = upperFG0, upperFG1
	} else {
		above0 = new(big.Int).Sub(p.FeeGrowthGlobal0X128, upperFG0)
		above1 = new(big.Int).Sub(p.FeeGrowthGlobal1X128, upperFG1)
	}

	inside0 = new(big.Int).Sub(p.FeeGrowthGlobal0X128, below0)
	inside0.Sub(inside0, above0)
	inside1 = new(big.Int).Sub(p.FeeGrowthGlobal1X128, below1)
	inside1.Sub(inside1, above1)
	return inside0, inside1
}
