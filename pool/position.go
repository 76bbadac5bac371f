package pool

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"github.com/tristero-labs/univ3swap/math/fixedpoint"
	"github.com/tristero-labs/univ3swap/math/liquiditymath"
	"github.com/tristero-labs/univ3swap/math/sqrtpricemath"
	"github.com/tristero-labs/univ3swap/math/tickmath"
)

// Mint adds liquidityDelta to owner's position in [tickLower, tickUpper],
// creating the position and/or initializing either tick boundary as needed,
// and returns the token0/token1 amounts the caller owes the pool. It never
// touches Slot0.Unlocked: unlike Swap, minting performs no price-crossing
// loop and cannot reenter.
func (p *Pool) Mint(owner common.Address, tickLower, tickUpper int32, liquidityDelta *big.Int) (amount0, amount1 *big.Int, err error) {
	if err := p.checkTicks(tickLower, tickUpper); err != nil {
		return nil, nil, err
	}

	flippedLower, err := p.updateTick(tickLower, liquidityDelta, false)
	if err != nil {
		return nil, nil, err
	}
	flippedUpper, err := p.updateTick(tickUpper, liquidityDelta, true)
	if err != nil {
		return nil, nil, err
	}
	if flippedLower {
		p.Bitmap.FlipTick(tickLower, p.TickSpacing)
	}
	if flippedUpper {
		p.Bitmap.FlipTick(tickUpper, p.TickSpacing)
	}

	inside0, inside1 := p.feeGrowthInside(tickLower, tickUpper)
	pos := p.positionOrNew(owner, tickLower, tickUpper)
	if err := applyPositionLiquidityDelta(pos, liquidityDelta, inside0, inside1); err != nil {
		return nil, nil, err
	}

	amount0 = new(big.Int)
	amount1 = new(big.Int)
	if err := p.tokenDeltasForLiquidityChange(tickLower, tickUpper, liquidityDelta, amount0, amount1); err != nil {
		return nil, nil, err
	}

	if liquidityDelta.Sign() != 0 && p.Slot0.Tick >= tickLower && p.Slot0.Tick < tickUpper {
		if err := liquiditymath.AddDelta(p.Liquidity, p.Liquidity, liquidityDelta); err != nil {
			return nil, nil, err
		}
	}

	return amount0, amount1, nil
}

// Burn removes liquidityAmount from owner's position, crediting the freed
// token0/token1 as TokensOwed on the position (collected later via
// Collect), and returns the same amounts the pool now owes back.
func (p *Pool) Burn(owner common.Address, tickLower, tickUpper int32, liquidityAmount *big.Int) (amount0, amount1 *big.Int, err error) {
	negDelta := new(big.Int).Neg(liquidityAmount)
	amount0, amount1, err = p.Mint(owner, tickLower, tickUpper, negDelta)
	if err != nil {
		return nil, nil, err
	}
	key := PositionKey{Owner: owner, TickLower: tickLower, TickUpper: tickUpper}
	if pos, ok := p.Positions[key]; ok {
		// amount0/amount1 are negative (paid out by the pool); the position
		// is owed their magnitude.
		pos.TokensOwed0.Sub(pos.TokensOwed0, amount0)
		pos.TokensOwed1.Sub(pos.TokensOwed1, amount1)
	}
	return amount0, amount1, nil
}

// Collect pays out up to amount0Requested/amount1Requested of a position's
// accrued TokensOwed.
func (p *Pool) Collect(owner common.Address, tickLower, tickUpper int32, amount0Requested, amount1Requested *big.Int) (amount0, amount1 *big.Int, err error) {
	key := PositionKey{Owner: owner, TickLower: tickLower, TickUpper: tickUpper}
	pos, ok := p.Positions[key]
	if !ok {
		return nil, nil, ErrPositionNotFound
	}

	amount0 = minBigInt(amount0Requested, pos.TokensOwed0)
	amount1 = minBigInt(amount1Requested, pos.TokensOwed1)

	pos.TokensOwed0.Sub(pos.TokensOwed0, amount0)
	pos.TokensOwed1.Sub(pos.TokensOwed1, amount1)
	return amount0, amount1, nil
}

func (p *Pool) checkTicks(tickLower, tickUpper int32) error {
	if tickLower >= tickUpper {
		return ErrTickLowerGteTickUpper
	}
	if tickLower%p.TickSpacing != 0 || tickUpper%p.TickSpacing != 0 {
		return ErrTicksNotAligned
	}
	if tickLower < fixedpoint.MinTick || tickUpper > fixedpoint.MaxTick {
		return ErrTickOutOfRange
	}
	return nil
}

func (p *Pool) positionOrNew(owner common.Address, tickLower, tickUpper int32) *Position {
	key := PositionKey{Owner: owner, TickLower: tickLower, TickUpper: tickUpper}
	pos, ok := p.Positions[key]
	if !ok {
		pos = &Position{
			Liquidity:                new(big.Int),
			FeeGrowthInside0LastX128: new(big.Int),
			FeeGrowthInside1LastX128: new(big.Int),
			TokensOwed0:              new(big.Int),
			TokensOwed1:              new(big.Int),
		}
		p.Positions[key] = pos
	}
	return pos
}

func applyPositionLiquidityDelta(pos *Position, liquidityDelta, feeGrowthInside0, feeGrowthInside1 *big.Int) error {
	owed0 := new(big.Int).Sub(feeGrowthInside0, pos.FeeGrowthInside0LastX128)
	owed1 := new(big.Int).Sub(feeGrowthInside1, pos.FeeGrowthInside1LastX128)
	owed0.Mul(owed0, pos.Liquidity)
	owed1.Mul(owed1, pos.Liquidity)
	owed0.Rsh(owed0, 128)
	owed1.Rsh(owed1, 128)
	pos.TokensOwed0.Add(pos.TokensOwed0, owed0)
	pos.TokensOwed1.Add(pos.TokensOwed1, owed1)

	pos.FeeGrowthInside0LastX128.Set(feeGrowthInside0)
	pos.FeeGrowthInside1LastX128.Set(feeGrowthInside1)

	if liquidityDelta.Sign() != 0 {
		return liquiditymath.AddDelta(pos.Liquidity, pos.Liquidity, liquidityDelta)
	}
	return nil
}

// tokenDeltasForLiquidityChange computes how much of each token a
// liquidityDelta change costs (positive) or returns (negative) at the
// pool's current price, exactly mirroring the three-region amount0/amount1
// split the swap engine's SqrtPriceMath also uses.
func (p *Pool) tokenDeltasForLiquidityChange(tickLower, tickUpper int32, liquidityDelta, amount0, amount1 *big.Int) error {
	roundUp := liquidityDelta.Sign() > 0

	sqrtLower := new(big.Int)
	sqrtUpper := new(big.Int)
	if err := tickmath.GetSqrtRatioAtTick(sqrtLower, tickLower); err != nil {
		return err
	}
	if err := tickmath.GetSqrtRatioAtTick(sqrtUpper, tickUpper); err != nil {
		return err
	}

	absDelta := new(big.Int).Abs(liquidityDelta)

	switch {
	case p.Slot0.Tick < tickLower:
		if err := sqrtpricemath.GetAmount0Delta(amount0, sqrtLower, sqrtUpper, absDelta, roundUp); err != nil {
			return err
		}
	case p.Slot0.Tick < tickUpper:
		if err := sqrtpricemath.GetAmount0Delta(amount0, p.Slot0.SqrtPriceX96, sqrtUpper, absDelta, roundUp); err != nil {
			return err
		}
		sqrtpricemath.GetAmount1Delta(amount1, sqrtLower, p.Slot0.SqrtPriceX96, absDelta, roundUp)
	default:
		sqrtpricemath.GetAmount1Delta(amount1, sqrtLower, sqrtUpper, absDelta, roundUp)
	}

	if !roundUp {
		amount0.Neg(amount0)
		amount1.Neg(amount1)
	}
	return nil
}

func minBigInt(a, b *big.Int) *big.Int {
	if a.Cmp(b) < 0 {
		return new(big.Int).Set(a)
	}
	return new(big.Int).Set(b)
}
