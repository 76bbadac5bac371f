// Package pool implements the concentrated-liquidity swap engine: the
// tick/bitmap-walking state machine that consumes math/fullmath,
// math/tickmath, math/sqrtpricemath, math/liquiditymath and math/swapmath to
// turn a swap request into token deltas and an updated pool state.
package pool

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"github.com/tristero-labs/univ3swap/math/fixedpoint"
	"github.com/tristero-labs/univ3swap/pool/tickbitmap"
)

// Slot0 bundles the price/tick cursor and the pool's lock flag, mirroring
// the packed storage slot the on-chain pool keeps them in.
type Slot0 struct {
	SqrtPriceX96 *big.Int
	Tick         int32
	// FeeProtocol is the protocol's share of swap fees, expressed as
	// 1/FeeProtocol when nonzero (0 disables the protocol cut entirely).
	FeeProtocol uint8
	Unlocked    bool
}

// TickInfo is the liquidity and fee-growth bookkeeping attached to one
// initialized tick.
type TickInfo struct {
	LiquidityGross          *big.Int
	LiquidityNet            *big.Int
	FeeGrowthOutside0X128   *big.Int
	FeeGrowthOutside1X128   *big.Int
	Initialized             bool
}

// ProtocolFees accumulates the protocol's cut of swap fees; always zero
// unless Slot0.FeeProtocol is nonzero.
type ProtocolFees struct {
	Token0 *big.Int
	Token1 *big.Int
}

// PositionKey identifies an owner's liquidity position within one tick
// range.
type PositionKey struct {
	Owner      common.Address
	TickLower  int32
	TickUpper  int32
}

// Position tracks one owner's liquidity in a tick range and the fees it has
// accrued since the last time fee growth was checkpointed. Swap itself never
// reads or writes Position; only Mint/Burn/Collect do.
type Position struct {
	Liquidity                *big.Int
	FeeGrowthInside0LastX128 *big.Int
	FeeGrowthInside1LastX128 *big.Int
	TokensOwed0              *big.Int
	TokensOwed1              *big.Int
}

// SwapParams is the input to Pool.Swap.
type SwapParams struct {
	ZeroForOne bool
	// AmountSpecified: positive is exact-input, negative is exact-output.
	AmountSpecified   fixedpoint.I256
	SqrtPriceLimitX96 *big.Int
}

// SwapResult is the output of Pool.Swap; a negative amount means the pool
// paid it out, a positive amount means the pool received it.
type SwapResult struct {
	Amount0 fixedpoint.I256
	Amount1 fixedpoint.I256
}

// Pool is the complete state of one concentrated-liquidity pool: price,
// active liquidity, the tick map and its bitmap index, and accumulated fee
// growth. It owns all of its ticks and its bitmap exclusively; nothing about
// it is shared across concurrent swaps.
type Pool struct {
	Token0      common.Address
	Token1      common.Address
	Fee         uint32
	TickSpacing int32

	Slot0     Slot0
	Liquidity *big.Int

	Ticks  map[int32]*TickInfo
	Bitmap *tickbitmap.Bitmap

	FeeGrowthGlobal0X128 *big.Int
	FeeGrowthGlobal1X128 *big.Int
	ProtocolFees         ProtocolFees

	Positions map[PositionKey]*Position
}

// New constructs an initialized, empty pool at the given starting price.
func New(token0, token1 common.Address, fee uint32, tickSpacing int32, sqrtPriceX96 *big.Int) (*Pool, error) {
	if fee >= 1<<24 {
		return nil, ErrFeeOutOfRange
	}
	tick, err := tickAtSqrtRatio(sqrtPriceX96)
	if err != nil {
		return nil, err
	}
	return &Pool{
		Token0:      token0,
		Token1:      token1,
		Fee:         fee,
		TickSpacing: tickSpacing,
		Slot0: Slot0{
			SqrtPriceX96: new(big.Int).Set(sqrtPriceX96),
			Tick:         tick,
			Unlocked:     true,
		},
		Liquidity:            new(big.Int),
		Ticks:                make(map[int32]*TickInfo),
		Bitmap:               tickbitmap.New(),
		FeeGrowthGlobal0X128: new(big.Int),
		FeeGrowthGlobal1X128: new(big.Int),
		ProtocolFees:         ProtocolFees{Token0: new(big.Int), Token1: new(big.Int)},
		Positions:            make(map[PositionKey]*Position),
	}, nil
}
