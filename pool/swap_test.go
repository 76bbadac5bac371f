package pool_test

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tristero-labs/univ3swap/math/fixedpoint"
	"github.com/tristero-labs/univ3swap/pool"
)

func bigFromString(t *testing.T, s string) *big.Int {
	t.Helper()
	n, ok := new(big.Int).SetString(s, 10)
	require.True(t, ok, "invalid decimal literal %q", s)
	return n
}

func newUnitPool(t *testing.T, fee uint32, tickSpacing int32) *pool.Pool {
	t.Helper()
	p, err := pool.New(
		common.HexToAddress("0x1111111111111111111111111111111111111111"),
		common.HexToAddress("0x2222222222222222222222222222222222222222"),
		fee, tickSpacing,
		new(big.Int).Lsh(big.NewInt(1), 96), // sqrtPriceX96 at tick 0
	)
	require.NoError(t, err)
	return p
}

func i256(t *testing.T, v *big.Int) fixedpoint.I256 {
	t.Helper()
	x, err := fixedpoint.NewI256FromBig(v)
	require.NoError(t, err)
	return x
}

func TestSwapRejectsZeroAmountSpecified(t *testing.T) {
	p := newUnitPool(t, 3000, 60)
	_, err := p.Swap(pool.SwapParams{
		ZeroForOne:        true,
		AmountSpecified:   i256(t, big.NewInt(0)),
		SqrtPriceLimitX96: new(big.Int).Add(fixedpoint.MinSqrtRatio, big.NewInt(1)),
	})
	assert.ErrorIs(t, err, pool.ErrZeroAmountSpecified)
}

func TestSwapRejectsReentrancy(t *testing.T) {
	p := newUnitPool(t, 3000, 60)
	p.Slot0.Unlocked = false
	_, err := p.Swap(pool.SwapParams{
		ZeroForOne:        true,
		AmountSpecified:   i256(t, big.NewInt(1000)),
		SqrtPriceLimitX96: new(big.Int).Add(fixedpoint.MinSqrtRatio, big.NewInt(1)),
	})
	assert.ErrorIs(t, err, pool.ErrReentrancy)
}

func TestSwapRejectsPriceLimitOnWrongSide(t *testing.T) {
	p := newUnitPool(t, 3000, 60)

	t.Run("zeroForOne limit above current price", func(t *testing.T) {
		_, err := p.Swap(pool.SwapParams{
			ZeroForOne:        true,
			AmountSpecified:   i256(t, big.NewInt(1000)),
			SqrtPriceLimitX96: new(big.Int).Add(p.Slot0.SqrtPriceX96, big.NewInt(1)),
		})
		assert.ErrorIs(t, err, pool.ErrInvalidSqrtPriceLimit)
	})

	t.Run("oneForZero limit below current price", func(t *testing.T) {
		_, err := p.Swap(pool.SwapParams{
			ZeroForOne:        false,
			AmountSpecified:   i256(t, big.NewInt(1000)),
			SqrtPriceLimitX96: new(big.Int).Sub(p.Slot0.SqrtPriceX96, big.NewInt(1)),
		})
		assert.ErrorIs(t, err, pool.ErrInvalidSqrtPriceLimit)
	})

	t.Run("limit equal to current price", func(t *testing.T) {
		_, err := p.Swap(pool.SwapParams{
			ZeroForOne:        true,
			AmountSpecified:   i256(t, big.NewInt(1000)),
			SqrtPriceLimitX96: new(big.Int).Set(p.Slot0.SqrtPriceX96),
		})
		assert.ErrorIs(t, err, pool.ErrInvalidSqrtPriceLimit)
	})
}

func TestSwapRestoresUnlockedOnError(t *testing.T) {
	p := newUnitPool(t, 3000, 60)
	_, err := p.Swap(pool.SwapParams{
		ZeroForOne:        true,
		AmountSpecified:   i256(t, big.NewInt(0)),
		SqrtPriceLimitX96: new(big.Int).Add(fixedpoint.MinSqrtRatio, big.NewInt(1)),
	})
	require.Error(t, err)
	assert.True(t, p.Slot0.Unlocked, "a failed swap must leave the pool unlocked")
}

// TestSwapWithinSingleRangeNeverReachesBoundary drives a small exact-input
// zeroForOne swap against a single [-60, 60] position. The amount is far
// short of what it would take to reach the lower tick boundary, so this
// never crosses a tick; the expected amounts were cross-checked against an
// independent reimplementation of the same step formulas run under Python's
// arbitrary-precision integers.
func TestSwapWithinSingleRangeNeverReachesBoundary(t *testing.T) {
	p := newUnitPool(t, 3000, 60)
	owner := common.HexToAddress("0x3333333333333333333333333333333333333333")

	_, _, err := p.Mint(owner, -60, 60, bigFromString(t, "1000000000000000000"))
	require.NoError(t, err)
	require.Equal(t, 0, p.Liquidity.Cmp(bigFromString(t, "1000000000000000000")))

	result, err := p.Swap(pool.SwapParams{
		ZeroForOne:        true,
		AmountSpecified:   i256(t, bigFromString(t, "1000000000000000")),
		SqrtPriceLimitX96: new(big.Int).Add(fixedpoint.MinSqrtRatio, big.NewInt(1)),
	})
	require.NoError(t, err)

	assert.Equal(t, "1000000000000000", result.Amount0.Big().String())
	assert.Equal(t, "-996006981039903", result.Amount1.Big().String())
	assert.Equal(t, "79149250711305166342700278159", p.Slot0.SqrtPriceX96.String())
	assert.Equal(t, int32(-20), p.Slot0.Tick, "price moved without crossing a tick boundary")
	assert.Equal(t, 0, p.Liquidity.Cmp(bigFromString(t, "1000000000000000000")), "liquidity unchanged outside a tick cross")
	assert.Equal(t, 1, p.FeeGrowthGlobal0X128.Sign(), "fee accrues on the input token")
	assert.Equal(t, 0, p.FeeGrowthGlobal1X128.Sign())
}

// TestSwapCrossesIntoAdjacentRange exercises the tick-crossing branch of the
// step loop: the swap consumes all of [0, 60)'s liquidity and continues
// into an adjacent [60, 1200) position with different liquidity, so a
// single Swap call walks two steps and flips one tick's fee-growth-outside
// mirrors. Expected totals were cross-checked the same way, porting the
// exact ratio-constant tick math into Python so the tick-60 boundary price
// matches the Go implementation bit-for-bit rather than a floating
// approximation.
func TestSwapCrossesIntoAdjacentRange(t *testing.T) {
	p := newUnitPool(t, 3000, 60)
	owner := common.HexToAddress("0x4444444444444444444444444444444444444444")

	_, _, err := p.Mint(owner, -60, 60, bigFromString(t, "1000000000000000000"))
	require.NoError(t, err)
	_, _, err = p.Mint(owner, 60, 1200, bigFromString(t, "2000000000000000000"))
	require.NoError(t, err)
	require.Equal(t, 0, p.Liquidity.Cmp(bigFromString(t, "1000000000000000000")), "second position is out of range at tick 0")

	result, err := p.Swap(pool.SwapParams{
		ZeroForOne:        false,
		AmountSpecified:   i256(t, bigFromString(t, "5000000000000000")),
		SqrtPriceLimitX96: new(big.Int).Sub(fixedpoint.MaxSqrtRatio, big.NewInt(1)),
	})
	require.NoError(t, err)

	assert.Equal(t, "-4962211200082182", result.Amount0.Big().String())
	assert.Equal(t, "5000000000000000", result.Amount1.Big().String())
	assert.Equal(t, "79544653435297795202613371294", p.Slot0.SqrtPriceX96.String())
	assert.True(t, p.Slot0.Tick >= 60 && p.Slot0.Tick < 1200, "final tick %d should land inside the second range", p.Slot0.Tick)
	assert.Equal(t, 0, p.Liquidity.Cmp(bigFromString(t, "2000000000000000000")), "only the second position's liquidity is active after crossing tick 60")

	crossed := p.Ticks[60]
	require.NotNil(t, crossed)
	assert.Equal(t, 1, crossed.FeeGrowthOutside1X128.Sign(), "crossing tick 60 should mirror the accrued fee growth")
	assert.Equal(t, 0, crossed.FeeGrowthOutside0X128.Sign())
}

// TestFailedSwapLeavesPoolUnchanged seeds a pool with a single [-60, 60]
// position, runs a swap that fails, and checks that the pool's price, tick,
// active liquidity and token0 fee growth are exactly as they were before.
func TestFailedSwapLeavesPoolUnchanged(t *testing.T) {
	p := newUnitPool(t, 3000, 60)
	owner := common.HexToAddress("0x5555555555555555555555555555555555555555")
	_, _, err := p.Mint(owner, -60, 60, bigFromString(t, "1000000000000000000"))
	require.NoError(t, err)

	sqrtBefore := new(big.Int).Set(p.Slot0.SqrtPriceX96)
	tickBefore := p.Slot0.Tick
	liquidityBefore := new(big.Int).Set(p.Liquidity)
	feeGrowth0Before := new(big.Int).Set(p.FeeGrowthGlobal0X128)

	// An invalid price limit is rejected before the loop runs at all, so
	// this is the cheapest way to exercise the "no mutation on error" path
	// without needing to engineer a failure deep inside the step loop.
	_, err = p.Swap(pool.SwapParams{
		ZeroForOne:        true,
		AmountSpecified:   i256(t, bigFromString(t, "1000000000000000")),
		SqrtPriceLimitX96: new(big.Int).Set(p.Slot0.SqrtPriceX96),
	})
	require.Error(t, err)

	assert.Equal(t, 0, sqrtBefore.Cmp(p.Slot0.SqrtPriceX96))
	assert.Equal(t, tickBefore, p.Slot0.Tick)
	assert.Equal(t, 0, liquidityBefore.Cmp(p.Liquidity))
	assert.Equal(t, 0, feeGrowth0Before.Cmp(p.FeeGrowthGlobal0X128))
}
