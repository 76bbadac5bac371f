package swapmath_test

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tristero-labs/univ3swap/math/swapmath"
)

func bigFromString(t *testing.T, s string) *big.Int {
	t.Helper()
	n, ok := new(big.Int).SetString(s, 10)
	require.True(t, ok, "invalid decimal literal %q", s)
	return n
}

func TestComputeSwapStepExactInCappedAtTarget(t *testing.T) {
	sqrtCur := bigFromString(t, "79228162514264337593543950336")
	sqrtTarget := bigFromString(t, "79623317895830914510639640423")
	liquidity := bigFromString(t, "2000000000000000000")
	amountRemaining := bigFromString(t, "1000000000000000000")
	feePips := big.NewInt(600)

	sqrtNext, amountIn, amountOut, feeAmount := new(big.Int), new(big.Int), new(big.Int), new(big.Int)
	require.NoError(t, swapmath.ComputeSwapStep(sqrtNext, amountIn, amountOut, feeAmount, sqrtCur, sqrtTarget, liquidity, amountRemaining, feePips))

	assert.Equal(t, bigFromString(t, "9975124224178055"), amountIn)
	assert.Equal(t, bigFromString(t, "5988667735148"), feeAmount)
	assert.Equal(t, bigFromString(t, "9925619580021728"), amountOut)
	assert.Equal(t, sqrtTarget, sqrtNext)
}

func TestComputeSwapStepExactOutCappedAtTarget(t *testing.T) {
	sqrtCur := bigFromString(t, "79228162514264337593543950336")
	sqrtTarget := bigFromString(t, "79623317895830914510639640423")
	liquidity := bigFromString(t, "2000000000000000000")
	amountRemaining := bigFromString(t, "-1000000000000000000")
	feePips := big.NewInt(600)

	sqrtNext, amountIn, amountOut, feeAmount := new(big.Int), new(big.Int), new(big.Int), new(big.Int)
	require.NoError(t, swapmath.ComputeSwapStep(sqrtNext, amountIn, amountOut, feeAmount, sqrtCur, sqrtTarget, liquidity, amountRemaining, feePips))

	assert.Equal(t, bigFromString(t, "9975124224178055"), amountIn)
	assert.Equal(t, bigFromString(t, "5988667735148"), feeAmount)
	assert.Equal(t, bigFromString(t, "9925619580021728"), amountOut)
	assert.Equal(t, sqrtTarget, sqrtNext)
}

func TestComputeSwapStepExactInFullySpent(t *testing.T) {
	sqrtCur := bigFromString(t, "79228162514264337593543950336")
	sqrtTarget := bigFromString(t, "250541448375047931186413801569")
	liquidity := bigFromString(t, "2000000000000000000")
	amountRemaining := bigFromString(t, "1000000000000000000")
	feePips := big.NewInt(600)

	sqrtNext, amountIn, amountOut, feeAmount := new(big.Int), new(big.Int), new(big.Int), new(big.Int)
	require.NoError(t, swapmath.ComputeSwapStep(sqrtNext, amountIn, amountOut, feeAmount, sqrtCur, sqrtTarget, liquidity, amountRemaining, feePips))

	wantIn := bigFromString(t, "999400000000000000")
	wantFee := bigFromString(t, "600000000000000")
	wantOut := bigFromString(t, "666399946655997866")
	assert.Equal(t, wantIn, amountIn)
	assert.Equal(t, wantFee, feeAmount)
	assert.Equal(t, wantOut, amountOut)
	assert.Equal(t, new(big.Int).Add(wantIn, wantFee), amountRemaining)
	assert.NotEqual(t, 0, sqrtNext.Cmp(sqrtTarget), "target should not be fully reached")
}

func TestComputeSwapStepEntireAmountTakenAsFee(t *testing.T) {
	sqrtCur := big.NewInt(2413)
	sqrtTarget := big.NewInt(79887613182836312)
	liquidity := bigFromString(t, "1985041575832132834610021537970")
	amountRemaining := big.NewInt(10)
	feePips := big.NewInt(1872)

	sqrtNext, amountIn, amountOut, feeAmount := new(big.Int), new(big.Int), new(big.Int), new(big.Int)
	require.NoError(t, swapmath.ComputeSwapStep(sqrtNext, amountIn, amountOut, feeAmount, sqrtCur, sqrtTarget, liquidity, amountRemaining, feePips))

	assert.Equal(t, big.NewInt(0), amountIn)
	assert.Equal(t, big.NewInt(10), feeAmount)
	assert.Equal(t, big.NewInt(0), amountOut)
	assert.Equal(t, sqrtCur, sqrtNext)
}
