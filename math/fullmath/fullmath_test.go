package fullmath_test

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tristero-labs/univ3swap/math/fullmath"
)

func TestMulDivExact(t *testing.T) {
	t.Run("simple floor division", func(t *testing.T) {
		dest := new(big.Int)
		err := fullmath.MulDiv(dest, big.NewInt(10), big.NewInt(3), big.NewInt(4))
		require.NoError(t, err)
		assert.Equal(t, big.NewInt(7), dest)
	})

	t.Run("denominator zero", func(t *testing.T) {
		dest := new(big.Int)
		err := fullmath.MulDiv(dest, big.NewInt(1), big.NewInt(1), big.NewInt(0))
		assert.ErrorIs(t, err, fullmath.ErrDenominatorZero)
	})

	t.Run("product exceeding 256 bits still divides exactly", func(t *testing.T) {
		// a*b here is 2**400, well past a single 256-bit word, but the
		// division by d brings the quotient back under 2**256.
		a := new(big.Int).Lsh(big.NewInt(1), 200)
		b := new(big.Int).Lsh(big.NewInt(1), 200)
		d := new(big.Int).Lsh(big.NewInt(1), 150)
		dest := new(big.Int)
		require.NoError(t, fullmath.MulDiv(dest, a, b, d))
		want := new(big.Int).Lsh(big.NewInt(1), 250)
		assert.Equal(t, want, dest)
	})

	t.Run("denominator too small overflows", func(t *testing.T) {
		a := new(big.Int).Lsh(big.NewInt(1), 255)
		b := new(big.Int).Lsh(big.NewInt(1), 255)
		d := big.NewInt(1)
		dest := new(big.Int)
		err := fullmath.MulDiv(dest, a, b, d)
		assert.ErrorIs(t, err, fullmath.ErrDenominatorLteProd1)
	})
}

func TestMulDivRoundingUp(t *testing.T) {
	t.Run("rounds up on remainder", func(t *testing.T) {
		dest := new(big.Int)
		err := fullmath.MulDivRoundingUp(dest, big.NewInt(10), big.NewInt(3), big.NewInt(4))
		require.NoError(t, err)
		assert.Equal(t, big.NewInt(8), dest)
	})

	t.Run("exact division does not round", func(t *testing.T) {
		dest := new(big.Int)
		err := fullmath.MulDivRoundingUp(dest, big.NewInt(10), big.NewInt(2), big.NewInt(4))
		require.NoError(t, err)
		assert.Equal(t, big.NewInt(5), dest)
	})

	t.Run("exact quotient just below max uint256 does not round up", func(t *testing.T) {
		maxUint256 := new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 256), big.NewInt(1))
		a := new(big.Int).Sub(maxUint256, big.NewInt(1))
		b := big.NewInt(3)
		d := big.NewInt(3)
		dest := new(big.Int)
		err := fullmath.MulDivRoundingUp(dest, a, b, d)
		// a*b/d floors to maxUint256-1 exactly (b==d), no remainder, so this
		// should not overflow; assert the boundary case stays exact instead.
		require.NoError(t, err)
		assert.Equal(t, a, dest)
	})
}
