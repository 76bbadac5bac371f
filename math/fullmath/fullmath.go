// Package fullmath implements 512-bit-intermediate multiply-divide, the
// primitive every other math package is built on: compute floor(a*b/d) (or
// its rounding-up twin) for a, b, d in [0, 2**256) without ever overflowing
// the intermediate product, and fail loudly instead of wrapping when the
// quotient itself would not fit back into 256 bits.
//
// Go's math/big.Int already has no fixed width, so the 512-bit product never
// needs the mulmod/modular-inverse trick the Solidity original relies on to
// fit the computation into the EVM's native words; the reusable *big.Int
// destination-pointer calling convention below follows the rest of this
// module's math packages, adapted from the teacher's sqrtpricemath/swapmath
// helpers.
package fullmath

import (
	"math/big"
	"sync"

	"github.com/tristero-labs/univ3swap/math/fixedpoint"
)

type scratch struct {
	prod     *big.Int
	prod1    *big.Int
	rem      *big.Int
	quotient *big.Int
}

var scratchPool = sync.Pool{
	New: func() any {
		return &scratch{
			prod:     new(big.Int),
			prod1:    new(big.Int),
			rem:      new(big.Int),
			quotient: new(big.Int),
		}
	},
}

// MulDiv computes dest = floor(a*b/d). d == 0 returns ErrDenominatorZero; a
// result that would not fit in 256 bits returns ErrDenominatorLteProd1 (the
// high 256 bits of the product are at least d, so the quotient overflows).
func MulDiv(dest, a, b, d *big.Int) error {
	if d.Sign() == 0 {
		return ErrDenominatorZero
	}

	s := scratchPool.Get().(*scratch)
	defer scratchPool.Put(s)

	s.prod.Mul(a, b)
	s.prod1.Rsh(s.prod, 256)

	if d.Cmp(s.prod1) <= 0 {
		return ErrDenominatorLteProd1
	}

	s.quotient.Div(s.prod, d)
	if s.quotient.Cmp(fixedpoint.MaxUint256) > 0 {
		return ErrResultOverflow
	}
	dest.Set(s.quotient)
	return nil
}

// MulDivRoundingUp computes dest = ceil(a*b/d), with the same failure modes
// as MulDiv plus ErrResultOverflow when rounding the exact quotient up would
// push it to exactly 2**256.
func MulDivRoundingUp(dest, a, b, d *big.Int) error {
	if err := MulDiv(dest, a, b, d); err != nil {
		return err
	}

	s := scratchPool.Get().(*scratch)
	defer scratchPool.Put(s)

	s.prod.Mul(a, b)
	s.rem.Mod(s.prod, d)
	if s.rem.Sign() > 0 {
		if dest.Cmp(fixedpoint.MaxUint256) >= 0 {
			return ErrResultOverflow
		}
		dest.Add(dest, big.NewInt(1))
	}
	return nil
}
