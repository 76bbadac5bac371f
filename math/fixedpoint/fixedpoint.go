// Package fixedpoint defines the numeric constants and the signed 256-bit
// API representation shared by every math package: Q64.96 sqrt prices,
// Q128.128 fee growth accumulators, and the tick bounds that gate TickMath.
package fixedpoint

import (
	"math/big"

	"github.com/holiman/uint256"
)

// Resolution96 is the number of fractional bits in a Q64.96 sqrt price.
const Resolution96 = 96

// Resolution128 is the number of fractional bits in a Q128.128 fee growth
// accumulator.
const Resolution128 = 128

// MinTick and MaxTick bound the tick range a pool can ever occupy, matching
// the smallest and largest tick at which GetSqrtRatioAtTick stays within
// MinSqrtRatio/MaxSqrtRatio.
const (
	MinTick int32 = -887272
	MaxTick int32 = 887272
)

// FeeDenominator is the denominator swap fees (expressed in hundredths of a
// bip) are taken against: a feePips value of 3000 is a 0.3% fee.
var FeeDenominator = big.NewInt(1_000_000)

var (
	// Q96 is 2**96, the fixed-point one for a Q64.96 sqrt price.
	Q96 = new(big.Int).Lsh(big.NewInt(1), Resolution96)
	// Q128 is 2**128, the fixed-point one for a Q128.128 fee growth value.
	Q128 = new(big.Int).Lsh(big.NewInt(1), Resolution128)

	// MinSqrtRatio is GetSqrtRatioAtTick(MinTick).
	MinSqrtRatio = big.NewInt(4295128739)
	// MaxSqrtRatio is GetSqrtRatioAtTick(MaxTick).
	MaxSqrtRatio, _ = new(big.Int).SetString("1461446703485210103287273052203988822378723970342", 10)

	// MaxUint128 bounds liquidity and the gross/net liquidity tracked per
	// tick; LiquidityMath rejects any result above this.
	MaxUint128 = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 128), big.NewInt(1))
	// MaxUint256 is the modulus every FullMath result must fit under.
	MaxUint256 = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 256), big.NewInt(1))
)

// I256 is a signed 256-bit integer with the range of a two's-complement
// int256, [-2**255, 2**255), held as a uint256 magnitude plus a sign flag.
// It is the wire/API representation of amountSpecified, amount0 and amount1;
// internal math still runs on *big.Int; the boundary between
// the two is exactly the public surface of this package.
type I256 struct {
	mag uint256.Int
	neg bool
}

// minI256Big and maxI256Big bound the values I256 can hold.
var (
	minI256Big = new(big.Int).Neg(new(big.Int).Lsh(big.NewInt(1), 255))
	maxI256Big = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 255), big.NewInt(1))
)

// NewI256FromBig range-checks x and captures it as an I256. It never wraps:
// a value outside [-2**255, 2**255) is an error, not a silent truncation.
func NewI256FromBig(x *big.Int) (I256, error) {
	if x.Cmp(minI256Big) < 0 || x.Cmp(maxI256Big) > 0 {
		return I256{}, ErrI256OutOfRange
	}
	var out I256
	if x.Sign() < 0 {
		out.neg = true
		out.mag.SetFromBig(new(big.Int).Neg(x))
	} else {
		out.mag.SetFromBig(x)
	}
	return out, nil
}

// I256FromInt64 is a convenience constructor for literal amounts; it never
// fails since any int64 fits in [-2**255, 2**255).
func I256FromInt64(x int64) I256 {
	v, _ := NewI256FromBig(big.NewInt(x))
	return v
}

// Big returns the signed value as a math/big.Int.
func (a I256) Big() *big.Int {
	b := a.mag.ToBig()
	if a.neg {
		b.Neg(b)
	}
	return b
}

// Sign returns -1, 0 or 1 as a.Big().Sign() would.
func (a I256) Sign() int {
	if a.mag.IsZero() {
		return 0
	}
	if a.neg {
		return -1
	}
	return 1
}

// IsNegative reports whether a is strictly less than zero.
func (a I256) IsNegative() bool { return a.neg && !a.mag.IsZero() }

// String renders the signed decimal value, e.g. "-12345".
func (a I256) String() string { return a.Big().String() }

// MarshalJSON encodes the value as a JSON decimal string so it survives
// round-trips through snapshot files without float precision loss.
func (a I256) MarshalJSON() ([]byte, error) {
	return []byte(`"` + a.String() + `"`), nil
}

// UnmarshalJSON accepts either a quoted decimal string or a bare JSON number.
func (a *I256) UnmarshalJSON(data []byte) error {
	s := string(data)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	n, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return ErrI256ParseFailed
	}
	v, err := NewI256FromBig(n)
	if err != nil {
		return err
	}
	*a = v
	return nil
}
