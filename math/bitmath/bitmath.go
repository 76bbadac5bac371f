// Package bitmath implements the two bit-scan primitives TickBitmap needs to
// walk a 256-bit word: the position of the highest and lowest set bit.
package bitmath

import (
	"math/big"
	"math/bits"
)

// MostSignificantBit returns the index of x's highest set bit (bit 0 is the
// least significant). x must be strictly positive.
func MostSignificantBit(x *big.Int) (uint8, error) {
	if x == nil {
		return 0, ErrNilInput
	}
	if x.Sign() <= 0 {
		return 0, ErrZeroInput
	}
	return uint8(x.BitLen() - 1), nil
}

// LeastSignificantBit returns the index of x's lowest set bit. x must be
// strictly positive. It scans big.Int's internal words rather than testing
// bit-by-bit so the cost is proportional to word count, not bit count.
func LeastSignificantBit(x *big.Int) (uint8, error) {
	if x == nil {
		return 0, ErrNilInput
	}
	if x.Sign() <= 0 {
		return 0, ErrZeroInput
	}
	for i, word := range x.Bits() {
		if word == 0 {
			continue
		}
		return uint8(i*bits.UintSize + bits.TrailingZeros(uint(word))), nil
	}
	return 0, ErrZeroInput
}
