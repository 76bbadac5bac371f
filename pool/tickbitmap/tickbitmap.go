// Package tickbitmap is a word/bit-indexed map of initialized ticks: 256
// bits per word, one bit per tick-spacing-compressed tick. This replaces a
// sorted-slice scan (which ignores word boundaries and answers the wrong
// question once spacing ranges can't be sorted the same way) with the
// bitmap walk the swap engine actually needs.
package tickbitmap

import (
	"math/big"

	"github.com/tristero-labs/univ3swap/math/bitmath"
)

// Bitmap maps a word index to its 256-bit word. A bit at position b of word
// w is set iff the tick (w*256+b)*tickSpacing is initialized.
type Bitmap struct {
	words map[int16]*big.Int
}

// New returns an empty bitmap.
func New() *Bitmap {
	return &Bitmap{words: make(map[int16]*big.Int)}
}

// SetWord installs word verbatim as the bitmap word at the given index,
// replacing whatever was there. Used by snapshot loading to reconstruct a
// bitmap directly from a snapshot's word-indexed hex values instead of
// replaying FlipTick one bit at a time.
func (b *Bitmap) SetWord(word int16, value *big.Int) {
	if value.Sign() == 0 {
		delete(b.words, word)
		return
	}
	b.words[word] = new(big.Int).Set(value)
}

// Word returns a copy of the raw 256-bit word at the given index (zero if
// unset).
func (b *Bitmap) Word(word int16) *big.Int {
	return new(big.Int).Set(b.wordOrZero(word))
}

// Position splits a tick-spacing-compressed tick into its word index and
// bit position within that word.
func Position(compressed int32) (word int16, bit uint8) {
	word = int16(compressed >> 8)
	bit = uint8(uint32(compressed) & 0xff)
	return
}

func compress(tick, spacing int32) int32 {
	c := tick / spacing
	if tick%spacing != 0 && tick < 0 {
		c--
	}
	return c
}

func (b *Bitmap) wordOrZero(word int16) *big.Int {
	w, ok := b.words[word]
	if !ok {
		return new(big.Int)
	}
	return w
}

// FlipTick toggles the bit for tick (a multiple of spacing).
func (b *Bitmap) FlipTick(tick, spacing int32) {
	if tick%spacing != 0 {
		panic("tickbitmap: tick not aligned to spacing")
	}
	compressed := compress(tick, spacing)
	word, bit := Position(compressed)

	w, ok := b.words[word]
	if !ok {
		w = new(big.Int)
		b.words[word] = w
	}
	w.Xor(w, new(big.Int).Lsh(big.NewInt(1), uint(bit)))
	if w.Sign() == 0 {
		delete(b.words, word)
	}
}

// IsInitialized reports whether tick (a multiple of spacing) has its bit
// set.
func (b *Bitmap) IsInitialized(tick, spacing int32) bool {
	compressed := compress(tick, spacing)
	word, bit := Position(compressed)
	w := b.wordOrZero(word)
	return w.Bit(int(bit)) == 1
}

// NextInitializedTickWithinOneWord finds the next initialized tick relative
// to the given tick, searching only within tick's own bitmap word. lte
// searches towards negative infinity (inclusive of tick); otherwise it
// searches strictly upwards. Returns the found tick (or the word boundary
// when none is initialized) and whether it is actually initialized.
func (b *Bitmap) NextInitializedTickWithinOneWord(tick, spacing int32, lte bool) (next int32, initialized bool) {
	compressed := compress(tick, spacing)

	if lte {
		word, bit := Position(compressed)
		w := b.wordOrZero(word)

		mask := new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), uint(bit)+1), big.NewInt(1))
		masked := new(big.Int).And(w, mask)

		if masked.Sign() != 0 {
			msb, err := bitmath.MostSignificantBit(masked)
			if err != nil {
				panic(err)
			}
			next = (int32(word)*256 + int32(msb)) * spacing
			return next, true
		}
		next = (int32(word) * 256) * spacing
		return next, false
	}

	compressed++
	word, bit := Position(compressed)
	w := b.wordOrZero(word)

	mask := new(big.Int).Not(new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), uint(bit)), big.NewInt(1)))
	mask.And(mask, maskAllOnes)
	masked := new(big.Int).And(w, mask)

	if masked.Sign() != 0 {
		lsb, err := bitmath.LeastSignificantBit(masked)
		if err != nil {
			panic(err)
		}
		next = (int32(word)*256 + int32(lsb)) * spacing
		return next, true
	}
	next = (int32(word)*256 + 255) * spacing
	return next, false
}

var maskAllOnes = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 256), big.NewInt(1))
