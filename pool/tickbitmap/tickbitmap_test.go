package tickbitmap_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tristero-labs/univ3swap/pool/tickbitmap"
)

func TestFlipTickTogglesInitialized(t *testing.T) {
	bm := tickbitmap.New()
	const spacing = 60

	assert.False(t, bm.IsInitialized(120, spacing))
	bm.FlipTick(120, spacing)
	assert.True(t, bm.IsInitialized(120, spacing))
	bm.FlipTick(120, spacing)
	assert.False(t, bm.IsInitialized(120, spacing))
}

func TestFlipTickPanicsOnMisalignedTick(t *testing.T) {
	bm := tickbitmap.New()
	assert.Panics(t, func() { bm.FlipTick(61, 60) })
}

func TestNextInitializedTickWithinOneWordLte(t *testing.T) {
	bm := tickbitmap.New()
	const spacing = 10
	bm.FlipTick(100, spacing) // compressed 10
	bm.FlipTick(300, spacing) // compressed 30

	t.Run("finds the initialized tick at or below", func(t *testing.T) {
		next, initialized := bm.NextInitializedTickWithinOneWord(300, spacing, true)
		require.True(t, initialized)
		assert.Equal(t, int32(300), next)
	})

	t.Run("finds a lower initialized tick in the same word", func(t *testing.T) {
		next, initialized := bm.NextInitializedTickWithinOneWord(250, spacing, true)
		require.True(t, initialized)
		assert.Equal(t, int32(100), next)
	})

	t.Run("falls back to word boundary when nothing is set", func(t *testing.T) {
		next, initialized := bm.NextInitializedTickWithinOneWord(50, spacing, true)
		assert.False(t, initialized)
		assert.Equal(t, int32(0), next)
	})
}

func TestNextInitializedTickWithinOneWordGt(t *testing.T) {
	bm := tickbitmap.New()
	const spacing = 10
	bm.FlipTick(100, spacing) // compressed 10
	bm.FlipTick(300, spacing) // compressed 30

	t.Run("finds the next initialized tick strictly above", func(t *testing.T) {
		next, initialized := bm.NextInitializedTickWithinOneWord(100, spacing, false)
		require.True(t, initialized)
		assert.Equal(t, int32(300), next)
	})

	t.Run("falls back to the word's last tick when nothing is set above", func(t *testing.T) {
		next, initialized := bm.NextInitializedTickWithinOneWord(300, spacing, false)
		assert.False(t, initialized)
		assert.Equal(t, int32(2550), next)
	})
}

func TestPositionSplitsWordAndBit(t *testing.T) {
	word, bit := tickbitmap.Position(10)
	assert.Equal(t, int16(0), word)
	assert.Equal(t, uint8(10), bit)

	word, bit = tickbitmap.Position(-1)
	assert.Equal(t, int16(-1), word)
	assert.Equal(t, uint8(255), bit)
}
