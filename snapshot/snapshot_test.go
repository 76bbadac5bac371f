package snapshot_test

import (
	"math/big"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tristero-labs/univ3swap/snapshot"
)

const fixture = `{
	"token0": "0x1111111111111111111111111111111111111111",
	"token1": "0x2222222222222222222222222222222222222222",
	"fee": "0xbb8",
	"tick_spacing": 60,
	"slot0": {
		"sqrt_price_x96": "0x1000000000000000000000000",
		"tick": 0,
		"fee_protocol": "0x0"
	},
	"fee_growth_global0_x128": "0x0",
	"fee_growth_global1_x128": "0x0",
	"liquidity": "0xde0b6b3a7640000",
	"ticks": {
		"-60": {
			"liquidity_net": "1000000000000000000",
			"liquidity_gross": "0xde0b6b3a7640000",
			"fee_growth_outside_0_x128": "0x0",
			"fee_growth_outside_1_x128": "0x0"
		},
		"60": {
			"liquidity_net": "-1000000000000000000",
			"liquidity_gross": "0xde0b6b3a7640000",
			"fee_growth_outside_0_x128": "0x0",
			"fee_growth_outside_1_x128": "0x0"
		}
	},
	"bitmap": {
		"-1": "0x8000000000000000000000000000000000000000000000000000000000000000",
		"0": "0x2"
	}
}`

func TestLoadPoolParsesFullSnapshot(t *testing.T) {
	p, err := snapshot.LoadPool(strings.NewReader(fixture))
	require.NoError(t, err)

	assert.Equal(t, uint32(3000), p.Fee)
	assert.Equal(t, int32(60), p.TickSpacing)
	assert.Equal(t, int32(0), p.Slot0.Tick)
	assert.Equal(t, 0, p.Liquidity.Cmp(bigDecimal(t, "1000000000000000000")))

	lower, ok := p.Ticks[-60]
	require.True(t, ok)
	assert.True(t, lower.Initialized)
	assert.Equal(t, 0, lower.LiquidityNet.Cmp(bigDecimal(t, "1000000000000000000")))

	upper, ok := p.Ticks[60]
	require.True(t, ok)
	assert.Equal(t, 0, upper.LiquidityNet.Cmp(bigDecimal(t, "-1000000000000000000")))

	assert.True(t, p.Bitmap.IsInitialized(-60, 60))
	assert.True(t, p.Bitmap.IsInitialized(60, 60))
}

func TestLoadPoolRejectsFeeOutOfUint24Range(t *testing.T) {
	bad := strings.Replace(fixture, `"fee": "0xbb8"`, `"fee": "0x1000000"`, 1)
	_, err := snapshot.LoadPool(strings.NewReader(bad))
	assert.Error(t, err)
}

func TestLoadPoolRejectsMalformedHex(t *testing.T) {
	bad := strings.Replace(fixture, `"liquidity": "0xde0b6b3a7640000"`, `"liquidity": "0xzz"`, 1)
	_, err := snapshot.LoadPool(strings.NewReader(bad))
	assert.Error(t, err)
}

func TestRegistryAndDiffRoundTrip(t *testing.T) {
	p, err := snapshot.LoadPool(strings.NewReader(fixture))
	require.NoError(t, err)

	reg := snapshot.NewRegistry()
	reg.Put(p.Token0, p)
	assert.Equal(t, 1, reg.Len())

	got, ok := reg.Get(p.Token0)
	require.True(t, ok)
	assert.Same(t, p, got)

	gen1 := reg.Views()
	diff := snapshot.Compute(nil, gen1)
	assert.Len(t, diff.Additions, 1)
	assert.Empty(t, diff.Updates)
	assert.Empty(t, diff.Deletions)

	gen2 := snapshot.ApplyDiff(nil, diff)
	require.Len(t, gen2, 1)
	assert.Equal(t, gen1[0].Address, gen2[0].Address)

	noChange := snapshot.Compute(gen1, gen2)
	assert.True(t, noChange.IsEmpty(), "round-tripping through ApplyDiff must not introduce spurious changes")

	removed := snapshot.Compute(gen2, nil)
	assert.Len(t, removed.Deletions, 1)
}

func bigDecimal(t *testing.T, s string) *big.Int {
	t.Helper()
	n, ok := new(big.Int).SetString(s, 10)
	require.True(t, ok, "invalid decimal literal %q", s)
	return n
}
