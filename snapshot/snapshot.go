// Package snapshot loads the JSON pool-state format this simulator
// consumes (it has no writer for that format), bridging the external collaborator surface spec.md §6
// describes to a live *pool.Pool. Nothing in math/* or pool/* imports this
// package; it depends on them, never the reverse, preserving the core's
// "immutable snapshot interface, pure swap function" boundary.
package snapshot

import (
	"encoding/json"
	"fmt"
	"io"
	"math/big"
	"os"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/common"

	"github.com/tristero-labs/univ3swap/pool"
)

// rawSlot0 mirrors spec.md §6's slot0 object: hex sqrt_price_x96, decimal
// tick, hex fee_protocol.
type rawSlot0 struct {
	SqrtPriceX96 string `json:"sqrt_price_x96"`
	Tick         int32  `json:"tick"`
	FeeProtocol  string `json:"fee_protocol"`
}

// rawTick mirrors one entry of spec.md §6's per-tick map: decimal signed
// liquidity_net, hex liquidity_gross and fee-growth-outside accumulators.
type rawTick struct {
	LiquidityNet          string `json:"liquidity_net"`
	LiquidityGross        string `json:"liquidity_gross"`
	FeeGrowthOutside0X128 string `json:"fee_growth_outside_0_x128"`
	FeeGrowthOutside1X128 string `json:"fee_growth_outside_1_x128"`
}

// rawSnapshot is the top-level JSON document spec.md §6 describes: token
// addresses, fee (hex), tick spacing (decimal), slot0, feeGrowthGlobal
// accumulators (hex), liquidity (hex), a per-tick map keyed by decimal tick,
// and a bitmap map keyed by decimal word index with hex 256-bit values.
type rawSnapshot struct {
	Token0               string             `json:"token0"`
	Token1               string             `json:"token1"`
	Fee                  string             `json:"fee"`
	TickSpacing          int32              `json:"tick_spacing"`
	Slot0                rawSlot0           `json:"slot0"`
	FeeGrowthGlobal0X128 string             `json:"fee_growth_global0_x128"`
	FeeGrowthGlobal1X128 string             `json:"fee_growth_global1_x128"`
	Liquidity            string             `json:"liquidity"`
	Ticks                map[string]rawTick `json:"ticks"`
	Bitmap               map[string]string  `json:"bitmap"`
}

// parseHex parses a "0x"-prefixed (or bare) hex string into a non-negative
// *big.Int. An empty string is treated as zero, since several snapshot
// fields (fee_protocol, feeGrowthGlobal on a fresh pool) are routinely
// absent rather than "0x0".
func parseHex(s string) (*big.Int, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "0x")
	if s == "" {
		return new(big.Int), nil
	}
	n, ok := new(big.Int).SetString(s, 16)
	if !ok {
		return nil, fmt.Errorf("snapshot: invalid hex value %q", s)
	}
	return n, nil
}

// parseDecimalSigned parses a decimal, optionally signed integer string
// (liquidity_net).
func parseDecimalSigned(s string) (*big.Int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return new(big.Int), nil
	}
	n, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return nil, fmt.Errorf("snapshot: invalid decimal value %q", s)
	}
	return n, nil
}

// LoadPool decodes a JSON pool snapshot from r and constructs the
// equivalent *pool.Pool, ready to pass to Pool.Swap. The pool's tick map,
// bitmap and fee-growth accumulators are populated directly from the
// snapshot rather than replayed through Mint, since a snapshot already
// reflects the cumulative effect of every historical mint/burn.
func LoadPool(r io.Reader) (*pool.Pool, error) {
	var raw rawSnapshot
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("snapshot: decode: %w", err)
	}

	fee, err := parseHex(raw.Fee)
	if err != nil {
		return nil, err
	}
	if !fee.IsUint64() || fee.Uint64() >= 1<<24 {
		return nil, fmt.Errorf("snapshot: fee %s: %w", fee, pool.ErrFeeOutOfRange)
	}

	sqrtPriceX96, err := parseHex(raw.Slot0.SqrtPriceX96)
	if err != nil {
		return nil, fmt.Errorf("snapshot: slot0.sqrt_price_x96: %w", err)
	}

	p, err := pool.New(
		common.HexToAddress(raw.Token0),
		common.HexToAddress(raw.Token1),
		uint32(fee.Uint64()),
		raw.TickSpacing,
		sqrtPriceX96,
	)
	if err != nil {
		return nil, fmt.Errorf("snapshot: constructing pool: %w", err)
	}

	// Pool.New derives Tick from sqrtPriceX96 itself (spec.md §3's Slot0
	// invariant); the snapshot's own tick field is authoritative when it
	// disagrees, since the snapshot is a fait accompli of on-chain state,
	// not a value this loader recomputes.
	p.Slot0.Tick = raw.Slot0.Tick

	feeProtocol, err := parseHex(raw.Slot0.FeeProtocol)
	if err != nil {
		return nil, fmt.Errorf("snapshot: slot0.fee_protocol: %w", err)
	}
	p.Slot0.FeeProtocol = uint8(feeProtocol.Uint64())

	if p.FeeGrowthGlobal0X128, err = parseHex(raw.FeeGrowthGlobal0X128); err != nil {
		return nil, fmt.Errorf("snapshot: fee_growth_global0_x128: %w", err)
	}
	if p.FeeGrowthGlobal1X128, err = parseHex(raw.FeeGrowthGlobal1X128); err != nil {
		return nil, fmt.Errorf("snapshot: fee_growth_global1_x128: %w", err)
	}
	if p.Liquidity, err = parseHex(raw.Liquidity); err != nil {
		return nil, fmt.Errorf("snapshot: liquidity: %w", err)
	}

	for tickStr, rt := range raw.Ticks {
		tick, err := strconv.ParseInt(tickStr, 10, 32)
		if err != nil {
			return nil, fmt.Errorf("snapshot: tick key %q: %w", tickStr, err)
		}
		liquidityNet, err := parseDecimalSigned(rt.LiquidityNet)
		if err != nil {
			return nil, fmt.Errorf("snapshot: tick %d liquidity_net: %w", tick, err)
		}
		liquidityGross, err := parseHex(rt.LiquidityGross)
		if err != nil {
			return nil, fmt.Errorf("snapshot: tick %d liquidity_gross: %w", tick, err)
		}
		feeGrowthOutside0, err := parseHex(rt.FeeGrowthOutside0X128)
		if err != nil {
			return nil, fmt.Errorf("snapshot: tick %d fee_growth_outside_0_x128: %w", tick, err)
		}
		feeGrowthOutside1, err := parseHex(rt.FeeGrowthOutside1X128)
		if err != nil {
			return nil, fmt.Errorf("snapshot: tick %d fee_growth_outside_1_x128: %w", tick, err)
		}
		p.Ticks[int32(tick)] = &pool.TickInfo{
			LiquidityGross:        liquidityGross,
			LiquidityNet:          liquidityNet,
			FeeGrowthOutside0X128: feeGrowthOutside0,
			FeeGrowthOutside1X128: feeGrowthOutside1,
			Initialized:           liquidityGross.Sign() > 0,
		}
	}

	for wordStr, hexWord := range raw.Bitmap {
		word, err := strconv.ParseInt(wordStr, 10, 16)
		if err != nil {
			return nil, fmt.Errorf("snapshot: bitmap word key %q: %w", wordStr, err)
		}
		value, err := parseHex(hexWord)
		if err != nil {
			return nil, fmt.Errorf("snapshot: bitmap word %d: %w", word, err)
		}
		p.Bitmap.SetWord(int16(word), value)
	}

	return p, nil
}

// LoadPoolFile opens path and decodes it as a pool snapshot.
func LoadPoolFile(path string) (*pool.Pool, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("snapshot: open %s: %w", path, err)
	}
	defer f.Close()
	return LoadPool(f)
}
