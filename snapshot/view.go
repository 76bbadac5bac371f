package snapshot

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"github.com/tristero-labs/univ3swap/pool"
)

// TickView is the comparable, JSON-friendly projection of one pool.TickInfo
// used for change detection between two pulls of the same pool.
type TickView struct {
	Tick           int32    `json:"tick"`
	LiquidityGross *big.Int `json:"liquidity_gross"`
	LiquidityNet   *big.Int `json:"liquidity_net"`
}

// PoolView is the minimal, comparable projection of a pool.Pool's dynamic
// fields: enough to detect whether a freshly pulled snapshot actually
// changed anything versus a previously indexed one, without carrying the
// full bitmap or fee-growth-outside bookkeeping.
type PoolView struct {
	Address      common.Address `json:"address"`
	Tick         int32          `json:"tick"`
	SqrtPriceX96 *big.Int       `json:"sqrt_price_x96"`
	Liquidity    *big.Int       `json:"liquidity"`
	Ticks        []TickView     `json:"ticks"`
}

// ViewOf projects p into its comparable PoolView under the given address.
func ViewOf(address common.Address, p *pool.Pool) PoolView {
	ticks := make([]TickView, 0, len(p.Ticks))
	for tick, info := range p.Ticks {
		ticks = append(ticks, TickView{
			Tick:           tick,
			LiquidityGross: new(big.Int).Set(info.LiquidityGross),
			LiquidityNet:   new(big.Int).Set(info.LiquidityNet),
		})
	}
	return PoolView{
		Address:      address,
		Tick:         p.Slot0.Tick,
		SqrtPriceX96: new(big.Int).Set(p.Slot0.SqrtPriceX96),
		Liquidity:    new(big.Int).Set(p.Liquidity),
		Ticks:        ticks,
	}
}

func deepCopyView(v PoolView) PoolView {
	ticks := make([]TickView, len(v.Ticks))
	for i, t := range v.Ticks {
		ticks[i] = TickView{
			Tick:           t.Tick,
			LiquidityGross: new(big.Int).Set(t.LiquidityGross),
			LiquidityNet:   new(big.Int).Set(t.LiquidityNet),
		}
	}
	return PoolView{
		Address:      v.Address,
		Tick:         v.Tick,
		SqrtPriceX96: new(big.Int).Set(v.SqrtPriceX96),
		Liquidity:    new(big.Int).Set(v.Liquidity),
		Ticks:        ticks,
	}
}
