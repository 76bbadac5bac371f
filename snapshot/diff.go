package snapshot

import (
	"sort"

	"github.com/ethereum/go-ethereum/common"
)

// Diff is the set of changes between two indexed generations of pool views,
// adapted from the teacher's protocols/uniswapv3 differ: additions and
// updates carry the full new view, deletions carry only the key, since
// there is nothing left to compare once a pool drops out of the feed.
type Diff struct {
	Additions []PoolView
	Updates   []PoolView
	Deletions []common.Address
}

// IsEmpty reports whether the diff carries no changes at all.
func (d Diff) IsEmpty() bool {
	return len(d.Additions) == 0 && len(d.Updates) == 0 && len(d.Deletions) == 0
}

// changed reports whether two generations of the same pool's view differ in
// price, active liquidity or tick-level liquidity bookkeeping. Ticks are
// compared order-insensitively since a fresh pull has no guaranteed
// iteration order.
func changed(old, new PoolView) bool {
	if old.Tick != new.Tick {
		return true
	}
	if old.SqrtPriceX96.Cmp(new.SqrtPriceX96) != 0 {
		return true
	}
	if old.Liquidity.Cmp(new.Liquidity) != 0 {
		return true
	}
	if len(old.Ticks) != len(new.Ticks) {
		return true
	}

	oldTicks := make([]TickView, len(old.Ticks))
	copy(oldTicks, old.Ticks)
	sort.Slice(oldTicks, func(i, j int) bool { return oldTicks[i].Tick < oldTicks[j].Tick })

	newTicks := make([]TickView, len(new.Ticks))
	copy(newTicks, new.Ticks)
	sort.Slice(newTicks, func(i, j int) bool { return newTicks[i].Tick < newTicks[j].Tick })

	for i := range oldTicks {
		a, b := oldTicks[i], newTicks[i]
		if a.Tick != b.Tick || a.LiquidityGross.Cmp(b.LiquidityGross) != 0 || a.LiquidityNet.Cmp(b.LiquidityNet) != 0 {
			return true
		}
	}
	return false
}

// Compute diffs two generations of indexed pool views keyed by address,
// grounded in the teacher's poolChanged/UniswapV3SystemDiff pattern: a pool
// present only in next is an Addition, present only in prev is a Deletion,
// present in both but changed per the rules above is an Update.
func Compute(prev, next []PoolView) Diff {
	prevByAddr := make(map[common.Address]PoolView, len(prev))
	for _, v := range prev {
		prevByAddr[v.Address] = v
	}
	nextByAddr := make(map[common.Address]PoolView, len(next))
	for _, v := range next {
		nextByAddr[v.Address] = v
	}

	var diff Diff
	for addr, newView := range nextByAddr {
		oldView, existed := prevByAddr[addr]
		if !existed {
			diff.Additions = append(diff.Additions, newView)
			continue
		}
		if changed(oldView, newView) {
			diff.Updates = append(diff.Updates, newView)
		}
	}
	for addr := range prevByAddr {
		if _, stillPresent := nextByAddr[addr]; !stillPresent {
			diff.Deletions = append(diff.Deletions, addr)
		}
	}
	return diff
}
