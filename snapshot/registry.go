package snapshot

import (
	"sync"

	"github.com/ethereum/go-ethereum/common"

	"github.com/tristero-labs/univ3swap/pool"
)

// Registry is a concurrency-safe, address-indexed collection of live pools,
// adapted from the teacher's protocols/uniswapv3 indexer: a single swap
// never needs more than the one *pool.Pool it's called against, but a CLI
// or service driving many pools at once (or replaying Diff/ApplyDiff over a
// sequence of pulls) needs fast lookup by address across all of them.
type Registry struct {
	mu    sync.RWMutex
	byKey map[common.Address]*pool.Pool
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{byKey: make(map[common.Address]*pool.Pool)}
}

// Put indexes p under address, replacing any prior entry.
func (r *Registry) Put(address common.Address, p *pool.Pool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byKey[address] = p
}

// Get returns the pool indexed under address, if any.
func (r *Registry) Get(address common.Address) (*pool.Pool, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.byKey[address]
	return p, ok
}

// Delete removes the pool indexed under address, if any.
func (r *Registry) Delete(address common.Address) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.byKey, address)
}

// Views returns a PoolView snapshot of every indexed pool, suitable as
// input to Compute on the next pull.
func (r *Registry) Views() []PoolView {
	r.mu.RLock()
	defer r.mu.RUnlock()
	views := make([]PoolView, 0, len(r.byKey))
	for addr, p := range r.byKey {
		views = append(views, ViewOf(addr, p))
	}
	return views
}

// Len reports how many pools are currently indexed.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byKey)
}
