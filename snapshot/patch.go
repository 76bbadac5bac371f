package snapshot

import "github.com/ethereum/go-ethereum/common"

// ApplyDiff folds diff into prev and returns the resulting generation of
// views, adapted from the teacher's Patcher: deletions first, then updates,
// then additions, each applied against a freshly deep-copied map so the
// caller's prev slice (and whatever pool.Pool/PoolView values it still
// references) is left untouched.
func ApplyDiff(prev []PoolView, diff Diff) []PoolView {
	byAddr := make(map[common.Address]PoolView, len(prev))
	for _, v := range prev {
		byAddr[v.Address] = deepCopyView(v)
	}

	for _, addr := range diff.Deletions {
		delete(byAddr, addr)
	}
	for _, v := range diff.Updates {
		byAddr[v.Address] = deepCopyView(v)
	}
	for _, v := range diff.Additions {
		byAddr[v.Address] = deepCopyView(v)
	}

	next := make([]PoolView, 0, len(byAddr))
	for _, v := range byAddr {
		next = append(next, v)
	}
	return next
}
