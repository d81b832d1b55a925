package utils

import "sync/atomic"

// AtomicMinUint32 repeatedly CASes targetVal down to the minimum of its
// current value and newVal, returning the value observed before the call.
// This is the primitive the global-relabel BFS uses to keep the smallest
// height seen when multiple predecessors race to set the same node.
func AtomicMinUint32(targetVal *uint32, newVal uint32) (old uint32) {
	for {
		old = atomic.LoadUint32(targetVal)
		if newVal >= old {
			return old
		}
		if atomic.CompareAndSwapUint32(targetVal, old, newVal) {
			return old
		}
	}
}

// AtomicMaxUint32 repeatedly CASes targetVal up to the maximum of its
// current value and newVal. Used by union-find's rank counter when two
// roots of equal rank are merged and the surviving root's rank must
// advance exactly once.
func AtomicMaxUint32(targetVal *uint32, newVal uint32) (old uint32) {
	for {
		old = atomic.LoadUint32(targetVal)
		if newVal <= old {
			return old
		}
		if atomic.CompareAndSwapUint32(targetVal, old, newVal) {
			return old
		}
	}
}
