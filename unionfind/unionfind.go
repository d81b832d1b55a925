// Package unionfind implements a lock-free union-find over a dense node
// index space, using CAS-based path compression and link-by-rank merge
// as described in spec §4.8. Raw pointer identity from a pointer-based
// union-find becomes a plain array index here; there is no cyclic
// ownership to worry about.
package unionfind

import (
	"sync/atomic"

	"github.com/johnpzh/Galois/utils"
)

// UnionFind holds parent links and ranks for a fixed set of nodes,
// indexed 0..n-1. Every node starts as its own singleton root. Parent
// entries are read and written with atomics so Find/Merge remain safe
// to call concurrently from many workers.
type UnionFind struct {
	parent []uint32
	rank   []uint32
}

// New builds a union-find over n singleton components.
func New(n int) *UnionFind {
	uf := &UnionFind{parent: make([]uint32, n), rank: make([]uint32, n)}
	for i := range uf.parent {
		uf.parent[i] = uint32(i)
	}
	return uf
}

func (uf *UnionFind) parentOf(n uint32) uint32 {
	return atomic.LoadUint32(&uf.parent[n])
}

// Find traverses parent links to a fixed point, halving the path during
// descent (each visited node's parent is bumped to its grandparent),
// which bounds amortized chain length without a second pass.
func (uf *UnionFind) Find(n uint32) uint32 {
	for {
		p := uf.parentOf(n)
		gp := uf.parentOf(p)
		if p == gp {
			return p
		}
		atomic.CompareAndSwapUint32(&uf.parent[n], p, gp)
		n = p
	}
}

// FindAndCompress is Find followed by a second pass that repoints every
// visited node directly at the root. Idempotent: a second call moves no
// parent pointer.
func (uf *UnionFind) FindAndCompress(n uint32) uint32 {
	root := n
	for {
		p := uf.parentOf(root)
		if p == root {
			break
		}
		root = p
	}
	for n != root {
		next := uf.parentOf(n)
		atomic.StoreUint32(&uf.parent[n], root)
		n = next
	}
	return root
}

// Merge attempts a lock-free link-by-rank union of a's and b's
// components. It returns true iff the two nodes were in distinct
// components and this call performed the link (linearizable: exactly
// one concurrent Merge across the two components returns true).
func (uf *UnionFind) Merge(a, b uint32) bool {
	for {
		ra, rb := uf.Find(a), uf.Find(b)
		if ra == rb {
			return false
		}

		rankA, rankB := atomic.LoadUint32(&uf.rank[ra]), atomic.LoadUint32(&uf.rank[rb])
		if rankA < rankB {
			ra, rb = rb, ra
			rankA, rankB = rankB, rankA
		}
		// ra is now the higher (or equal) rank root; try to link rb under it.
		if !atomic.CompareAndSwapUint32(&uf.parent[rb], rb, ra) {
			continue // someone else changed rb's parent; retry from scratch
		}
		if rankA == rankB {
			utils.AtomicMaxUint32(&uf.rank[ra], rankA+1)
		}
		return true
	}
}

// Connected reports whether a and b are currently in the same component.
func (uf *UnionFind) Connected(a, b uint32) bool {
	return uf.Find(a) == uf.Find(b)
}

// NumNodes returns the number of nodes tracked.
func (uf *UnionFind) NumNodes() int { return len(uf.parent) }
