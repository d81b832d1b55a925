package spanningforest

import (
	"fmt"

	"github.com/johnpzh/Galois/utils"
)

// Verify checks the three properties the original algorithm's verifier
// checks: every edge of g joins two nodes the forest agrees are in the
// same component, every accepted tree edge does too, and the accepted
// edge count is exactly numNodes minus the number of distinct roots (a
// forest has exactly one fewer edge than node per component, and never a
// cycle).
func Verify(g *Graph, f *Forest) error {
	for _, n := range g.Nodes() {
		for _, e := range g.Edges(n) {
			dst := g.EdgeDst(e)
			if !f.UF.Connected(uint32(n), uint32(dst)) {
				return fmt.Errorf("spanningforest: node %d and node %d share an edge but are in different components", n, dst)
			}
		}
	}

	for _, e := range f.Edges {
		if !f.UF.Connected(uint32(e.Src), uint32(e.Dst)) {
			return fmt.Errorf("spanningforest: accepted tree edge %d->%d spans different components", e.Src, e.Dst)
		}
	}

	numRoots := countDistinctRoots(g, f)
	want := g.NumNodes() - numRoots
	if len(f.Edges) != want {
		return fmt.Errorf("spanningforest: not a forest: expected %d tree edges for %d components, found %d", want, numRoots, len(f.Edges))
	}
	return nil
}

// NumComponents returns the number of distinct components the forest's
// union-find currently reports across g's nodes.
func NumComponents(g *Graph, f *Forest) int {
	return countDistinctRoots(g, f)
}

// countDistinctRoots counts distinct union-find roots across g's nodes
// with a bitmap rather than a map[uint32]bool: root ids are dense in
// [0, NumNodes), the shape utils.Bitmap is built for.
func countDistinctRoots(g *Graph, f *Forest) int {
	var seen utils.Bitmap
	count := 0
	for _, n := range g.Nodes() {
		root := f.UF.Find(uint32(n))
		if !seen.Test(root) {
			seen.Set(root)
			count++
		}
	}
	return count
}
