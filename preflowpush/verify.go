package preflowpush

import (
	"fmt"

	"github.com/johnpzh/Galois/graphstore"
)

// VerifyHeights checks the height invariant every valid preflow-push
// state must satisfy: for every residual edge (positive capacity) u->v,
// h(u) <= h(v)+1. A violation means some node could still push flow
// downhill without having done so.
func VerifyHeights(g *Graph) error {
	for _, n := range g.Nodes() {
		sh := g.Data(n, graphstore.Unprotected).Height
		for _, e := range g.Edges(n) {
			if *g.EdgeData(e, graphstore.Unprotected) <= 0 {
				continue
			}
			dh := g.Data(g.EdgeDst(e), graphstore.Unprotected).Height
			if sh > dh+1 {
				return fmt.Errorf("preflowpush: height invariant violated at node %d (height %d) -> node %d (height %d)", n, sh, g.EdgeDst(e), dh)
			}
		}
	}
	return nil
}

// VerifyConservation checks that every node other than source and sink
// has zero excess (a true flow, not just a preflow) unless it has been
// proven unreachable from the sink in the residual graph (height ==
// NumNodes, the "disconnected" sentinel this package uses).
func VerifyConservation(g *Graph, source, sink graphstore.NodeID) error {
	for _, n := range g.Nodes() {
		if n == source || n == sink {
			continue
		}
		node := g.Data(n, graphstore.Unprotected)
		if node.Excess != 0 && int(node.Height) != g.NumNodes() {
			return fmt.Errorf("preflowpush: non-zero excess %d at node %d with finite height %d", node.Excess, n, node.Height)
		}
	}
	return nil
}

// VerifyNoAugmentingPath checks that no path of positive-residual-
// capacity edges connects source to sink — the final certificate that
// the computed flow is maximum.
func VerifyNoAugmentingPath(g *Graph, source, sink graphstore.NodeID) error {
	traversable := func(e graphstore.EdgeID) bool {
		return *g.EdgeData(e, graphstore.Unprotected) > 0
	}
	if graphstore.HasAugmentingPath(g, source, sink, traversable) {
		return fmt.Errorf("preflowpush: augmenting path exists from %d to %d after run", source, sink)
	}
	return nil
}

// Verify runs all three checks and returns the first failure, or nil if
// the computed flow is a valid maximum flow.
func Verify(g *Graph, source, sink graphstore.NodeID) error {
	if err := VerifyHeights(g); err != nil {
		return err
	}
	if err := VerifyConservation(g, source, sink); err != nil {
		return err
	}
	return VerifyNoAugmentingPath(g, source, sink)
}

// Flow returns the net flow value: sink's accumulated excess, which
// equals the maximum flow once Run has converged.
func Flow(g *Graph, sink graphstore.NodeID) int64 {
	return g.Data(sink, graphstore.Unprotected).Excess
}
