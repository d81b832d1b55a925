package preflowpush

import (
	"github.com/johnpzh/Galois/exec"
	"github.com/johnpzh/Galois/graphstore"
	"github.com/johnpzh/Galois/utils"
	"github.com/johnpzh/Galois/worklist"
)

// GlobalRelabel resets every node's height to "unreachable" (NumNodes),
// then does a reverse BFS from sink over the residual graph — an edge
// u->v participates if the paired reverse edge v->u still has positive
// residual capacity, i.e. flow could still move from v to u — assigning
// each node the shortest residual-reverse-distance from sink. Finally it
// rescans every node and returns those with positive excess and a finite
// height as the next active set for discharge.
//
// Heights are updated with an atomic compare-and-swap rather than the
// executor's conflict manager (spec's "useCAS" fast path): multiple
// workers racing to relabel the same node to different candidate heights
// is benign — CAS keeps the minimum any of them proposed — so no
// acquire/abort machinery is needed here.
func GlobalRelabel(g *Graph, source, sink graphstore.NodeID, numWorkers int) []graphstore.NodeID {
	exec.DoAll(g.Nodes(), func(n graphstore.NodeID) {
		node := g.Data(n, graphstore.Unprotected)
		node.Height = uint32(g.NumNodes())
		node.Current = 0
		if n == sink {
			node.Height = 0
		}
	}, exec.DoAllOptions{NumWorkers: numWorkers})

	wl := worklist.AsWorkerWorklist[graphstore.NodeID](worklist.NewFIFO[graphstore.NodeID](true))
	op := func(n graphstore.NodeID, ctx *exec.Context[graphstore.NodeID]) error {
		srcHeight := g.Data(n, graphstore.Unprotected).Height
		newHeight := srcHeight + 1
		for _, e := range g.Edges(n) {
			dst := g.EdgeDst(e)
			eReverse, ok := g.FindEdge(dst, n)
			if !ok {
				continue
			}
			if *g.EdgeData(eReverse, graphstore.Unprotected) <= 0 {
				continue
			}
			dnode := g.Data(dst, graphstore.Unprotected)
			if old := utils.AtomicMinUint32(&dnode.Height, newHeight); newHeight < old {
				ctx.Push(dst)
			}
		}
		return nil
	}
	exec.ForEach([]graphstore.NodeID{sink}, wl, op, exec.ForEachOptions{NumWorkers: numWorkers})

	c := &collector{}
	exec.DoAll(g.Nodes(), func(n graphstore.NodeID) {
		if n == sink || n == source {
			return
		}
		node := g.Data(n, graphstore.Unprotected)
		if int(node.Height) >= g.NumNodes() {
			return
		}
		if node.Excess > 0 {
			c.add(n)
		}
	}, exec.DoAllOptions{NumWorkers: numWorkers})
	return c.items
}
