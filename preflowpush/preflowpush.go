// Package preflowpush implements the Goldberg-Tarjan preflow-push
// maximum-flow algorithm on top of the graphstore/exec/worklist runtime:
// asynchronous worklist-driven discharge with local relabeling, periodic global
// relabeling via reverse BFS on the residual graph, and an optional
// highest-label work-ordering heuristic.
package preflowpush

import (
	"sync"

	"github.com/johnpzh/Galois/enforce"
	"github.com/johnpzh/Galois/exec"
	"github.com/johnpzh/Galois/graphstore"
	"github.com/johnpzh/Galois/utils"
)

// Node is the per-node payload: current excess flow, BFS-distance-style
// height, and a cursor into its own adjacency list so discharge resumes
// scanning where it left off instead of restarting every call.
type Node struct {
	Excess  int64
	Height  uint32
	Current int
}

// Graph is the CSR store specialized to preflow-push's payloads: node
// state above, and per-edge residual capacity.
type Graph = graphstore.Graph[Node, int32]

// ALPHA and BETA are the Goldberg global-relabel heuristic constants:
// the algorithm re-globally-relabels roughly every
// ALPHA*numNodes+numEdges/3 units of discharge work, where a relabeling
// discharge iteration counts as BETA+1 units instead of 1.
const (
	ALPHA = 6
	BETA  = 12
)

// DefaultRelabelInterval computes the heuristic interval from graph
// size; a caller-supplied override (config.Options.RelabelInterval) wins
// when non-zero, and a negative override disables global relabeling
// entirely.
func DefaultRelabelInterval(g *Graph) int {
	return g.NumNodes()*ALPHA + g.NumEdges()/3
}

// reduceCapacity pushes amount units of flow across edge u->v: the
// forward residual shrinks and the paired reverse edge's residual grows
// by the same amount, keeping the residual-pairing invariant.
func reduceCapacity(g *Graph, eForward graphstore.EdgeID, u, v graphstore.NodeID, amount int64) {
	eReverse, ok := g.FindEdge(v, u)
	if !ok {
		enforce.FAIL("preflowpush: missing paired reverse edge", u, "->", v)
	}
	*g.EdgeData(eForward, graphstore.Unprotected) -= int32(amount)
	*g.EdgeData(eReverse, graphstore.Unprotected) += int32(amount)
}

// Init seeds the preflow by saturating every edge out of source, and
// returns the set of neighbors that received positive excess as the
// initial active set for discharge.
func Init(g *Graph, source, sink graphstore.NodeID) []graphstore.NodeID {
	g.Data(source, graphstore.Unprotected).Height = uint32(g.NumNodes())

	var initial []graphstore.NodeID
	for _, e := range g.Edges(source) {
		dst := g.EdgeDst(e)
		cap := int64(*g.EdgeData(e, graphstore.Unprotected))
		if cap <= 0 {
			continue
		}
		reduceCapacity(g, e, source, dst, cap)
		g.Data(dst, graphstore.Unprotected).Excess += cap
		initial = append(initial, dst)
	}
	return initial
}

// Relabel raises src's height to one more than the minimum height among
// neighbors it still has residual capacity toward, and resets its
// discharge cursor to the edge realizing that minimum. If no such
// neighbor exists (or the computed height would exceed the node count),
// src is marked "unreachable" by setting its height to NumNodes.
func Relabel(g *Graph, src graphstore.NodeID) {
	minHeight := uint32(g.NumNodes())
	minEdgeOffset := 0
	edges := g.Edges(src)
	for i, e := range edges {
		if *g.EdgeData(e, graphstore.Unprotected) <= 0 {
			continue
		}
		dstHeight := g.Data(g.EdgeDst(e), graphstore.Unprotected).Height
		if next := utils.Min(minHeight, dstHeight); next < minHeight {
			minHeight = next
			minEdgeOffset = i
		}
	}
	minHeight++

	node := g.Data(src, graphstore.Unprotected)
	if int(minHeight) < g.NumNodes() {
		node.Height = minHeight
		node.Current = minEdgeOffset
	} else {
		node.Height = uint32(g.NumNodes())
	}
}

// Discharge pushes as much of src's excess as possible to lower-height
// neighbors, relabeling src whenever it runs out of eligible edges
// before exhausting its excess. It returns true if it relabeled at least
// once (the caller uses this to charge BETA extra units of work).
//
// Callers must already hold acquired access to src and every node in
// src's neighborhood (acquireNeighborhood does this) before calling:
// Discharge itself performs only unprotected accesses, matching the
// "acquire once, then work freely" discipline the runtime's cautious
// operators use.
func Discharge(g *Graph, src, source, sink graphstore.NodeID, push func(graphstore.NodeID)) (relabeled bool) {
	node := g.Data(src, graphstore.Unprotected)
	if node.Excess == 0 || int(node.Height) >= g.NumNodes() {
		return false
	}

	edges := g.Edges(src)
	for {
		finished := false
		current := node.Current
		for ; current < len(edges); current++ {
			e := edges[current]
			cap := *g.EdgeData(e, graphstore.Unprotected)
			if cap <= 0 {
				continue
			}
			dst := g.EdgeDst(e)
			dnode := g.Data(dst, graphstore.Unprotected)
			if node.Height-1 != dnode.Height {
				continue
			}

			amount := utils.Min(int64(cap), node.Excess)
			reduceCapacity(g, e, src, dst, amount)

			if dst != sink && dst != source && dnode.Excess == 0 {
				push(dst)
			}
			node.Excess -= amount
			dnode.Excess += amount

			if node.Excess == 0 {
				finished = true
				node.Current = current
				break
			}
		}
		if finished {
			break
		}

		Relabel(g, src)
		relabeled = true
		if int(node.Height) == g.NumNodes() {
			break
		}
	}
	return relabeled
}

// acquireNeighborhood claims conflict tokens for src first, then for every
// other distinct node reachable via one of src's edges in ascending id order (a fixed
// order across every caller avoids the classic lock-ordering deadlock,
// though these are try-locks so it only matters for retry fairness).
// Nothing is mutated before every token in the set is held, so a failed
// acquisition never leaves partial state to unwind.
func acquireNeighborhood(g *Graph, src graphstore.NodeID, ctx *exec.Context[graphstore.NodeID]) bool {
	if !ctx.Acquire(uint32(src)) {
		return false
	}
	seen := map[uint32]bool{uint32(src): true}
	ids := make([]uint32, 0, len(g.Edges(src)))
	for _, e := range g.Edges(src) {
		id := uint32(g.EdgeDst(e))
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	sortUint32(ids)
	for _, id := range ids {
		if !ctx.Acquire(id) {
			return false
		}
	}
	return true
}

func sortUint32(ids []uint32) {
	for i := 1; i < len(ids); i++ {
		for j := i; j > 0 && ids[j] < ids[j-1]; j-- {
			ids[j], ids[j-1] = ids[j-1], ids[j]
		}
	}
}

// collector is a trivial thread-safe append buffer, used by the
// bulk-synchronous find-work scan after a global relabel.
type collector struct {
	mu    sync.Mutex
	items []graphstore.NodeID
}

func (c *collector) add(n graphstore.NodeID) {
	c.mu.Lock()
	c.items = append(c.items, n)
	c.mu.Unlock()
}
