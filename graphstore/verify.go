package graphstore

import (
	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/iterator"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/traverse"
)

// residualView adapts a CSR store to gonum's graph.Graph interface, so
// the augmenting-path check (spec §4.10 verification) can be expressed
// as a standard BFS instead of a hand-rolled traversal. traversable
// reports whether an edge should be treated as present in the view (for
// preflow-push, "residual capacity > 0").
type residualView[V any, E any] struct {
	g           *Graph[V, E]
	traversable func(EdgeID) bool
}

func (r residualView[V, E]) Node(id int64) graph.Node {
	if id < 0 || id >= int64(r.g.NumNodes()) {
		return nil
	}
	return simple.Node(id)
}

func (r residualView[V, E]) Nodes() graph.Nodes {
	nodes := make([]graph.Node, r.g.NumNodes())
	for i := range nodes {
		nodes[i] = simple.Node(i)
	}
	return iterator.NewOrderedNodes(nodes)
}

func (r residualView[V, E]) From(id int64) graph.Nodes {
	u := NodeID(id)
	start, end := r.g.nodeIndex[u], r.g.nodeIndex[u+1]
	var neighbours []graph.Node
	for e := start; e < end; e++ {
		if r.traversable(EdgeID(e)) {
			neighbours = append(neighbours, simple.Node(r.g.dst[e]))
		}
	}
	return iterator.NewOrderedNodes(neighbours)
}

func (r residualView[V, E]) HasEdgeBetween(xid, yid int64) bool {
	if e, ok := r.g.FindEdge(NodeID(xid), NodeID(yid)); ok && r.traversable(e) {
		return true
	}
	e, ok := r.g.FindEdge(NodeID(yid), NodeID(xid))
	return ok && r.traversable(e)
}

func (r residualView[V, E]) Edge(uid, vid int64) graph.Edge {
	if e, ok := r.g.FindEdge(NodeID(uid), NodeID(vid)); ok && r.traversable(e) {
		return simple.Edge{F: simple.Node(uid), T: simple.Node(vid)}
	}
	return nil
}

// HasAugmentingPath reports whether sink is reachable from source using
// only edges for which traversable returns true. Used post-run to check
// "no augmenting path from source to sink exists in the residual graph".
func HasAugmentingPath[V any, E any](g *Graph[V, E], source, sink NodeID, traversable func(EdgeID) bool) bool {
	view := residualView[V, E]{g: g, traversable: traversable}
	var bfs traverse.BreadthFirst
	reached := bfs.Walk(view, simple.Node(source), func(n graph.Node, _ int) bool {
		return n.ID() == int64(sink)
	})
	return reached != nil && reached.ID() == int64(sink)
}
