// Package graphstore implements the static, directed multigraph CSR
// store: a node-index sequence addressing a flat destination array and a
// parallel edge-payload array, with per-node payloads held separately.
// Adjacency lists are sorted by destination id; duplicates are forbidden.
package graphstore

import (
	"sort"

	"github.com/johnpzh/Galois/enforce"
)

// NodeID and EdgeID are opaque handles into the CSR arrays.
type NodeID uint32
type EdgeID uint32

// AccessMode selects how an accessor participates in the runtime's
// conflict detection: Unprotected reads/writes are the caller's
// responsibility and are never rolled back; Protected accesses route
// through the execution loop's conflict manager.
type AccessMode int

const (
	Unprotected AccessMode = iota
	Protected
)

// findLinearThreshold bounds how small a degree must be before find_edge
// falls back to a linear scan instead of a binary search.
const findLinearThreshold = 16

// Graph is the CSR store, generic over per-node payload V and per-edge
// payload E.
type Graph[V any, E any] struct {
	nodeIndex []uint32 // length numNodes+1
	dst       []uint32 // length numEdges, sorted per adjacency run
	edgeData  []E      // length numEdges, parallel to dst
	nodeData  []V      // length numNodes

	inIndex []uint32 // optional reverse index, nil until BuildReverseIndex runs
	inEdge  []uint32 // outgoing edge index of each in-edge, bucketed by dst
}

// NewGraph builds an empty CSR store sized for numNodes nodes; callers
// populate it via a Builder before use.
func NewGraph[V any, E any](numNodes int) *Graph[V, E] {
	return &Graph[V, E]{
		nodeIndex: make([]uint32, numNodes+1),
		nodeData:  make([]V, numNodes),
	}
}

func (g *Graph[V, E]) NumNodes() int { return len(g.nodeData) }
func (g *Graph[V, E]) NumEdges() int { return len(g.dst) }

// Nodes returns every node handle in id order.
func (g *Graph[V, E]) Nodes() []NodeID {
	out := make([]NodeID, g.NumNodes())
	for i := range out {
		out[i] = NodeID(i)
	}
	return out
}

// Edges returns n's outgoing edge handles, sorted by destination id.
func (g *Graph[V, E]) Edges(n NodeID) []EdgeID {
	start, end := g.nodeIndex[n], g.nodeIndex[n+1]
	out := make([]EdgeID, 0, end-start)
	for e := start; e < end; e++ {
		out = append(out, EdgeID(e))
	}
	return out
}

// InEdges returns the edge handles of edges terminating at n. Requires
// BuildReverseIndex to have been called; enforces otherwise.
func (g *Graph[V, E]) InEdges(n NodeID) []EdgeID {
	enforce.ENFORCE(g.inIndex != nil, "reverse index not built; call BuildReverseIndex first")
	start, end := g.inIndex[n], g.inIndex[n+1]
	out := make([]EdgeID, 0, end-start)
	for i := start; i < end; i++ {
		out = append(out, EdgeID(g.inEdge[i]))
	}
	return out
}

func (g *Graph[V, E]) EdgeDst(e EdgeID) NodeID { return NodeID(g.dst[e]) }

// Data returns a mutable handle to n's payload. mode is currently
// advisory: the executor is responsible for acquiring conflict tokens
// before calling with Protected; this store performs the raw access.
func (g *Graph[V, E]) Data(n NodeID, _ AccessMode) *V { return &g.nodeData[n] }

func (g *Graph[V, E]) EdgeData(e EdgeID, _ AccessMode) *E { return &g.edgeData[e] }

// FindEdge returns the edge handle for (u,v) if present. Uses a sorted
// binary search above findLinearThreshold out-degree, else a linear scan
// (avoids binary-search overhead on the common small-degree case).
func (g *Graph[V, E]) FindEdge(u, v NodeID) (EdgeID, bool) {
	start, end := g.nodeIndex[u], g.nodeIndex[u+1]
	degree := end - start
	target := uint32(v)
	if degree < findLinearThreshold {
		for e := start; e < end; e++ {
			if g.dst[e] == target {
				return EdgeID(e), true
			}
		}
		return 0, false
	}
	lo, hi := int(start), int(end)
	for lo < hi {
		mid := (lo + hi) / 2
		if g.dst[mid] < target {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	if lo < int(end) && g.dst[lo] == target {
		return EdgeID(lo), true
	}
	return 0, false
}

// SortEdgesByDst sorts every adjacency run by destination id in place,
// keeping edgeData aligned with dst. Builder.Build (and so the loader)
// calls it to sort every adjacency list; duplicate edges are kept, and
// CheckSorted is what reports them.
func (g *Graph[V, E]) SortEdgesByDst() {
	for n := 0; n < g.NumNodes(); n++ {
		start, end := g.nodeIndex[n], g.nodeIndex[n+1]
		run := edgeRun[E]{dst: g.dst[start:end], data: g.edgeData[start:end]}
		sort.Sort(run)
	}
}

type edgeRun[E any] struct {
	dst  []uint32
	data []E
}

func (r edgeRun[E]) Len() int           { return len(r.dst) }
func (r edgeRun[E]) Less(i, j int) bool { return r.dst[i] < r.dst[j] }
func (r edgeRun[E]) Swap(i, j int) {
	r.dst[i], r.dst[j] = r.dst[j], r.dst[i]
	r.data[i], r.data[j] = r.data[j], r.data[i]
}

// CheckSorted enforces the "strictly increasing by destination id, no
// duplicates" invariant across every adjacency list.
func (g *Graph[V, E]) CheckSorted() error {
	for n := 0; n < g.NumNodes(); n++ {
		start, end := g.nodeIndex[n], g.nodeIndex[n+1]
		for e := start + 1; e < end; e++ {
			if g.dst[e] <= g.dst[e-1] {
				return &InvariantError{Msg: "adjacency list not strictly increasing or has a duplicate"}
			}
		}
	}
	return nil
}

// InvariantError reports a violated structural invariant; fatal per the
// error-handling design (Input invalid / invariant violation).
type InvariantError struct{ Msg string }

func (e *InvariantError) Error() string { return e.Msg }

// BuildReverseIndex materializes InEdges support by scanning every
// outgoing edge once and bucketing it by destination.
func (g *Graph[V, E]) BuildReverseIndex() {
	n := g.NumNodes()
	counts := make([]uint32, n+1)
	for _, d := range g.dst {
		counts[d+1]++
	}
	for i := 1; i <= n; i++ {
		counts[i] += counts[i-1]
	}
	g.inIndex = counts
	g.inEdge = make([]uint32, len(g.dst))
	cursor := append([]uint32(nil), counts...)
	for u := 0; u < n; u++ {
		start, end := g.nodeIndex[u], g.nodeIndex[u+1]
		for e := start; e < end; e++ {
			d := g.dst[e]
			g.inEdge[cursor[d]] = e
			cursor[d]++
		}
	}
}
