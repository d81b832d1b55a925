// Package spanningforest computes a spanning forest of an undirected
// graph (a symmetric CSR store, as produced by loader.Preprocess) using
// three algorithm shapes, all grounded on the same demo/asynchronous/
// blocked-asynchronous split spec §4.11 asks for: a single-root BFS
// walk, a fully asynchronous union-find merge, and a topology-aware
// blocked variant that amortizes worklist contention with
// worklist.ChunkedFIFO.
package spanningforest

import (
	"sync"
	"sync/atomic"

	"github.com/johnpzh/Galois/exec"
	"github.com/johnpzh/Galois/graphstore"
	"github.com/johnpzh/Galois/unionfind"
	"github.com/johnpzh/Galois/worklist"
)

// Graph is the CSR store spanning-forest runs over. Neither per-node nor
// per-edge payloads carry algorithm state — component membership lives
// in the returned Forest's UnionFind, not in the graph itself — so both
// are the empty struct.
type Graph = graphstore.Graph[struct{}, struct{}]

// Edge is a tree edge accepted into the forest.
type Edge struct {
	Src, Dst graphstore.NodeID
}

// Forest is the result of any of the three algorithms: the union-find
// state giving every node's component, the accepted tree edges, and the
// count of merge attempts that found both endpoints already joined
// (spec's EmptyMerges counter, mirrored from preflow-push's Stats).
type Forest struct {
	UF          *unionfind.UnionFind
	Edges       []Edge
	EmptyMerges uint64
}

type edgeCollector struct {
	mu    sync.Mutex
	edges []Edge
}

func (c *edgeCollector) add(e Edge) {
	c.mu.Lock()
	c.edges = append(c.edges, e)
	c.mu.Unlock()
}

// Demo builds a spanning tree by BFS from node 0, claiming each newly
// visited node with a single CAS on an ownership array. It only ever
// grows one tree, so it produces a full spanning forest only when the
// graph is a single connected component — matching the original demo
// algorithm's documented restriction that the graph must be strongly
// (here, since edges are symmetric: simply) connected.
func Demo(g *Graph, numWorkers int) *Forest {
	n := g.NumNodes()
	uf := unionfind.New(n)
	if n == 0 {
		return &Forest{UF: uf}
	}

	root := graphstore.NodeID(0)
	owner := make([]int32, n)
	for i := range owner {
		owner[i] = -1
	}
	owner[root] = 1

	c := &edgeCollector{}
	wl := worklist.AsWorkerWorklist[graphstore.NodeID](worklist.NewFIFO[graphstore.NodeID](true))
	op := func(src graphstore.NodeID, ctx *exec.Context[graphstore.NodeID]) error {
		for _, e := range g.Edges(src) {
			dst := g.EdgeDst(e)
			if !atomic.CompareAndSwapInt32(&owner[dst], -1, 1) {
				continue
			}
			c.add(Edge{Src: src, Dst: dst})
			uf.Merge(uint32(root), uint32(dst))
			ctx.Push(dst)
		}
		return nil
	}
	exec.ForEach([]graphstore.NodeID{root}, wl, op, exec.ForEachOptions{NumWorkers: numWorkers})

	return &Forest{UF: uf, Edges: c.edges}
}

// Async runs a bulk-synchronous asynchronous-connected-components-style
// pass: every node races to merge its component with each neighbor's,
// and a merge that finds both endpoints already joined is counted as an
// empty merge rather than treated as an error. A second do_all pass
// normalizes every node's find-and-compress path, matching the
// original's explicit Normalize phase.
func Async(g *Graph, numWorkers int) *Forest {
	n := g.NumNodes()
	uf := unionfind.New(n)
	c := &edgeCollector{}
	var emptyMerges uint64

	exec.DoAll(g.Nodes(), func(src graphstore.NodeID) {
		for _, e := range g.Edges(src) {
			dst := g.EdgeDst(e)
			if uf.Merge(uint32(src), uint32(dst)) {
				c.add(Edge{Src: src, Dst: dst})
			} else {
				atomic.AddUint64(&emptyMerges, 1)
			}
		}
	}, exec.DoAllOptions{NumWorkers: numWorkers})

	exec.DoAll(g.Nodes(), func(n graphstore.NodeID) {
		uf.FindAndCompress(uint32(n))
	}, exec.DoAllOptions{NumWorkers: numWorkers})

	return &Forest{UF: uf, Edges: c.edges, EmptyMerges: emptyMerges}
}

// workItem resumes a node's merge scan partway through its adjacency
// list, the same continuation BlockedAsync's original pushes when a
// worker's initial per-package limit runs out.
type workItem struct {
	src   graphstore.NodeID
	start int
}

// blockedLimit bounds how many neighbors a single do_all invocation
// tries to merge before spilling the remainder onto the chunked
// worklist as a continuation; the original limits this to one edge on
// non-zero NUMA packages to spread work quickly and processes the whole
// list on package zero. Neither NUMA packages nor thread topology are
// exposed by this runtime, so every worker gets the same small limit.
const blockedLimit = 1

// BlockedAsync improves on Async by doing the first blockedLimit merge
// attempts per node inline (do_all, no worklist overhead) and pushing a
// continuation onto a ChunkedFIFO only when a node has more neighbors
// left to try, amortizing worklist contention the way spec §4.4's
// chunked FIFO is designed to.
func BlockedAsync(g *Graph, numWorkers int) *Forest {
	n := g.NumNodes()
	uf := unionfind.New(n)
	c := &edgeCollector{}
	var emptyMerges uint64

	wl := worklist.NewChunkedFIFO[workItem](numWorkers, true)

	process := func(item workItem, push func(workItem)) {
		src := item.src
		edges := g.Edges(src)
		count := 0
		for i := item.start; i < len(edges); i++ {
			count++
			dst := g.EdgeDst(edges[i])
			merged := uf.Merge(uint32(src), uint32(dst))
			if merged {
				c.add(Edge{Src: src, Dst: dst})
			} else {
				atomic.AddUint64(&emptyMerges, 1)
			}
			if merged && (blockedLimit == 0 || count != blockedLimit) {
				continue
			}
			if blockedLimit != 0 && count == blockedLimit {
				if i+1 < len(edges) {
					push(workItem{src: src, start: i + 1})
				}
				break
			}
		}
	}

	// The initial do_all pass runs concurrently, so continuations it
	// produces are collected under a lock rather than pushed straight
	// onto wl: FillInitial is for a single goroutine seeding wl before
	// the parallel region, while PushOn needs a real worker id this
	// do_all's op callback does not carry.
	var continuationsMu sync.Mutex
	var continuations []workItem
	exec.DoAll(g.Nodes(), func(src graphstore.NodeID) {
		process(workItem{src: src, start: 0}, func(next workItem) {
			continuationsMu.Lock()
			continuations = append(continuations, next)
			continuationsMu.Unlock()
		})
	}, exec.DoAllOptions{NumWorkers: numWorkers})

	op := func(item workItem, ctx *exec.Context[workItem]) error {
		process(item, ctx.Push)
		return nil
	}
	exec.ForEach[workItem](continuations, wl, op, exec.ForEachOptions{NumWorkers: numWorkers})

	exec.DoAll(g.Nodes(), func(n graphstore.NodeID) {
		uf.FindAndCompress(uint32(n))
	}, exec.DoAllOptions{NumWorkers: numWorkers})

	return &Forest{UF: uf, Edges: c.edges, EmptyMerges: emptyMerges}
}
