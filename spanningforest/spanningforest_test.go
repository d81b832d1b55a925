package spanningforest

import (
	"testing"

	"github.com/johnpzh/Galois/graphstore"
)

// buildSymmetricGraph builds a Graph from an undirected edge list,
// adding both directions for each pair (the loader's -useSymmetricDirectly
// contract, applied directly here since these graphs are small enough to
// author by hand).
func buildSymmetricGraph(numNodes int, pairs [][2]int) *Graph {
	b := graphstore.NewBuilder[struct{}, struct{}](numNodes)
	for _, p := range pairs {
		u, v := graphstore.NodeID(p[0]), graphstore.NodeID(p[1])
		b.AddEdge(u, v, struct{}{})
		b.AddEdge(v, u, struct{}{})
	}
	return b.Build()
}

func TestDemoSpanningTreeOnConnectedGraph(t *testing.T) {
	g := buildSymmetricGraph(5, [][2]int{{0, 1}, {1, 2}, {2, 3}, {3, 4}, {0, 4}})
	f := Demo(g, 4)
	if err := Verify(g, f); err != nil {
		t.Fatalf("verify failed: %v", err)
	}
	if got := NumComponents(g, f); got != 1 {
		t.Fatalf("components = %d, want 1", got)
	}
	if len(f.Edges) != 4 {
		t.Fatalf("tree edges = %d, want 4", len(f.Edges))
	}
}

func TestAsyncTwoComponentSpanningForest(t *testing.T) {
	// Nodes 0-2 form one triangle, nodes 3-5 form another; the two
	// components never touch, so the forest should have exactly two
	// trees and numNodes-numComponents tree edges.
	g := buildSymmetricGraph(6, [][2]int{
		{0, 1}, {1, 2}, {0, 2},
		{3, 4}, {4, 5}, {3, 5},
	})
	f := Async(g, 4)
	if err := Verify(g, f); err != nil {
		t.Fatalf("verify failed: %v", err)
	}
	if got := NumComponents(g, f); got != 2 {
		t.Fatalf("components = %d, want 2", got)
	}
	if len(f.Edges) != 4 {
		t.Fatalf("tree edges = %d, want 4", len(f.Edges))
	}
}

func TestBlockedAsyncTwoComponentSpanningForest(t *testing.T) {
	g := buildSymmetricGraph(6, [][2]int{
		{0, 1}, {1, 2}, {0, 2},
		{3, 4}, {4, 5}, {3, 5},
	})
	f := BlockedAsync(g, 4)
	if err := Verify(g, f); err != nil {
		t.Fatalf("verify failed: %v", err)
	}
	if got := NumComponents(g, f); got != 2 {
		t.Fatalf("components = %d, want 2", got)
	}
	if len(f.Edges) != 4 {
		t.Fatalf("tree edges = %d, want 4", len(f.Edges))
	}
}

func TestAsyncSingleNodeGraphIsTrivialForest(t *testing.T) {
	g := buildSymmetricGraph(1, nil)
	f := Async(g, 2)
	if err := Verify(g, f); err != nil {
		t.Fatalf("verify failed: %v", err)
	}
	if len(f.Edges) != 0 {
		t.Fatalf("tree edges = %d, want 0", len(f.Edges))
	}
}

func TestAsyncRecordsEmptyMergesOnCycle(t *testing.T) {
	// A triangle has one more edge than a spanning tree of 3 nodes
	// needs: of its six directed merge attempts (three symmetric edges)
	// only two can link, so the other four find their endpoints already
	// joined.
	g := buildSymmetricGraph(3, [][2]int{{0, 1}, {1, 2}, {0, 2}})
	f := Async(g, 4)
	if err := Verify(g, f); err != nil {
		t.Fatalf("verify failed: %v", err)
	}
	if f.EmptyMerges == 0 {
		t.Fatal("expected at least one empty merge on a graph with a cycle")
	}
}
