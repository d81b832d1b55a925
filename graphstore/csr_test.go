package graphstore

import "testing"

func TestBuilderSortsAdjacency(t *testing.T) {
	b := NewBuilder[int, int](4)
	b.AddEdge(0, 3, 1)
	b.AddEdge(0, 1, 1)
	b.AddEdge(0, 2, 1)
	g := b.Build()

	if err := g.CheckSorted(); err != nil {
		t.Fatalf("expected sorted adjacency, got error: %v", err)
	}

	edges := g.Edges(0)
	if len(edges) != 3 {
		t.Fatalf("expected 3 edges, got %d", len(edges))
	}
	want := []NodeID{1, 2, 3}
	for i, e := range edges {
		if got := g.EdgeDst(e); got != want[i] {
			t.Fatalf("edge %d: got dst %d, want %d", i, got, want[i])
		}
	}
}

func TestFindEdgeLinearAndBinary(t *testing.T) {
	g := NewGraph[int, int](2)
	// Build a wide adjacency directly to exercise the binary-search path.
	dst := make([]uint32, 20)
	data := make([]int, 20)
	for i := range dst {
		dst[i] = uint32(i)
	}
	g.dst = dst
	g.edgeData = data
	g.nodeIndex = []uint32{0, 20, 20}

	if e, ok := g.FindEdge(0, 15); !ok || g.EdgeDst(e) != 15 {
		t.Fatalf("expected to find edge to 15, got ok=%v", ok)
	}
	if _, ok := g.FindEdge(0, 99); ok {
		t.Fatal("did not expect to find edge to 99")
	}

	// A degree-2 node is below findLinearThreshold: the linear-scan path.
	small := NewBuilder[int, int](3)
	small.AddEdge(0, 2, 0)
	small.AddEdge(0, 1, 0)
	sg := small.Build()
	if e, ok := sg.FindEdge(0, 2); !ok || sg.EdgeDst(e) != 2 {
		t.Fatalf("expected to find edge to 2 by linear scan, got ok=%v", ok)
	}
}

func TestBuildReverseIndex(t *testing.T) {
	b := NewBuilder[int, int](3)
	b.AddEdge(0, 1, 0)
	b.AddEdge(0, 2, 0)
	b.AddEdge(1, 2, 0)
	g := b.Build()
	g.BuildReverseIndex()

	in2 := g.InEdges(2)
	if len(in2) != 2 {
		t.Fatalf("expected 2 in-edges at node 2, got %d", len(in2))
	}
	for _, e := range in2 {
		if g.EdgeDst(e) != 2 {
			t.Fatalf("InEdges(2) returned edge %d whose dst is %d, want 2", e, g.EdgeDst(e))
		}
	}
}

func TestCheckSortedRejectsDuplicate(t *testing.T) {
	g := NewGraph[int, int](2)
	g.dst = []uint32{1, 1}
	g.edgeData = []int{0, 0}
	g.nodeIndex = []uint32{0, 2, 2}

	if err := g.CheckSorted(); err == nil {
		t.Fatal("expected duplicate adjacency to be rejected")
	}
}
