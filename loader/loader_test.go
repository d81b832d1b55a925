package loader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/johnpzh/Galois/graphstore"
)

func TestLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.gr")
	edges := []rawEdge{
		{src: 0, dst: 1, capacity: 5},
		{src: 0, dst: 2, capacity: 3},
		{src: 1, dst: 2, capacity: 2},
	}
	writeGrPfp(path, 3, edges)

	g := Load[int, int32](path,
		func(graphstore.NodeID) int { return 0 },
		DecodeInt32Capacity,
		false,
	)

	if g.NumNodes() != 3 {
		t.Fatalf("NumNodes = %d, want 3", g.NumNodes())
	}
	if g.NumEdges() != 3 {
		t.Fatalf("NumEdges = %d, want 3", g.NumEdges())
	}
	e, ok := g.FindEdge(0, 2)
	if !ok {
		t.Fatal("expected edge (0,2) to be found")
	}
	if got := *g.EdgeData(e, graphstore.Unprotected); got != 3 {
		t.Fatalf("edge (0,2) capacity = %d, want 3", got)
	}
	if err := g.CheckSorted(); err != nil {
		t.Fatalf("CheckSorted: %v", err)
	}
}

func TestPreprocessAddsReverseEdgesAndDropsSelfLoops(t *testing.T) {
	dir := t.TempDir()
	srcPath := filepath.Join(dir, "in.gr")
	dstPath := filepath.Join(dir, "in.gr.pfp")

	edges := []rawEdge{
		{src: 0, dst: 1, capacity: 4},
		{src: 1, dst: 2, capacity: 4},
		{src: 2, dst: 2, capacity: 1}, // self-loop, must be dropped
	}
	writeGrPfp(srcPath, 3, edges)

	Preprocess(srcPath, dstPath, false)

	g := Load[int, int32](dstPath,
		func(graphstore.NodeID) int { return 0 },
		DecodeInt32Capacity,
		false,
	)

	if g.NumEdges() != 4 { // 2 forward + 2 synthesized reverse
		t.Fatalf("NumEdges = %d, want 4", g.NumEdges())
	}
	if _, ok := g.FindEdge(1, 0); !ok {
		t.Fatal("expected synthesized reverse edge (1,0)")
	}
	if _, ok := g.FindEdge(2, 1); !ok {
		t.Fatal("expected synthesized reverse edge (2,1)")
	}
	if _, ok := g.FindEdge(2, 2); ok {
		t.Fatal("self-loop should have been dropped")
	}
	rev, _ := g.FindEdge(1, 0)
	if got := *g.EdgeData(rev, graphstore.Unprotected); got != 0 {
		t.Fatalf("synthesized reverse edge capacity = %d, want 0", got)
	}
}

func TestPreprocessSymmetricDirectlySkipsSynthesis(t *testing.T) {
	dir := t.TempDir()
	srcPath := filepath.Join(dir, "in.gr")
	dstPath := filepath.Join(dir, "in.gr.pfp")

	edges := []rawEdge{
		{src: 0, dst: 1, capacity: 4},
		{src: 1, dst: 0, capacity: 4},
	}
	writeGrPfp(srcPath, 2, edges)

	Preprocess(srcPath, dstPath, true)

	if _, err := os.Stat(dstPath); err != nil {
		t.Fatalf("expected output file: %v", err)
	}
	g := Load[int, int32](dstPath, func(graphstore.NodeID) int { return 0 }, DecodeInt32Capacity, false)
	if g.NumEdges() != 2 {
		t.Fatalf("NumEdges = %d, want 2 (no reverse synthesis)", g.NumEdges())
	}
}
