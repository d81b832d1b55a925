package unionfind

import (
	"sync"
	"testing"
)

func TestMergeReturnsTrueOnceForDistinctComponents(t *testing.T) {
	uf := New(2)
	if !uf.Merge(0, 1) {
		t.Fatal("expected first merge of distinct components to return true")
	}
	if uf.Merge(0, 1) {
		t.Fatal("expected second merge of the now-same component to return false")
	}
	if !uf.Connected(0, 1) {
		t.Fatal("expected 0 and 1 to be connected after merge")
	}
}

func TestFindAndCompressIdempotent(t *testing.T) {
	uf := New(5)
	uf.Merge(0, 1)
	uf.Merge(1, 2)
	uf.Merge(2, 3)
	uf.Merge(3, 4)

	root := uf.FindAndCompress(0)
	snapshot := append([]uint32(nil), uf.parent...)

	for n := uint32(0); n < 5; n++ {
		if got := uf.FindAndCompress(n); got != root {
			t.Fatalf("node %d: expected root %d, got %d", n, root, got)
		}
	}
	for i, p := range uf.parent {
		if p != snapshot[i] {
			t.Fatalf("second FindAndCompress moved parent[%d]: %d -> %d", i, snapshot[i], p)
		}
	}
}

func TestMergeConcurrentExactlyOneWinner(t *testing.T) {
	uf := New(2)
	var wg sync.WaitGroup
	results := make([]bool, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			results[idx] = uf.Merge(0, 1)
		}(i)
	}
	wg.Wait()

	trueCount := 0
	for _, r := range results {
		if r {
			trueCount++
		}
	}
	if trueCount != 1 {
		t.Fatalf("expected exactly one winning merge, got %d", trueCount)
	}
	if !uf.Connected(0, 1) {
		t.Fatal("expected components to be connected after concurrent merges")
	}
}
