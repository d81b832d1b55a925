package exec

import (
	"sync/atomic"
	"testing"

	"github.com/johnpzh/Galois/worklist"
)

func TestDoAllVisitsEveryItemExactlyOnce(t *testing.T) {
	items := make([]int, 200)
	for i := range items {
		items[i] = i
	}
	var seen [200]int32
	DoAll(items, func(i int) {
		atomic.AddInt32(&seen[i], 1)
	}, DoAllOptions{NumWorkers: 4})

	for i, c := range seen {
		if c != 1 {
			t.Fatalf("item %d visited %d times, want 1", i, c)
		}
	}
}

func TestForEachDrainsPushedWork(t *testing.T) {
	wl := worklist.AsWorkerWorklist[int](worklist.NewFIFO[int](true))
	var total int64
	op := func(item int, ctx *Context[int]) error {
		atomic.AddInt64(&total, int64(item))
		if item > 0 {
			ctx.Push(item - 1)
		}
		return nil
	}
	stats := ForEach([]int{3}, wl, op, ForEachOptions{NumWorkers: 2})
	// 3 + 2 + 1 + 0 = 6
	if total != 6 {
		t.Fatalf("total = %d, want 6", total)
	}
	if stats.Committed != 4 {
		t.Fatalf("Committed = %d, want 4", stats.Committed)
	}
}

func TestForEachAbortRetriesItem(t *testing.T) {
	wl := worklist.AsWorkerWorklist[int](worklist.NewFIFO[int](true))
	cm := NewConflictManager(1)
	var attempts int32
	op := func(item int, ctx *Context[int]) error {
		n := atomic.AddInt32(&attempts, 1)
		if n == 1 {
			// First attempt always aborts, simulating a lost conflict race.
			return ErrConflict()
		}
		if !ctx.Acquire(0) {
			return ErrConflict()
		}
		return nil
	}
	stats := ForEach([]int{1}, wl, op, ForEachOptions{NumWorkers: 1, ConflictManager: cm})
	if attempts != 2 {
		t.Fatalf("attempts = %d, want 2", attempts)
	}
	if stats.Aborted != 1 || stats.Committed != 1 {
		t.Fatalf("stats = %+v, want 1 aborted 1 committed", stats)
	}
}

func TestForEachBreakLoopStopsDispatch(t *testing.T) {
	wl := worklist.AsWorkerWorklist[int](worklist.NewFIFO[int](true))
	items := []int{1, 2, 3, 4, 5}
	op := func(item int, ctx *Context[int]) error {
		if item == 3 {
			ctx.BreakLoop()
		}
		return nil
	}
	stats := ForEach(items, wl, op, ForEachOptions{NumWorkers: 1})
	if stats.Committed == 0 {
		t.Fatal("expected at least one committed iteration before break")
	}
	// One worker pops in FIFO order, so items 4 and 5 are never dispatched.
	if stats.Committed != 3 {
		t.Fatalf("Committed = %d, want 3 (dispatch stops after item 3)", stats.Committed)
	}
}

func TestForEachDeterministicBaseIsOrderIndependentOfInputOrder(t *testing.T) {
	idFn := func(i int) uint64 { return uint64(i) }
	var order1, order2 []int
	run := func(items []int, order *[]int) {
		op := func(item int, ctx *Context[int]) error {
			*order = append(*order, item)
			return nil
		}
		ForEachDeterministic(items, idFn, DetBase, op, ForEachDetOptions{})
	}
	run([]int{3, 1, 2}, &order1)
	run([]int{1, 2, 3}, &order2)
	if len(order1) != 3 || len(order2) != 3 {
		t.Fatalf("expected 3 items processed each run, got %v and %v", order1, order2)
	}
	for i := range order1 {
		if order1[i] != order2[i] {
			t.Fatalf("orders diverged: %v vs %v", order1, order2)
		}
	}
}

func TestForEachDeterministicDisjointCommitsAllItems(t *testing.T) {
	idFn := func(i int) uint64 { return uint64(i) }
	cm := NewConflictManager(10)
	var committed int64
	op := func(item int, ctx *Context[int]) error {
		if !ctx.Acquire(uint32(item)) {
			return ErrConflict()
		}
		if ctx.IsFirstPass() {
			return nil
		}
		atomic.AddInt64(&committed, 1)
		return nil
	}
	items := []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}
	stats := ForEachDeterministic(items, idFn, DetDisjoint, op, ForEachDetOptions{ConflictManager: cm, NumWorkers: 4})
	if committed != int64(len(items)) {
		t.Fatalf("committed = %d, want %d", committed, len(items))
	}
	if stats.Committed != uint64(len(items)) {
		t.Fatalf("stats.Committed = %d, want %d", stats.Committed, len(items))
	}
}
