package exec

import (
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/johnpzh/Galois/utils"
	"github.com/johnpzh/Galois/worklist"
)

// OperatorFunc is the per-iteration body ForEach dispatches. An operator
// signals a conflict abort by returning exec.ErrConflict() after a
// failed Context.Acquire; any other non-nil error is treated the same
// way (aborted and retried) since spec §4.9 makes no distinction between
// a declared conflict and any other reason an iteration could not
// complete against its private view.
type OperatorFunc[V any] func(item V, ctx *Context[V]) error

// DoAllOptions configures DoAll.
type DoAllOptions struct {
	NumWorkers int
}

// DoAll applies op to every item exactly once, with no push-back and no
// conflict detection, matching spec §4.9's do_all: operators here are
// assumed independent by construction. Every worker claims the next
// unclaimed index from one shared atomic cursor, so no worker idles while
// items remain.
func DoAll[R any](items []R, op func(R), opts DoAllOptions) {
	if len(items) == 0 {
		return
	}
	numWorkers := opts.NumWorkers
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	var cursor int64 = -1
	var wg sync.WaitGroup
	for w := 0; w < numWorkers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				i := atomic.AddInt64(&cursor, 1)
				if i >= int64(len(items)) {
					return
				}
				op(items[i])
			}
		}()
	}
	wg.Wait()
}

// ForEachOptions configures ForEach.
type ForEachOptions struct {
	NumWorkers int
	// ConflictManager, when non-nil, backs every iteration's
	// Context.Acquire calls. Leave nil for operators that never call
	// Acquire (they can still Push and BreakLoop, just without conflict
	// detection).
	ConflictManager *ConflictManager
}

// ForEach drains wl, applying op to every item it yields — including
// items op pushes back onto wl — until the worklist empties or an
// operator calls Context.BreakLoop. An iteration that returns a non-nil
// error is aborted: its pushes are discarded, its acquired resources are
// released, and the item is re-published through wl.AbortedOn for a
// later retry.
//
// Termination uses the same active-worker-count discipline the teacher's
// runtime scaffolding assumes elsewhere for worker pools: a worker that
// fails to pop marks itself idle; once every worker is idle and the
// worklist independently reports empty, the run is over. A worker that
// wakes back up (pops successfully) re-marks itself active before doing
// anything else, so idle workers never race past work a busy one is
// about to publish.
func ForEach[V any](initial []V, wl worklist.WorkerWorklist[V], op OperatorFunc[V], opts ForEachOptions) *Stats {
	numWorkers := opts.NumWorkers
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	wl.FillInitial(initial)

	stats := NewStats()
	var iterCounter uint64
	active := int64(numWorkers)
	var broken int32

	var wg sync.WaitGroup
	for tid := 0; tid < numWorkers; tid++ {
		wg.Add(1)
		go func(tid int) {
			defer wg.Done()
			idle := false
			spins := 0
			for {
				if atomic.LoadInt32(&broken) != 0 {
					return
				}
				item, ok := wl.PopOn(tid)
				if !ok {
					if !idle {
						atomic.AddInt64(&active, -1)
						idle = true
					}
					if atomic.LoadInt64(&active) == 0 && wl.Empty() {
						return
					}
					utils.BackOff(spins)
					spins++
					continue
				}
				if idle {
					atomic.AddInt64(&active, 1)
					idle = false
				}
				spins = 0

				iterID := atomic.AddUint64(&iterCounter, 1)
				ctx := newContext[V](tid, iterID, opts.ConflictManager, true)
				err := op(item, ctx)
				if err != nil {
					ctx.releaseAll()
					wl.AbortedOn(tid, item)
					stats.addAborted()
					continue
				}
				for _, pushed := range ctx.pending {
					wl.PushOn(tid, pushed)
				}
				ctx.releaseAll()
				stats.addCommitted()
				if ctx.breakLoop {
					atomic.StoreInt32(&broken, 1)
					return
				}
			}
		}(tid)
	}
	wg.Wait()
	return stats
}
