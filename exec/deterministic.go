package exec

import (
	"sort"
	"sync"
)

// ForEachDetOptions configures ForEachDeterministic.
type ForEachDetOptions struct {
	NumWorkers      int
	ConflictManager *ConflictManager
}

// ForEachDeterministic runs items to completion under DetBase or
// DetDisjoint scheduling: every item is assigned a stable key via idFn,
// and results never depend on goroutine scheduling.
//
// DetBase runs each round strictly in ascending key order on a single
// goroutine. This sacrifices the intra-round parallelism NonDeterministic
// mode gets, but makes the "commit order equals key order" guarantee
// trivial rather than requiring a priority-aware lock: there is only ever
// one iteration in flight, so nothing can race it.
//
// DetDisjoint recovers parallelism by splitting each iteration into a
// read-only first pass (IsFirstPass() == true) run for every item in the
// round concurrently — using a recording context that never blocks,
// since first passes only declare which resources they would touch — and
// a commit pass (IsFirstPass() == false) run only for the subset of
// items whose declared resources are disjoint from every lower-key
// winner in the same round, resolved with a single-threaded pass over
// results in key order. Losers re-enter the next round.
func ForEachDeterministic[V any](initial []V, idFn func(V) uint64, mode Mode, op OperatorFunc[V], opts ForEachDetOptions) *Stats {
	if mode == DetDisjoint {
		return forEachDetDisjoint(initial, idFn, op, opts)
	}
	return forEachDetBase(initial, idFn, op, opts)
}

func forEachDetBase[V any](initial []V, idFn func(V) uint64, op OperatorFunc[V], opts ForEachDetOptions) *Stats {
	stats := NewStats()
	pending := append([]V(nil), initial...)

	for len(pending) > 0 {
		sort.Slice(pending, func(i, j int) bool { return idFn(pending[i]) < idFn(pending[j]) })
		var nextRound []V
		for i, item := range pending {
			ctx := newContext[V](0, uint64(i+1), opts.ConflictManager, true)
			if err := op(item, ctx); err != nil {
				ctx.releaseAll()
				nextRound = append(nextRound, item)
				continue
			}
			nextRound = append(nextRound, ctx.pending...)
			ctx.releaseAll()
			stats.addCommitted()
		}
		pending = nextRound
	}
	return stats
}

type detOutcome[V any] struct {
	item    V
	touched map[uint32]bool
	err     error
}

func forEachDetDisjoint[V any](initial []V, idFn func(V) uint64, op OperatorFunc[V], opts ForEachDetOptions) *Stats {
	stats := NewStats()
	pending := append([]V(nil), initial...)
	limit := workerLimit(opts.NumWorkers)

	for len(pending) > 0 {
		sort.Slice(pending, func(i, j int) bool { return idFn(pending[i]) < idFn(pending[j]) })

		outcomes := make([]detOutcome[V], len(pending))
		sem := make(chan struct{}, limit)
		var wg sync.WaitGroup
		for i, item := range pending {
			wg.Add(1)
			sem <- struct{}{}
			go func(i int, item V) {
				defer wg.Done()
				defer func() { <-sem }()
				readCtx := newRecordingContext[V](uint64(i + 1))
				err := op(item, readCtx)
				outcomes[i] = detOutcome[V]{item: item, touched: readCtx.touched, err: err}
			}(i, item)
		}
		wg.Wait()

		var winners []int
		committed := map[uint32]bool{}
		var nextRound []V
		for i, o := range outcomes {
			if o.err != nil || conflictsWithEarlierWinner(o.touched, committed) {
				nextRound = append(nextRound, o.item)
				continue
			}
			for id := range o.touched {
				committed[id] = true
			}
			winners = append(winners, i)
		}

		commitPushed := make([][]V, len(winners))
		commitFailed := make([]bool, len(winners))
		var wg2 sync.WaitGroup
		for wi, i := range winners {
			wg2.Add(1)
			sem <- struct{}{}
			go func(wi, i int) {
				defer wg2.Done()
				defer func() { <-sem }()
				commitCtx := newContext[V](0, uint64(i+1), opts.ConflictManager, false)
				if err := op(outcomes[i].item, commitCtx); err != nil {
					commitCtx.releaseAll()
					commitFailed[wi] = true
					return
				}
				commitPushed[wi] = commitCtx.pending
				commitCtx.releaseAll()
				stats.addCommitted()
			}(wi, i)
		}
		wg2.Wait()

		for wi, i := range winners {
			if commitFailed[wi] {
				nextRound = append(nextRound, outcomes[i].item)
				continue
			}
			nextRound = append(nextRound, commitPushed[wi]...)
		}
		pending = nextRound
	}
	return stats
}

func conflictsWithEarlierWinner(touched map[uint32]bool, committed map[uint32]bool) bool {
	for id := range touched {
		if committed[id] {
			return true
		}
	}
	return false
}

func workerLimit(n int) int {
	if n <= 0 {
		return 4
	}
	return n
}
