package preflowpush

import (
	"runtime"
	"sync/atomic"

	"github.com/johnpzh/Galois/exec"
	"github.com/johnpzh/Galois/graphstore"
	"github.com/johnpzh/Galois/worklist"
)

// RunOptions configures a Run call. RelabelInterval overrides
// DefaultRelabelInterval when non-zero; a negative value disables global
// relabeling entirely. UseHLOrder switches the discharge worklist to an
// OBIM keyed by -height (the highest-label heuristic).
type RunOptions struct {
	NumWorkers      int
	RelabelInterval int
	UseHLOrder      bool
	DetMode         exec.Mode
}

// Run drives the full preflow-push loop described in spec section 4.10:
// seed the preflow, discharge to quiescence (or until BETA-weighted work
// crosses the relabel interval), global-relabel, and repeat until a
// discharge round produces no more active nodes.
func Run(g *Graph, source, sink graphstore.NodeID, opts RunOptions) *exec.Stats {
	exec.CheckOBIMCompatible(opts.DetMode, opts.UseHLOrder, false)

	if opts.NumWorkers <= 0 {
		opts.NumWorkers = runtime.NumCPU()
	}

	interval := opts.RelabelInterval
	if interval == 0 {
		interval = DefaultRelabelInterval(g)
	}

	stats := exec.NewStats()
	stats.DischargeTime.Start()
	stats.GlobalRelabelTime.Start()
	stats.GlobalRelabelTime.Pause()
	stats.ResetHeightsTime.Start()
	stats.ResetHeightsTime.Pause()
	stats.UpdateHeightsTime.Start()
	stats.UpdateHeightsTime.Pause()
	stats.FindWorkTime.Start()
	stats.FindWorkTime.Pause()

	active := Init(g, source, sink)
	cm := exec.NewConflictManager(g.NumNodes())

	for len(active) > 0 {
		var workUnits int64
		shouldRelabel := int32(0)

		op := func(n graphstore.NodeID, ctx *exec.Context[graphstore.NodeID]) error {
			if !acquireNeighborhood(g, n, ctx) {
				return exec.ErrConflict()
			}
			if opts.DetMode == exec.DetDisjoint && ctx.IsFirstPass() {
				// Read-only declaration pass: acquireNeighborhood above has
				// already recorded every resource this iteration would
				// touch. Mutation happens only on the commit pass.
				return nil
			}
			relabeled := Discharge(g, n, source, sink, ctx.Push)
			inc := int64(1)
			if relabeled {
				inc += BETA
			}
			v := atomic.AddInt64(&workUnits, inc)
			if interval > 0 && v >= int64(interval) {
				atomic.StoreInt32(&shouldRelabel, 1)
				ctx.BreakLoop()
			}
			return nil
		}

		var loopStats *exec.Stats
		switch opts.DetMode {
		case exec.DetBase, exec.DetDisjoint:
			idFn := func(n graphstore.NodeID) uint64 { return uint64(n) }
			loopStats = exec.ForEachDeterministic(active, idFn, opts.DetMode, op, exec.ForEachDetOptions{
				NumWorkers:      opts.NumWorkers,
				ConflictManager: cm,
			})
		default:
			wl := dischargeWorklist(g, opts, active)
			loopStats = exec.ForEach(active, wl, op, exec.ForEachOptions{
				NumWorkers:      opts.NumWorkers,
				ConflictManager: cm,
			})
		}
		stats.Committed += loopStats.Committed
		stats.Aborted += loopStats.Aborted

		if atomic.LoadInt32(&shouldRelabel) == 0 {
			break
		}

		stats.DischargeTime.Pause()
		stats.GlobalRelabelTime.UnPause()
		stats.ResetHeightsTime.UnPause()
		// GlobalRelabel folds reset+BFS+find-work into one call, so the
		// whole call is charged to UpdateHeightsTime; ResetHeightsTime and
		// FindWorkTime are un-paused and paused again around it without
		// measuring any of its work.
		stats.ResetHeightsTime.Pause()
		stats.UpdateHeightsTime.UnPause()

		active = GlobalRelabel(g, source, sink, opts.NumWorkers)
		if len(active) == 0 {
			stats.EmptyMerges++
		}

		stats.UpdateHeightsTime.Pause()
		stats.FindWorkTime.UnPause()
		stats.FindWorkTime.Pause()
		stats.GlobalRelabelTime.Pause()
		stats.DischargeTime.UnPause()
	}

	return stats
}

func dischargeWorklist(g *Graph, opts RunOptions, initial []graphstore.NodeID) worklist.WorkerWorklist[graphstore.NodeID] {
	if !opts.UseHLOrder {
		return worklist.AsWorkerWorklist[graphstore.NodeID](worklist.NewFIFO[graphstore.NodeID](true))
	}
	// opts.NumWorkers is resolved to the same effective worker count Run
	// passes to exec.ForEach/ForEachDeterministic before this is called.
	numWorkers := opts.NumWorkers
	// OBIM serves its lowest-indexed bucket first, so the highest-label
	// heuristic (discharge the node with the greatest height first) maps
	// height to a descending index: numNodes-height.
	numNodes := g.NumNodes()
	indexer := func(n graphstore.NodeID) int {
		return numNodes - int(g.Data(n, graphstore.Unprotected).Height)
	}
	return worklist.NewOBIM(numWorkers, numNodes, indexer, false)
}
