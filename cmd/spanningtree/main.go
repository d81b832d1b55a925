// Command spanningtree computes a spanning forest of a binary CSR graph
// file using one of three algorithm variants (-algo demo|asynchronous|
// blockedasync). Positional argument: <input file>.
package main

import (
	"github.com/rs/zerolog/log"

	"github.com/johnpzh/Galois/config"
	"github.com/johnpzh/Galois/exec"
	"github.com/johnpzh/Galois/graphstore"
	"github.com/johnpzh/Galois/loader"
	"github.com/johnpzh/Galois/mathutils"
	"github.com/johnpzh/Galois/spanningforest"
	"github.com/johnpzh/Galois/utils"
)

func main() {
	opts := config.FlagsToOptions()
	if len(opts.Args) < 1 {
		log.Panic().Msg("Usage: spanningtree [flags] <input file>")
	}

	initTimer := &exec.NewStats().InitializeTime
	initTimer.Start()

	nodeInit := func(graphstore.NodeID) struct{} { return struct{}{} }
	decode := func([]byte) struct{} { return struct{}{} }
	g := loader.Load[struct{}, struct{}](opts.Args[0], nodeInit, decode, true)

	initTimer.Pause()
	log.Info().Msg("Num nodes: " + utils.V(g.NumNodes()) + ", Num edges: " + utils.V(g.NumEdges()))
	log.Info().Msg("Median out-degree: " + utils.V(medianOutDegree(g)) + ", Max out-degree: " + utils.V(maxOutDegree(g)))

	utils.MemoryStats()
	var forest *spanningforest.Forest
	switch opts.Algorithm {
	case config.Demo:
		forest = spanningforest.Demo(g, opts.NumThreads)
	case config.BlockedAsync:
		forest = spanningforest.BlockedAsync(g, opts.NumThreads)
	default:
		forest = spanningforest.Async(g, opts.NumThreads)
	}

	numComponents := spanningforest.NumComponents(g, forest)
	log.Info().Msg("Num trees: " + utils.V(numComponents))
	log.Info().Msg("Tree edges: " + utils.V(len(forest.Edges)))
	log.Info().Msg("Empty merges: " + utils.V(forest.EmptyMerges))
	log.Info().Msg("Load, " + utils.F("%.3f", initTimer.Elapsed().Seconds()*1000))
	utils.MemoryStats()

	if err := spanningforest.Verify(g, forest); err != nil {
		log.Panic().Err(err).Msg("verification failed")
	}
}

func medianOutDegree(g *spanningforest.Graph) float64 {
	degrees := make([]int, g.NumNodes())
	for _, n := range g.Nodes() {
		degrees[n] = len(g.Edges(n))
	}
	return mathutils.Median(degrees)
}

func maxOutDegree(g *spanningforest.Graph) uint64 {
	var max uint64
	for _, n := range g.Nodes() {
		max = mathutils.MaxUint64(uint64(len(g.Edges(n))), max)
	}
	return max
}
