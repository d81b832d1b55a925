// Package config parses the command-line surface shared by the
// preflowpush and spanningtree binaries, following the same
// flag-then-FlagsToOptions shape the runtime's ambient tooling uses
// elsewhere: declare every flag up front, call flag.Parse once, and
// return a plain options struct the algorithm packages consume.
package config

import (
	"flag"
	"os"
	"runtime"

	"github.com/rs/zerolog/log"

	"github.com/johnpzh/Galois/exec"
	"github.com/johnpzh/Galois/utils"
)

// Algorithm selects which execution strategy a driver runs.
type Algorithm string

const (
	Demo          Algorithm = "demo"
	Asynchronous  Algorithm = "asynchronous"
	BlockedAsync  Algorithm = "blockedasync"
)

// detModeFromFlag maps the CLI's -detAlgo string onto exec.Mode.
func detModeFromFlag(name string) exec.Mode {
	switch name {
	case "detBase":
		return exec.DetBase
	case "detDisjoint":
		return exec.DetDisjoint
	default:
		return exec.NonDeterministic
	}
}

// Options is the parsed command line shared by both drivers. Not every
// field is meaningful to every algorithm; preflowpush ignores Algorithm,
// spanningtree ignores UseHLOrder/UseUnitCapacity/RelabelInterval/DetMode,
// and neither driver reads UseSymmetricDirectly.
type Options struct {
	NumThreads           int
	DebugLevel           int
	NoColour             bool
	UseHLOrder           bool
	UseUnitCapacity      bool
	UseSymmetricDirectly bool
	RelabelInterval      int
	Algorithm            Algorithm
	DetMode              exec.Mode

	// Positional arguments left after flag parsing: the input file, and
	// for preflowpush, the source and sink node ids as strings.
	Args []string
}

// FlagsToOptions declares the shared flag set, parses os.Args, and
// returns the resulting Options. Call once per process.
func FlagsToOptions() Options {
	threadPtr := flag.Int("t", runtime.NumCPU(), "Thread count for the algorithm.")
	debugPtr := flag.Int("debug", 0, "Debug level: 0 info, 1 debug, 2 trace.")
	colourPtr := flag.Bool("nc", false, "Disable coloured log output.")

	hlPtr := flag.Bool("useHLOrder", false, "Use the highest-label heuristic (OBIM keyed by -height) for work ordering.")
	unitCapPtr := flag.Bool("useUnitCapacity", false, "Treat every edge as having unit capacity, ignoring the loaded edge data.")
	symmetricPtr := flag.Bool("useSymmetricDirectly", false, "Assume the input is already symmetric; skip reverse-edge synthesis.")
	relabelPtr := flag.Int("relabel", 0, "Global relabel interval override. 0 selects the ALPHA/BETA heuristic default.")

	algoPtr := flag.String("algo", "asynchronous", "Algorithm variant: demo, asynchronous, or blockedasync.")
	detAlgoPtr := flag.String("detAlgo", "nondet", "Scheduling discipline: nondet, detBase, or detDisjoint.")

	flag.Parse()

	if *colourPtr {
		utils.SetLoggerConsole(true)
	}
	utils.SetLevel(*debugPtr)

	if flag.NArg() == 0 {
		log.Info().Msg("Usage: <input file> [source] [sink]")
		flag.Usage()
		os.Exit(1)
	}

	threads := *threadPtr
	if threads <= 0 {
		log.Panic().Msg("Invalid thread count.")
	} else if threads > runtime.NumCPU() {
		log.Warn().Msg("Thread count is greater than CPU count.")
	}

	algo := Algorithm(*algoPtr)
	switch algo {
	case Demo, Asynchronous, BlockedAsync:
	default:
		log.Panic().Str("algo", *algoPtr).Msg("Unknown algorithm variant.")
	}

	return Options{
		NumThreads:           threads,
		DebugLevel:           *debugPtr,
		NoColour:             *colourPtr,
		UseHLOrder:           *hlPtr,
		UseUnitCapacity:      *unitCapPtr,
		UseSymmetricDirectly: *symmetricPtr,
		RelabelInterval:      *relabelPtr,
		Algorithm:            algo,
		DetMode:              detModeFromFlag(*detAlgoPtr),
		Args:                 flag.Args(),
	}
}
