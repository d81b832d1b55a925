// Package exec implements the operator-execution loop: do_all/for_each
// dispatchers, the per-iteration conflict/abort contract, deterministic
// scheduling modes, and the parallel-break/quiescence protocol described
// in spec §4.9.
package exec

import "github.com/johnpzh/Galois/enforce"

// Mode selects the execution discipline for ForEach.
type Mode int

const (
	// NonDeterministic executes items as the worklist yields them, with
	// per-iteration conflict detection and abort/retry.
	NonDeterministic Mode = iota
	// DetBase assigns every item a stable ordering key and commits
	// iterations in that key order within rounds.
	DetBase
	// DetDisjoint splits each iteration into a read-only first pass and a
	// commit second pass, letting disjoint iterations run truly in
	// parallel.
	DetDisjoint
)

// CheckOBIMCompatible enforces the open question in spec §9: OBIM is
// treated as non-deterministic-only unless a barrier variant is
// explicitly engaged. isBarrierOBIM lets a caller assert it constructed
// a barrier-synchronized OBIM and opt back in.
func CheckOBIMCompatible(mode Mode, usesOBIM bool, isBarrierOBIM bool) {
	if mode == NonDeterministic {
		return
	}
	enforce.ENFORCE(!usesOBIM || isBarrierOBIM,
		"OBIM worklists are non-deterministic-only unless the barrier variant is engaged")
}
