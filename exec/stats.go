package exec

import (
	"sync/atomic"

	"github.com/johnpzh/Galois/mathutils"
)

// Stats is the statistics surface spec §6 asks every run to report:
// named stopwatches around the phases an algorithm breaks its work
// into, the committed and aborted iteration counts ForEach observes, and
// an EmptyMerges counter that algorithms maintain themselves.
//
// The named watches are here for algorithms to Start/Pause around their
// own phases (preflowpush's Init/Discharge/global-relabel phases in
// particular); ForEach itself only touches Committed and Aborted.
// preflowpush.Run counts in EmptyMerges the global relabels that leave
// no active node.
type Stats struct {
	InitializeTime    mathutils.Watch
	DischargeTime     mathutils.Watch
	ResetHeightsTime  mathutils.Watch
	UpdateHeightsTime mathutils.Watch
	FindWorkTime      mathutils.Watch
	GlobalRelabelTime mathutils.Watch

	Committed   uint64
	Aborted     uint64
	EmptyMerges uint64
}

// NewStats returns a zero-valued Stats with every watch ready to Start.
func NewStats() *Stats {
	return &Stats{}
}

func (s *Stats) addCommitted() { atomic.AddUint64(&s.Committed, 1) }
func (s *Stats) addAborted()   { atomic.AddUint64(&s.Aborted, 1) }
