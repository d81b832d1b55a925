package worklist

import (
	"github.com/johnpzh/Galois/enforce"
	"github.com/johnpzh/Galois/perthread"
)

func enforceMonotonic(last, next int) {
	enforce.ENFORCE(last < 0 || next >= last, "monotonic OBIM indexer went backwards: ", last, " -> ", next)
}

// Indexer maps an item to a nonnegative bucket in [0, range].
type Indexer[V any] func(V) int

// OBIM is the ordered-by-integer-metric scheduler of spec §4.5: a
// bucketed priority worklist keyed by a small nonnegative integer index,
// with a per-worker cursor recording the lowest bucket that worker last
// saw non-empty. Priority is weak: a strictly lower metric will
// eventually be served before a strictly higher one, but there is no
// strong cross-thread linearization between workers.
//
// A "barrier" variant (synchronizing all workers between priority
// levels) and determinism under OBIM are both left as non-goals here;
// see the monotonic flag below and the runtime's execution-mode
// construction check for how that decision is enforced.
type OBIM[V any] struct {
	buckets   []*ChunkedFIFO[V]
	indexer   Indexer[V]
	cursor    *perthread.Storage[int]
	monotonic bool
	lastIndex *perthread.Storage[int]
}

var _ WorkerWorklist[int] = (*OBIM[int])(nil)

// NewOBIM builds an OBIM over buckets [0, rangeMax], keyed by indexer,
// for numWorkers cooperating goroutines. Each bucket is a ChunkedFIFO,
// matching the spec's usual backing choice. When monotonic is true, a
// push whose index is lower than the last index that worker pushed is
// treated as a caller bug and reported via enforce.ENFORCE.
func NewOBIM[V any](numWorkers, rangeMax int, indexer Indexer[V], monotonic bool) *OBIM[V] {
	buckets := make([]*ChunkedFIFO[V], rangeMax+1)
	for i := range buckets {
		buckets[i] = NewChunkedFIFO[V](numWorkers, true)
	}
	o := &OBIM[V]{
		buckets:   buckets,
		indexer:   indexer,
		cursor:    perthread.NewStorage[int](numWorkers),
		monotonic: monotonic,
	}
	if monotonic {
		init := -1
		o.lastIndex = perthread.NewStorageInit(numWorkers, init)
	}
	return o
}

func (o *OBIM[V]) PushOn(tid int, v V) {
	b := o.indexer(v)
	if o.monotonic {
		last := o.lastIndex.Get(tid)
		enforceMonotonic(*last, b)
		*last = b
	}
	o.buckets[b].PushOn(tid, v)
	cur := o.cursor.Get(tid)
	if *cur > b {
		*cur = b
	}
}

func (o *OBIM[V]) AbortedOn(tid int, v V) { o.PushOn(tid, v) }

// PopOn starts at the caller's cursor, advances forward past empty
// buckets, and wraps to zero once if it reaches the end without finding
// an item (so newly produced low-priority items are retried).
func (o *OBIM[V]) PopOn(tid int) (v V, ok bool) {
	cur := o.cursor.Get(tid)
	n := len(o.buckets)
	for pass := 0; pass < 2; pass++ {
		for b := *cur; b < n; b++ {
			if v, ok = o.buckets[b].PopOn(tid); ok {
				*cur = b
				return v, true
			}
		}
		*cur = 0
	}
	return v, false
}

func (o *OBIM[V]) Empty() bool {
	for _, b := range o.buckets {
		if !b.Empty() {
			return false
		}
	}
	return true
}

func (o *OBIM[V]) FillInitial(items []V) {
	for _, v := range items {
		b := o.indexer(v)
		o.buckets[b].FillInitial([]V{v})
	}
}
