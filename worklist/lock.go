package worklist

import (
	"runtime"
	"sync/atomic"
)

// SimpleLock is a spin mutex whose behaviour is picked at construction:
// in serial mode Lock/Unlock are no-ops, in concurrent mode it provides
// mutual exclusion. This lets a single worklist implementation serve
// both a single-threaded driver and a multi-threaded one without
// duplicating code, mirroring how the underlying container is unaware
// of which mode wraps it.
type SimpleLock struct {
	concurrent bool
	state      int32
}

// NewSimpleLock builds a lock; pass concurrent=false to get no-op
// lock/unlock for single-threaded use.
func NewSimpleLock(concurrent bool) *SimpleLock {
	return &SimpleLock{concurrent: concurrent}
}

func (l *SimpleLock) Lock() {
	if !l.concurrent {
		return
	}
	spins := 0
	for !atomic.CompareAndSwapInt32(&l.state, 0, 1) {
		spins++
		if spins > 32 {
			runtime.Gosched()
			spins = 0
		}
	}
}

func (l *SimpleLock) Unlock() {
	if !l.concurrent {
		return
	}
	atomic.StoreInt32(&l.state, 0)
}
