package worklist

import "github.com/johnpzh/Galois/utils"

// Priority is a thread-safe worklist backed by a binary min-heap: Pop
// always returns the least (per Less) currently-held item.
type Priority[V utils.PQI[V]] struct {
	lock *SimpleLock
	heap utils.PQ[V]
}

// NewPriority builds a priority worklist over any type implementing
// utils.PQI (a Less-than-comparable element).
func NewPriority[V utils.PQI[V]](concurrent bool) *Priority[V] {
	return &Priority[V]{lock: NewSimpleLock(concurrent)}
}

func (p *Priority[V]) Push(v V) {
	p.lock.Lock()
	p.heap.Push(v)
	p.lock.Unlock()
}

func (p *Priority[V]) Pop() (v V, ok bool) {
	p.lock.Lock()
	defer p.lock.Unlock()
	if p.heap.Len() == 0 {
		return v, false
	}
	return p.heap.Pop(), true
}

func (p *Priority[V]) Empty() bool {
	p.lock.Lock()
	defer p.lock.Unlock()
	return p.heap.Len() == 0
}

func (p *Priority[V]) Aborted(v V) { p.Push(v) }

func (p *Priority[V]) FillInitial(items []V) {
	p.heap = append(p.heap, items...)
	p.heap.Init()
}
