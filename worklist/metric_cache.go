package worklist

import "github.com/johnpzh/Galois/perthread"

const defaultCacheSlots = 4

type cacheSlot[V any] struct {
	item   V
	metric int
	filled bool
}

type cacheCell[V any] struct {
	slots [defaultCacheSlots]cacheSlot[V]
}

// MetricCache sits in front of a parent WorkerWorklist and keeps the few
// lowest-metric items CPU-local: on push, an empty slot is preferred; if
// all slots are full, the incoming item displaces a cached item only if
// it is strictly lower-metric, spilling the displaced item to the
// parent. Pop always drains cached items before consulting the parent.
type MetricCache[V any] struct {
	parent  WorkerWorklist[V]
	metric  func(V) int
	local   *perthread.Storage[cacheCell[V]]
}

var _ WorkerWorklist[int] = (*MetricCache[int])(nil)

// NewMetricCache wraps parent with a per-worker bounded cache keyed by
// metric (lower is higher priority).
func NewMetricCache[V any](numWorkers int, parent WorkerWorklist[V], metric func(V) int) *MetricCache[V] {
	return &MetricCache[V]{
		parent: parent,
		metric: metric,
		local:  perthread.NewStorage[cacheCell[V]](numWorkers),
	}
}

func (m *MetricCache[V]) PushOn(tid int, v V) {
	cell := m.local.Get(tid)
	met := m.metric(v)
	for i := range cell.slots {
		if !cell.slots[i].filled {
			cell.slots[i] = cacheSlot[V]{item: v, metric: met, filled: true}
			return
		}
	}
	// All slots full: find the worst (highest-metric) cached item.
	worst := 0
	for i := 1; i < len(cell.slots); i++ {
		if cell.slots[i].metric > cell.slots[worst].metric {
			worst = i
		}
	}
	if met < cell.slots[worst].metric {
		spilled := cell.slots[worst].item
		cell.slots[worst] = cacheSlot[V]{item: v, metric: met, filled: true}
		m.parent.PushOn(tid, spilled)
		return
	}
	m.parent.PushOn(tid, v)
}

func (m *MetricCache[V]) AbortedOn(tid int, v V) { m.PushOn(tid, v) }

func (m *MetricCache[V]) PopOn(tid int) (v V, ok bool) {
	cell := m.local.Get(tid)
	best := -1
	for i := range cell.slots {
		if cell.slots[i].filled && (best == -1 || cell.slots[i].metric < cell.slots[best].metric) {
			best = i
		}
	}
	if best != -1 {
		v = cell.slots[best].item
		cell.slots[best] = cacheSlot[V]{}
		return v, true
	}
	return m.parent.PopOn(tid)
}

func (m *MetricCache[V]) Empty() bool {
	for tid := 0; tid < m.local.Len(); tid++ {
		cell := m.local.Get(tid)
		for i := range cell.slots {
			if cell.slots[i].filled {
				return false
			}
		}
	}
	return m.parent.Empty()
}

func (m *MetricCache[V]) FillInitial(items []V) {
	m.parent.FillInitial(items)
}
