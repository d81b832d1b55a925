package worklist

import "github.com/johnpzh/Galois/perthread"

// DefaultChunkSize is the compile-time chunk size from the spec; sized to
// amortize contention on the shared sealed-chunk queue to one lock
// acquisition per chunk boundary rather than one per item.
const DefaultChunkSize = 64

type chunk[V any] struct {
	items [DefaultChunkSize]V
	head  int
	tail  int
}

func (c *chunk[V]) full() bool  { return c.tail == DefaultChunkSize }
func (c *chunk[V]) empty() bool { return c.head == c.tail }
func (c *chunk[V]) push(v V) {
	c.items[c.tail] = v
	c.tail++
}
func (c *chunk[V]) pop() (v V, ok bool) {
	if c.empty() {
		return v, false
	}
	v = c.items[c.head]
	c.head++
	return v, true
}

// perWorker holds one worker's curr (pop-from) and next (push-to) chunk.
type perWorker[V any] struct {
	curr *chunk[V]
	next *chunk[V]
}

// ChunkedFIFO is the two-level queue of spec §4.4: each worker owns a
// curr/next chunk pair, and a shared FIFO holds sealed chunks. It
// amortizes contention on the shared queue to one event per chunk
// boundary while keeping hot data thread-local.
type ChunkedFIFO[V any] struct {
	local        *perthread.Storage[perWorker[V]]
	shared       *Adaptor[*chunk[V]]
	pushToLocal  bool
	chunkPool    []*chunk[V] // free-list, avoids reallocating a chunk[V] per boundary
	poolLock     *SimpleLock
	numWorkers   int
}

var _ WorkerWorklist[int] = (*ChunkedFIFO[int])(nil)

// NewChunkedFIFO builds a chunked FIFO for numWorkers cooperating
// goroutines. pushToLocal, when true, lets a worker with a live curr
// chunk push new items directly onto it (spec's push-to-local policy).
func NewChunkedFIFO[V any](numWorkers int, pushToLocal bool) *ChunkedFIFO[V] {
	return &ChunkedFIFO[V]{
		local:       perthread.NewStorage[perWorker[V]](numWorkers),
		shared:      NewFIFO[*chunk[V]](true),
		pushToLocal: pushToLocal,
		poolLock:    NewSimpleLock(true),
		numWorkers:  numWorkers,
	}
}

func (c *ChunkedFIFO[V]) getChunk() *chunk[V] {
	c.poolLock.Lock()
	defer c.poolLock.Unlock()
	if n := len(c.chunkPool); n > 0 {
		ch := c.chunkPool[n-1]
		c.chunkPool = c.chunkPool[:n-1]
		return ch
	}
	return &chunk[V]{}
}

func (c *ChunkedFIFO[V]) releaseChunk(ch *chunk[V]) {
	*ch = chunk[V]{}
	c.poolLock.Lock()
	c.chunkPool = append(c.chunkPool, ch)
	c.poolLock.Unlock()
}

// PushOn pushes v as produced by worker tid.
func (c *ChunkedFIFO[V]) PushOn(tid int, v V) {
	w := c.local.Get(tid)
	if c.pushToLocal && w.curr != nil && !w.curr.full() {
		w.curr.push(v)
		return
	}
	if w.next == nil {
		w.next = c.getChunk()
	}
	w.next.push(v)
	if w.next.full() {
		c.shared.Push(w.next)
		w.next = nil
	}
}

// AbortedOn always pushes onto next, never local curr, so an aborted
// item cannot livelock against the chunk currently being drained.
func (c *ChunkedFIFO[V]) AbortedOn(tid int, v V) {
	w := c.local.Get(tid)
	if w.next == nil {
		w.next = c.getChunk()
	}
	w.next.push(v)
	if w.next.full() {
		c.shared.Push(w.next)
		w.next = nil
	}
}

// PopOn pops the next item for worker tid.
func (c *ChunkedFIFO[V]) PopOn(tid int) (v V, ok bool) {
	w := c.local.Get(tid)
	if w.curr == nil || w.curr.empty() {
		if w.curr != nil {
			c.releaseChunk(w.curr)
			w.curr = nil
		}
		if sealed, ok2 := c.shared.Pop(); ok2 {
			w.curr = sealed
		} else if w.next != nil {
			w.curr, w.next = w.next, nil
		}
	}
	if w.curr == nil {
		return v, false
	}
	return w.curr.pop()
}

// Empty is conservative: local chunks and the shared FIFO must all be
// observed empty for it to report true.
func (c *ChunkedFIFO[V]) Empty() bool {
	if !c.shared.Empty() {
		return false
	}
	for tid := 0; tid < c.numWorkers; tid++ {
		w := c.local.Get(tid)
		if w.curr != nil && !w.curr.empty() {
			return false
		}
		if w.next != nil && !w.next.empty() {
			return false
		}
	}
	return true
}

// FillInitial seals items into chunks and pushes them to the shared
// queue; not thread-safe, intended for pre-parallel-region seeding.
func (c *ChunkedFIFO[V]) FillInitial(items []V) {
	var ch *chunk[V]
	for _, v := range items {
		if ch == nil {
			ch = c.getChunk()
		}
		ch.push(v)
		if ch.full() {
			c.shared.Push(ch)
			ch = nil
		}
	}
	if ch != nil {
		c.shared.Push(ch)
	}
}
