package exec

// Context is the capability handle an operator receives on every
// invocation. It is only valid for the duration of that call: pushing,
// breaking, or acquiring resources after the operator returns has no
// defined effect.
type Context[V any] struct {
	tid     int
	iterID  uint64
	cm      *ConflictManager
	touched map[uint32]bool

	pending    []V
	breakLoop  bool
	cautious   bool
	firstPass  bool
	recordOnly bool
}

func newContext[V any](tid int, iterID uint64, cm *ConflictManager, firstPass bool) *Context[V] {
	return &Context[V]{tid: tid, iterID: iterID, cm: cm, firstPass: firstPass}
}

// newRecordingContext builds a context whose Acquire calls only declare
// intent to touch id, without taking any real conflict token. Used for
// DetDisjoint's read-only first pass, where iterations run in parallel
// purely to discover their read sets and must never block each other.
func newRecordingContext[V any](iterID uint64) *Context[V] {
	return &Context[V]{iterID: iterID, firstPass: true, recordOnly: true}
}

// Push queues v to be added to the worklist once this iteration commits.
// Pushes from an iteration that later aborts are discarded.
func (c *Context[V]) Push(v V) {
	c.pending = append(c.pending, v)
}

// BreakLoop requests that the enclosing ForEach stop dispatching new
// iterations once currently in-flight ones drain (spec §4.9's
// parallel-break protocol). It does not interrupt other in-flight
// iterations.
func (c *Context[V]) BreakLoop() {
	c.breakLoop = true
}

// CautiousPoint marks that the operator has finished acquiring every
// resource it will touch, matching the "cautious" scheduling discipline:
// operators written this way never need to roll back partial side
// effects, since all conflicts are detected before any mutation.
func (c *Context[V]) CautiousPoint() {
	c.cautious = true
}

// IsFirstPass reports whether this call is the read-only first pass of a
// DetDisjoint iteration. Operators running under DetBase or
// NonDeterministic always see true here trivially, since they have no
// second pass; DetDisjoint operators must check this and skip mutation
// on the first pass.
func (c *Context[V]) IsFirstPass() bool {
	return c.firstPass
}

// Acquire claims a conflict token for resource id under this iteration.
// It returns false the moment a concurrently running iteration already
// holds a token this one needs; the operator should return errConflict
// immediately in that case rather than mutate more state.
func (c *Context[V]) Acquire(id uint32) bool {
	if c.touched == nil {
		c.touched = make(map[uint32]bool)
	}
	if c.recordOnly {
		c.touched[id] = true
		return true
	}
	if c.cm == nil {
		return true
	}
	if !c.cm.TryAcquire(id, c.iterID) {
		return false
	}
	c.touched[id] = true
	return true
}

func (c *Context[V]) releaseAll() {
	if c.cm == nil {
		return
	}
	for id := range c.touched {
		c.cm.Release(id, c.iterID)
	}
}
