// Package mathutils provides small numeric helpers and the pausable
// stopwatch used to publish the runtime's named timers.
package mathutils

import (
	"sync"
	"time"

	"github.com/johnpzh/Galois/enforce"
)

// Watch is a pausable stopwatch. Pausing is used around bulk-synchronous
// maintenance phases (e.g. global relabel) that should not count against
// an algorithm-phase timer that is otherwise running continuously.
type Watch struct {
	mu           sync.RWMutex
	paused       bool
	pauseTime    time.Time
	startTime    time.Time
	adjustedTime time.Time
}

func (w *Watch) Start() {
	w.mu.Lock()
	defer w.mu.Unlock()
	enforce.ENFORCE(!w.paused, "watch cannot start while paused")
	w.startTime = time.Now()
	w.adjustedTime = w.startTime
}

func (w *Watch) Elapsed() time.Duration {
	w.mu.RLock()
	defer w.mu.RUnlock()
	now := time.Now()
	if w.paused {
		return now.Sub(w.adjustedTime) - now.Sub(w.pauseTime)
	}
	return now.Sub(w.adjustedTime)
}

func (w *Watch) AbsoluteElapsed() time.Duration {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return time.Since(w.startTime)
}

func (w *Watch) Pause() {
	w.mu.Lock()
	defer w.mu.Unlock()
	enforce.ENFORCE(!w.paused, "watch already paused")
	w.pauseTime = time.Now()
	w.paused = true
}

func (w *Watch) UnPause() {
	w.mu.Lock()
	defer w.mu.Unlock()
	enforce.ENFORCE(w.paused, "watch was not paused")
	w.adjustedTime = w.adjustedTime.Add(time.Since(w.pauseTime))
	w.paused = false
}
