package mathutils

import (
	"testing"
	"time"
)

func TestWatchPauseResume(t *testing.T) {
	w := Watch{}
	w.Start()
	time.Sleep(20 * time.Millisecond)
	running := w.Elapsed()
	if running <= 0 {
		t.Fatalf("expected positive elapsed time, got %v", running)
	}

	w.Pause()
	frozen := w.Elapsed()
	time.Sleep(20 * time.Millisecond)
	stillFrozen := w.Elapsed()
	if !FloatEquals(frozen.Seconds(), stillFrozen.Seconds(), 0.005) {
		t.Fatalf("elapsed advanced while paused: %v -> %v", frozen, stillFrozen)
	}

	w.UnPause()
	time.Sleep(20 * time.Millisecond)
	resumed := w.Elapsed()
	if resumed <= stillFrozen {
		t.Fatalf("elapsed did not advance after unpause: %v -> %v", stillFrozen, resumed)
	}

	if w.AbsoluteElapsed() < resumed {
		t.Fatalf("absolute elapsed %v should be >= paused-adjusted elapsed %v", w.AbsoluteElapsed(), resumed)
	}
}

func TestWatchDoublePausePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on double pause")
		}
	}()
	w := Watch{}
	w.Start()
	w.Pause()
	w.Pause()
}
