package exec

import (
	"errors"
	"testing"
)

func TestIsConflictRecognizesTheSentinel(t *testing.T) {
	if !IsConflict(ErrConflict()) {
		t.Fatal("IsConflict(ErrConflict()) = false, want true")
	}
	if IsConflict(errors.New("some other failure")) {
		t.Fatal("IsConflict(unrelated error) = true, want false")
	}
	if IsConflict(nil) {
		t.Fatal("IsConflict(nil) = true, want false")
	}
}

func TestIsConflictSeesThroughWrapping(t *testing.T) {
	wrapped := errors.Join(errors.New("context"), ErrConflict())
	if !IsConflict(wrapped) {
		t.Fatal("IsConflict should see through errors.Join wrapping via errors.Is")
	}
}
