package exec

import "errors"

// errConflict is the sentinel an operator returns to signal that it lost
// a race for a resource acquired via Context.Acquire and must be retried.
// It carries no state of its own; ForEach never surfaces it to the
// caller, only counts it in Stats.Aborted.
var errConflict = errors.New("exec: conflicting access, iteration aborted")

// ErrConflict returns the conflict sentinel that IsConflict recognizes;
// exported so operators built outside this package can signal the same
// abort path without importing an unexported value.
func ErrConflict() error { return errConflict }

// IsConflict reports whether err is the conflict sentinel.
func IsConflict(err error) bool {
	return errors.Is(err, errConflict)
}
