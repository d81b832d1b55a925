// Package enforce provides a single fatal-assertion helper used across the
// runtime for invariant checks that must never fail in a correct program.
package enforce

import (
	"fmt"
	"math"

	"github.com/rs/zerolog/log"
)

func init() {
	checkCompiler()
}

// ENFORCE halts the program with a logged diagnostic if query is a false
// bool, a non-nil error, or a non-empty failure string. A nil query is
// treated as success, so callers can write enforce.ENFORCE(err) directly.
func ENFORCE(query interface{}, args ...interface{}) {
	switch t := query.(type) {
	case bool:
		if !t {
			log.Panic().Msg(fmt.Sprint("ENFORCE failed: ", fmt.Sprint(args...)))
		}
	case error:
		if t != nil {
			log.Panic().Err(t).Msg(fmt.Sprint("ENFORCE failed: ", fmt.Sprint(args...)))
		}
	case string:
		log.Panic().Msg(fmt.Sprint("ENFORCE failed: ", t, " ", fmt.Sprint(args...)))
	case nil:
		// Allow nil, so enforce.ENFORCE(err) reads naturally when err is nil.
	default:
		log.Panic().Msg(fmt.Sprint("ENFORCE: incorrect usage with type ", fmt.Sprintf("%T", t), " value ", t, " ", fmt.Sprint(args...)))
	}
}

// FAIL is shorthand for an unconditional ENFORCE(false, ...).
func FAIL(args ...interface{}) {
	ENFORCE(false, args...)
}

// checkCompiler enforces a 64-bit machine, since node/edge counts and
// residual capacities are packed with 64-bit-width assumptions.
func checkCompiler() {
	myInt := int(math.MaxInt64)
	myInt64 := int64(math.MaxInt64)
	ENFORCE(uint64(myInt) == uint64(myInt64), "must be on a 64 bit system")
}
