package utils

import (
	"time"

	"golang.org/x/exp/constraints"
)

// Pair is a small generic tuple.
type Pair[F any, S any] struct {
	First  F
	Second S
}

// BackOff sleeps a short, growing duration; used by workers spinning on a
// worklist or termination barrier before retrying.
func BackOff(count int) {
	if count > 2000 {
		count = 2000
	}
	time.Sleep(time.Duration((count+1)*100) * time.Microsecond)
}

// RoundUpPow rounds i up to the next power of two, used when growing a
// Bitmap.
func RoundUpPow(i uint64) uint64 {
	i--
	i |= i >> 1
	i |= i >> 2
	i |= i >> 4
	i |= i >> 8
	i |= i >> 16
	i |= i >> 32
	i++
	return i
}

func Max[T constraints.Ordered](x, y T) T {
	if x < y {
		return y
	}
	return x
}

func Min[T constraints.Ordered](x, y T) T {
	if x > y {
		return y
	}
	return x
}
