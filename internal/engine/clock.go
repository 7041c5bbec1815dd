package engine

import (
	"math/rand/v2"
	"time"
)

const dateLayout = "2006-01-02"

type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// FixedClock always reports the same instant.
type FixedClock time.Time

func (c FixedClock) Now() time.Time { return time.Time(c) }

// Rand is the uniform random source used for shuffling.
type Rand interface {
	IntN(n int) int
}

// NewRand returns a PCG-backed source. A zero seed picks a time-based one.
func NewRand(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// DayKey formats t as the calendar-day key used for meal logs and the
// once-per-day broth rule.
func DayKey(t time.Time) string {
	return t.Format(dateLayout)
}

func shuffle[T any](items []T, rnd Rand) []T {
	out := make([]T, len(items))
	copy(out, items)
	for i := len(out) - 1; i > 0; i-- {
		j := rnd.IntN(i + 1)
		out[i], out[j] = out[j], out[i]
	}
	return out
}
