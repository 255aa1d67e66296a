package entity

import (
	"math/rand/v2"
	"sync/atomic"
)

// Randomizer supplies the random factor applied to a horse on each move.
// Implementations must be safe for concurrent use: a race advances all of
// its horses at the same time.
type Randomizer interface {
	// RandomDouble returns a value in [min, max].
	RandomDouble(min, max float64) float64
}

// RandomizerFunc adapts an ordinary function to the Randomizer interface.
type RandomizerFunc func(min, max float64) float64

// RandomDouble calls f(min, max).
func (f RandomizerFunc) RandomDouble(min, max float64) float64 {
	return f(min, max)
}

// uniformRandomizer draws from the runtime's per-goroutine generator,
// which needs no locking.
type uniformRandomizer struct{}

func (uniformRandomizer) RandomDouble(min, max float64) float64 {
	return min + rand.Float64()*(max-min)
}

type randomizerHolder struct {
	r Randomizer
}

var defaultRandomizer atomic.Pointer[randomizerHolder]

func init() {
	defaultRandomizer.Store(&randomizerHolder{r: uniformRandomizer{}})
}

// DefaultRandomizer returns the process-wide randomizer used by horses
// that were built without WithRandomizer.
func DefaultRandomizer() Randomizer {
	return defaultRandomizer.Load().r
}

// SetDefaultRandomizer replaces the process-wide randomizer and returns a
// function restoring the previous one. Passing nil restores the uniform
// generator.
//
//	restore := entity.SetDefaultRandomizer(entity.RandomizerFunc(func(_, _ float64) float64 { return 0.5 }))
//	defer restore()
func SetDefaultRandomizer(r Randomizer) (restore func()) {
	if r == nil {
		r = uniformRandomizer{}
	}
	prev := defaultRandomizer.Swap(&randomizerHolder{r: r})
	return func() {
		defaultRandomizer.Store(prev)
	}
}
