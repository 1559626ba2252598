// Package workload generates reproducible key access sequences
// for replaying against caches.
//
// Most patterns are a weighted mix of key bands: contiguous key
// ranges that an access is drawn from uniformly. Every sequence
// is drawn from an RNG seeded with [Seed].
package workload

import (
	"fmt"
	"math/bits"
	"math/rand"
	"slices"
	"strings"
)

type (
	// Generator produces a key sequence suited to a cache of the given capacity.
	// Sequence lengths are powers of two so callers may index with a mask.
	Generator = func(capacity int) []int
	// Pattern is a named [Generator].
	Pattern struct {
		Name     string
		Generate Generator
	}
	// band is a key range [base, base+size) chosen with weight share.
	band struct {
		share      float64
		base, size int
	}
	drawFunc = func(position int, rng *rand.Rand) int
)

// Seed is shared by every generator; change it to observe
// variance between runs.
const Seed = 1

// Length is the number of accesses in the built in patterns.
const Length = 1 << 16

// Patterns returns every built in access pattern.
func Patterns() []Pattern {
	return []Pattern{
		{"sequential", func(int) []int {
			// The scanned key space is larger than any
			// benchmarked capacity, so nothing is reused in time.
			const universe = Length
			return generate(Length/2, func(position int, _ *rand.Rand) int {
				return position % universe
			})
		}},
		{"loop", func(capacity int) []int {
			hot := max(capacity, 1)
			return mix(Length,
				band{share: 0.9, size: hot},
				band{share: 0.1, base: hot, size: max(8192-hot, 1)},
			)
		}},
		{"zipf", func(int) []int {
			return Zipf(16384, Length, 1.2)
		}},
		{"uniform", func(capacity int) []int {
			return Uniform(capacity*4, Length)
		}},
		{"phases", func(capacity int) []int {
			return Phases(capacity, 5, Length)
		}},
		{"mixed", Mixed},
	}
}

// Lookup returns the pattern with name (case insensitive).
func Lookup(name string) (Pattern, error) {
	patterns := Patterns()
	index := slices.IndexFunc(patterns, func(p Pattern) bool {
		return strings.EqualFold(p.Name, name)
	})
	if index == -1 {
		return Pattern{}, fmt.Errorf("unknown access pattern: %q", name)
	}
	return patterns[index], nil
}

// Uniform draws keys uniformly from [0, upperBound).
func Uniform(upperBound, length int) []int {
	return mix(length, band{share: 1, size: upperBound})
}

// Zipf draws keys in [0, universe) with exponent skew;
// low keys are the most popular.
func Zipf(universe, length int, skew float64) []int {
	var (
		zipf *rand.Zipf
		last = uint64(max(universe, 2) - 1)
	)
	return generate(length, func(_ int, rng *rand.Rand) int {
		if zipf == nil {
			zipf = rand.NewZipf(rng, skew, 1, last)
		}
		return int(zipf.Uint64())
	})
}

// Phases splits the sequence into phases, each drawing uniformly
// from its own working set of twice the capacity, so a cache
// must adapt whenever the phase changes.
func Phases(capacity, phases, length int) []int {
	var (
		workingSet = max(2*capacity, 1)
		phaseLen   = max(roundUp(length)/max(phases, 1), 1)
	)
	return generate(length, func(position int, rng *rand.Rand) int {
		return (position/phaseLen)*workingSet + rng.Intn(workingSet)
	})
}

// Mixed blends a small hot set, a warm set, a large cold set
// and a sequential scan that never repeats.
func Mixed(capacity int) []int {
	var (
		hot  = max(capacity/4, 1)
		warm = max(capacity, 1)
		cold = max(capacity*8, 1)
		keys = bands{
			{share: 0.5, size: hot},
			{share: 0.3, base: hot, size: warm},
			{share: 0.15, base: hot + warm, size: cold},
		}
		scanFrom = hot + warm + cold
		scanned  int
	)
	return generate(Length, func(_ int, rng *rand.Rand) int {
		if key, ok := keys.draw(rng); ok {
			return key
		}
		scanned++
		return scanFrom + scanned - 1
	})
}

type bands []band

// draw picks a band by share and a key within it.
// It reports false when the roll fell past the total share.
func (bs bands) draw(rng *rand.Rand) (int, bool) {
	roll := rng.Float64()
	for _, b := range bs {
		if roll < b.share {
			return b.base + rng.Intn(max(b.size, 1)), true
		}
		roll -= b.share
	}
	return 0, false
}

func mix(length int, keys ...band) []int {
	return generate(length, func(_ int, rng *rand.Rand) int {
		key, _ := bands(keys).draw(rng)
		return key
	})
}

func generate(length int, draw drawFunc) []int {
	var (
		rng = rand.New(rand.NewSource(Seed))
		seq = make([]int, roundUp(length))
	)
	for i := range seq {
		seq[i] = draw(i, rng)
	}
	return seq
}

// roundUp returns the smallest power of two >= length.
func roundUp(length int) int {
	if length <= 1 {
		return 1
	}
	return 1 << bits.Len(uint(length-1))
}
