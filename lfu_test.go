package cachepolicy_test

import (
	"errors"
	"maps"
	"testing"

	cachepolicy "github.com/djdv/go-cachepolicy"
)

func TestLFU(t *testing.T) {
	t.Run("invalid decay", lfuInvalidDecay)
	t.Run("frequencies", lfuFrequencies)
	t.Run("update bumps frequency", lfuUpdateBumps)
	t.Run("histogram", lfuHistogram)
	t.Run("decay", lfuDecay)
}

func newLFU(tb testing.TB, capacity int, options ...cachepolicy.LFUOption) *cachepolicy.LFU[string, int] {
	tb.Helper()
	cache, err := cachepolicy.NewLFU[string, int](capacity, options...)
	if err != nil {
		tb.Fatal(err)
	}
	return cache
}

func checkFrequency(tb testing.TB, cache *cachepolicy.LFU[string, int], key string, want int) {
	tb.Helper()
	got, ok := cache.Frequency(key)
	if !ok {
		tb.Fatalf("expected key %q to be resident", key)
	}
	if got != want {
		tb.Fatalf("unexpected frequency for %q"+
			"\n\tgot: %d"+
			"\n\twant: %d",
			key, got, want)
	}
}

func lfuInvalidDecay(t *testing.T) {
	t.Parallel()
	cache, err := cachepolicy.NewLFU[int, int](1, cachepolicy.WithDecay(0))
	if cache != nil || !errors.Is(err, cachepolicy.ErrInvalidOption) {
		t.Fatalf("expected %v but got: %v %v",
			cachepolicy.ErrInvalidOption, cache, err)
	}
}

func lfuFrequencies(t *testing.T) {
	t.Parallel()
	const capacity = 3
	cache := newLFU(t, capacity)
	cache.Set("a", 1)
	cache.Set("b", 2)
	cache.Set("c", 3)
	for range 3 {
		mustGet[string, int](t, cache, "a")
	}
	mustGet[string, int](t, cache, "c")
	checkFrequency(t, cache, "a", 4)
	checkFrequency(t, cache, "b", 1)
	checkFrequency(t, cache, "c", 2)
	keysMatch[string, int](t, cache, []string{"b", "c", "a"}, "eviction order")

	cache.Set("d", 4)
	mustMiss[string, int](t, cache, "b", "lowest frequency")
	// d (1) is now the minimum, ahead of c (2).
	cache.Set("e", 5)
	mustMiss[string, int](t, cache, "d", "lowest frequency")
	checkGet[string, int](t, cache, "c", 3, "higher frequency")
}

func lfuUpdateBumps(t *testing.T) {
	t.Parallel()
	const capacity = 2
	cache := newLFU(t, capacity)
	cache.Set("a", 1)
	cache.Set("b", 2)
	cache.Set("a", 10)
	checkFrequency(t, cache, "a", 2)
	checkSize[string, int](t, cache, capacity, "after update")
	cache.Set("c", 3)
	mustMiss[string, int](t, cache, "b", "not updated")
	checkGet[string, int](t, cache, "a", 10, "updated")
}

func lfuHistogram(t *testing.T) {
	t.Parallel()
	const capacity = 4
	cache := newLFU(t, capacity)
	for _, key := range []string{"a", "b", "c", "d"} {
		cache.Set(key, 0)
	}
	mustGet[string, int](t, cache, "a")
	mustGet[string, int](t, cache, "a")
	mustGet[string, int](t, cache, "b")
	stats := cache.Stats()
	want := map[int]int{1: 2, 2: 1, 3: 1}
	if !maps.Equal(stats.Frequencies, want) || stats.MinFrequency != 1 {
		t.Fatalf("unexpected histogram"+
			"\n\tgot: %v (min %d)"+
			"\n\twant: %v (min 1)",
			stats.Frequencies, stats.MinFrequency, want)
	}
	fields := stats.Map()
	for field, want := range map[string]any{
		"min_frequency": 1,
		"frequency_1":   2,
		"frequency_2":   1,
		"frequency_3":   1,
	} {
		if got := fields[field]; got != want {
			t.Errorf("unexpected field %q"+
				"\n\tgot: %v"+
				"\n\twant: %v",
				field, got, want)
		}
	}
}

func lfuDecay(t *testing.T) {
	t.Parallel()
	const (
		capacity = 2
		interval = 8
	)
	cache := newLFU(t, capacity, cachepolicy.WithDecay(interval))
	cache.Set("old", 0) // 1 operation.
	for range 5 {       // 6 operations.
		mustGet[string, int](t, cache, "old")
	}
	checkFrequency(t, cache, "old", 6)
	cache.Set("new", 0) // 7 operations.
	mustGet[string, int](t, cache, "new")
	// 8th operation halves every frequency (before the access).
	checkFrequency(t, cache, "old", 3)
	checkFrequency(t, cache, "new", 2)
	for range 2 {
		mustGet[string, int](t, cache, "new")
	}
	checkFrequency(t, cache, "new", 4)
	cache.Set("newest", 0)
	mustMiss[string, int](t, cache, "old", "decayed below a newer key")
}
