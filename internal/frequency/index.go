// Package frequency maintains keys grouped by access frequency,
// for use by least-frequently-used eviction.
package frequency

import (
	"iter"
	"maps"
	"slices"

	"github.com/djdv/go-cachepolicy/internal/orderedset"
)

type (
	bucket[Key comparable, Value any] = orderedset.Set[Key, Value]
	// Index groups keys into buckets by frequency.
	// Each bucket preserves the order keys entered it,
	// so the oldest key of the minimum bucket is the eviction candidate.
	//
	// The bucket map is never exposed; callers may only
	// Insert, Promote, Evict, Remove (trim) and Age.
	Index[Key comparable, Value any] struct {
		frequencies map[Key]int
		buckets     map[int]*bucket[Key, Value]
		// spare holds emptied buckets for reuse, so a key
		// moving into a new frequency does not allocate.
		spare []*bucket[Key, Value]
		// minimum is the lowest frequency with a non-empty bucket (0 when empty).
		// maximum is an upper bound for scans; it may be stale after removals.
		minimum, maximum int
	}
)

// New creates an [Index] sized for sizeHint keys.
func New[Key comparable, Value any](sizeHint int) *Index[Key, Value] {
	return &Index[Key, Value]{
		frequencies: make(map[Key]int, sizeHint),
		buckets:     make(map[int]*bucket[Key, Value]),
	}
}

// Len returns the number of indexed keys.
func (ix *Index[_, _]) Len() int { return len(ix.frequencies) }

// Minimum returns the lowest frequency held by any key,
// or 0 if the index is empty.
func (ix *Index[_, _]) Minimum() int { return ix.minimum }

// Frequency returns the current frequency of key.
func (ix *Index[Key, _]) Frequency(key Key) (int, bool) {
	frequency, ok := ix.frequencies[key]
	return frequency, ok
}

// Peek returns the value stored for key without promoting it.
func (ix *Index[Key, Value]) Peek(key Key) (Value, bool) {
	frequency, ok := ix.frequencies[key]
	if !ok {
		var zero Value
		return zero, false
	}
	return ix.buckets[frequency].Peek(key)
}

// Insert adds a new key with a frequency of 1.
// If key is already present it is promoted and its value replaced.
func (ix *Index[Key, Value]) Insert(key Key, value Value) {
	if ix.Replace(key, value) {
		return
	}
	ix.push(key, value, 1)
	ix.minimum = 1
}

// Promote increments the frequency of key and returns its value.
func (ix *Index[Key, Value]) Promote(key Key) (Value, bool) {
	frequency, ok := ix.frequencies[key]
	if !ok {
		var zero Value
		return zero, false
	}
	value := ix.detach(key, frequency)
	if ix.minimum == frequency && !ix.holds(frequency) {
		ix.minimum = frequency + 1
	}
	ix.push(key, value, frequency+1)
	return value, true
}

// Replace promotes key and stores value in place of its previous value.
// It reports false if key is not present.
func (ix *Index[Key, Value]) Replace(key Key, value Value) bool {
	if _, ok := ix.Promote(key); !ok {
		return false
	}
	ix.buckets[ix.frequencies[key]].Update(key, value)
	return true
}

// Evict removes the oldest key among those with the minimum frequency.
func (ix *Index[Key, Value]) Evict() (Key, Value, bool) {
	if ix.Len() == 0 {
		var (
			key   Key
			value Value
		)
		return key, value, false
	}
	frequency := ix.minimum
	key, value, _ := ix.buckets[frequency].PopOldest()
	delete(ix.frequencies, key)
	ix.dropIfEmpty(frequency)
	ix.advanceFrom(frequency)
	return key, value, true
}

// Remove deletes key from the index.
func (ix *Index[Key, Value]) Remove(key Key) (Value, bool) {
	frequency, ok := ix.frequencies[key]
	if !ok {
		var zero Value
		return zero, false
	}
	value := ix.detach(key, frequency)
	delete(ix.frequencies, key)
	ix.advanceFrom(frequency)
	return value, true
}

// Age rewrites every frequency with decay(frequency),
// clamped to at least 1. Keys whose frequencies merge
// are ordered by their previous frequency, lowest first.
func (ix *Index[Key, Value]) Age(decay func(int) int) {
	if ix.Len() == 0 {
		return
	}
	var (
		previous = ix.buckets
		order    = slices.Sorted(maps.Keys(previous))
	)
	ix.buckets = make(map[int]*bucket[Key, Value], len(previous))
	ix.minimum, ix.maximum = 0, 0
	for _, frequency := range order {
		var (
			aged   = max(decay(frequency), 1)
			source = previous[frequency]
		)
		for source.Len() != 0 {
			key, value, _ := source.PopOldest()
			ix.push(key, value, aged)
		}
		ix.spare = append(ix.spare, source)
		if ix.minimum == 0 || aged < ix.minimum {
			ix.minimum = aged
		}
	}
}

// Histogram returns the number of keys held at each frequency.
func (ix *Index[_, _]) Histogram() map[int]int {
	histogram := make(map[int]int, len(ix.buckets))
	for frequency, bucket := range ix.buckets {
		histogram[frequency] = bucket.Len()
	}
	return histogram
}

// All returns an iterator in eviction order:
// ascending frequency, oldest first within a frequency.
func (ix *Index[Key, Value]) All() iter.Seq2[Key, Value] {
	return func(yield func(Key, Value) bool) {
		for _, frequency := range slices.Sorted(maps.Keys(ix.buckets)) {
			for key, value := range ix.buckets[frequency].All() {
				if !yield(key, value) {
					return
				}
			}
		}
	}
}

// Clear removes every key and releases spare buckets.
func (ix *Index[Key, Value]) Clear() {
	clear(ix.frequencies)
	clear(ix.buckets)
	clear(ix.spare)
	ix.spare = ix.spare[:0]
	ix.minimum, ix.maximum = 0, 0
}

func (ix *Index[Key, Value]) push(key Key, value Value, frequency int) {
	b, ok := ix.buckets[frequency]
	if !ok {
		b = ix.newBucket()
		ix.buckets[frequency] = b
	}
	b.PushNewest(key, value)
	ix.frequencies[key] = frequency
	ix.maximum = max(ix.maximum, frequency)
}

func (ix *Index[Key, Value]) newBucket() *bucket[Key, Value] {
	if last := len(ix.spare) - 1; last >= 0 {
		b := ix.spare[last]
		ix.spare[last] = nil
		ix.spare = ix.spare[:last]
		return b
	}
	return orderedset.New[Key, Value](1)
}

func (ix *Index[Key, Value]) detach(key Key, frequency int) Value {
	value, _ := ix.buckets[frequency].Remove(key)
	ix.dropIfEmpty(frequency)
	return value
}

func (ix *Index[_, _]) holds(frequency int) bool {
	_, ok := ix.buckets[frequency]
	return ok
}

func (ix *Index[_, _]) dropIfEmpty(frequency int) {
	if b, ok := ix.buckets[frequency]; ok && b.Len() == 0 {
		delete(ix.buckets, frequency)
		ix.spare = append(ix.spare, b)
	}
}

// advanceFrom moves the minimum upward, only as far as the next
// non-empty bucket, if the bucket at frequency was the minimum
// and has been emptied.
func (ix *Index[_, _]) advanceFrom(frequency int) {
	switch {
	case ix.Len() == 0:
		ix.minimum, ix.maximum = 0, 0
		return
	case ix.minimum != frequency || ix.holds(frequency):
		return
	}
	for next := frequency + 1; next <= ix.maximum; next++ {
		if ix.holds(next) {
			ix.minimum = next
			return
		}
	}
}
