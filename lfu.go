package cachepolicy

import (
	"fmt"
	"iter"

	"github.com/djdv/go-cachepolicy/internal/frequency"
)

type (
	// LFU evicts the least frequently used entry.
	// Frequencies start at 1 and grow with every Get hit
	// and every Set of an existing key. Among keys sharing
	// the minimum frequency, the one that reached it first
	// is evicted.
	// Concurrent access must be guarded by the caller.
	// Constructed by [NewLFU].
	LFU[Key comparable, Value any] struct {
		index    *frequency.Index[Key, Value]
		capacity int
		decay    decaySchedule
		counters
	}
	// LFUOption configures [NewLFU].
	LFUOption func(*lfuSettings) error
	lfuSettings struct {
		decayInterval int
	}
	decaySchedule struct {
		interval, operations int
	}
)

// WithDecay halves every frequency (to a minimum of 1)
// after each interval of Get/Set operations, so keys that
// were popular long ago eventually become evictable.
func WithDecay(interval int) LFUOption {
	return func(settings *lfuSettings) error {
		if interval < 1 {
			return fmt.Errorf(
				"%w: decay interval must be >=1 but %d was requested",
				ErrInvalidOption, interval)
		}
		settings.decayInterval = interval
		return nil
	}
}

// NewLFU creates an [LFU] cache with the given capacity.
func NewLFU[Key comparable, Value any](capacity int, options ...LFUOption) (*LFU[Key, Value], error) {
	if err := checkCapacity(capacity); err != nil {
		return nil, err
	}
	var settings lfuSettings
	for _, apply := range options {
		if err := apply(&settings); err != nil {
			return nil, err
		}
	}
	return &LFU[Key, Value]{
		index:    frequency.New[Key, Value](capacity),
		capacity: capacity,
		decay:    decaySchedule{interval: settings.decayInterval},
	}, nil
}

// Get returns the value for key if it is resident,
// incrementing its frequency.
func (c *LFU[Key, Value]) Get(key Key) (Value, bool) {
	c.tick()
	value, ok := c.index.Promote(key)
	c.record(ok)
	return value, ok
}

// Set inserts or updates key with value.
// Updating increments the frequency of key.
func (c *LFU[Key, Value]) Set(key Key, value Value) {
	c.tick()
	if c.index.Replace(key, value) {
		return
	}
	if c.index.Len() >= c.capacity {
		c.index.Evict()
		c.evictions++
	}
	c.index.Insert(key, value)
}

func (c *LFU[_, _]) tick() {
	if c.decay.interval == 0 {
		return
	}
	if c.decay.operations++; c.decay.operations < c.decay.interval {
		return
	}
	c.decay.operations = 0
	c.index.Age(halve)
}

func halve(frequency int) int { return frequency / 2 }

// Delete removes key, reporting if it was resident.
func (c *LFU[Key, _]) Delete(key Key) bool {
	_, ok := c.index.Remove(key)
	return ok
}

// Clear removes every entry and resets statistics.
func (c *LFU[_, _]) Clear() {
	c.index.Clear()
	c.decay.operations = 0
	c.reset()
}

// Len returns the number of resident entries.
func (c *LFU[_, _]) Len() int { return c.index.Len() }

// Frequency returns the current frequency of key, without
// counting as an access.
func (c *LFU[Key, _]) Frequency(key Key) (int, bool) {
	return c.index.Frequency(key)
}

// Stats returns a snapshot of the cache statistics,
// including the frequency histogram.
func (c *LFU[_, _]) Stats() Stats {
	stats := c.stats(PolicyLFU, c.index.Len(), c.capacity)
	stats.MinFrequency = c.index.Minimum()
	stats.Frequencies = c.index.Histogram()
	return stats
}

// Keys returns an iterator over resident keys in eviction order:
// ascending frequency, oldest first within a frequency.
func (c *LFU[Key, _]) Keys() iter.Seq[Key] {
	return func(yield func(Key) bool) {
		for key := range c.index.All() {
			if !yield(key) {
				return
			}
		}
	}
}
