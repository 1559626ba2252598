package cachepolicy

import (
	"iter"

	"github.com/djdv/go-cachepolicy/internal/orderedset"
)

type (
	// discipline distinguishes the single-list policies.
	discipline struct {
		policy Policy
		// reorder moves a key to the newest end on Get hits.
		reorder bool
		// evictNewest evicts from the newest end instead of the oldest.
		evictNewest bool
	}
	// recency implements FIFO, LRU and MRU over one ordered set.
	recency[Key comparable, Value any] struct {
		entries  *orderedset.Set[Key, Value]
		capacity int
		discipline
		counters
	}
)

func newRecency[Key comparable, Value any](
	capacity int, rules discipline,
) (recency[Key, Value], error) {
	if err := checkCapacity(capacity); err != nil {
		return recency[Key, Value]{}, err
	}
	return recency[Key, Value]{
		entries:    orderedset.New[Key, Value](capacity),
		capacity:   capacity,
		discipline: rules,
	}, nil
}

// Get returns the value for key if it is resident.
func (c *recency[Key, Value]) Get(key Key) (Value, bool) {
	value, ok := c.entries.Peek(key)
	if ok && c.reorder {
		c.entries.MoveToNewest(key)
	}
	c.record(ok)
	return value, ok
}

// Set inserts or updates key with value.
func (c *recency[Key, Value]) Set(key Key, value Value) {
	if c.entries.Contains(key) {
		if c.reorder {
			c.entries.PushNewest(key, value)
		} else {
			c.entries.Update(key, value)
		}
		return
	}
	if c.entries.Len() >= c.capacity {
		c.evict()
	}
	c.entries.PushNewest(key, value)
}

// evict runs before insertion, so MRU
// never evicts the key being inserted.
func (c *recency[_, _]) evict() {
	if c.evictNewest {
		c.entries.PopNewest()
	} else {
		c.entries.PopOldest()
	}
	c.evictions++
}

// Delete removes key, reporting if it was resident.
func (c *recency[Key, _]) Delete(key Key) bool {
	_, ok := c.entries.Remove(key)
	return ok
}

// Clear removes every entry and resets statistics.
func (c *recency[_, _]) Clear() {
	c.entries.Clear()
	c.reset()
}

// Len returns the number of resident entries.
func (c *recency[_, _]) Len() int { return c.entries.Len() }

// Stats returns a snapshot of the cache statistics.
func (c *recency[_, _]) Stats() Stats {
	return c.stats(c.policy, c.entries.Len(), c.capacity)
}

// Keys returns an iterator over resident keys,
// from oldest to newest.
func (c *recency[Key, _]) Keys() iter.Seq[Key] {
	return c.entries.Keys()
}
