package cachepolicy

import (
	"iter"

	"github.com/djdv/go-cachepolicy/internal/orderedset"
)

type (
	residents[Key comparable, Value any] = orderedset.Set[Key, Value]
	ghosts[Key comparable]               = orderedset.Set[Key, ghost]
	// ghost is the history record of an evicted key.
	ghost struct {
		// primed is set when a Get already counted this
		// ghost hit and adapted the target; the following
		// Set re-admits the key without adapting again.
		primed bool
	}
	// ARC implements the Adaptive Replacement Cache.
	// Concurrent access must be guarded by the caller.
	// Constructed by [NewARC].
	ARC[Key comparable, Value any] struct {
		// recent (T1) holds keys seen once,
		// frequent (T2) keys seen at least twice.
		recent, frequent *residents[Key, Value]
		// recentGhosts (B1) and frequentGhosts (B2)
		// hold keys evicted from T1 and T2 respectively.
		recentGhosts, frequentGhosts *ghosts[Key]
		// target is `p`, the adaptive target size of T1.
		// Range: [0,capacity].
		capacity, target int
		counters
	}
)

// NewARC creates an [ARC] cache with the given capacity.
func NewARC[Key comparable, Value any](capacity int) (*ARC[Key, Value], error) {
	if err := checkCapacity(capacity); err != nil {
		return nil, err
	}
	return &ARC[Key, Value]{
		recent:         orderedset.New[Key, Value](capacity),
		frequent:       orderedset.New[Key, Value](capacity),
		recentGhosts:   orderedset.New[Key, ghost](capacity),
		frequentGhosts: orderedset.New[Key, ghost](capacity),
		capacity:       capacity,
	}, nil
}

// Get returns the value for key if it is resident.
// A hit in T1 promotes the key to T2; a hit in T2 makes
// it the newest member of T2.
// A miss on a ghost key adapts the target towards the list
// that evicted it.
func (c *ARC[Key, Value]) Get(key Key) (Value, bool) {
	defer c.check()
	if value, ok := c.recent.Remove(key); ok {
		c.frequent.PushNewest(key, value)
		c.record(true)
		return value, true
	}
	if value, ok := c.frequent.Peek(key); ok {
		c.frequent.MoveToNewest(key)
		c.record(true)
		return value, true
	}
	c.record(false)
	switch {
	case c.recentGhosts.Contains(key):
		c.ghostHit(c.recentGhosts, key, c.growRecent)
	case c.frequentGhosts.Contains(key):
		c.ghostHit(c.frequentGhosts, key, c.shrinkRecent)
	}
	var zero Value
	return zero, false
}

// Set inserts or updates key with value.
// Updating a T1 key promotes it to T2.
func (c *ARC[Key, Value]) Set(key Key, value Value) {
	defer c.check()
	if _, ok := c.recent.Remove(key); ok {
		c.frequent.PushNewest(key, value)
		return
	}
	if c.frequent.Contains(key) {
		c.frequent.PushNewest(key, value)
		return
	}
	switch {
	case c.recentGhosts.Contains(key):
		c.readmit(c.recentGhosts, key, value, c.growRecent)
	case c.frequentGhosts.Contains(key):
		c.readmit(c.frequentGhosts, key, value, c.shrinkRecent)
	default:
		c.admit(key, value)
	}
	c.trimGhosts()
}

// ghostHit counts a ghost hit and adapts the target,
// once per ghost lifetime.
func (c *ARC[Key, _]) ghostHit(list *ghosts[Key], key Key, adapt func()) {
	if record, _ := list.Peek(key); record.primed {
		return
	}
	c.ghostHits++
	adapt()
	list.Update(key, ghost{primed: true})
}

// readmit moves a ghost key back into T2.
// The key stays in its ghost list until after replacement,
// so the B2 tie-break can observe it.
func (c *ARC[Key, Value]) readmit(list *ghosts[Key], key Key, value Value, adapt func()) {
	c.ghostHit(list, key, adapt)
	if c.full() {
		c.replace(key)
	}
	list.Remove(key)
	c.frequent.PushNewest(key, value)
}

// admit inserts a key with no resident or ghost presence into T1.
func (c *ARC[Key, Value]) admit(key Key, value Value) {
	var (
		capacity = c.capacity
		recent   = c.recent.Len()
	)
	if recent+c.recentGhosts.Len() >= capacity {
		if recent < capacity {
			c.recentGhosts.PopOldest()
			if c.full() {
				c.replace(key)
			}
		} else {
			c.demote(c.recent, c.recentGhosts)
		}
	} else {
		if c.metadataLen() >= 2*capacity {
			c.frequentGhosts.PopOldest()
		}
		if c.full() {
			c.replace(key)
		}
	}
	c.recent.PushNewest(key, value)
}

// replace evicts the oldest entry of T1 or T2 into its ghost list.
// T1 is chosen when it exceeds the target, or meets it while key
// is a B2 ghost.
func (c *ARC[Key, _]) replace(key Key) {
	var (
		recent     = c.recent.Len()
		overTarget = recent > c.target ||
			(recent == c.target && c.frequentGhosts.Contains(key))
		fromRecent = recent > 0 &&
			(overTarget || c.frequent.Len() == 0)
	)
	if fromRecent {
		c.demote(c.recent, c.recentGhosts)
	} else {
		c.demote(c.frequent, c.frequentGhosts)
	}
}

// demote evicts the oldest resident of list,
// discarding its value and remembering its key in history.
func (c *ARC[Key, Value]) demote(list *residents[Key, Value], history *ghosts[Key]) {
	key, _, ok := list.PopOldest()
	if !ok {
		return
	}
	history.PushNewest(key, ghost{})
	c.evictions++
}

// growRecent responds to a B1 ghost hit:
// T1 evicted too eagerly.
func (c *ARC[_, _]) growRecent() {
	delta := max(
		c.frequentGhosts.Len()/max(c.recentGhosts.Len(), 1),
		1,
	)
	c.target = min(c.target+delta, c.capacity)
}

// shrinkRecent responds to a B2 ghost hit:
// T2 evicted too eagerly.
func (c *ARC[_, _]) shrinkRecent() {
	delta := max(
		c.recentGhosts.Len()/max(c.frequentGhosts.Len(), 1),
		1,
	)
	c.target = max(c.target-delta, 0)
}

// trimGhosts bounds history to 2*capacity,
// trimming B1 while it exceeds capacity, B2 otherwise.
func (c *ARC[_, _]) trimGhosts() {
	limit := c.capacity * 2
	for c.recentGhosts.Len()+c.frequentGhosts.Len() > limit {
		if c.recentGhosts.Len() > c.capacity {
			c.recentGhosts.PopOldest()
		} else {
			c.frequentGhosts.PopOldest()
		}
	}
}

func (c *ARC[_, _]) full() bool {
	return c.Len() >= c.capacity
}

func (c *ARC[_, _]) metadataLen() int {
	return c.Len() +
		c.recentGhosts.Len() + c.frequentGhosts.Len()
}

// Delete removes key, reporting if it was resident.
// Any ghost record of key is also removed.
func (c *ARC[Key, _]) Delete(key Key) bool {
	defer c.check()
	if _, ok := c.recent.Remove(key); ok {
		return true
	}
	if _, ok := c.frequent.Remove(key); ok {
		return true
	}
	if _, ok := c.recentGhosts.Remove(key); !ok {
		c.frequentGhosts.Remove(key)
	}
	return false
}

// Clear removes every entry and ghost,
// resets the target to 0 and resets statistics.
func (c *ARC[_, _]) Clear() {
	c.recent.Clear()
	c.frequent.Clear()
	c.recentGhosts.Clear()
	c.frequentGhosts.Clear()
	c.target = 0
	c.reset()
}

// Len returns the number of resident entries (ghosts excluded).
func (c *ARC[_, _]) Len() int {
	return c.recent.Len() + c.frequent.Len()
}

// Target returns the adaptation parameter `p`.
func (c *ARC[_, _]) Target() int { return c.target }

// Stats returns a snapshot of the cache statistics,
// including ghost hits, the target and list sizes.
func (c *ARC[_, _]) Stats() Stats {
	stats := c.stats(PolicyARC, c.Len(), c.capacity)
	stats.Target = c.target
	stats.Recent = c.recent.Len()
	stats.Frequent = c.frequent.Len()
	stats.RecentGhosts = c.recentGhosts.Len()
	stats.FrequentGhosts = c.frequentGhosts.Len()
	return stats
}

// Keys returns an iterator over resident keys:
// T1 then T2, each from oldest to newest.
func (c *ARC[Key, _]) Keys() iter.Seq[Key] {
	return func(yield func(Key) bool) {
		for key := range c.recent.Keys() {
			if !yield(key) {
				return
			}
		}
		for key := range c.frequent.Keys() {
			if !yield(key) {
				return
			}
		}
	}
}

// GhostKeys returns an iterator over history keys:
// B1 then B2, each from oldest to newest.
func (c *ARC[Key, _]) GhostKeys() iter.Seq[Key] {
	return func(yield func(Key) bool) {
		for key := range c.recentGhosts.Keys() {
			if !yield(key) {
				return
			}
		}
		for key := range c.frequentGhosts.Keys() {
			if !yield(key) {
				return
			}
		}
	}
}

// check asserts the ARC invariants when built
// with the `cachepolicy_debug` tag.
func (c *ARC[Key, _]) check() {
	if !debugging {
		return
	}
	var (
		capacity = c.capacity
		members  = make(map[Key]int, c.metadataLen())
	)
	assert(c.Len() <= capacity,
		"residents exceed capacity")
	assert(c.recentGhosts.Len()+c.frequentGhosts.Len() <= 2*capacity,
		"ghosts exceed twice the capacity")
	assert(c.target >= 0 && c.target <= capacity,
		"target out of range")
	for _, keys := range []iter.Seq[Key]{
		c.recent.Keys(), c.frequent.Keys(),
		c.recentGhosts.Keys(), c.frequentGhosts.Keys(),
	} {
		for key := range keys {
			members[key]++
			assert(members[key] == 1,
				"key is a member of multiple lists")
		}
	}
}
