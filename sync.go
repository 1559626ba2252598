package cachepolicy

import (
	"iter"
	"slices"
	"sync"
)

// Synchronized serializes access to a [Cache] with a single mutex.
// Get mutates policy state, so reads take the same lock as writes.
// Constructed by [NewSynchronized].
type Synchronized[Key comparable, Value any] struct {
	cache Cache[Key, Value]
	mu    sync.Mutex
}

// NewSynchronized wraps cache so it may be used from multiple goroutines.
// The caller must not use cache directly afterwards.
func NewSynchronized[Key comparable, Value any](cache Cache[Key, Value]) *Synchronized[Key, Value] {
	return &Synchronized[Key, Value]{cache: cache}
}

// Get calls Get on the wrapped cache while holding the lock.
func (s *Synchronized[Key, Value]) Get(key Key) (Value, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cache.Get(key)
}

// Set calls Set on the wrapped cache while holding the lock.
func (s *Synchronized[Key, Value]) Set(key Key, value Value) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache.Set(key, value)
}

// Delete removes key, reporting if it was resident.
func (s *Synchronized[Key, _]) Delete(key Key) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cache.Delete(key)
}

// Clear removes every entry and resets statistics.
func (s *Synchronized[_, _]) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache.Clear()
}

// Len returns the number of resident entries.
func (s *Synchronized[_, _]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cache.Len()
}

// Stats returns a snapshot of the wrapped cache's statistics.
func (s *Synchronized[_, _]) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cache.Stats()
}

// Keys returns an iterator over a copy of the resident keys,
// taken while the lock was held.
func (s *Synchronized[Key, _]) Keys() iter.Seq[Key] {
	s.mu.Lock()
	keys := slices.Collect(s.cache.Keys())
	s.mu.Unlock()
	return slices.Values(keys)
}
