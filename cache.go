package cachepolicy

import (
	"fmt"
	"iter"
)

// Cache is the contract shared by every policy.
// Implementations are not safe for concurrent use;
// Get mutates internal order, so even readers must be
// serialized (see [Synchronized]).
type Cache[Key comparable, Value any] interface {
	// Get returns the value for key if it is resident
	// and records a hit; otherwise it records a miss
	// and returns the zero value and false.
	Get(Key) (Value, bool)
	// Set inserts or updates key with value,
	// evicting a single entry first if the cache is full.
	Set(Key, Value)
	// Delete removes key, reporting if a resident entry was removed.
	Delete(Key) bool
	// Clear removes every entry and resets statistics.
	Clear()
	// Len returns the number of resident entries.
	Len() int
	// Stats returns a snapshot of the cache statistics.
	Stats() Stats
	// Keys returns an iterator over resident keys
	// in the policy's internal order.
	Keys() iter.Seq[Key]
}

// MinimumCapacity defines the lowest capacity supported by constructors.
const MinimumCapacity = 1

var (
	_ Cache[int, int] = (*FIFO[int, int])(nil)
	_ Cache[int, int] = (*LRU[int, int])(nil)
	_ Cache[int, int] = (*MRU[int, int])(nil)
	_ Cache[int, int] = (*LFU[int, int])(nil)
	_ Cache[int, int] = (*ARC[int, int])(nil)
	_ Cache[int, int] = (*Synchronized[int, int])(nil)
)

// New creates a [Cache] using policy with the given capacity.
func New[Key comparable, Value any](policy Policy, capacity int) (Cache[Key, Value], error) {
	switch policy {
	case PolicyFIFO:
		return asCache[Key, Value](NewFIFO[Key, Value](capacity))
	case PolicyLRU:
		return asCache[Key, Value](NewLRU[Key, Value](capacity))
	case PolicyMRU:
		return asCache[Key, Value](NewMRU[Key, Value](capacity))
	case PolicyLFU:
		return asCache[Key, Value](NewLFU[Key, Value](capacity))
	case PolicyARC:
		return asCache[Key, Value](NewARC[Key, Value](capacity))
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownPolicy, policy)
	}
}

// asCache prevents typed nil pointers from
// being returned as non-nil interface values.
func asCache[
	Key comparable, Value any,
	Impl Cache[Key, Value],
](cache Impl, err error) (Cache[Key, Value], error) {
	if err != nil {
		return nil, err
	}
	return cache, nil
}
