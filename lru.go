package cachepolicy

// LRU evicts the least recently used entry.
// Get and Set both count as use.
// Concurrent access must be guarded by the caller.
// Constructed by [NewLRU].
type LRU[Key comparable, Value any] struct {
	recency[Key, Value]
}

// NewLRU creates an [LRU] cache with the given capacity.
func NewLRU[Key comparable, Value any](capacity int) (*LRU[Key, Value], error) {
	base, err := newRecency[Key, Value](capacity, discipline{
		policy:  PolicyLRU,
		reorder: true,
	})
	if err != nil {
		return nil, err
	}
	return &LRU[Key, Value]{recency: base}, nil
}
