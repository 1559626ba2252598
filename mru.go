package cachepolicy

// MRU evicts the most recently used entry.
// It suits cyclic scans larger than the cache,
// where the newest entry is the one needed last.
// Concurrent access must be guarded by the caller.
// Constructed by [NewMRU].
type MRU[Key comparable, Value any] struct {
	recency[Key, Value]
}

// NewMRU creates an [MRU] cache with the given capacity.
func NewMRU[Key comparable, Value any](capacity int) (*MRU[Key, Value], error) {
	base, err := newRecency[Key, Value](capacity, discipline{
		policy:      PolicyMRU,
		reorder:     true,
		evictNewest: true,
	})
	if err != nil {
		return nil, err
	}
	return &MRU[Key, Value]{recency: base}, nil
}
