package cachepolicy

// FIFO evicts entries in the order they were inserted.
// Neither Get nor Set of an existing key changes that order.
// Concurrent access must be guarded by the caller.
// Constructed by [NewFIFO].
type FIFO[Key comparable, Value any] struct {
	recency[Key, Value]
}

// NewFIFO creates a [FIFO] cache with the given capacity.
func NewFIFO[Key comparable, Value any](capacity int) (*FIFO[Key, Value], error) {
	base, err := newRecency[Key, Value](capacity, discipline{
		policy: PolicyFIFO,
	})
	if err != nil {
		return nil, err
	}
	return &FIFO[Key, Value]{recency: base}, nil
}
