package cachepolicy

// Load returns the cached value for key (if resident). Otherwise, it calls fetch,
// inserts and returns the value on success.
// If fetch returns an error, the value is not cached.
func Load[Key comparable, Value any](
	cache Cache[Key, Value], key Key, fetch func() (Value, error),
) (Value, error) {
	if value, ok := cache.Get(key); ok {
		return value, nil
	}
	value, err := fetch()
	if err != nil {
		return value, err
	}
	cache.Set(key, value)
	return value, nil
}
