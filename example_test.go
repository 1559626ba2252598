package cachepolicy_test

import (
	"fmt"

	cachepolicy "github.com/djdv/go-cachepolicy"
)

func ExampleNew() {
	const (
		capacity = 1024
		key      = "name"
		value    = 1
	)
	cache, err := cachepolicy.New[string, int](cachepolicy.PolicyARC, capacity)
	if err != nil {
		panic(err)
	}
	cache.Set(key, value)
	if got, ok := cache.Get(key); ok {
		fmt.Printf("%s: %d\n", key, got)
	}
	// Output:
	// name: 1
}

func makeValue() (int, error) {
	const (
		someValue = 1
		initError = false
	)
	if initError {
		return 0, fmt.Errorf(
			"could not initialize...",
		)
	}
	fmt.Println("initialized value:", someValue)
	return someValue, nil
}

func ExampleLoad() {
	const (
		capacity = 1024
		key      = "load"
	)
	cache, err := cachepolicy.NewLRU[string, int](capacity)
	if err != nil {
		panic(err)
	}
	got, err := cachepolicy.Load(cache, key, makeValue)
	if err != nil {
		panic(err)
	}
	fmt.Printf("%s: %d\n", key, got)
	if got, err = cachepolicy.Load(cache, key, makeValue); err != nil {
		panic(err)
	}
	fmt.Printf("cached: %d\n", got)
	// Output:
	// initialized value: 1
	// load: 1
	// cached: 1
}

func ExampleStats_Map() {
	cache, err := cachepolicy.NewFIFO[string, int](2)
	if err != nil {
		panic(err)
	}
	cache.Set("a", 1)
	cache.Get("a")
	cache.Get("b")
	fields := cache.Stats().Map()
	fmt.Println(fields["policy"], fields["hits"], fields["misses"], fields["hit_rate"])
	// Output:
	// fifo 1 1 0.5
}
