package frequency_test

import (
	"testing"

	"github.com/djdv/go-cachepolicy/internal/frequency"
	"github.com/stretchr/testify/require"
)

func keys[Key comparable, Value any](ix *frequency.Index[Key, Value]) []Key {
	var keys []Key
	for key := range ix.All() {
		keys = append(keys, key)
	}
	return keys
}

func TestIndexTieBreak(t *testing.T) {
	ix := frequency.New[string, int](3)
	ix.Insert("a", 1)
	ix.Insert("b", 2)
	ix.Insert("c", 3)
	require.Equal(t, 1, ix.Minimum())

	key, value, ok := ix.Evict()
	require.True(t, ok)
	require.Equal(t, "a", key, "oldest key at the minimum frequency")
	require.Equal(t, 1, value)
	require.Equal(t, 2, ix.Len())
}

func TestIndexPromote(t *testing.T) {
	ix := frequency.New[string, int](3)
	ix.Insert("a", 1)
	ix.Insert("b", 2)

	value, ok := ix.Promote("a")
	require.True(t, ok)
	require.Equal(t, 1, value)
	frequency, _ := ix.Frequency("a")
	require.Equal(t, 2, frequency)
	require.Equal(t, 1, ix.Minimum())

	_, ok = ix.Promote("b")
	require.True(t, ok)
	require.Equal(t, 2, ix.Minimum(), "emptied minimum bucket advances")
	require.Equal(t, []string{"a", "b"}, keys(ix),
		"a entered bucket 2 before b")

	_, ok = ix.Promote("missing")
	require.False(t, ok)
}

func TestIndexReplace(t *testing.T) {
	ix := frequency.New[string, int](1)
	ix.Insert("a", 1)
	require.True(t, ix.Replace("a", 10))
	value, ok := ix.Peek("a")
	require.True(t, ok)
	require.Equal(t, 10, value)
	frequency, _ := ix.Frequency("a")
	require.Equal(t, 2, frequency)
	require.False(t, ix.Replace("missing", 0))

	ix.Insert("a", 11)
	frequency, _ = ix.Frequency("a")
	require.Equal(t, 3, frequency, "insert of a present key promotes")
	require.Equal(t, 1, ix.Len())
}

func TestIndexRemoveAdvancesMinimum(t *testing.T) {
	ix := frequency.New[string, int](3)
	ix.Insert("low", 0)
	ix.Insert("high", 0)
	for range 4 {
		ix.Promote("high")
	}
	require.Equal(t, 1, ix.Minimum())

	_, ok := ix.Remove("low")
	require.True(t, ok)
	require.Equal(t, 5, ix.Minimum(), "scan stops at the next live bucket")

	_, ok = ix.Remove("high")
	require.True(t, ok)
	require.Zero(t, ix.Minimum())
	require.Zero(t, ix.Len())

	_, _, ok = ix.Evict()
	require.False(t, ok)
}

func TestIndexHistogram(t *testing.T) {
	ix := frequency.New[int, int](4)
	for i := range 4 {
		ix.Insert(i, i)
	}
	ix.Promote(0)
	ix.Promote(0)
	ix.Promote(1)
	require.Equal(t, map[int]int{1: 2, 2: 1, 3: 1}, ix.Histogram())
}

func TestIndexAge(t *testing.T) {
	ix := frequency.New[string, int](3)
	ix.Insert("a", 0)
	ix.Insert("b", 0)
	ix.Insert("c", 0)
	for range 5 {
		ix.Promote("a")
	}
	for range 2 {
		ix.Promote("b")
	}
	// a=6 b=3 c=1
	ix.Age(func(frequency int) int { return frequency / 2 })
	for key, want := range map[string]int{"a": 3, "b": 1, "c": 1} {
		got, ok := ix.Frequency(key)
		require.True(t, ok)
		require.Equal(t, want, got, key)
	}
	require.Equal(t, 1, ix.Minimum())
	require.Equal(t, []string{"c", "b", "a"}, keys(ix))

	key, _, _ := ix.Evict()
	require.Equal(t, "c", key)
}

func TestIndexClear(t *testing.T) {
	ix := frequency.New[int, int](2)
	ix.Insert(1, 1)
	ix.Insert(2, 2)
	ix.Clear()
	require.Zero(t, ix.Len())
	require.Zero(t, ix.Minimum())
	require.Empty(t, ix.Histogram())
	ix.Insert(3, 3)
	require.Equal(t, 1, ix.Minimum())
}

func TestIndexPromoteReusesBuckets(t *testing.T) {
	ix := frequency.New[string, int](2)
	ix.Insert("hot", 0)
	ix.Insert("cold", 0)
	allocs := testing.AllocsPerRun(1000, func() {
		ix.Promote("hot")
	})
	require.Zero(t, allocs, "promoting into a new frequency allocated")
	frequency, _ := ix.Frequency("hot")
	require.Equal(t, 1002, frequency)
	require.Equal(t, 1, ix.Minimum())
	require.Equal(t, map[int]int{1: 1, 1002: 1}, ix.Histogram())
}

func TestIndexAgeReusesBuckets(t *testing.T) {
	ix := frequency.New[int, int](4)
	for key := range 4 {
		ix.Insert(key, key)
		for range key * 2 {
			ix.Promote(key)
		}
	}
	// 0=1 1=3 2=5 3=7
	ix.Age(func(int) int { return 1 })
	require.Equal(t, []int{0, 1, 2, 3}, keys(ix),
		"merged keys keep ascending previous frequency order")
	require.Equal(t, map[int]int{1: 4}, ix.Histogram())
	ix.Promote(3)
	require.Equal(t, []int{0, 1, 2, 3}, keys(ix))
	frequency, _ := ix.Frequency(3)
	require.Equal(t, 2, frequency)
}
