package orderedset_test

import (
	"slices"
	"testing"

	"github.com/djdv/go-cachepolicy/internal/orderedset"
	"github.com/stretchr/testify/require"
)

func TestSetOrder(t *testing.T) {
	set := orderedset.New[string, int](4)
	for i, key := range []string{"a", "b", "c"} {
		set.PushNewest(key, i)
	}
	require.Equal(t, 3, set.Len())
	require.Equal(t, []string{"a", "b", "c"}, slices.Collect(set.Keys()))

	require.True(t, set.MoveToNewest("a"))
	require.Equal(t, []string{"b", "c", "a"}, slices.Collect(set.Keys()))
	require.False(t, set.MoveToNewest("missing"))

	var backward []string
	for key := range set.Backward() {
		backward = append(backward, key)
	}
	require.Equal(t, []string{"a", "c", "b"}, backward)
}

func TestSetEnds(t *testing.T) {
	set := orderedset.New[int, string](0)
	_, _, ok := set.Oldest()
	require.False(t, ok)
	_, _, ok = set.PopNewest()
	require.False(t, ok)

	set.PushNewest(1, "one")
	set.PushNewest(2, "two")
	set.PushNewest(3, "three")

	key, value, ok := set.Oldest()
	require.True(t, ok)
	require.Equal(t, 1, key)
	require.Equal(t, "one", value)

	key, _, ok = set.Newest()
	require.True(t, ok)
	require.Equal(t, 3, key)

	key, value, ok = set.PopOldest()
	require.True(t, ok)
	require.Equal(t, 1, key)
	require.Equal(t, "one", value)
	require.False(t, set.Contains(1))

	key, _, ok = set.PopNewest()
	require.True(t, ok)
	require.Equal(t, 3, key)
	require.Equal(t, []int{2}, slices.Collect(set.Keys()))
}

func TestSetUpdateInPlace(t *testing.T) {
	set := orderedset.New[string, int](2)
	set.PushNewest("a", 1)
	set.PushNewest("b", 2)

	require.True(t, set.Update("a", 10))
	require.False(t, set.Update("missing", 0))
	value, ok := set.Peek("a")
	require.True(t, ok)
	require.Equal(t, 10, value)
	require.Equal(t, []string{"a", "b"}, slices.Collect(set.Keys()),
		"update must not reorder")

	set.PushNewest("a", 11)
	require.Equal(t, 2, set.Len())
	require.Equal(t, []string{"b", "a"}, slices.Collect(set.Keys()),
		"re-push moves to newest")
}

func TestSetRemoveRecyclesSlots(t *testing.T) {
	set := orderedset.New[int, int](0)
	for i := range 8 {
		set.PushNewest(i, i)
	}
	for i := 0; i < 8; i += 2 {
		value, ok := set.Remove(i)
		require.True(t, ok)
		require.Equal(t, i, value)
	}
	_, ok := set.Remove(0)
	require.False(t, ok)
	for i := 8; i < 12; i++ {
		set.PushNewest(i, i)
	}
	require.Equal(t, []int{1, 3, 5, 7, 8, 9, 10, 11}, slices.Collect(set.Keys()))
}

func TestSetClear(t *testing.T) {
	set := orderedset.New[int, int](2)
	set.PushNewest(1, 1)
	set.PushNewest(2, 2)
	set.Clear()
	require.Zero(t, set.Len())
	require.False(t, set.Contains(1))
	require.Empty(t, slices.Collect(set.Keys()))

	set.PushNewest(3, 3)
	require.Equal(t, []int{3}, slices.Collect(set.Keys()))
}

func TestSetZeroValue(t *testing.T) {
	var set orderedset.Set[string, struct{}]
	require.False(t, set.Contains("a"))
	set.PushNewest("a", struct{}{})
	set.PushNewest("b", struct{}{})
	require.Equal(t, []string{"a", "b"}, slices.Collect(set.Keys()))
}
