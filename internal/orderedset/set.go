// Package orderedset provides an insertion ordered set of keys with
// associated values, backed by an arena of nodes linked by index.
//
// The arena is a circular, doubly linked list in the spirit of
// `container/ring`, except that links are slice indices rather than
// pointers. Slot 0 is a sentinel: its next link is the oldest member
// and its prev link is the newest member. Freed slots are recycled.
package orderedset

import "iter"

type (
	// Set is an ordered set of unique keys.
	// Every operation except iteration is O(1).
	// The zero value is an empty set ready to use.
	Set[Key comparable, Value any] struct {
		index map[Key]int
		nodes []node[Key, Value]
		free  []int
	}
	node[Key comparable, Value any] struct {
		key        Key
		value      Value
		next, prev int
	}
)

const sentinel = 0

// New creates a [Set] with room for sizeHint members
// before its arena must grow.
func New[Key comparable, Value any](sizeHint int) *Set[Key, Value] {
	set := new(Set[Key, Value])
	set.init(max(sizeHint, 0))
	return set
}

func (s *Set[Key, Value]) init(sizeHint int) {
	s.index = make(map[Key]int, sizeHint)
	s.nodes = make([]node[Key, Value], 1, sizeHint+1)
}

func (s *Set[Key, Value]) lazyInit() {
	if s.nodes == nil {
		s.init(0)
	}
}

// Len returns the number of members.
func (s *Set[_, _]) Len() int { return len(s.index) }

// Contains reports if key is a member.
func (s *Set[Key, _]) Contains(key Key) bool {
	_, ok := s.index[key]
	return ok
}

// Peek returns the value stored for key without reordering.
func (s *Set[Key, Value]) Peek(key Key) (Value, bool) {
	if i, ok := s.index[key]; ok {
		return s.nodes[i].value, true
	}
	var zero Value
	return zero, false
}

// Update replaces the value of an existing member in place.
// It reports false (and does nothing) if key is not a member.
func (s *Set[Key, Value]) Update(key Key, value Value) bool {
	i, ok := s.index[key]
	if ok {
		s.nodes[i].value = value
	}
	return ok
}

// PushNewest adds key at the newest end.
// If key is already a member, its value is replaced
// and it is moved to the newest end.
func (s *Set[Key, Value]) PushNewest(key Key, value Value) {
	s.lazyInit()
	if i, ok := s.index[key]; ok {
		s.nodes[i].value = value
		s.moveToNewest(i)
		return
	}
	i := s.alloc()
	s.nodes[i] = node[Key, Value]{key: key, value: value}
	s.linkNewest(i)
	s.index[key] = i
}

// MoveToNewest moves key to the newest end.
// It reports false if key is not a member.
func (s *Set[Key, _]) MoveToNewest(key Key) bool {
	i, ok := s.index[key]
	if ok {
		s.moveToNewest(i)
	}
	return ok
}

// Remove deletes key, returning its value.
func (s *Set[Key, Value]) Remove(key Key) (Value, bool) {
	i, ok := s.index[key]
	if !ok {
		var zero Value
		return zero, false
	}
	_, value := s.release(i)
	return value, true
}

// Oldest returns the member at the oldest end.
func (s *Set[Key, Value]) Oldest() (Key, Value, bool) {
	return s.at(s.first())
}

// Newest returns the member at the newest end.
func (s *Set[Key, Value]) Newest() (Key, Value, bool) {
	return s.at(s.last())
}

// PopOldest removes and returns the member at the oldest end.
func (s *Set[Key, Value]) PopOldest() (Key, Value, bool) {
	return s.pop(s.first())
}

// PopNewest removes and returns the member at the newest end.
func (s *Set[Key, Value]) PopNewest() (Key, Value, bool) {
	return s.pop(s.last())
}

// Clear removes every member and releases the arena.
func (s *Set[_, _]) Clear() {
	s.index = nil
	s.nodes = nil
	s.free = nil
}

// All returns an iterator over members from oldest to newest.
// The set must not be modified during iteration.
func (s *Set[Key, Value]) All() iter.Seq2[Key, Value] {
	return func(yield func(Key, Value) bool) {
		if s.Len() == 0 {
			return
		}
		for i := s.nodes[sentinel].next; i != sentinel; i = s.nodes[i].next {
			if !yield(s.nodes[i].key, s.nodes[i].value) {
				return
			}
		}
	}
}

// Backward returns an iterator over members from newest to oldest.
// The set must not be modified during iteration.
func (s *Set[Key, Value]) Backward() iter.Seq2[Key, Value] {
	return func(yield func(Key, Value) bool) {
		if s.Len() == 0 {
			return
		}
		for i := s.nodes[sentinel].prev; i != sentinel; i = s.nodes[i].prev {
			if !yield(s.nodes[i].key, s.nodes[i].value) {
				return
			}
		}
	}
}

// Keys returns an iterator over member keys from oldest to newest.
func (s *Set[Key, _]) Keys() iter.Seq[Key] {
	return func(yield func(Key) bool) {
		for key := range s.All() {
			if !yield(key) {
				return
			}
		}
	}
}

func (s *Set[_, _]) first() int {
	if s.Len() == 0 {
		return sentinel
	}
	return s.nodes[sentinel].next
}

func (s *Set[_, _]) last() int {
	if s.Len() == 0 {
		return sentinel
	}
	return s.nodes[sentinel].prev
}

func (s *Set[Key, Value]) at(i int) (Key, Value, bool) {
	if i == sentinel {
		var (
			key   Key
			value Value
		)
		return key, value, false
	}
	n := &s.nodes[i]
	return n.key, n.value, true
}

func (s *Set[Key, Value]) pop(i int) (Key, Value, bool) {
	if i == sentinel {
		var (
			key   Key
			value Value
		)
		return key, value, false
	}
	key, value := s.release(i)
	return key, value, true
}

func (s *Set[Key, Value]) alloc() int {
	if last := len(s.free) - 1; last >= 0 {
		i := s.free[last]
		s.free = s.free[:last]
		return i
	}
	s.nodes = append(s.nodes, node[Key, Value]{})
	return len(s.nodes) - 1
}

// release unlinks slot i, zeroes it so the arena does not
// retain the key or value, and recycles the slot.
func (s *Set[Key, Value]) release(i int) (Key, Value) {
	s.unlink(i)
	n := s.nodes[i]
	delete(s.index, n.key)
	s.nodes[i] = node[Key, Value]{}
	s.free = append(s.free, i)
	return n.key, n.value
}

func (s *Set[_, _]) unlink(i int) {
	var (
		n    = &s.nodes[i]
		prev = n.prev
		next = n.next
	)
	s.nodes[prev].next = next
	s.nodes[next].prev = prev
	n.next, n.prev = sentinel, sentinel
}

func (s *Set[_, _]) linkNewest(i int) {
	newest := s.nodes[sentinel].prev
	s.nodes[i].prev = newest
	s.nodes[i].next = sentinel
	s.nodes[newest].next = i
	s.nodes[sentinel].prev = i
}

func (s *Set[_, _]) moveToNewest(i int) {
	if s.nodes[sentinel].prev == i {
		return
	}
	s.unlink(i)
	s.linkNewest(i)
}
