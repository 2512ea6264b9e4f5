// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package champ

import "iter"

// Set is a persistent hash set, a [Map] with zero-sized payloads.
// It shares the CHAMP trie machinery and all of its guarantees:
// structural sharing, O(log32 n) operations, safe concurrent reads.
//
// The zero value is an empty set, ready to use.
type Set[K comparable] struct {
	m Map[K, struct{}]
}

// NewSet returns an empty set using the default hasher.
func NewSet[K comparable]() *Set[K] {
	return &Set[K]{}
}

// NewSetWithHasher returns an empty set using the given hasher.
func NewSetWithHasher[K comparable](hasher Hasher[K]) *Set[K] {
	return &Set[K]{m: Map[K, struct{}]{hasher: hasher}}
}

// SetOf returns a set holding the given keys, duplicates collapse.
func SetOf[K comparable](keys ...K) *Set[K] {
	t := New[K, struct{}]().Txn()
	for _, key := range keys {
		t.Insert(key, struct{}{})
	}
	return &Set[K]{m: *t.Commit()}
}

// CollectSet returns a set holding all keys from seq.
func CollectSet[K comparable](seq iter.Seq[K]) *Set[K] {
	t := New[K, struct{}]().Txn()
	for key := range seq {
		t.Insert(key, struct{}{})
	}
	return &Set[K]{m: *t.Commit()}
}

// Len returns the number of keys in the set.
func (s *Set[K]) Len() int {
	return s.m.Len()
}

// IsEmpty returns true if the set has no keys.
func (s *Set[K]) IsEmpty() bool {
	return s.m.IsEmpty()
}

// Contains reports whether key is in the set.
func (s *Set[K]) Contains(key K) bool {
	return s.m.Contains(key)
}

// With returns a set with key added, the receiver is unchanged.
func (s *Set[K]) With(key K) *Set[K] {
	if s.m.Contains(key) {
		return s
	}
	return &Set[K]{m: *s.m.With(key, struct{}{})}
}

// Without returns a set with key removed, the receiver is
// unchanged. If key is not in the set the receiver itself is
// returned.
func (s *Set[K]) Without(key K) *Set[K] {
	next := s.m.Without(key)
	if next == &s.m {
		return s
	}
	return &Set[K]{m: *next}
}

// All returns an iterator over all keys of the set, in a stable
// but unspecified order, see [Map.All].
func (s *Set[K]) All() iter.Seq[K] {
	return s.m.Keys()
}

// Union returns a set holding all keys of s and other.
func (s *Set[K]) Union(other *Set[K]) *Set[K] {
	if other == nil || other.IsEmpty() {
		return s
	}
	if s.IsEmpty() {
		return other
	}

	t := s.m.Txn()
	for key := range other.All() {
		t.Insert(key, struct{}{})
	}
	return &Set[K]{m: *t.Commit()}
}

// Intersect returns a set holding the keys present in both sets.
func (s *Set[K]) Intersect(other *Set[K]) *Set[K] {
	result := Map[K, struct{}]{hasher: s.m.hasher}
	if other == nil {
		return &Set[K]{m: result}
	}

	t := result.Txn()
	for key := range s.All() {
		if other.Contains(key) {
			t.Insert(key, struct{}{})
		}
	}
	return &Set[K]{m: *t.Commit()}
}

// Difference returns a set holding the keys of s not in other.
func (s *Set[K]) Difference(other *Set[K]) *Set[K] {
	if other == nil || other.IsEmpty() {
		return s
	}

	t := s.m.Txn()
	for key := range other.All() {
		t.Delete(key)
	}
	return &Set[K]{m: *t.Commit()}
}

// Equal reports whether both sets hold the same keys, independent
// of insertion order. Both sets must have been built with the same
// hasher.
func (s *Set[K]) Equal(other *Set[K]) bool {
	if s == other {
		return true
	}
	if other == nil {
		return false
	}
	return s.m.Equal(&other.m)
}

// Hash returns an order-independent hash of the set,
// see [Map.Hash].
func (s *Set[K]) Hash() uint64 {
	return s.m.Hash()
}
