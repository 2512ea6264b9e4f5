// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package champ

import (
	"iter"
)

// Map is a persistent hash map with payload V, implemented as a
// CHAMP trie (compressed hash-array mapped prefix tree).
//
// The zero value is an empty map, ready to use.
//
// A Map value is immutable: mutating methods like [Map.With] and
// [Map.Without] leave the receiver untouched and return a new map
// that shares all unchanged nodes with the receiver (structural
// sharing). Lookup, insert and delete are O(log32 n).
//
// Because published nodes are never modified, any number of
// goroutines may read any number of maps derived from each other
// concurrently without locking. Batched mutations go through
// [Map.Txn].
//
// Maps are only comparable to each other when they were built with
// the same hasher, see [NewWithHasher].
type Map[K comparable, V any] struct {
	root   *bitmapNode[K, V]
	size   int
	hasher Hasher[K]
}

// New returns an empty map using the default hasher.
func New[K comparable, V any]() *Map[K, V] {
	return &Map[K, V]{}
}

// NewWithHasher returns an empty map using the given hasher.
//
// All maps that should be comparable with [Map.Equal] or merged
// with [Map.Merge] must share a hasher with equal semantics.
func NewWithHasher[K comparable, V any](hasher Hasher[K]) *Map[K, V] {
	return &Map[K, V]{hasher: hasher}
}

// Pair is a key/value pair for literal map construction with [Of].
type Pair[K comparable, V any] struct {
	Key   K
	Value V
}

// Of returns a map holding the given pairs.
// On duplicate keys the last pair wins.
func Of[K comparable, V any](pairs ...Pair[K, V]) *Map[K, V] {
	t := New[K, V]().Txn()
	for _, p := range pairs {
		t.Insert(p.Key, p.Value)
	}
	return t.Commit()
}

// Collect returns a map holding all key/value pairs from seq.
// On duplicate keys the last pair wins.
func Collect[K comparable, V any](seq iter.Seq2[K, V]) *Map[K, V] {
	t := New[K, V]().Txn()
	for k, v := range seq {
		t.Insert(k, v)
	}
	return t.Commit()
}

// hashKey hashes key with the map's hasher.
func (m *Map[K, V]) hashKey(key K) uint64 {
	if m.hasher != nil {
		return m.hasher(key)
	}
	return defaultHash(key)
}

// Len returns the number of entries in the map.
func (m *Map[K, V]) Len() int {
	return m.size
}

// IsEmpty returns true if the map has no entries.
func (m *Map[K, V]) IsEmpty() bool {
	return m.size == 0
}

// Get returns the value associated with key and true, or the zero
// value and false if key is not in the map. Absence is not an
// error, there is no fault channel on lookups.
func (m *Map[K, V]) Get(key K) (val V, ok bool) {
	if m.root == nil {
		return val, false
	}
	return m.root.get(m.hashKey(key), 0, key)
}

// Contains reports whether key is in the map.
func (m *Map[K, V]) Contains(key K) bool {
	_, ok := m.Get(key)
	return ok
}

// With returns a map with key set to val, the receiver is
// unchanged. Only the nodes on the descent path are copied, all
// unaffected subtrees are shared between both maps.
func (m *Map[K, V]) With(key K, val V) *Map[K, V] {
	hash := m.hashKey(key)

	root := m.root
	if root == nil {
		root = &bitmapNode[K, V]{}
	}

	newRoot, existed := root.insert(nil, hash, 0, key, val)

	// the size delta is derived from the reported outcome of the
	// root operation, never tracked independently
	size := m.size
	if !existed {
		size++
	}

	return &Map[K, V]{root: newRoot, size: size, hasher: m.hasher}
}

// Without returns a map with key removed, the receiver is
// unchanged. If key is not in the map the receiver itself is
// returned.
func (m *Map[K, V]) Without(key K) *Map[K, V] {
	if m.root == nil {
		return m
	}

	newRoot, existed := m.root.remove(nil, m.hashKey(key), 0, key)
	if !existed {
		return m
	}

	return &Map[K, V]{root: newRoot, size: m.size - 1, hasher: m.hasher}
}

// Update returns a map with the value at key updated via the
// callback. The callback is called with the current value (or the
// zero value) and whether the key was found, and returns the new
// value.
func (m *Map[K, V]) Update(key K, cb func(val V, found bool) V) *Map[K, V] {
	cur, found := m.Get(key)
	return m.With(key, cb(cur, found))
}

// Modify returns a map with the entry at key updated or deleted via
// the callback. The callback is called like in [Map.Update] but
// additionally returns del; if del is true the key is removed
// instead of updated. Deleting an absent key is a no-op.
func (m *Map[K, V]) Modify(key K, cb func(val V, found bool) (_ V, del bool)) *Map[K, V] {
	cur, found := m.Get(key)

	newVal, del := cb(cur, found)
	if del {
		if !found {
			return m
		}
		return m.Without(key)
	}
	return m.With(key, newVal)
}

// Merge returns a map holding the union of m and other. For keys
// present in both maps the resolve callback decides the resulting
// value; it is called with the key, the value from m and the value
// from other. The receiver and other are unchanged.
//
// Both maps must have been built with the same hasher.
func (m *Map[K, V]) Merge(other *Map[K, V], resolve func(key K, existing, incoming V) V) *Map[K, V] {
	if other == nil || other.IsEmpty() {
		return m
	}

	t := m.Txn()
	for key, incoming := range other.All() {
		if existing, found := t.Get(key); found {
			incoming = resolve(key, existing, incoming)
		}
		t.Insert(key, incoming)
	}
	return t.Commit()
}
