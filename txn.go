// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package champ

// Txn is a transaction on a map, a mutable builder for batched
// updates. It amortizes the path copying of the persistent methods:
// nodes created inside the transaction carry its edit token and are
// mutated in place on subsequent operations, nodes shared with the
// originating map (or with an earlier [Txn.Commit]) are copied
// exactly once. The ownership check happens at every trie level
// independently, a transaction-owned node may still hold shared
// children.
//
// The originating map is never modified. A transaction must only be
// mutated by one goroutine at a time.
type Txn[K comparable, V any] struct {
	edit   *uint32
	root   *bitmapNode[K, V]
	size   int
	hasher Hasher[K]
}

// Txn starts a new transaction on the map.
func (m *Map[K, V]) Txn() *Txn[K, V] {
	root := m.root
	if root == nil {
		root = &bitmapNode[K, V]{}
	}
	return &Txn[K, V]{
		edit:   new(uint32),
		root:   root,
		size:   m.size,
		hasher: m.hasher,
	}
}

// hashKey hashes key with the transaction's hasher.
func (t *Txn[K, V]) hashKey(key K) uint64 {
	if t.hasher != nil {
		return t.hasher(key)
	}
	return defaultHash(key)
}

// Len returns the number of entries in the transaction.
func (t *Txn[K, V]) Len() int {
	return t.size
}

// Get returns the value associated with key and true, or the zero
// value and false if key is not in the transaction.
func (t *Txn[K, V]) Get(key K) (val V, ok bool) {
	return t.root.get(t.hashKey(key), 0, key)
}

// Insert adds or replaces the entry for key and reports whether the
// key already existed.
func (t *Txn[K, V]) Insert(key K, val V) (existed bool) {
	t.root, existed = t.root.insert(t.edit, t.hashKey(key), 0, key, val)
	if !existed {
		t.size++
	}
	return existed
}

// Delete removes the entry for key and reports whether the key
// existed.
func (t *Txn[K, V]) Delete(key K) (existed bool) {
	t.root, existed = t.root.remove(t.edit, t.hashKey(key), 0, key)
	if existed {
		t.size--
	}
	return existed
}

// Commit freezes the current state of the transaction and returns
// it as an immutable map.
//
// The transaction stays usable: it gets a fresh edit token, so
// further mutations copy-on-write from the committed nodes and the
// returned map is never touched again.
func (t *Txn[K, V]) Commit() *Map[K, V] {
	m := &Map[K, V]{root: t.root, size: t.size, hasher: t.hasher}

	// invalidate ownership of all nodes created so far
	t.edit = new(uint32)

	return m
}
