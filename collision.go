// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package champ

import "slices"

// collisionNode is the fallback node variant for keys whose hashes
// are equal over the full 64 bits. It holds a flat, unordered list
// of entries and only ever exists below the last bitmap level.
//
// Invariant: a collision node never holds fewer than two entries.
// It is created when a second key with an identical hash arrives
// and is demoted to a direct entry by remove once only one entry
// would remain.
type collisionNode[K comparable, V any] struct {
	hash    uint64
	entries []entry[K, V]
	edit    *uint32
}

// editable returns c itself if c is exclusively owned by the
// transaction identified by edit, otherwise a flat copy tagged
// with edit.
func (c *collisionNode[K, V]) editable(edit *uint32) *collisionNode[K, V] {
	if edit != nil && c.edit == edit {
		return c
	}
	return &collisionNode[K, V]{
		hash:    c.hash,
		entries: append(c.entries[:0:0], c.entries...),
		edit:    edit,
	}
}

// get scans the flat list for key. O(len), the collision sets are
// expected to be tiny.
func (c *collisionNode[K, V]) get(key K) (val V, ok bool) {
	for _, e := range c.entries {
		if e.key == key {
			return e.val, true
		}
	}
	return val, false
}

// insert adds or replaces the entry for e.key and returns the
// resulting node along with true if the key already existed.
func (c *collisionNode[K, V]) insert(edit *uint32, e entry[K, V]) (_ *collisionNode[K, V], existed bool) {
	for i, old := range c.entries {
		if old.key == e.key {
			m := c.editable(edit)
			m.entries[i] = e
			return m, true
		}
	}

	m := c.editable(edit)
	m.entries = append(m.entries, e)
	return m, false
}

// remove deletes the entry for key and returns the resulting node
// along with true if the key was present. The caller must demote
// the node to a direct entry if a single entry remains.
func (c *collisionNode[K, V]) remove(edit *uint32, key K) (_ *collisionNode[K, V], existed bool) {
	for i, e := range c.entries {
		if e.key == key {
			m := c.editable(edit)
			m.entries = slices.Delete(m.entries, i, i+1)
			return m, true
		}
	}
	return c, false
}
