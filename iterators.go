// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package champ

import "iter"

// All returns an iterator over all key/value pairs of the map.
//
// The order is stable for a given snapshot: iterating the same map
// twice yields the same sequence, and the sequence is restartable
// (each range loop starts over from the root). The order is neither
// insertion order nor any key order and may change between maps
// that differ by mutations.
func (m *Map[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		if m.root != nil {
			_ = m.root.allRec(yield)
		}
	}
}

// Keys returns an iterator over all keys of the map,
// in the same order as [Map.All].
func (m *Map[K, V]) Keys() iter.Seq[K] {
	return func(yield func(K) bool) {
		if m.root != nil {
			_ = m.root.allRec(func(key K, _ V) bool {
				return yield(key)
			})
		}
	}
}

// Values returns an iterator over all values of the map,
// in the same order as [Map.All].
func (m *Map[K, V]) Values() iter.Seq[V] {
	return func(yield func(V) bool) {
		if m.root != nil {
			_ = m.root.allRec(func(_ K, val V) bool {
				return yield(val)
			})
		}
	}
}

// allRec, depth-first descent over the trie, direct entries first,
// then the children in slot order. If the yield function returns
// false the traversal ends prematurely.
func (n *bitmapNode[K, V]) allRec(yield func(K, V) bool) bool {
	for _, e := range n.entries.Items {
		if !yield(e.key, e.val) {
			return false
		}
	}

	for _, kidAny := range n.children.Items {
		switch kid := kidAny.(type) {
		case *bitmapNode[K, V]:
			if !kid.allRec(yield) {
				return false
			}

		case *collisionNode[K, V]:
			for _, e := range kid.entries {
				if !yield(e.key, e.val) {
					return false
				}
			}

		default:
			panic("logic error, wrong node type")
		}
	}

	return true
}
