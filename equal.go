// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package champ

import (
	"github.com/persistent-go/champ/internal/value"
)

// Equal reports whether both maps hold the same set of key/value
// pairs. Keys are compared with ==; values via their Equal method
// when V implements [value.Equaler], otherwise with
// reflect.DeepEqual.
//
// Equality is structural and therefore independent of insertion
// order: two maps built from the same pairs in any order compare
// equal. It short-circuits on an identical root reference and on
// differing counts. Both maps must have been built with the same
// hasher.
func (m *Map[K, V]) Equal(other *Map[K, V]) bool {
	if m == other {
		return true
	}
	if other == nil || m.size != other.size {
		return false
	}
	if m.size == 0 {
		return true
	}
	if m.root == other.root {
		return true
	}
	return m.root.equalRec(other.root)
}

// equalRec, structural equality of two subtrees. Since the trie is
// canonical (compaction on delete, no singleton chains) equal entry
// sets have identical bitmaps everywhere, only the collision node
// lists are unordered and need set comparison.
func (n *bitmapNode[K, V]) equalRec(o *bitmapNode[K, V]) bool {
	if n == o {
		return true
	}
	if n.entries.BitSet32 != o.entries.BitSet32 {
		return false
	}
	if n.children.BitSet32 != o.children.BitSet32 {
		return false
	}

	for i, e := range n.entries.Items {
		oe := o.entries.Items[i]
		if e.key != oe.key || !value.Equal(e.val, oe.val) {
			return false
		}
	}

	for i, kidAny := range n.children.Items {
		switch kid := kidAny.(type) {
		case *bitmapNode[K, V]:
			oKid, ok := o.children.Items[i].(*bitmapNode[K, V])
			if !ok || !kid.equalRec(oKid) {
				return false
			}

		case *collisionNode[K, V]:
			oKid, ok := o.children.Items[i].(*collisionNode[K, V])
			if !ok || !kid.equalSet(oKid) {
				return false
			}

		default:
			panic("logic error, wrong node type")
		}
	}

	return true
}

// equalSet, order-independent equality of two collision nodes.
// Inserting the same colliding keys in different orders yields
// differently ordered lists that must still compare equal.
func (c *collisionNode[K, V]) equalSet(o *collisionNode[K, V]) bool {
	if c == o {
		return true
	}
	if len(c.entries) != len(o.entries) {
		return false
	}

	for _, e := range c.entries {
		oVal, ok := o.get(e.key)
		if !ok || !value.Equal(e.val, oVal) {
			return false
		}
	}
	return true
}

// Hash returns an order-independent hash of the map: the scrambled
// per-entry hashes are combined with xor, so maps that are Equal
// hash equal no matter how they were built.
//
// The entry hash covers the key hash and, when V implements
// [value.Hasher64], the payload hash. Payloads without Hasher64 are
// left out, which is consistent: equal maps still hash equal.
func (m *Map[K, V]) Hash() uint64 {
	var acc uint64
	if m.root != nil {
		acc = m.root.foldHash()
	}
	return mix64(acc ^ uint64(m.size))
}

// foldHash, xor over the scrambled entry hashes of the subtree.
func (n *bitmapNode[K, V]) foldHash() (acc uint64) {
	for _, e := range n.entries.Items {
		acc ^= entryHash(e)
	}

	for _, kidAny := range n.children.Items {
		switch kid := kidAny.(type) {
		case *bitmapNode[K, V]:
			acc ^= kid.foldHash()

		case *collisionNode[K, V]:
			for _, e := range kid.entries {
				acc ^= entryHash(e)
			}

		default:
			panic("logic error, wrong node type")
		}
	}

	return acc
}

// entryHash scrambles the cached key hash, folding in the payload
// hash when the payload provides one.
func entryHash[K comparable, V any](e entry[K, V]) uint64 {
	h := mix64(e.hash)
	if vh, ok := value.Hash64(e.val); ok {
		h = mix64(h ^ vh)
	}
	return h
}
