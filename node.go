// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package champ

import (
	"github.com/persistent-go/champ/internal/sparse"
)

// sliceWidth is the number of hash bits consumed per trie level.
// Each level branches 32 ways, the presence bitmaps are one
// machine word.
const sliceWidth = 5

// sliceMask masks one hash slice, values are in [0..31].
const sliceMask = 1<<sliceWidth - 1

// maxDepth is the first depth with no hash bits left.
// 13 slices of 5 bits cover the full 64-bit hash, the slice at
// depth 12 has only 4 significant bits. Keys that still collide
// at maxDepth have equal hashes and end up in a collision node.
const maxDepth = (64 + sliceWidth - 1) / sliceWidth

// sliceAt extracts the 5-bit hash slice for the given trie depth.
//
// Slicing is the single source of truth for slot selection, the
// insert/remove/compaction code and the invariant checker all go
// through this function.
func sliceAt(hash uint64, depth int) uint8 {
	return uint8(hash>>(depth*sliceWidth)) & sliceMask
}

// entry is a key/value pair stored inline in a trie node.
// The full hash is cached, pushing an entry one level down during
// an insert needs it and the node code has no access to the hasher.
type entry[K comparable, V any] struct {
	key  K
	val  V
	hash uint64
}

// bitmapNode is the regular CHAMP trie node.
//
// It holds two popcount-compressed sparse arrays, one with the
// direct entries and one with the child nodes. The underlying
// bitmaps are disjoint: for every slice value at this depth at most
// one of {entry bit, child bit} is set.
//
// A child is either a *bitmapNode or, below the last bitmap level,
// a *collisionNode. The two shapes have different layouts, they are
// dispatched with a type switch like any other tagged union.
//
// The edit token implements the transient discipline: a node may be
// mutated in place iff its token is the token of the running
// transaction, see editable. Persistent operations pass a nil token
// and therefore copy every node along the descent path.
type bitmapNode[K comparable, V any] struct {
	entries  sparse.Array32[entry[K, V]]
	children sparse.Array32[any] // *bitmapNode[K,V] or *collisionNode[K,V]
	edit     *uint32
}

// editable returns n itself if n is exclusively owned by the
// transaction identified by edit, otherwise a flat copy tagged with
// edit. The ownership check happens independently at every level of
// the recursion, a node owned by the transaction may still hold
// shared children.
func (n *bitmapNode[K, V]) editable(edit *uint32) *bitmapNode[K, V] {
	if edit != nil && n.edit == edit {
		return n
	}
	return &bitmapNode[K, V]{
		entries:  n.entries.Copy(),
		children: n.children.Copy(),
		edit:     edit,
	}
}

// get retrieves the value for key, descending the trie iteratively
// by successive hash slices. Purely functional, no side effects.
func (n *bitmapNode[K, V]) get(hash uint64, depth int, key K) (val V, ok bool) {
	for {
		slot := sliceAt(hash, depth)

		// direct entry at slot, the bitmap guarantees it is the only
		// candidate for this slice value
		if e, ok := n.entries.Get(slot); ok {
			if e.key == key {
				return e.val, true
			}
			return val, false
		}

		kidAny, ok := n.children.Get(slot)
		if !ok {
			return val, false
		}

		switch kid := kidAny.(type) {
		case *bitmapNode[K, V]:
			n = kid
			depth++

		case *collisionNode[K, V]:
			return kid.get(key)

		default:
			panic("logic error, wrong node type")
		}
	}
}

// insert adds or replaces the entry for key and returns the
// resulting node along with true if the key already existed.
//
// With a nil edit token the receiver is never modified, all nodes
// on the descent path are copied and unchanged subtrees are shared
// (copy-on-write). With the edit token of a running transaction,
// nodes created inside that transaction are mutated in place.
func (n *bitmapNode[K, V]) insert(edit *uint32, hash uint64, depth int, key K, val V) (_ *bitmapNode[K, V], existed bool) {
	slot := sliceAt(hash, depth)

	// slot holds a direct entry
	if e, ok := n.entries.Get(slot); ok {
		m := n.editable(edit)

		if e.key == key {
			// replace the value in place resp. in the copy
			m.entries.InsertAt(slot, entry[K, V]{key: key, val: val, hash: hash})
			return m, true
		}

		// same slice, different key: push both entries one level
		// down until their slices differ or the hash is exhausted
		kid := pushDown(edit, depth+1, e, entry[K, V]{key: key, val: val, hash: hash})

		m.entries.DeleteAt(slot)
		m.children.InsertAt(slot, kid)
		return m, false
	}

	// slot holds a child, recurse
	if kidAny, ok := n.children.Get(slot); ok {
		var newKid any

		switch kid := kidAny.(type) {
		case *bitmapNode[K, V]:
			newKid, existed = kid.insert(edit, hash, depth+1, key, val)

		case *collisionNode[K, V]:
			newKid, existed = kid.insert(edit, entry[K, V]{key: key, val: val, hash: hash})

		default:
			panic("logic error, wrong node type")
		}

		m := n.editable(edit)
		m.children.InsertAt(slot, newKid)
		return m, existed
	}

	// empty slot, insert a new direct entry
	m := n.editable(edit)
	m.entries.InsertAt(slot, entry[K, V]{key: key, val: val, hash: hash})
	return m, false
}

// pushDown builds the minimal subtree holding the two conflicting
// entries e1 and e2, starting at depth. As long as the hash slices
// are equal it produces a chain of single-child nodes; when the
// hash is exhausted the two entries provably share the full 64-bit
// hash and a collision node is created.
func pushDown[K comparable, V any](edit *uint32, depth int, e1, e2 entry[K, V]) any {
	if depth == maxDepth {
		return &collisionNode[K, V]{
			hash:    e1.hash,
			entries: []entry[K, V]{e1, e2},
			edit:    edit,
		}
	}

	n := &bitmapNode[K, V]{edit: edit}

	s1 := sliceAt(e1.hash, depth)
	s2 := sliceAt(e2.hash, depth)

	if s1 == s2 {
		n.children.InsertAt(s1, pushDown(edit, depth+1, e1, e2))
		return n
	}

	n.entries.InsertAt(s1, e1)
	n.entries.InsertAt(s2, e2)
	return n
}

// remove deletes the entry for key and returns the resulting node
// along with true if the key was present. If the key is absent the
// receiver is returned unchanged.
//
// Compaction happens on the way back up: a child reduced to a
// single entry (a one-entry bitmap node without children, or a
// collision node demoted below two entries) is replaced by that
// entry stored directly in the receiver. This keeps singleton
// chains from persisting and makes the result independent of the
// deletion order.
func (n *bitmapNode[K, V]) remove(edit *uint32, hash uint64, depth int, key K) (_ *bitmapNode[K, V], existed bool) {
	slot := sliceAt(hash, depth)

	// direct entry at slot
	if e, ok := n.entries.Get(slot); ok {
		if e.key != key {
			return n, false
		}
		m := n.editable(edit)
		m.entries.DeleteAt(slot)
		return m, true
	}

	kidAny, ok := n.children.Get(slot)
	if !ok {
		return n, false
	}

	switch kid := kidAny.(type) {
	case *bitmapNode[K, V]:
		newKid, existed := kid.remove(edit, hash, depth+1, key)
		if !existed {
			return n, false
		}

		m := n.editable(edit)
		if e, ok := newKid.soleEntry(); ok {
			// collapse the singleton child into a direct entry
			m.children.DeleteAt(slot)
			m.entries.InsertAt(slot, e)
		} else {
			m.children.InsertAt(slot, newKid)
		}
		return m, true

	case *collisionNode[K, V]:
		newKid, existed := kid.remove(edit, key)
		if !existed {
			return n, false
		}

		m := n.editable(edit)
		if len(newKid.entries) == 1 {
			// a collision node never holds a single entry,
			// demote it to a direct entry
			m.children.DeleteAt(slot)
			m.entries.InsertAt(slot, newKid.entries[0])
		} else {
			m.children.InsertAt(slot, newKid)
		}
		return m, true

	default:
		panic("logic error, wrong node type")
	}
}

// soleEntry returns the single direct entry and true if the node
// holds exactly one entry and no children.
func (n *bitmapNode[K, V]) soleEntry() (e entry[K, V], ok bool) {
	if n.entries.Len() == 1 && n.children.Len() == 0 {
		return n.entries.Items[0], true
	}
	return e, false
}

// isEmpty returns true if the node holds neither entries nor children.
func (n *bitmapNode[K, V]) isEmpty() bool {
	return n.entries.Len() == 0 && n.children.Len() == 0
}

// count returns the true number of reachable entries below n.
// O(n), used by the invariant checker to validate the cached size.
func (n *bitmapNode[K, V]) count() int {
	cnt := n.entries.Len()

	for _, kidAny := range n.children.Items {
		switch kid := kidAny.(type) {
		case *bitmapNode[K, V]:
			cnt += kid.count()
		case *collisionNode[K, V]:
			cnt += len(kid.entries)
		default:
			panic("logic error, wrong node type")
		}
	}
	return cnt
}
