// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package champ

import "fmt"

// #################################################################
//  deep consistency walk, useful during development and testing,
//  O(n) and not for production use
// #################################################################

// checkInvariants walks the whole trie and validates the structural
// invariants:
//
//  1. every direct entry sits in the slot selected by its hash
//     slice, and the cached hash matches the hasher
//  2. no singleton chains: every non-root subtree holds at least
//     two entries, a node with one entry and no children never
//     persists below the root
//  3. the cached size equals the recursive count
//  4. entry and child bitmaps are disjoint and coupled to their
//     dense arrays
//  5. collision nodes sit below the last bitmap level, hold at
//     least two entries, all with equal hashes and distinct keys
//
// Key uniqueness across the trie follows from 1: equal keys hash
// equal and therefore share the full slot path, where 1 and 5
// forbid duplicates.
func (m *Map[K, V]) checkInvariants() error {
	if m.root == nil {
		if m.size != 0 {
			return fmt.Errorf("nil root but size %d", m.size)
		}
		return nil
	}

	if cnt := m.root.count(); cnt != m.size {
		return fmt.Errorf("cached size %d, recursive count %d", m.size, cnt)
	}

	return m.root.checkRec(m.hashKey, 0, 0)
}

// hashPrefixMask masks the hash bits consumed up to depth.
func hashPrefixMask(depth int) uint64 {
	if depth*sliceWidth >= 64 {
		return ^uint64(0)
	}
	return 1<<(depth*sliceWidth) - 1
}

// checkRec validates the subtree rooted at n. The prefix carries
// the hash bits dictated by the slot path from the root, every
// entry below n must match it.
func (n *bitmapNode[K, V]) checkRec(hashKey func(K) uint64, depth int, prefix uint64) error {
	if depth >= maxDepth {
		return fmt.Errorf("depth %d: bitmap node below max depth %d", depth, maxDepth)
	}

	if n.entries.BitSet32.Intersects(n.children.BitSet32) {
		return fmt.Errorf("depth %d: entry and child bitmaps intersect: %v %v",
			depth, n.entries.BitSet32, n.children.BitSet32)
	}
	if n.entries.BitSet32.Size() != n.entries.Len() {
		return fmt.Errorf("depth %d: entry bitmap size %d, dense array len %d",
			depth, n.entries.BitSet32.Size(), n.entries.Len())
	}
	if n.children.BitSet32.Size() != n.children.Len() {
		return fmt.Errorf("depth %d: child bitmap size %d, dense array len %d",
			depth, n.children.BitSet32.Size(), n.children.Len())
	}

	mask := hashPrefixMask(depth)

	for i, slot := range n.entries.BitSet32.All() {
		e := n.entries.Items[i]

		if hashKey(e.key) != e.hash {
			return fmt.Errorf("depth %d slot %d: cached hash %#x, hasher says %#x",
				depth, slot, e.hash, hashKey(e.key))
		}
		if sliceAt(e.hash, depth) != slot {
			return fmt.Errorf("depth %d: entry with hash %#x in wrong slot %d",
				depth, e.hash, slot)
		}
		if e.hash&mask != prefix {
			return fmt.Errorf("depth %d slot %d: hash %#x does not match path prefix %#x",
				depth, slot, e.hash, prefix)
		}
	}

	for i, slot := range n.children.BitSet32.All() {
		kidPrefix := prefix | uint64(slot)<<(depth*sliceWidth)

		switch kid := n.children.Items[i].(type) {
		case *bitmapNode[K, V]:
			// children exist only to separate colliding entries
			if cnt := kid.count(); cnt < 2 {
				return fmt.Errorf("depth %d slot %d: child subtree with %d entries persists",
					depth, slot, cnt)
			}
			if err := kid.checkRec(hashKey, depth+1, kidPrefix); err != nil {
				return err
			}

		case *collisionNode[K, V]:
			if depth+1 != maxDepth {
				return fmt.Errorf("depth %d slot %d: collision node above max depth",
					depth, slot)
			}
			if err := kid.check(hashKey, kidPrefix); err != nil {
				return err
			}

		default:
			return fmt.Errorf("depth %d slot %d: wrong node type %T",
				depth, slot, n.children.Items[i])
		}
	}

	return nil
}

// check validates a collision node against the full hash dictated
// by its slot path.
func (c *collisionNode[K, V]) check(hashKey func(K) uint64, hash uint64) error {
	if len(c.entries) < 2 {
		return fmt.Errorf("collision node with %d entries", len(c.entries))
	}
	if c.hash != hash {
		return fmt.Errorf("collision node hash %#x, path says %#x", c.hash, hash)
	}

	for i, e := range c.entries {
		if e.hash != c.hash {
			return fmt.Errorf("collision entry hash %#x, node hash %#x", e.hash, c.hash)
		}
		if hashKey(e.key) != e.hash {
			return fmt.Errorf("collision entry cached hash %#x, hasher says %#x",
				e.hash, hashKey(e.key))
		}
		for _, f := range c.entries[i+1:] {
			if e.key == f.key {
				return fmt.Errorf("duplicate key %v in collision node", e.key)
			}
		}
	}

	return nil
}
