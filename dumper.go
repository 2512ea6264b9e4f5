// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package champ

import (
	"fmt"
	"io"
	"strings"
)

type nodeType byte

const (
	nullNode         nodeType = iota // empty node
	fullNode                         // entries and children
	leafNode                         // only entries, no children
	intermediateNode                 // only children, no entries
)

// ##################################################
//  useful during development, debugging and testing
// ##################################################

// dumpString is just a wrapper for dump.
func (m *Map[K, V]) dumpString() string {
	w := new(strings.Builder)
	m.dump(w)

	return w.String()
}

// dump the map structure and all the nodes to w.
func (m *Map[K, V]) dump(w io.Writer) {
	if m == nil || m.root == nil {
		return
	}

	fmt.Fprintf(w, "### size(%d), nodes(%d)\n", m.size, m.root.nodeCountRec())
	m.root.dumpRec(w, 0)
}

// dumpRec, rec-descent the trie.
func (n *bitmapNode[K, V]) dumpRec(w io.Writer, depth int) {
	n.dump(w, depth)

	for _, kidAny := range n.children.Items {
		if kid, ok := kidAny.(*bitmapNode[K, V]); ok {
			kid.dumpRec(w, depth+1)
		}
	}
}

// dump the node to w, one line per aspect.
func (n *bitmapNode[K, V]) dump(w io.Writer, depth int) {
	indent := strings.Repeat(".", depth)

	fmt.Fprintf(w, "\n%s[%s] depth: %d\n", indent, n.hasType(), depth)

	if n.entries.Len() != 0 {
		fmt.Fprintf(w, "%sentries(#%d): %v\n", indent, n.entries.Len(), n.entries.All())

		for i, slot := range n.entries.BitSet32.All() {
			e := n.entries.Items[i]
			fmt.Fprintf(w, "%s  [%02d] hash(%#016x) key(%v)\n", indent, slot, e.hash, e.key)
		}
	}

	if n.children.Len() != 0 {
		fmt.Fprintf(w, "%schilds(#%d): %v\n", indent, n.children.Len(), n.children.All())

		for i, slot := range n.children.BitSet32.All() {
			if kid, ok := n.children.Items[i].(*collisionNode[K, V]); ok {
				fmt.Fprintf(w, "%s  [%02d] collision(#%d) hash(%#016x)\n",
					indent, slot, len(kid.entries), kid.hash)
				for _, e := range kid.entries {
					fmt.Fprintf(w, "%s       key(%v)\n", indent, e.key)
				}
			}
		}
	}
}

// hasType returns the node kind as string for dumping.
func (n *bitmapNode[K, V]) hasType() string {
	switch {
	case n.entries.Len() == 0 && n.children.Len() == 0:
		return "NULL"
	case n.entries.Len() != 0 && n.children.Len() != 0:
		return "FULL"
	case n.children.Len() == 0:
		return "LEAF"
	default:
		return "IMED"
	}
}

// nodeCountRec, number of bitmap nodes in the subtree.
func (n *bitmapNode[K, V]) nodeCountRec() int {
	nodes := 1

	for _, kidAny := range n.children.Items {
		if kid, ok := kidAny.(*bitmapNode[K, V]); ok {
			nodes += kid.nodeCountRec()
		}
	}
	return nodes
}
