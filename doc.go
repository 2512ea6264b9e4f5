// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

// Package champ provides persistent hash maps and hash sets,
// implemented as CHAMP tries (Compressed Hash-Array Mapped Prefix
// trees).
//
// A CHAMP trie consumes the 64-bit key hash in 5-bit slices, one
// per level, and branches 32 ways. Instead of allocating full
// arrays, every node holds two popcount-compressed sparse arrays,
// one for entries stored inline and one for child nodes, with two
// disjoint one-word presence bitmaps. Keys whose hashes collide
// over all 64 bits land in flat collision nodes at the deepest
// level.
//
// All collection values are immutable: With, Without and friends
// return new values that share every unchanged node with the
// receiver, so copies are O(1) and mutations touch only the
// O(log32 n) nodes on the descent path. Published nodes are never
// modified again, which makes any number of concurrent readers
// safe without locking.
//
// Batched updates go through transactions ([Map.Txn]): nodes
// created inside a transaction carry its edit token and are mutated
// in place, everything else is copied on first write. This keeps
// bulk construction and merges allocation-cheap without giving up
// value semantics at the API boundary.
//
// Lookup, insert and delete run in O(log32 n) time, worst case 13
// levels. Structural equality and hashing are order-independent:
// maps built from the same pairs in any order compare Equal and
// hash alike.
package champ
