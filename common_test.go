// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package champ

import (
	"testing"
)

// test hashers with forced collisions, they keep the hash contract
// (equal keys hash equal) but funnel keys into shared slots to
// exercise push-down, collision nodes and compaction.

// hashConst maps every key to the same hash, all keys collide over
// the full 64 bits and end up in a single collision node at the
// deepest level.
func hashConst(int) uint64 { return 1 }

// hashLowNibble keeps only the low 4 bits, up to 16 distinct
// hashes, plenty of full collisions for larger key sets.
func hashLowNibble(key int) uint64 { return uint64(key) & 0xf }

// hashShifted shifts the key into the upper bits, the lower slices
// are all zero. Two distinct keys first diverge at trie depth 8,
// forcing long single-child chains that the compaction code must
// collapse again on delete.
func hashShifted(key int) uint64 { return uint64(key) << 40 }

// mustInvariants fails the test if the deep consistency walk finds
// a violation.
func mustInvariants[K comparable, V any](t *testing.T, m *Map[K, V]) {
	t.Helper()
	if err := m.checkInvariants(); err != nil {
		t.Fatalf("invariant violation: %v\n%s", err, m.dumpString())
	}
}

// collect drains the map iterator into a standard map.
func collect[K comparable, V any](m *Map[K, V]) map[K]V {
	out := make(map[K]V, m.Len())
	for k, v := range m.All() {
		out[k] = v
	}
	return out
}
