// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package champ

import (
	"testing"

	"github.com/persistent-go/champ/internal/tests/random"
)

// every derived version must keep its own state, no matter how many
// versions fork off the same ancestor.
func TestPersistVersionIsolation(t *testing.T) {
	t.Parallel()

	prng := random.Source(321)
	keys := random.Keys(prng, 100)

	base := New[string, int]()
	for i, k := range keys {
		base = base.With(k, i)
	}

	// fork: every version deletes a different key
	versions := make([]*Map[string, int], len(keys))
	for i, k := range keys {
		versions[i] = base.Without(k)
	}

	for i, k := range keys {
		if v, ok := base.Get(k); !ok || v != i {
			t.Fatalf("base lost key %q", k)
		}
		if versions[i].Contains(k) {
			t.Fatalf("version %d still contains its deleted key %q", i, k)
		}
		if versions[i].Len() != len(keys)-1 {
			t.Fatalf("version %d: Len() = %d, want %d", i, versions[i].Len(), len(keys)-1)
		}
	}
}

// an insert copies only the nodes on its descent path, all sibling
// subtrees at the root must be shared by reference.
func TestPersistStructuralSharing(t *testing.T) {
	t.Parallel()

	prng := random.Source(11)
	keys := random.Keys(prng, 2000)

	m := New[string, int]()
	for i, k := range keys {
		m = m.With(k, i)
	}

	m2 := m.With("brand-new-key", -1)

	// at most one root child may have been replaced
	changed := 0
	for i, slot := range m.root.children.BitSet32.All() {
		kidAny, ok := m2.root.children.Get(slot)
		if !ok {
			// the touched slot may have moved between entry and child
			changed++
			continue
		}
		if kidAny != m.root.children.Items[i] {
			changed++
		}
	}
	if changed > 1 {
		t.Fatalf("%d root children replaced by a single insert, want at most 1", changed)
	}
}

// lookups allocate nothing.
func TestGetAllocFree(t *testing.T) {
	prng := random.Source(77)
	keys := random.Keys(prng, 1000)

	m := New[string, int]()
	for i, k := range keys {
		m = m.With(k, i)
	}

	probe := keys[500]
	allocs := testing.AllocsPerRun(100, func() {
		if _, ok := m.Get(probe); !ok {
			t.Fatal("probe key lost")
		}
	})
	if allocs != 0 {
		t.Errorf("Get allocates %.1f times per run, want 0", allocs)
	}
}

// a persistent insert allocates only the copied path, not the whole
// trie. The bound is generous, it catches accidental deep copies.
func TestWithAllocBound(t *testing.T) {
	prng := random.Source(78)
	keys := random.Keys(prng, 10_000)

	m := New[string, int]()
	for i, k := range keys {
		m = m.With(k, i)
	}

	probe := keys[0]
	allocs := testing.AllocsPerRun(100, func() {
		m.With(probe, 0)
	})

	// path copy: a handful of nodes and their slices, never O(n)
	if allocs > 64 {
		t.Errorf("With allocates %.1f times per run, want a small path copy", allocs)
	}
}
