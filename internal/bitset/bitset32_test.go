// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package bitset

import (
	"math/rand/v2"
	"slices"
	"testing"
)

func TestBitSet32SetClearTest(t *testing.T) {
	t.Parallel()

	var b BitSet32
	for bit := uint8(0); bit < 32; bit++ {
		if b.Test(bit) {
			t.Fatalf("Test(%d) on empty set, expected false", bit)
		}
	}

	for bit := uint8(0); bit < 32; bit++ {
		b.MustSet(bit)
		if !b.Test(bit) {
			t.Fatalf("Test(%d) after MustSet, expected true", bit)
		}
	}

	if b.Size() != 32 {
		t.Fatalf("Size() = %d, expected 32", b.Size())
	}

	for bit := uint8(0); bit < 32; bit++ {
		b.MustClear(bit)
		if b.Test(bit) {
			t.Fatalf("Test(%d) after MustClear, expected false", bit)
		}
	}

	if !b.IsEmpty() {
		t.Fatalf("IsEmpty() = false after clearing all bits")
	}
}

func TestBitSet32Rank0(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name string
		bits []uint8
		bit  uint8
		want int
	}{
		{name: "single bit at 0", bits: []uint8{0}, bit: 0, want: 0},
		{name: "single bit at 31", bits: []uint8{31}, bit: 31, want: 0},
		{name: "rank in the middle", bits: []uint8{2, 5, 7, 31}, bit: 7, want: 2},
		{name: "rank at the top", bits: []uint8{2, 5, 7, 31}, bit: 31, want: 3},
		{name: "rank below first set bit", bits: []uint8{5, 9}, bit: 3, want: -1},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var b BitSet32
			for _, bit := range tc.bits {
				b.MustSet(bit)
			}
			if rnk := b.Rank0(tc.bit); rnk != tc.want {
				t.Errorf("Rank0(%d) = %d, want %d", tc.bit, rnk, tc.want)
			}
		})
	}
}

// Rank0 against a naive popcount loop over random bitsets.
func TestBitSet32Rank0Random(t *testing.T) {
	t.Parallel()

	prng := rand.New(rand.NewPCG(42, 42))
	for range 10_000 {
		b := BitSet32(prng.Uint32())
		bit := uint8(prng.UintN(32))

		want := -1
		for i := uint8(0); i <= bit; i++ {
			if b.Test(i) {
				want++
			}
		}

		if rnk := b.Rank0(bit); rnk != want {
			t.Fatalf("Rank0(%d) on %#032b = %d, want %d", bit, b, rnk, want)
		}
	}
}

func TestBitSet32FirstSet(t *testing.T) {
	t.Parallel()

	if _, ok := BitSet32(0).FirstSet(); ok {
		t.Error("FirstSet() on empty set, expected ok=false")
	}

	for bit := uint8(0); bit < 32; bit++ {
		var b BitSet32
		b.MustSet(bit)
		first, ok := b.FirstSet()
		if !ok || first != bit {
			t.Errorf("FirstSet() = (%d, %v), want (%d, true)", first, ok, bit)
		}
	}
}

func TestBitSet32NextSet(t *testing.T) {
	t.Parallel()

	var b BitSet32
	for _, bit := range []uint8{3, 7, 8, 30} {
		b.MustSet(bit)
	}

	var got []uint8
	for bit, ok := b.NextSet(0); ok; bit, ok = b.NextSet(bit + 1) {
		got = append(got, bit)
	}

	want := []uint8{3, 7, 8, 30}
	if !slices.Equal(got, want) {
		t.Errorf("NextSet iteration = %v, want %v", got, want)
	}

	if _, ok := b.NextSet(31); ok {
		t.Error("NextSet(31) with bit 31 unset, expected ok=false")
	}
	if _, ok := b.NextSet(32); ok {
		t.Error("NextSet(32), out of range, expected ok=false")
	}
}

func TestBitSet32AllAsSlice(t *testing.T) {
	t.Parallel()

	prng := rand.New(rand.NewPCG(7, 7))
	buf := make([]uint8, 0, 32)

	for range 1_000 {
		b := BitSet32(prng.Uint32())

		want := []uint8{}
		for bit := uint8(0); bit < 32; bit++ {
			if b.Test(bit) {
				want = append(want, bit)
			}
		}

		if got := b.All(); !slices.Equal(got, want) {
			t.Fatalf("All() on %#032b = %v, want %v", b, got, want)
		}
		if got := b.AsSlice(buf); !slices.Equal(got, want) {
			t.Fatalf("AsSlice() on %#032b = %v, want %v", b, got, want)
		}
		if got := b.Size(); got != len(want) {
			t.Fatalf("Size() on %#032b = %d, want %d", b, got, len(want))
		}
	}
}

func TestBitSet32Intersects(t *testing.T) {
	t.Parallel()

	var a, b BitSet32
	a.MustSet(4)
	b.MustSet(5)
	if a.Intersects(b) {
		t.Error("disjoint sets, Intersects() = true")
	}
	b.MustSet(4)
	if !a.Intersects(b) {
		t.Error("overlapping sets, Intersects() = false")
	}
}

func BenchmarkBitSet32Rank0(b *testing.B) {
	bs := BitSet32(rand.Uint32())
	bit := uint8(rand.UintN(32))

	var rnk int
	for b.Loop() {
		rnk = bs.Rank0(bit)
	}
	_ = rnk
}

func BenchmarkBitSet32Test(b *testing.B) {
	bs := BitSet32(rand.Uint32())
	bit := uint8(rand.UintN(32))

	var ok bool
	for b.Loop() {
		ok = bs.Test(bit)
	}
	_ = ok
}
