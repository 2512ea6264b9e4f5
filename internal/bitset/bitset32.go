// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

// Package bitset implements a fixed size bitset for 32 slots,
// a mapping between the integers [0..31] and boolean values.
//
// Studied [github.com/bits-and-blooms/bitset] inside out
// and rewrote the needed parts from scratch for this project.
//
// The whole bitset fits into a single machine word, all methods
// are branch-cheap and inlineable, they are called on every trie
// level of every map operation.
package bitset

import (
	"fmt"
	"math/bits"
)

// BitSet32 represents a fixed size bitset from [0..31].
type BitSet32 uint32

func (b BitSet32) String() string {
	return fmt.Sprint(b.All())
}

// MustSet sets the bit, bit must be < 32.
func (b *BitSet32) MustSet(bit uint8) {
	*b |= 1 << (bit & 31)
}

// MustClear clears the bit, bit must be < 32.
func (b *BitSet32) MustClear(bit uint8) {
	*b &^= 1 << (bit & 31)
}

// Test if the bit is set.
func (b BitSet32) Test(bit uint8) bool {
	return b&(1<<(bit&31)) != 0
}

// Rank0 returns the number of set bits up to and including bit, minus 1.
//
// It is only used as a dense slice index after a successful Test,
// hence the offset by one.
//
//	                  ⬇
//	BitSet32:  [0|0|1|0|0|1|0|...|1] <- 3 bits set
//	Items:     [*|*|*]               <- len(Items) = 3
//	              ⬆
//
//	b.Test(5):  true
//	b.Rank0(5): 1
func (b BitSet32) Rank0(bit uint8) int {
	// mask has all bits up to and including bit set,
	// (1<<(bit+1))-1 would overflow the word at bit == 31
	mask := ^uint32(0) >> (31 - bit&31)
	return bits.OnesCount32(uint32(b)&mask) - 1
}

// FirstSet returns the first bit set along with an ok code.
func (b BitSet32) FirstSet() (first uint8, ok bool) {
	if b == 0 {
		return 0, false
	}
	return uint8(bits.TrailingZeros32(uint32(b))), true
}

// NextSet returns the next bit set from the specified start bit,
// including possibly the current bit along with an ok code.
func (b BitSet32) NextSet(bit uint8) (uint8, bool) {
	if bit > 31 {
		return 0, false
	}
	if rest := uint32(b) >> bit; rest != 0 {
		return bit + uint8(bits.TrailingZeros32(rest)), true
	}
	return 0, false
}

// AsSlice returns all set bits as slice of uint8 without
// heap allocations.
//
// This is faster than All, but also more dangerous,
// it panics if the capacity of buf is < b.Size().
func (b BitSet32) AsSlice(buf []uint8) []uint8 {
	buf = buf[:cap(buf)] // use cap as max len

	size := 0
	word := uint32(b)
	for ; word != 0; size++ {
		// panics if capacity of buf is exceeded
		buf[size] = uint8(bits.TrailingZeros32(word))

		// clear the rightmost set bit
		word &= word - 1
	}

	return buf[:size]
}

// All returns all set bits. This has a simpler API but is slower than AsSlice.
func (b BitSet32) All() []uint8 {
	return b.AsSlice(make([]uint8, 0, 32))
}

// IsEmpty returns true if no bit is set.
func (b BitSet32) IsEmpty() bool {
	return b == 0
}

// Intersects returns true if the intersection with the compare set
// is not the empty set.
func (b BitSet32) Intersects(c BitSet32) bool {
	return b&c != 0
}

// Size is the number of set bits (popcount).
func (b BitSet32) Size() int {
	return bits.OnesCount32(uint32(b))
}
