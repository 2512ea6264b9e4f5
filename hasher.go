// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package champ

import (
	"hash/maphash"

	"github.com/cespare/xxhash/v2"
)

// Hasher computes the 64-bit hash of a key.
//
// The usual hash contract applies: equal keys must hash equal. The
// trie consumes the hash in 5-bit slices from the least significant
// bits upward, a weak hasher degrades lookups towards the linear
// scan of the collision nodes but never breaks correctness.
type Hasher[K comparable] func(K) uint64

// defaultSeed is shared by all maps built with the default hasher,
// so their tries are structurally comparable within one process.
var defaultSeed = maphash.MakeSeed()

// defaultHash hashes string keys with xxhash and everything else
// with the runtime hasher via maphash.Comparable.
func defaultHash[K comparable](key K) uint64 {
	if s, ok := any(key).(string); ok {
		return xxhash.Sum64String(s)
	}
	return maphash.Comparable(defaultSeed, key)
}

// mix64 is the splitmix64 finalizer, used to scramble entry hashes
// before they are folded into the order-independent map hash.
func mix64(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}
