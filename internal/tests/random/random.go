// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

// Package random provides deterministic pseudo random helpers for
// the champ tests. All generators are seeded, a failing test can be
// replayed with the seed from the log.
package random

import (
	"math/rand/v2"
	"strconv"
)

// Source returns a seeded deterministic random source.
func Source(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed))
}

// Keys returns n distinct string keys in shuffled order.
func Keys(prng *rand.Rand, n int) []string {
	keys := make([]string, n)
	for i := range keys {
		keys[i] = "key-" + strconv.Itoa(i)
	}
	prng.Shuffle(n, func(i, j int) {
		keys[i], keys[j] = keys[j], keys[i]
	})
	return keys
}

// Ints returns n distinct ints in shuffled order.
func Ints(prng *rand.Rand, n int) []int {
	ints := make([]int, n)
	for i := range ints {
		ints[i] = i
	}
	prng.Shuffle(n, func(i, j int) {
		ints[i], ints[j] = ints[j], ints[i]
	})
	return ints
}

// Perms returns all permutations of [0..n), usable for small n.
// It panics for n > 7, the factorial blows up beyond that.
func Perms(n int) [][]int {
	if n > 7 {
		panic("too many permutations, max n is 7")
	}

	base := make([]int, n)
	for i := range base {
		base[i] = i
	}

	var out [][]int

	// Heap's algorithm, iterative version
	c := make([]int, n)
	out = append(out, append([]int(nil), base...))

	i := 0
	for i < n {
		if c[i] < i {
			if i%2 == 0 {
				base[0], base[i] = base[i], base[0]
			} else {
				base[c[i]], base[i] = base[i], base[c[i]]
			}
			out = append(out, append([]int(nil), base...))
			c[i]++
			i = 0
		} else {
			c[i] = 0
			i++
		}
	}

	return out
}
