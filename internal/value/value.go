// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

// Package value provides utilities for working with generic type parameters
// as payload at runtime.
//
// This is an internal package used by the champ data structure implementation.
package value

import (
	"reflect"
)

// Equaler is a generic interface for types that can decide their own
// equality logic. It can be used to override the potentially expensive
// default comparison with [reflect.DeepEqual].
type Equaler[V any] interface {
	Equal(other V) bool
}

// Equal compares two values of type V for equality.
// If V implements Equaler[V], that custom equality method is used,
// avoiding the potentially expensive reflect.DeepEqual.
// Otherwise, reflect.DeepEqual is used as a fallback.
func Equal[V any](v1, v2 V) bool {
	// you can't assert directly on a type parameter
	if v1, ok := any(v1).(Equaler[V]); ok {
		return v1.Equal(v2)
	}
	// fallback
	return reflect.DeepEqual(v1, v2)
}

// Hasher64 is a generic interface for payload types that can contribute
// their own 64-bit hash. Map.Hash folds payload hashes into the
// order-independent map hash when V implements Hasher64, otherwise the
// payload is left out and only the keys are hashed.
type Hasher64 interface {
	Hash64() uint64
}

// Hash64 returns the payload hash of val and true when V implements
// [Hasher64], otherwise zero and false.
func Hash64[V any](val V) (uint64, bool) {
	if h, ok := any(val).(Hasher64); ok {
		return h.Hash64(), true
	}
	return 0, false
}
