// SPDX-License-Identifier: MIT

package orbit

import "errors"

// Sentinel errors.
var (
	// ErrIndexOutOfRange indicates an equivalent-sites index outside [0, Len()).
	ErrIndexOutOfRange = errors.New("orbit: index out of range")

	// ErrSizeMismatch indicates per-tuple data whose length differs from the
	// number of tuples or from the orbit order.
	ErrSizeMismatch = errors.New("orbit: size mismatch")

	// ErrOrderMismatch indicates a merge of orbits of different order.
	ErrOrderMismatch = errors.New("orbit: order mismatch")

	// ErrInvalidPermutation indicates a slice that is not a permutation of 0..order-1.
	ErrInvalidPermutation = errors.New("orbit: invalid permutation")

	// ErrNoPermutations indicates that equivalent-sites permutations were not set.
	ErrNoPermutations = errors.New("orbit: permutations not set")

	// ErrSitesNotFound indicates a site tuple that is not part of the orbit.
	ErrSitesNotFound = errors.New("orbit: sites not found")
)
