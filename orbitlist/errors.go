// SPDX-License-Identifier: MIT

package orbitlist

import "errors"

// Sentinel errors.
var (
	// ErrEmptyInput indicates an empty permutation matrix or no neighbor lists.
	ErrEmptyInput = errors.New("orbitlist: empty input")

	// ErrNilStructure indicates a nil structure argument.
	ErrNilStructure = errors.New("orbitlist: nil structure")

	// ErrDuplicateRows indicates repeated sites in column 0 of the permutation matrix.
	ErrDuplicateRows = errors.New("orbitlist: duplicate sites in permutation matrix column 0")

	// ErrUnsortedSites indicates a many-body tuple that is not sorted.
	ErrUnsortedSites = errors.New("orbitlist: unsorted site tuple")

	// ErrNoPermutationMatch indicates sites that match no permutation-matrix row
	// or a tuple that cannot be brought into representative order.
	ErrNoPermutationMatch = errors.New("orbitlist: no permutation matrix match")

	// ErrInconsistentOrbit indicates an equivalent tuple whose cluster differs
	// from the representative.
	ErrInconsistentOrbit = errors.New("orbitlist: equivalent cluster differs from representative")

	// ErrPeriodicBoundary indicates a nonzero offset along a non-periodic axis.
	ErrPeriodicBoundary = errors.New("orbitlist: offset along non-periodic axis")

	// ErrSizeMismatch indicates orbit lists of different length, or a ragged
	// permutation matrix.
	ErrSizeMismatch = errors.New("orbitlist: size mismatch")

	// ErrIndexOutOfRange indicates an orbit index outside [0, Len()).
	ErrIndexOutOfRange = errors.New("orbitlist: index out of range")
)
