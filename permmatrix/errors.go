// SPDX-License-Identifier: MIT

package permmatrix

import "errors"

// Sentinel errors.
var (
	// ErrNoPositions indicates an empty position set.
	ErrNoPositions = errors.New("permmatrix: no positions")

	// ErrNoOperations indicates an empty operation list.
	ErrNoOperations = errors.New("permmatrix: no symmetry operations")

	// ErrNoIdentity indicates that the first operation is not the identity.
	ErrNoIdentity = errors.New("permmatrix: first operation must be the identity")

	// ErrNotBuilt indicates an accessor called before Build.
	ErrNotBuilt = errors.New("permmatrix: matrix not built")

	// ErrNilStructure indicates a nil structure argument.
	ErrNilStructure = errors.New("permmatrix: nil structure")

	// ErrOutsideStructure indicates an image that leaves the structure along a
	// non-periodic axis.
	ErrOutsideStructure = errors.New("permmatrix: image outside the non-periodic extent")
)
