// SPDX-License-Identifier: MIT

package cluster

import "errors"

// Sentinel errors for the cluster package.
var (
	// ErrEmptyCluster indicates a cluster without sites.
	ErrEmptyCluster = errors.New("cluster: no sites")

	// ErrNilStructure indicates a nil structure argument.
	ErrNilStructure = errors.New("cluster: nil structure")

	// ErrSizeMismatch indicates a distance table or ordering of the wrong length.
	ErrSizeMismatch = errors.New("cluster: size mismatch")

	// ErrIndexOutOfRange indicates a position outside [0, Order()).
	ErrIndexOutOfRange = errors.New("cluster: index out of range")

	// ErrInvalidOrder indicates an ordering that is not a permutation.
	ErrInvalidOrder = errors.New("cluster: ordering is not a permutation")

	// ErrNotCanonical indicates that some ordering of the sites compares
	// below the stored (distances, sites) pair.
	ErrNotCanonical = errors.New("cluster: not in canonical order")
)
