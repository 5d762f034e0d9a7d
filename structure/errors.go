// SPDX-License-Identifier: MIT

package structure

import "errors"

// Sentinel errors for structure construction and lookups.
var (
	// ErrEmptyStructure indicates a structure without any site.
	ErrEmptyStructure = errors.New("structure: no sites")

	// ErrSizeMismatch indicates per-site slices of different lengths.
	ErrSizeMismatch = errors.New("structure: per-site data size mismatch")

	// ErrSingularCell indicates linearly dependent cell vectors.
	ErrSingularCell = errors.New("structure: singular cell")

	// ErrIndexOutOfRange indicates a site index outside [0, Size()).
	ErrIndexOutOfRange = errors.New("structure: site index out of range")

	// ErrSiteNotFound indicates that no site matches a position within tolerance.
	ErrSiteNotFound = errors.New("structure: no site at position")

	// ErrInvalidRepeat indicates a non-positive supercell repetition.
	ErrInvalidRepeat = errors.New("structure: repeat must be >= 1 along every axis")

	// ErrInvalidSpecies indicates a number of allowed species below 1.
	ErrInvalidSpecies = errors.New("structure: number of allowed species must be >= 1")
)
