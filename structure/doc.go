// SPDX-License-Identifier: MIT

// Package structure holds a periodic crystal structure: a 3×3 cell whose rows
// are the lattice vectors, Cartesian basis positions, atomic numbers and the
// periodic-boundary flag of each cell axis.
//
// A Structure also carries the two per-site annotations the cluster machinery
// needs:
//
//   - unique sites: the id of the symmetry-distinct site each basis site
//     belongs to (defaults to the identity map),
//   - number of allowed species per site (defaults to 1).
//
// Positions of lattice sites are resolved as
//
//	r(site) = positions[site.Index] + Σ_k site.Offset[k]·cell[k]
//
// and the reverse lookup (FindLatticeSiteByPosition) goes through fractional
// coordinates, so that a position produced by any symmetry operation maps back
// onto (index, offset) within the structure tolerance.
//
// A Structure is read-only once built; the cluster packages share it freely
// across goroutines.
package structure
