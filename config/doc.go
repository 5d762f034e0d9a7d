// SPDX-License-Identifier: MIT

// Package config reads the TOML input of an orbit enumeration run: the
// primitive structure, its symmetry operations, the cluster cutoffs and an
// optional supercell.
//
//	[structure]
//	cell = [[1, 0, 0], [0, 1, 0], [0, 0, 1]]
//	positions = [[0, 0, 0]]
//	numbers = [29]
//	pbc = [true, true, true]        # default: fully periodic
//	tolerance = 1e-5                # default: structure.DefaultTolerance
//	allowed_species = [2]           # default: 1 per site
//
//	[[symmetry]]
//	generate = "cubic"              # the m-3m point operations of the cell
//
//	[[symmetry]]
//	rotation = [[1, 0, 0], [0, 1, 0], [0, 0, 1]]
//	translation = [0.5, 0, 0]
//
//	[clusters]
//	cutoffs = [1.1, 1.1]            # pairs, triplets, ...
//
//	[supercell]
//	repeat = [2, 2, 2]
//	numbers = [29, 79, 79, 29, 79, 29, 29, 79]
//
// Rotations are integer matrices in the fractional basis of the cell and
// translations are fractional. A symmetry entry carrying generate expands to
// every generated rotation combined with the entry's translation. The first
// operation must be the identity.
package config
