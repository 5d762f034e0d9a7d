// SPDX-License-Identifier: MIT

// Package orbitlist builds the complete, sorted list of orbits of a
// primitive structure.
//
// Inputs:
//
//   - the primitive Structure (unique sites set),
//   - the lattice-site permutation matrix: row r lists the images of one
//     site under every symmetry operation, column 0 being the identity,
//   - one neighbor list per cluster order above one (pairs, triplets, ...).
//
// Pipeline (New):
//
//  1. Column 0 of the matrix must be free of duplicates.
//  2. For every primitive site, many-body combinations are enumerated.
//  3. Every tuple is translated so that one of its sites lies in the
//     reference cell. Each such variant is matched against column 0; the
//     smallest matching variant gives the tuple's matrix rows. Unclaimed
//     rows start a new group harvested from every column (every symmetry
//     image), and every image's rows are claimed.
//  4. Each group becomes an Orbit; the representative is the canonical
//     cluster of the group's first tuple.
//  5. Permutation bookkeeping: the allowed self-permutations of the
//     representative and, per tuple, the permutation into representative
//     order.
//  6. Optional consistency check: every tuple canonicalizes to the
//     representative with a radius within 1e-3.
//  7. Orbits are sorted by (order, radius, representative).
//
// Claimed rows live in a builder value owned by one New call; nothing is
// shared between builds.
//
// A built list is a plain value: post-construction edits (Merge,
// SubtractSites, RemoveInactiveOrbits, ...) mutate it in place and are not
// safe for concurrent use. LocalOrbitList only reads the receiver.
package orbitlist
