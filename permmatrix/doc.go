// SPDX-License-Identifier: MIT

// Package permmatrix tabulates the images of a set of fractional positions
// under every symmetry operation of a crystal.
//
// What:
//
//   - Matrix: entry [row][col] is R_col·p_row + t_col, rounded to
//     DefaultRounding (1e-7). Column 0 must be the identity operation so that
//     the first column reproduces the input positions.
//   - LatticeSiteMatrix: the same table with every position resolved to the
//     lattice site it lands on, built from the primitive site positions plus
//     all their neighbors within a cutoff. Rows whose first-column site
//     repeats an earlier row are pruned, so column 0 is duplicate-free.
//
// Operations act on fractional (cell) coordinates: rotations are integer
// matrices and translations fractions of the lattice vectors, which is the
// convention of symmetry-finder output. CubicOperations returns the 48 point
// operations of the m-3m group for cubic cells.
//
// Complexity: Build is O(P·S) for P positions and S operations;
// LatticeSiteMatrix adds one lattice lookup (O(N)) per entry.
package permmatrix
