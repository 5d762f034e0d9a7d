// SPDX-License-Identifier: MIT

// Package matrix provides the small dense linear-algebra kernel used by the
// crystal-structure packages of clustex.
//
// What:
//
//   - Dense: a row-major float64 matrix with bounds-checked At/Set that
//     return sentinel errors instead of panicking.
//   - LU with partial pivoting and Inverse, used to turn a cell metric into
//     its reciprocal (fractional-coordinate) form.
//   - Vec3: a fixed 3-vector with the handful of operations needed for
//     Cartesian positions, lattice vectors and distances.
//   - Round / RoundVec: snap values onto a tolerance grid so that values
//     which are equal up to noise compare exactly afterwards.
//
// Why:
//
//   - Neighbor enumeration needs |col_i(cell⁻¹)| to bound image ranges.
//   - Site lookup by position needs fractional coordinates (cell⁻ᵀ·r).
//   - Symmetry images need R·f + t in fractional space.
//
// Numeric policy:
//
//   - DefaultValidateNaNInf rejects NaN/±Inf on Set.
//   - DefaultEpsilon is the pivot threshold below which a matrix is treated
//     as singular (ErrSingular).
//
// Complexity:
//
//   - NewDense O(r·c); At/Set O(1); Mul O(n³); LU/Inverse O(n³).
//   - Vec3 operations are O(1) and allocation free.
package matrix
