// SPDX-License-Identifier: MIT

// Package matrix - LU decomposition with partial pivoting and inversion.
//
// Purpose:
//   - Factor P·A = L·U (L unit lower triangular, U upper triangular).
//   - Invert small square matrices (cell metrics) column by column through
//     forward/backward substitution.
//
// Notes:
//   - Row pivoting is required: common lattice cells (face-centred, hexagonal
//     in some settings) have a zero in the (0,0) slot.

package matrix

import (
	"fmt"
	"math"
)

// Operation tags for uniform error wrapping.
const (
	opLU      = "LU"
	opInverse = "Inverse"
	opDet     = "Det"
)

// zeroSum is the initial accumulator for substitutions.
const zeroSum = 0.0

// matrixErrorf wraps err with an operation tag, preserving it for errors.Is.
// Use only when err != nil.
func matrixErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// LUResult holds a pivoted factorization P·A = L·U.
//   - L is unit lower triangular, U is upper triangular.
//   - Perm[i] is the row of A that ended up in row i.
//   - Sign is +1/-1 according to the parity of Perm.
type LUResult struct {
	L, U *Dense
	Perm []int
	Sign float64
}

// LU computes the pivoted Doolittle decomposition of a square matrix.
//
// Implementation:
//   - Stage 1: Validate non-nil and square.
//   - Stage 2: For each column pick the row with the largest |a| as pivot.
//   - Stage 3: Eliminate below the pivot, storing multipliers in L.
//
// Errors:
//   - ErrNilMatrix, ErrNonSquare,
//   - ErrSingular when the largest available pivot is <= eps.
//
// Complexity: O(n³) time, O(n²) memory.
func LU(m *Dense, opts ...Option) (*LUResult, error) {
	if m == nil {
		return nil, matrixErrorf(opLU, ErrNilMatrix)
	}
	if m.r != m.c {
		return nil, matrixErrorf(opLU, fmt.Errorf("%dx%d: %w", m.r, m.c, ErrNonSquare))
	}
	o := gatherOptions(opts...)

	n := m.r
	a := m.Clone()
	perm := make([]int, n)
	for i := range perm {
		perm[i] = i
	}
	sign := 1.0

	var i, j, k, p int
	for k = 0; k < n; k++ {
		// pivot search
		p = k
		best := math.Abs(a.data[k*n+k])
		for i = k + 1; i < n; i++ {
			if v := math.Abs(a.data[i*n+k]); v > best {
				best, p = v, i
			}
		}
		if best <= o.eps {
			return nil, matrixErrorf(opLU, ErrSingular)
		}
		if p != k {
			for j = 0; j < n; j++ {
				a.data[k*n+j], a.data[p*n+j] = a.data[p*n+j], a.data[k*n+j]
			}
			perm[k], perm[p] = perm[p], perm[k]
			sign = -sign
		}

		pivot := a.data[k*n+k]
		for i = k + 1; i < n; i++ {
			f := a.data[i*n+k] / pivot
			a.data[i*n+k] = f
			for j = k + 1; j < n; j++ {
				a.data[i*n+j] -= f * a.data[k*n+j]
			}
		}
	}

	L := &Dense{r: n, c: n, data: make([]float64, n*n), validateNaNInf: m.validateNaNInf}
	U := &Dense{r: n, c: n, data: make([]float64, n*n), validateNaNInf: m.validateNaNInf}
	for i = 0; i < n; i++ {
		for j = 0; j < n; j++ {
			switch {
			case i > j:
				L.data[i*n+j] = a.data[i*n+j]
			case i == j:
				L.data[i*n+j] = 1
				U.data[i*n+j] = a.data[i*n+j]
			default:
				U.data[i*n+j] = a.data[i*n+j]
			}
		}
	}

	return &LUResult{L: L, U: U, Perm: perm, Sign: sign}, nil
}

// Solve returns x with A·x = b for the factorized A.
// Errors: ErrDimensionMismatch when len(b) != n.
func (f *LUResult) Solve(b []float64) ([]float64, error) {
	n := f.L.r
	if len(b) != n {
		return nil, fmt.Errorf("LUResult.Solve: len %d, want %d: %w", len(b), n, ErrDimensionMismatch)
	}
	y := make([]float64, n)
	x := make([]float64, n)
	var i, k int
	var sum float64
	// forward: L·y = P·b
	for i = 0; i < n; i++ {
		sum = zeroSum
		for k = 0; k < i; k++ {
			sum += f.L.data[i*n+k] * y[k]
		}
		y[i] = b[f.Perm[i]] - sum
	}
	// backward: U·x = y
	for i = n - 1; i >= 0; i-- {
		sum = zeroSum
		for k = i + 1; k < n; k++ {
			sum += f.U.data[i*n+k] * x[k]
		}
		x[i] = (y[i] - sum) / f.U.data[i*n+i]
	}

	return x, nil
}

// Det returns the determinant of the factorized matrix.
func (f *LUResult) Det() float64 {
	d := f.Sign
	n := f.U.r
	for i := 0; i < n; i++ {
		d *= f.U.data[i*n+i]
	}

	return d
}

// Inverse returns m⁻¹.
//
// Errors:
//   - ErrNilMatrix, ErrNonSquare,
//   - ErrSingular (propagated from LU).
//
// Complexity: O(n³).
func Inverse(m *Dense, opts ...Option) (*Dense, error) {
	f, err := LU(m, opts...)
	if err != nil {
		return nil, matrixErrorf(opInverse, err)
	}

	n := m.r
	inv := &Dense{r: n, c: n, data: make([]float64, n*n), validateNaNInf: m.validateNaNInf}
	e := make([]float64, n)
	for col := 0; col < n; col++ {
		for i := range e {
			e[i] = 0
		}
		e[col] = 1
		x, err := f.Solve(e)
		if err != nil {
			return nil, matrixErrorf(opInverse, err)
		}
		for i := 0; i < n; i++ {
			inv.data[i*n+col] = x[i]
		}
	}

	return inv, nil
}

// Det returns the determinant of a square matrix; a singular matrix yields 0.
// Errors: ErrNilMatrix, ErrNonSquare.
func Det(m *Dense) (float64, error) {
	f, err := LU(m, WithEpsilon(0))
	if err != nil {
		if m != nil && m.r == m.c {
			return 0, nil
		}

		return 0, matrixErrorf(opDet, err)
	}

	return f.Det(), nil
}
