// SPDX-License-Identifier: MIT

// Package matrix - Dense storage (row-major) & safe accessors.
//
// Purpose:
//   - Provide a row-major buffer with the explicit index formula i*cols + j.
//   - Guarantee safety at the public surface: At/Set return errors instead of panicking.
//   - Keep algorithmic determinism (fixed loop orders, no map iteration).
//
// Complexity quicksheet:
//   - NewDense: O(r*c); At/Set: O(1); Clone/Transpose: O(r*c); Mul: O(r*k*c).

package matrix

import (
	"fmt"
	"math"
	"strings"
)

// ---------- error context tags ----------

const (
	ctxAt  = "At"
	ctxSet = "Set"
)

// denseErrorf wraps an error with a uniform Dense context and callsite indices.
func denseErrorf(method string, row, col int, err error) error {
	return fmt.Errorf("Dense.%s(%d,%d): %w", method, row, col, err)
}

// Dense is a concrete row-major matrix.
//   - r,c hold dimensions (rows, cols).
//   - data is a flat buffer of length r*c (offset = i*c + j).
//   - validateNaNInf enables NaN/Inf rejection in Set.
type Dense struct {
	r, c           int
	data           []float64
	validateNaNInf bool
}

var _ fmt.Stringer = (*Dense)(nil)

// NewDense creates an r×c zero matrix.
//
// Errors:
//   - ErrInvalidDimensions if rows<=0 or cols<=0.
//
// Complexity: O(r*c) time and memory.
func NewDense(rows, cols int, opts ...Option) (*Dense, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("NewDense(%d,%d): %w", rows, cols, ErrInvalidDimensions)
	}
	o := gatherOptions(opts...)

	return &Dense{
		r:              rows,
		c:              cols,
		data:           make([]float64, rows*cols),
		validateNaNInf: o.validateNaNInf,
	}, nil
}

// NewDenseFrom copies a rectangular [][]float64 into a new Dense.
//
// Errors:
//   - ErrInvalidDimensions for empty input,
//   - ErrBadShape for ragged rows,
//   - ErrNaNInf for non-finite entries under the default policy.
//
// Complexity: O(r*c).
func NewDenseFrom(rows [][]float64, opts ...Option) (*Dense, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, fmt.Errorf("NewDenseFrom: %w", ErrInvalidDimensions)
	}
	m, err := NewDense(len(rows), len(rows[0]), opts...)
	if err != nil {
		return nil, err
	}
	for i, row := range rows {
		if len(row) != m.c {
			return nil, fmt.Errorf("NewDenseFrom: row %d has %d columns, want %d: %w", i, len(row), m.c, ErrBadShape)
		}
		for j, v := range row {
			if err = m.Set(i, j, v); err != nil {
				return nil, fmt.Errorf("NewDenseFrom: %w", err)
			}
		}
	}

	return m, nil
}

// FromRows3 builds a 3×3 Dense whose rows are the given vectors.
// No validation: callers pass lattice vectors that were already checked.
func FromRows3(rows [3]Vec3) *Dense {
	m := &Dense{r: 3, c: 3, data: make([]float64, 9), validateNaNInf: DefaultValidateNaNInf}
	for i := 0; i < 3; i++ {
		copy(m.data[i*3:i*3+3], rows[i][:])
	}

	return m
}

// Rows returns the number of rows. Complexity: O(1).
func (m *Dense) Rows() int { return m.r }

// Cols returns the number of columns. Complexity: O(1).
func (m *Dense) Cols() int { return m.c }

// indexOf computes the flat offset for (row, col) or returns ErrOutOfRange.
func (m *Dense) indexOf(row, col int) (int, error) {
	if row < 0 || row >= m.r || col < 0 || col >= m.c {
		return 0, ErrOutOfRange
	}

	return row*m.c + col, nil
}

// At returns the element at (row, col).
// Errors: ErrOutOfRange on invalid indices. Complexity: O(1).
func (m *Dense) At(row, col int) (float64, error) {
	idx, err := m.indexOf(row, col)
	if err != nil {
		return 0, denseErrorf(ctxAt, row, col, err)
	}

	return m.data[idx], nil
}

// Set assigns v at (row, col).
// Errors: ErrOutOfRange on invalid indices, ErrNaNInf for non-finite v
// when validation is enabled. Complexity: O(1).
func (m *Dense) Set(row, col int, v float64) error {
	idx, err := m.indexOf(row, col)
	if err != nil {
		return denseErrorf(ctxSet, row, col, err)
	}
	if m.validateNaNInf && (math.IsNaN(v) || math.IsInf(v, 0)) {
		return denseErrorf(ctxSet, row, col, ErrNaNInf)
	}
	m.data[idx] = v

	return nil
}

// Clone returns a deep copy. Complexity: O(r*c).
func (m *Dense) Clone() *Dense {
	out := &Dense{r: m.r, c: m.c, data: make([]float64, len(m.data)), validateNaNInf: m.validateNaNInf}
	copy(out.data, m.data)

	return out
}

// Row returns a copy of row i. Errors: ErrOutOfRange.
func (m *Dense) Row(i int) ([]float64, error) {
	if i < 0 || i >= m.r {
		return nil, fmt.Errorf("Dense.Row(%d): %w", i, ErrOutOfRange)
	}
	out := make([]float64, m.c)
	copy(out, m.data[i*m.c:(i+1)*m.c])

	return out, nil
}

// Col returns a copy of column j. Errors: ErrOutOfRange.
func (m *Dense) Col(j int) ([]float64, error) {
	if j < 0 || j >= m.c {
		return nil, fmt.Errorf("Dense.Col(%d): %w", j, ErrOutOfRange)
	}
	out := make([]float64, m.r)
	for i := 0; i < m.r; i++ {
		out[i] = m.data[i*m.c+j]
	}

	return out, nil
}

// Transpose returns mᵀ as a new matrix. Complexity: O(r*c).
func (m *Dense) Transpose() *Dense {
	out := &Dense{r: m.c, c: m.r, data: make([]float64, len(m.data)), validateNaNInf: m.validateNaNInf}
	for i := 0; i < m.r; i++ {
		for j := 0; j < m.c; j++ {
			out.data[j*m.r+i] = m.data[i*m.c+j]
		}
	}

	return out
}

// Mul returns the product m·b.
// Errors: ErrNilMatrix, ErrDimensionMismatch when m.Cols != b.Rows.
// Complexity: O(r*k*c) with a fixed i-k-j loop order.
func (m *Dense) Mul(b *Dense) (*Dense, error) {
	if m == nil || b == nil {
		return nil, fmt.Errorf("Dense.Mul: %w", ErrNilMatrix)
	}
	if m.c != b.r {
		return nil, fmt.Errorf("Dense.Mul: %dx%d · %dx%d: %w", m.r, m.c, b.r, b.c, ErrDimensionMismatch)
	}
	out := &Dense{r: m.r, c: b.c, data: make([]float64, m.r*b.c), validateNaNInf: m.validateNaNInf}
	for i := 0; i < m.r; i++ {
		for k := 0; k < m.c; k++ {
			a := m.data[i*m.c+k]
			if a == 0 {
				continue
			}
			for j := 0; j < b.c; j++ {
				out.data[i*b.c+j] += a * b.data[k*b.c+j]
			}
		}
	}

	return out, nil
}

// MulVec returns m·v.
// Errors: ErrDimensionMismatch when len(v) != m.Cols. Complexity: O(r*c).
func (m *Dense) MulVec(v []float64) ([]float64, error) {
	if len(v) != m.c {
		return nil, fmt.Errorf("Dense.MulVec: len %d, want %d: %w", len(v), m.c, ErrDimensionMismatch)
	}
	out := make([]float64, m.r)
	for i := 0; i < m.r; i++ {
		var sum float64
		for j := 0; j < m.c; j++ {
			sum += m.data[i*m.c+j] * v[j]
		}
		out[i] = sum
	}

	return out, nil
}

// MulVec3 is the allocation-free 3×3 fast path of MulVec.
// Errors: ErrDimensionMismatch unless m is 3×3.
func (m *Dense) MulVec3(v Vec3) (Vec3, error) {
	if m.r != 3 || m.c != 3 {
		return Vec3{}, fmt.Errorf("Dense.MulVec3: %dx%d: %w", m.r, m.c, ErrDimensionMismatch)
	}
	var out Vec3
	for i := 0; i < 3; i++ {
		out[i] = m.data[i*3]*v[0] + m.data[i*3+1]*v[1] + m.data[i*3+2]*v[2]
	}

	return out, nil
}

// Rows3 returns the rows of a 3×3 matrix as vectors.
// Errors: ErrDimensionMismatch unless m is 3×3.
func (m *Dense) Rows3() ([3]Vec3, error) {
	var out [3]Vec3
	if m.r != 3 || m.c != 3 {
		return out, fmt.Errorf("Dense.Rows3: %dx%d: %w", m.r, m.c, ErrDimensionMismatch)
	}
	for i := 0; i < 3; i++ {
		copy(out[i][:], m.data[i*3:i*3+3])
	}

	return out, nil
}

// String renders the matrix one row per line.
func (m *Dense) String() string {
	var sb strings.Builder
	for i := 0; i < m.r; i++ {
		sb.WriteString("[")
		for j := 0; j < m.c; j++ {
			if j > 0 {
				sb.WriteString(", ")
			}
			fmt.Fprintf(&sb, "%g", m.data[i*m.c+j])
		}
		sb.WriteString("]\n")
	}

	return sb.String()
}
