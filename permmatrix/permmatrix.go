// SPDX-License-Identifier: MIT

package permmatrix

import (
	"fmt"
	"math"
	"slices"

	"github.com/katalvlaran/clustex/matrix"
)

// DefaultRounding is the grid transformed positions are rounded onto.
const DefaultRounding = 1e-7

// Operation is one space-group operation in fractional coordinates.
type Operation struct {
	Rotation    [3][3]int
	Translation matrix.Vec3
}

// Identity returns the identity operation.
func Identity() Operation {
	return Operation{Rotation: [3][3]int{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}}
}

// IsIdentity reports whether op is the identity (zero translation).
func (op Operation) IsIdentity() bool {
	return op.Rotation == Identity().Rotation && op.Translation == matrix.Vec3{}
}

// Apply returns R·p + t.
func (op Operation) Apply(p matrix.Vec3) matrix.Vec3 {
	var out matrix.Vec3
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			out[i] += float64(op.Rotation[i][j]) * p[j]
		}
	}

	return out.Add(op.Translation)
}

// Option configures New.
type Option func(*options)

type options struct {
	rounding float64
}

// WithRounding overrides DefaultRounding. Panics on a non-positive or
// non-finite value.
func WithRounding(tol float64) Option {
	if math.IsNaN(tol) || math.IsInf(tol, 0) || tol <= 0 {
		panic("permmatrix: WithRounding: tol must be finite and > 0")
	}

	return func(o *options) { o.rounding = tol }
}

// Matrix is the [positions × operations] table of transformed positions.
// It is read-only after Build.
type Matrix struct {
	positions []matrix.Vec3
	ops       []Operation
	rounding  float64
	permuted  [][]matrix.Vec3
}

// New validates the inputs; call Build to fill the table.
func New(fracPositions []matrix.Vec3, ops []Operation, opts ...Option) (*Matrix, error) {
	if len(fracPositions) == 0 {
		return nil, fmt.Errorf("permmatrix.New: %w", ErrNoPositions)
	}
	if len(ops) == 0 {
		return nil, fmt.Errorf("permmatrix.New: %w", ErrNoOperations)
	}
	if !ops[0].IsIdentity() {
		return nil, fmt.Errorf("permmatrix.New: %w", ErrNoIdentity)
	}
	o := options{rounding: DefaultRounding}
	for _, fn := range opts {
		if fn != nil {
			fn(&o)
		}
	}

	return &Matrix{
		positions: slices.Clone(fracPositions),
		ops:       slices.Clone(ops),
		rounding:  o.rounding,
	}, nil
}

// Build computes every entry. Calling it again is a no-op.
func (m *Matrix) Build() {
	if m.permuted != nil {
		return
	}
	m.permuted = make([][]matrix.Vec3, len(m.positions))
	for r, p := range m.positions {
		row := make([]matrix.Vec3, len(m.ops))
		for c, op := range m.ops {
			row[c] = matrix.RoundVec(op.Apply(p), m.rounding)
		}
		m.permuted[r] = row
	}
}

// Rows returns the number of positions.
func (m *Matrix) Rows() int { return len(m.positions) }

// Cols returns the number of operations.
func (m *Matrix) Cols() int { return len(m.ops) }

// PermutedPositions returns a copy of the table.
func (m *Matrix) PermutedPositions() ([][]matrix.Vec3, error) {
	if m.permuted == nil {
		return nil, fmt.Errorf("PermutedPositions: %w", ErrNotBuilt)
	}
	out := make([][]matrix.Vec3, len(m.permuted))
	for i, row := range m.permuted {
		out[i] = slices.Clone(row)
	}

	return out, nil
}

// IndexedPositions returns the distinct positions of the table, sorted, and
// the table rewritten as indices into them.
func (m *Matrix) IndexedPositions() ([]matrix.Vec3, [][]int, error) {
	if m.permuted == nil {
		return nil, nil, fmt.Errorf("IndexedPositions: %w", ErrNotBuilt)
	}
	var unique []matrix.Vec3
	for _, row := range m.permuted {
		unique = append(unique, row...)
	}
	slices.SortFunc(unique, compareVec)
	unique = slices.Compact(unique)

	indices := make([][]int, len(m.permuted))
	for i, row := range m.permuted {
		indices[i] = make([]int, len(row))
		for j, p := range row {
			k, _ := slices.BinarySearchFunc(unique, p, compareVec)
			indices[i][j] = k
		}
	}

	return unique, indices, nil
}

func compareVec(a, b matrix.Vec3) int {
	switch {
	case a.Less(b):
		return -1
	case b.Less(a):
		return 1
	}

	return 0
}
