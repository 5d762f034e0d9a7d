// SPDX-License-Identifier: MIT

package permmatrix

import (
	"fmt"
	"math"

	"github.com/katalvlaran/clustex/internal/combin"
	"github.com/katalvlaran/clustex/matrix"
)

// integerTolerance bounds how far a fractional rotation entry may sit from
// an integer.
const integerTolerance = 1e-6

// CubicRotations returns the 48 Cartesian rotations of the m-3m point group
// (signed axis permutations), identity first.
func CubicRotations() [][3][3]int {
	out := make([][3][3]int, 0, 48)
	for _, perm := range combin.Permutations(3) {
		for _, signs := range combin.Product([]int{2, 2, 2}) {
			var r [3][3]int
			for i := 0; i < 3; i++ {
				r[i][perm[i]] = 1 - 2*signs[i]
			}
			out = append(out, r)
		}
	}

	return out
}

// CubicOperations expresses the cubic point operations in the fractional
// basis of cell and keeps those that map the lattice onto itself. The
// identity comes first; translations are zero.
func CubicOperations(cell [3]matrix.Vec3) ([]Operation, error) {
	return PointOperations(cell, CubicRotations())
}

// PointOperations converts Cartesian rotations into the fractional basis of
// cell, R_f = (Aᵀ)⁻¹·R·Aᵀ with A the row-wise cell, dropping rotations whose
// fractional form is not an integer matrix.
func PointOperations(cell [3]matrix.Vec3, rotations [][3][3]int) ([]Operation, error) {
	at := matrix.FromRows3(cell).Transpose()
	inv, err := matrix.Inverse(at)
	if err != nil {
		return nil, fmt.Errorf("PointOperations: %w", err)
	}

	var out []Operation
	for _, rot := range rotations {
		rc := matrix.FromRows3([3]matrix.Vec3{
			matrix.IntVec3(rot[0]), matrix.IntVec3(rot[1]), matrix.IntVec3(rot[2]),
		})
		tmp, err := rc.Mul(at)
		if err != nil {
			return nil, fmt.Errorf("PointOperations: %w", err)
		}
		rf, err := inv.Mul(tmp)
		if err != nil {
			return nil, fmt.Errorf("PointOperations: %w", err)
		}
		op, ok := integerOperation(rf)
		if ok {
			out = append(out, op)
		}
	}
	if len(out) == 0 || !out[0].IsIdentity() {
		return nil, fmt.Errorf("PointOperations: %w", ErrNoIdentity)
	}

	return out, nil
}

func integerOperation(m *matrix.Dense) (Operation, bool) {
	var op Operation
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			v, err := m.At(i, j)
			if err != nil {
				return Operation{}, false
			}
			n := math.Round(v)
			if math.Abs(v-n) > integerTolerance {
				return Operation{}, false
			}
			op.Rotation[i][j] = int(n)
		}
	}

	return op, true
}
