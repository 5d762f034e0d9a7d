// SPDX-License-Identifier: MIT

package matrix

import "math"

// Vec3 is a Cartesian or fractional 3-vector.
type Vec3 [3]float64

// Add returns v + w.
func (v Vec3) Add(w Vec3) Vec3 { return Vec3{v[0] + w[0], v[1] + w[1], v[2] + w[2]} }

// Sub returns v - w.
func (v Vec3) Sub(w Vec3) Vec3 { return Vec3{v[0] - w[0], v[1] - w[1], v[2] - w[2]} }

// Scale returns a·v.
func (v Vec3) Scale(a float64) Vec3 { return Vec3{a * v[0], a * v[1], a * v[2]} }

// Dot returns v·w.
func (v Vec3) Dot(w Vec3) float64 { return v[0]*w[0] + v[1]*w[1] + v[2]*w[2] }

// Norm returns the Euclidean length of v.
func (v Vec3) Norm() float64 { return math.Sqrt(v.Dot(v)) }

// Less orders vectors lexicographically by component.
func (v Vec3) Less(w Vec3) bool {
	for i := 0; i < 3; i++ {
		if v[i] != w[i] {
			return v[i] < w[i]
		}
	}

	return false
}

// IntVec3 converts an integer triple (cell offset) to a Vec3.
func IntVec3(n [3]int) Vec3 { return Vec3{float64(n[0]), float64(n[1]), float64(n[2])} }

// Round snaps x to the nearest multiple of tol.
// Rounding is half away from zero and -0 is normalized to 0 so that rounded
// values compare exactly and hash identically.
func Round(x, tol float64) float64 {
	if tol <= 0 {
		return x
	}
	r := math.Round(x/tol) * tol
	if r == 0 {
		return 0
	}

	return r
}

// RoundVec applies Round to every component.
func RoundVec(v Vec3, tol float64) Vec3 {
	return Vec3{Round(v[0], tol), Round(v[1], tol), Round(v[2], tol)}
}
