// SPDX-License-Identifier: MIT

package structure

import "math"

// DefaultTolerance is the Cartesian distance under which two positions are
// considered the same site.
const DefaultTolerance = 1e-5

const panicToleranceInvalid = "structure: WithTolerance: tol must be finite and > 0"

// Option configures a Structure at construction time.
type Option func(*options)

type options struct {
	tol            float64
	uniqueSites    []int
	allowedSpecies []int
}

// WithTolerance overrides DefaultTolerance. Panics on tol <= 0 or non-finite tol.
func WithTolerance(tol float64) Option {
	if math.IsNaN(tol) || math.IsInf(tol, 0) || tol <= 0 {
		panic(panicToleranceInvalid)
	}

	return func(o *options) { o.tol = tol }
}

// WithUniqueSites sets the unique-site id of every basis site.
// The slice length is validated by New.
func WithUniqueSites(ids []int) Option {
	return func(o *options) { o.uniqueSites = append([]int(nil), ids...) }
}

// WithAllowedSpecies sets the number of allowed species of every basis site.
// The slice length is validated by New.
func WithAllowedSpecies(n []int) Option {
	return func(o *options) { o.allowedSpecies = append([]int(nil), n...) }
}

func gatherOptions(opts ...Option) options {
	o := options{tol: DefaultTolerance}
	for _, fn := range opts {
		if fn != nil {
			fn(&o)
		}
	}

	return o
}
