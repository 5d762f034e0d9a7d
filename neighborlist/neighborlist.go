// SPDX-License-Identifier: MIT

// Package neighborlist enumerates, for every site of a structure, the
// periodic images of all sites within a cutoff distance.
//
// Image range: along a periodic axis k the offsets -n_k..n_k are scanned with
//
//	n_k = floor(cutoff · |col_k(cell⁻¹)|) + 1
//
// which bounds the number of lattice planes a sphere of radius cutoff can
// cross; non-periodic axes are pinned to 0. A pair (i, j+offset) is kept iff
//
//	2·tol < d ≤ cutoff + tol
//
// so a site is never its own neighbor. Neighbors of each site are stored
// sorted and unique, which the many-body intersection relies on.
//
// Complexity: Build is O(N² · Π_k(2n_k+1)); IsNeighbor is O(log deg).
package neighborlist

import (
	"errors"
	"fmt"
	"math"
	"slices"

	"github.com/katalvlaran/clustex/lattice"
	"github.com/katalvlaran/clustex/structure"
)

// DefaultTolerance widens the cutoff and guards against zero distances.
const DefaultTolerance = 1e-5

// Sentinel errors.
var (
	// ErrInvalidCutoff indicates a non-positive or non-finite cutoff.
	ErrInvalidCutoff = errors.New("neighborlist: cutoff must be finite and > 0")

	// ErrIndexOutOfRange indicates a site index outside the built list.
	ErrIndexOutOfRange = errors.New("neighborlist: site index out of range")

	// ErrNilStructure indicates a nil structure argument.
	ErrNilStructure = errors.New("neighborlist: nil structure")
)

// Option configures Build.
type Option func(*options)

type options struct {
	tol float64
}

// WithTolerance overrides DefaultTolerance. Panics on a negative or non-finite value.
func WithTolerance(tol float64) Option {
	if math.IsNaN(tol) || math.IsInf(tol, 0) || tol < 0 {
		panic("neighborlist: WithTolerance: tol must be finite and >= 0")
	}

	return func(o *options) { o.tol = tol }
}

// List is a built neighbor list. It is immutable and safe for concurrent reads.
type List struct {
	cutoff    float64
	tol       float64
	neighbors [][]lattice.Site
}

// Build computes the neighbor list of s for the given cutoff.
func Build(s *structure.Structure, cutoff float64, opts ...Option) (*List, error) {
	if s == nil {
		return nil, fmt.Errorf("neighborlist.Build: %w", ErrNilStructure)
	}
	if math.IsNaN(cutoff) || math.IsInf(cutoff, 0) || cutoff <= 0 {
		return nil, fmt.Errorf("neighborlist.Build(%g): %w", cutoff, ErrInvalidCutoff)
	}
	o := options{tol: DefaultTolerance}
	for _, fn := range opts {
		if fn != nil {
			fn(&o)
		}
	}

	var span [3]int
	recip := s.ReciprocalNorms()
	for k := 0; k < 3; k++ {
		if s.HasPBC(k) {
			span[k] = int(cutoff*recip[k]) + 1
		}
	}

	n := s.Size()
	positions := s.Positions()
	nl := &List{cutoff: cutoff, tol: o.tol, neighbors: make([][]lattice.Site, n)}
	for a := -span[0]; a <= span[0]; a++ {
		for b := -span[1]; b <= span[1]; b++ {
			for c := -span[2]; c <= span[2]; c++ {
				offset := [3]int{a, b, c}
				shift := s.CellOffset(offset)
				for i := 0; i < n; i++ {
					for j := 0; j < n; j++ {
						d := positions[j].Add(shift).Sub(positions[i]).Norm()
						if d > 2*o.tol && d <= cutoff+o.tol {
							nl.neighbors[i] = append(nl.neighbors[i], lattice.New(j, offset))
						}
					}
				}
			}
		}
	}
	for i := range nl.neighbors {
		lattice.SortSites(nl.neighbors[i])
		nl.neighbors[i] = slices.Compact(nl.neighbors[i])
	}

	return nl, nil
}

// BuildAll builds one list per cutoff, in order.
func BuildAll(s *structure.Structure, cutoffs []float64, opts ...Option) ([]*List, error) {
	out := make([]*List, len(cutoffs))
	for k, c := range cutoffs {
		nl, err := Build(s, c, opts...)
		if err != nil {
			return nil, fmt.Errorf("BuildAll[%d]: %w", k, err)
		}
		out[k] = nl
	}

	return out, nil
}

// Size returns the number of sites the list was built for.
func (nl *List) Size() int { return len(nl.neighbors) }

// Cutoff returns the cutoff used to build the list.
func (nl *List) Cutoff() float64 { return nl.cutoff }

// Neighbors returns a copy of the sorted neighbors of site i.
func (nl *List) Neighbors(i int) ([]lattice.Site, error) {
	if i < 0 || i >= len(nl.neighbors) {
		return nil, fmt.Errorf("Neighbors(%d): %w", i, ErrIndexOutOfRange)
	}

	return slices.Clone(nl.neighbors[i]), nil
}

// IsNeighbor reports whether site j in the cell at offset is a neighbor of
// site i in the reference cell.
func (nl *List) IsNeighbor(i, j int, offset [3]int) (bool, error) {
	if i < 0 || i >= len(nl.neighbors) {
		return false, fmt.Errorf("IsNeighbor(%d,%d): %w", i, j, ErrIndexOutOfRange)
	}
	if j < 0 || j >= len(nl.neighbors) {
		return false, fmt.Errorf("IsNeighbor(%d,%d): %w", i, j, ErrIndexOutOfRange)
	}
	_, found := slices.BinarySearchFunc(nl.neighbors[i], lattice.New(j, offset), lattice.Compare)

	return found, nil
}
