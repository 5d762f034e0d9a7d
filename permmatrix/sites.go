// SPDX-License-Identifier: MIT

package permmatrix

import (
	"fmt"
	"slices"

	"github.com/katalvlaran/clustex/lattice"
	"github.com/katalvlaran/clustex/matrix"
	"github.com/katalvlaran/clustex/neighborlist"
	"github.com/katalvlaran/clustex/structure"
)

// FractionalRounding is the grid neighbor positions are rounded onto before
// de-duplication.
const FractionalRounding = 1e-6

// FractionalNeighborPositions returns the fractional positions of every
// basis site of s and of all their neighbors within cutoff, rounded to
// FractionalRounding, de-duplicated and sorted.
func FractionalNeighborPositions(s *structure.Structure, cutoff float64) ([]matrix.Vec3, error) {
	if s == nil {
		return nil, fmt.Errorf("FractionalNeighborPositions: %w", ErrNilStructure)
	}
	nl, err := neighborlist.Build(s, cutoff)
	if err != nil {
		return nil, fmt.Errorf("FractionalNeighborPositions: %w", err)
	}

	var out []matrix.Vec3
	add := func(site lattice.Site) error {
		r, err := s.Position(site)
		if err != nil {
			return err
		}
		out = append(out, matrix.RoundVec(s.ToFractional(r), FractionalRounding))
		return nil
	}
	for i := 0; i < nl.Size(); i++ {
		if err := add(lattice.New(i, [3]int{})); err != nil {
			return nil, fmt.Errorf("FractionalNeighborPositions: %w", err)
		}
		nbrs, err := nl.Neighbors(i)
		if err != nil {
			return nil, fmt.Errorf("FractionalNeighborPositions: %w", err)
		}
		for _, n := range nbrs {
			if err := add(n); err != nil {
				return nil, fmt.Errorf("FractionalNeighborPositions: %w", err)
			}
		}
	}
	slices.SortFunc(out, compareVec)

	return slices.Compact(out), nil
}

// LatticeSiteMatrix builds the permutation matrix of the positions returned
// by FractionalNeighborPositions and resolves every entry to a lattice site
// of s. Rows repeating an earlier row's first-column site are dropped.
func LatticeSiteMatrix(s *structure.Structure, ops []Operation, cutoff float64, opts ...Option) ([][]lattice.Site, error) {
	frac, err := FractionalNeighborPositions(s, cutoff)
	if err != nil {
		return nil, fmt.Errorf("LatticeSiteMatrix: %w", err)
	}
	m, err := New(frac, ops, opts...)
	if err != nil {
		return nil, fmt.Errorf("LatticeSiteMatrix: %w", err)
	}
	m.Build()

	return m.LatticeSites(s)
}

// LatticeSites resolves every entry of a built matrix to a lattice site of
// s and prunes rows with a repeated first-column site.
func (m *Matrix) LatticeSites(s *structure.Structure) ([][]lattice.Site, error) {
	if s == nil {
		return nil, fmt.Errorf("LatticeSites: %w", ErrNilStructure)
	}
	if m.permuted == nil {
		return nil, fmt.Errorf("LatticeSites: %w", ErrNotBuilt)
	}

	seen := make(map[lattice.Site]struct{}, len(m.permuted))
	out := make([][]lattice.Site, 0, len(m.permuted))
	for r, row := range m.permuted {
		sites := make([]lattice.Site, len(row))
		for c, f := range row {
			site, err := s.FindLatticeSiteByPosition(s.ToCartesian(f))
			if err != nil {
				return nil, fmt.Errorf("LatticeSites: row %d column %d: %w", r, c, err)
			}
			for k := 0; k < 3; k++ {
				if !s.HasPBC(k) && site.Offset[k] != 0 {
					return nil, fmt.Errorf("LatticeSites: row %d column %d: %v: %w", r, c, site, ErrOutsideStructure)
				}
			}
			sites[c] = site
		}
		if _, dup := seen[sites[0]]; dup {
			continue
		}
		seen[sites[0]] = struct{}{}
		out = append(out, sites)
	}

	return out, nil
}
