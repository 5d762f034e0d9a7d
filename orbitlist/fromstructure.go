// SPDX-License-Identifier: MIT

package orbitlist

import (
	"fmt"
	"slices"

	"github.com/katalvlaran/clustex/lattice"
	"github.com/katalvlaran/clustex/neighborlist"
	"github.com/katalvlaran/clustex/permmatrix"
	"github.com/katalvlaran/clustex/structure"
)

// FromStructure builds neighbor lists for cutoffs (pairs, triplets, ...),
// the lattice-site permutation matrix for ops at the largest cutoff, and
// the orbit list. The unique sites of s are replaced by the symmetry
// classes the matrix induces on the basis.
func FromStructure(s *structure.Structure, ops []permmatrix.Operation, cutoffs []float64, opts ...Option) (*OrbitList, error) {
	o := gatherOptions(opts...)
	if s == nil {
		return nil, fmt.Errorf("orbitlist.FromStructure: %w", ErrNilStructure)
	}
	if len(cutoffs) == 0 {
		return nil, fmt.Errorf("orbitlist.FromStructure: no cutoffs: %w", ErrEmptyInput)
	}

	lists, err := neighborlist.BuildAll(s, cutoffs)
	if err != nil {
		return nil, fmt.Errorf("orbitlist.FromStructure: %w", err)
	}
	o.logger.Debug("neighbor lists built", "orders", len(lists)+1, "cutoffs", cutoffs)

	pm, err := permmatrix.LatticeSiteMatrix(s, ops, slices.Max(cutoffs))
	if err != nil {
		return nil, fmt.Errorf("orbitlist.FromStructure: %w", err)
	}
	unique := UniqueSites(s.Size(), pm)
	if err := s.SetUniqueSites(unique); err != nil {
		return nil, fmt.Errorf("orbitlist.FromStructure: %w", err)
	}
	o.logger.Debug("unique sites", "ids", unique)

	return New(s, pm, lists, opts...)
}

// UniqueSites returns, for each of the n basis sites, the id of its
// symmetry class: sites appearing in one matrix row are equivalent. Ids are
// assigned in order of the lowest basis index of each class.
func UniqueSites(n int, pm [][]lattice.Site) []int {
	parent := make([]int, n)
	for i := range parent {
		parent[i] = i
	}
	var find func(int) int
	find = func(i int) int {
		if parent[i] != i {
			parent[i] = find(parent[i])
		}
		return parent[i]
	}
	for _, row := range pm {
		if len(row) == 0 || row[0].Index >= n {
			continue
		}
		a := find(row[0].Index)
		for _, site := range row[1:] {
			if site.Index >= n {
				continue
			}
			if b := find(site.Index); a != b {
				// keep the smaller index as root
				if b < a {
					a, b = b, a
				}
				parent[b] = a
			}
		}
	}

	ids := make([]int, n)
	next := 0
	idOf := make(map[int]int, n)
	for i := 0; i < n; i++ {
		root := find(i)
		id, ok := idOf[root]
		if !ok {
			id = next
			idOf[root] = id
			next++
		}
		ids[i] = id
	}

	return ids
}
