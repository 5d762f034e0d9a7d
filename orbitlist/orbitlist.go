// SPDX-License-Identifier: MIT

package orbitlist

import (
	"fmt"
	"slices"

	"github.com/katalvlaran/clustex/cluster"
	"github.com/katalvlaran/clustex/internal/digest"
	"github.com/katalvlaran/clustex/lattice"
	"github.com/katalvlaran/clustex/orbit"
	"github.com/katalvlaran/clustex/structure"
)

// OrbitList is an ordered collection of orbits over one primitive structure.
type OrbitList struct {
	orbits    []*orbit.Orbit
	primitive *structure.Structure
	pm        [][]lattice.Site
	col1      []lattice.Site
}

// Empty returns an orbit list without orbits over primitive.
func Empty(primitive *structure.Structure) *OrbitList {
	return &OrbitList{primitive: primitive}
}

// Len returns the number of orbits.
func (ol *OrbitList) Len() int { return len(ol.orbits) }

// Orbits returns the orbits in list order. The slice is a copy; the orbits
// are shared with the list.
func (ol *OrbitList) Orbits() []*orbit.Orbit { return slices.Clone(ol.orbits) }

// Orbit returns orbit i.
func (ol *OrbitList) Orbit(i int) (*orbit.Orbit, error) {
	if i < 0 || i >= len(ol.orbits) {
		return nil, fmt.Errorf("Orbit(%d) of %d: %w", i, len(ol.orbits), ErrIndexOutOfRange)
	}

	return ol.orbits[i], nil
}

// AddOrbit appends o without re-sorting.
func (ol *OrbitList) AddOrbit(o *orbit.Orbit) { ol.orbits = append(ol.orbits, o) }

// ClusterIndex maps cluster keys to orbit indices for AddClusterSites.
type ClusterIndex map[digest.Hash]int

// AddClusterSites adds sites to the orbit represented by c, creating that
// orbit when index does not know c yet.
func (ol *OrbitList) AddClusterSites(c cluster.Cluster, sites []lattice.Site, index ClusterIndex) {
	key := c.Key()
	if i, ok := index[key]; ok {
		ol.orbits[i].AddEquivalentSites(sites, true)
		return
	}
	o := orbit.New(c)
	o.AddEquivalentSites(sites, true)
	ol.orbits = append(ol.orbits, o)
	index[key] = len(ol.orbits) - 1
}

// RemoveOrbit deletes orbit i.
func (ol *OrbitList) RemoveOrbit(i int) error {
	if i < 0 || i >= len(ol.orbits) {
		return fmt.Errorf("RemoveOrbit(%d) of %d: %w", i, len(ol.orbits), ErrIndexOutOfRange)
	}
	ol.orbits = slices.Delete(ol.orbits, i, i+1)

	return nil
}

// Clear drops every orbit.
func (ol *OrbitList) Clear() { ol.orbits = nil }

// Sort orders the orbits by order, radius and representative.
func (ol *OrbitList) Sort() { slices.SortStableFunc(ol.orbits, orbit.Compare) }

// NumberOfNBodyClusters counts the orbits of the given order.
func (ol *OrbitList) NumberOfNBodyClusters(order int) int {
	n := 0
	for _, o := range ol.orbits {
		if o.Order() == order {
			n++
		}
	}

	return n
}

// RemoveSitesContainingIndex drops from every orbit the tuples holding a
// site with the given index (zero-offset sites only if onlyZeroOffset).
func (ol *OrbitList) RemoveSitesContainingIndex(index int, onlyZeroOffset bool) {
	for _, o := range ol.orbits {
		o.RemoveSitesWithIndex(index, onlyZeroOffset)
	}
}

// RemoveSitesNotContainingIndex keeps in every orbit only the tuples
// holding such a site.
func (ol *OrbitList) RemoveSitesNotContainingIndex(index int, onlyZeroOffset bool) {
	for _, o := range ol.orbits {
		o.RemoveSitesNotWithIndex(index, onlyZeroOffset)
	}
}

// SubtractSites removes from orbit i every tuple of other's orbit i.
func (ol *OrbitList) SubtractSites(other *OrbitList) error {
	if other.Len() != ol.Len() {
		return fmt.Errorf("SubtractSites: %d vs %d orbits: %w", ol.Len(), other.Len(), ErrSizeMismatch)
	}
	for i, o := range ol.orbits {
		for _, sites := range other.orbits[i].EquivalentSites() {
			if o.Contains(sites, true) {
				if err := o.RemoveSites(sites); err != nil {
					return fmt.Errorf("SubtractSites: orbit %d: %w", i, err)
				}
			}
		}
	}

	return nil
}

// Merge appends the tuples of other's orbit i to orbit i. An empty receiver
// takes a copy of other's orbits.
func (ol *OrbitList) Merge(other *OrbitList) error {
	if ol.Len() == 0 {
		ol.orbits = make([]*orbit.Orbit, len(other.orbits))
		for i, o := range other.orbits {
			ol.orbits[i] = o.Clone()
		}
		return nil
	}
	if other.Len() != ol.Len() {
		return fmt.Errorf("Merge: %d vs %d orbits: %w", ol.Len(), other.Len(), ErrSizeMismatch)
	}
	for i, o := range ol.orbits {
		if err := o.Merge(other.orbits[i]); err != nil {
			return fmt.Errorf("Merge: orbit %d: %w", i, err)
		}
	}

	return nil
}

// RemoveInactiveOrbits drops every orbit whose representative touches a
// site of s with fewer than two allowed species.
func (ol *OrbitList) RemoveInactiveOrbits(s *structure.Structure) error {
	if s == nil {
		return fmt.Errorf("RemoveInactiveOrbits: %w", ErrNilStructure)
	}
	kept := ol.orbits[:0]
	for _, o := range ol.orbits {
		n, err := s.NumberOfAllowedSpeciesBySites(o.RepresentativeSites())
		if err != nil {
			return fmt.Errorf("RemoveInactiveOrbits: %w", err)
		}
		if !slices.ContainsFunc(n, func(m int) bool { return m < 2 }) {
			kept = append(kept, o)
		}
	}
	clear(ol.orbits[len(kept):])
	ol.orbits = kept

	return nil
}

// PrimitiveStructure returns the structure the list was built on.
func (ol *OrbitList) PrimitiveStructure() *structure.Structure { return ol.primitive }

// PermutationMatrix returns a copy of the lattice-site permutation matrix.
func (ol *OrbitList) PermutationMatrix() [][]lattice.Site {
	out := make([][]lattice.Site, len(ol.pm))
	for i, row := range ol.pm {
		out[i] = slices.Clone(row)
	}

	return out
}

// Column1 returns a copy of column 0 of the permutation matrix.
func (ol *OrbitList) Column1() []lattice.Site { return slices.Clone(ol.col1) }

// TranslatedToUnitCell returns sites and its variants shifted so that one
// site lies in the reference cell, optionally sorting every variant.
func (ol *OrbitList) TranslatedToUnitCell(sites []lattice.Site, sortIt bool) ([][]lattice.Site, error) {
	return translatedVariants(ol.primitive, sites, sortIt)
}

// Clone returns a deep copy of the orbits; structure and matrix are shared.
func (ol *OrbitList) Clone() *OrbitList {
	out := &OrbitList{primitive: ol.primitive, pm: ol.pm, col1: ol.col1}
	out.orbits = make([]*orbit.Orbit, len(ol.orbits))
	for i, o := range ol.orbits {
		out.orbits[i] = o.Clone()
	}

	return out
}
