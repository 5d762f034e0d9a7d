// SPDX-License-Identifier: MIT

package orbit

import (
	"fmt"
	"math"
	"slices"

	"github.com/katalvlaran/clustex/cluster"
	"github.com/katalvlaran/clustex/internal/combin"
	"github.com/katalvlaran/clustex/lattice"
)

// Orbit is a representative cluster and its symmetry-equivalent site tuples.
type Orbit struct {
	representative  cluster.Cluster
	equivalentSites [][]lattice.Site
	permutations    [][]int
	allowed         [][]int
}

// New returns an empty orbit for the given representative.
func New(representative cluster.Cluster) *Orbit {
	return &Orbit{representative: representative}
}

// AddEquivalentSites appends one tuple. With sortIt the tuples are re-sorted.
func (o *Orbit) AddEquivalentSites(sites []lattice.Site, sortIt bool) {
	o.equivalentSites = append(o.equivalentSites, slices.Clone(sites))
	if sortIt {
		o.Sort()
	}
}

// AddEquivalentSitesList appends several tuples.
func (o *Orbit) AddEquivalentSitesList(list [][]lattice.Site, sortIt bool) {
	for _, sites := range list {
		o.equivalentSites = append(o.equivalentSites, slices.Clone(sites))
	}
	if sortIt {
		o.Sort()
	}
}

// EquivalentSites returns a deep copy of the tuples.
func (o *Orbit) EquivalentSites() [][]lattice.Site { return cloneTuples(o.equivalentSites) }

// SetEquivalentSites replaces the tuples. Permutations are kept only if the
// number of tuples is unchanged.
func (o *Orbit) SetEquivalentSites(list [][]lattice.Site) {
	if len(list) != len(o.equivalentSites) {
		o.permutations = nil
	}
	o.equivalentSites = cloneTuples(list)
}

// RepresentativeSites returns the first tuple, or nil for an empty orbit.
func (o *Orbit) RepresentativeSites() []lattice.Site {
	if len(o.equivalentSites) == 0 {
		return nil
	}

	return slices.Clone(o.equivalentSites[0])
}

// Representative returns the representative cluster.
func (o *Orbit) Representative() cluster.Cluster { return o.representative }

// Order returns the number of sites per tuple.
func (o *Orbit) Order() int { return o.representative.Order() }

// Radius returns the representative's geometric radius.
func (o *Orbit) Radius() float64 { return o.representative.Radius() }

// Len returns the number of equivalent tuples.
func (o *Orbit) Len() int { return len(o.equivalentSites) }

func (o *Orbit) hasPermutations() bool {
	return o.permutations != nil && len(o.permutations) == len(o.equivalentSites)
}

func (o *Orbit) checkPermutation(p []int) error {
	if len(p) != o.Order() {
		return fmt.Errorf("permutation %v for order %d: %w", p, o.Order(), ErrInvalidPermutation)
	}
	seen := make([]bool, len(p))
	for _, v := range p {
		if v < 0 || v >= len(p) || seen[v] {
			return fmt.Errorf("permutation %v: %w", p, ErrInvalidPermutation)
		}
		seen[v] = true
	}

	return nil
}

// SetEquivalentSitesPermutations sets, per tuple, the permutation into
// representative order.
func (o *Orbit) SetEquivalentSitesPermutations(perms [][]int) error {
	if len(perms) != len(o.equivalentSites) {
		return fmt.Errorf("SetEquivalentSitesPermutations: %d for %d tuples: %w",
			len(perms), len(o.equivalentSites), ErrSizeMismatch)
	}
	for _, p := range perms {
		if err := o.checkPermutation(p); err != nil {
			return fmt.Errorf("SetEquivalentSitesPermutations: %w", err)
		}
	}
	o.permutations = cloneInts(perms)

	return nil
}

// EquivalentSitesPermutations returns a copy of the per-tuple permutations.
func (o *Orbit) EquivalentSitesPermutations() [][]int { return cloneInts(o.permutations) }

// SetAllowedPermutations replaces the allowed self-permutations. They are
// stored sorted and without duplicates.
func (o *Orbit) SetAllowedPermutations(perms [][]int) error {
	for _, p := range perms {
		if err := o.checkPermutation(p); err != nil {
			return fmt.Errorf("SetAllowedPermutations: %w", err)
		}
	}
	allowed := cloneInts(perms)
	slices.SortFunc(allowed, slices.Compare[[]int])
	o.allowed = slices.CompactFunc(allowed, slices.Equal[[]int])

	return nil
}

// AllowedPermutations returns a copy of the allowed self-permutations.
func (o *Orbit) AllowedPermutations() [][]int { return cloneInts(o.allowed) }

// SitesWithPermutation returns tuple i in representative order.
func (o *Orbit) SitesWithPermutation(i int) ([]lattice.Site, error) {
	if i < 0 || i >= len(o.equivalentSites) {
		return nil, fmt.Errorf("SitesWithPermutation(%d): %w", i, ErrIndexOutOfRange)
	}
	if !o.hasPermutations() {
		return nil, fmt.Errorf("SitesWithPermutation(%d): %w", i, ErrNoPermutations)
	}

	return combin.Apply(o.equivalentSites[i], o.permutations[i]), nil
}

// PermutedEquivalentSites returns every tuple in representative order.
func (o *Orbit) PermutedEquivalentSites() ([][]lattice.Site, error) {
	if !o.hasPermutations() {
		return nil, fmt.Errorf("PermutedEquivalentSites: %w", ErrNoPermutations)
	}
	out := make([][]lattice.Site, len(o.equivalentSites))
	for i, sites := range o.equivalentSites {
		out[i] = combin.Apply(sites, o.permutations[i])
	}

	return out, nil
}

// Sort orders the tuples lexicographically, moving their permutations along.
func (o *Orbit) Sort() {
	if !o.hasPermutations() {
		slices.SortStableFunc(o.equivalentSites, lattice.CompareSlices)
		return
	}
	idx := combin.Identity(len(o.equivalentSites))
	slices.SortStableFunc(idx, func(a, b int) int {
		return lattice.CompareSlices(o.equivalentSites[a], o.equivalentSites[b])
	})
	o.equivalentSites = combin.Apply(o.equivalentSites, idx)
	o.permutations = combin.Apply(o.permutations, idx)
}

// Translate returns a copy of o with every site shifted by offset.
func (o *Orbit) Translate(offset [3]int) *Orbit {
	out := o.Clone()
	for _, sites := range out.equivalentSites {
		for i := range sites {
			sites[i].Translate(offset)
		}
	}

	return out
}

// Merge appends the tuples (and permutations) of other to o.
func (o *Orbit) Merge(other *Orbit) error {
	if o.Order() != other.Order() {
		return fmt.Errorf("Merge: %d vs %d: %w", o.Order(), other.Order(), ErrOrderMismatch)
	}
	withPerms, otherPerms := o.hasPermutations(), other.hasPermutations()
	if len(o.equivalentSites) > 0 && len(other.equivalentSites) > 0 && withPerms != otherPerms {
		return fmt.Errorf("Merge: permutations set on one side only: %w", ErrSizeMismatch)
	}
	if otherPerms && (withPerms || len(o.equivalentSites) == 0) {
		o.permutations = append(o.permutations, cloneInts(other.permutations)...)
	}
	o.equivalentSites = append(o.equivalentSites, cloneTuples(other.equivalentSites)...)

	return nil
}

// Contains reports whether sites is one of the tuples. With sorted the
// comparison ignores the order of sites within a tuple.
func (o *Orbit) Contains(sites []lattice.Site, sorted bool) bool {
	return o.find(sites, sorted) >= 0
}

func (o *Orbit) find(sites []lattice.Site, sorted bool) int {
	if sorted {
		sites = lattice.Sorted(sites)
	}
	for i, eq := range o.equivalentSites {
		if sorted {
			eq = lattice.Sorted(eq)
		}
		if slices.Equal(eq, sites) {
			return i
		}
	}

	return -1
}

// RemoveSites removes the first tuple holding the same sites as sites, in
// any order, with its permutation.
func (o *Orbit) RemoveSites(sites []lattice.Site) error {
	i := o.find(sites, true)
	if i < 0 {
		return fmt.Errorf("RemoveSites(%s): %w", lattice.FormatSites(sites), ErrSitesNotFound)
	}
	o.removeAt(i)

	return nil
}

func (o *Orbit) removeAt(i int) {
	if o.hasPermutations() {
		o.permutations = slices.Delete(o.permutations, i, i+1)
	}
	o.equivalentSites = slices.Delete(o.equivalentSites, i, i+1)
}

func touches(sites []lattice.Site, index int, onlyZeroOffset bool) bool {
	return slices.ContainsFunc(sites, func(s lattice.Site) bool {
		return s.Index == index && (!onlyZeroOffset || s.IsZeroOffset())
	})
}

// RemoveSitesWithIndex drops every tuple holding a site with the given
// index (restricted to zero-offset sites when onlyZeroOffset is set).
func (o *Orbit) RemoveSitesWithIndex(index int, onlyZeroOffset bool) {
	o.removeIf(func(sites []lattice.Site) bool { return touches(sites, index, onlyZeroOffset) })
}

// RemoveSitesNotWithIndex keeps only tuples holding such a site.
func (o *Orbit) RemoveSitesNotWithIndex(index int, onlyZeroOffset bool) {
	o.removeIf(func(sites []lattice.Site) bool { return !touches(sites, index, onlyZeroOffset) })
}

func (o *Orbit) removeIf(drop func([]lattice.Site) bool) {
	withPerms := o.hasPermutations()
	n := 0
	for i, sites := range o.equivalentSites {
		if drop(sites) {
			continue
		}
		o.equivalentSites[n] = sites
		if withPerms {
			o.permutations[n] = o.permutations[i]
		}
		n++
	}
	o.equivalentSites = o.equivalentSites[:n]
	if withPerms {
		o.permutations = o.permutations[:n]
	}
}

// NumberOfDuplicates counts pairs of tuples holding the same sites.
func (o *Orbit) NumberOfDuplicates() int {
	sorted := make([][]lattice.Site, len(o.equivalentSites))
	for i, sites := range o.equivalentSites {
		sorted[i] = lattice.Sorted(sites)
	}
	n := 0
	for i := range sorted {
		for j := i + 1; j < len(sorted); j++ {
			if slices.Equal(sorted[i], sorted[j]) {
				n++
			}
		}
	}

	return n
}

// Compare orders orbits by order, radius (within cluster.EqualityTolerance)
// and then representative cluster.
func Compare(a, b *Orbit) int {
	if c := a.Order() - b.Order(); c != 0 {
		if c < 0 {
			return -1
		}
		return 1
	}
	if math.Abs(a.Radius()-b.Radius()) > cluster.EqualityTolerance {
		if a.Radius() < b.Radius() {
			return -1
		}
		return 1
	}

	return cluster.Compare(a.representative, b.representative)
}

// Less reports whether o sorts before other.
func (o *Orbit) Less(other *Orbit) bool { return Compare(o, other) < 0 }

// Clone returns a deep copy.
func (o *Orbit) Clone() *Orbit {
	return &Orbit{
		representative:  o.representative,
		equivalentSites: cloneTuples(o.equivalentSites),
		permutations:    cloneInts(o.permutations),
		allowed:         cloneInts(o.allowed),
	}
}

func cloneTuples(in [][]lattice.Site) [][]lattice.Site {
	if in == nil {
		return nil
	}
	out := make([][]lattice.Site, len(in))
	for i, s := range in {
		out[i] = slices.Clone(s)
	}

	return out
}

func cloneInts(in [][]int) [][]int {
	if in == nil {
		return nil
	}
	out := make([][]int, len(in))
	for i, s := range in {
		out[i] = slices.Clone(s)
	}

	return out
}
