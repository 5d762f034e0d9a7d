// SPDX-License-Identifier: MIT

package clustercounts

import (
	"fmt"
	"slices"

	"github.com/katalvlaran/clustex/cluster"
	"github.com/katalvlaran/clustex/internal/digest"
	"github.com/katalvlaran/clustex/lattice"
	"github.com/katalvlaran/clustex/orbitlist"
	"github.com/katalvlaran/clustex/structure"
)

// SpeciesCount is one species tuple and its number of occurrences.
type SpeciesCount struct {
	Species []int
	Count   int
}

// Entry groups the species counts of one cluster.
type Entry struct {
	Cluster cluster.Cluster
	Counts  []SpeciesCount
}

type bucket struct {
	cluster cluster.Cluster
	species map[digest.Hash]*SpeciesCount
}

// Counts maps clusters to species-tuple counts. The zero value is not
// usable; call New.
type Counts struct {
	buckets map[digest.Hash]*bucket
}

// New returns empty counts.
func New() *Counts {
	return &Counts{buckets: make(map[digest.Hash]*bucket)}
}

// Len returns the number of distinct clusters counted.
func (c *Counts) Len() int { return len(c.buckets) }

// Reset drops every count.
func (c *Counts) Reset() { clear(c.buckets) }

func (c *Counts) add(cl cluster.Cluster, species []int, orderIntact bool) {
	if !orderIntact {
		slices.Sort(species)
	}
	key := cl.Key()
	b, ok := c.buckets[key]
	if !ok {
		b = &bucket{cluster: cl, species: make(map[digest.Hash]*SpeciesCount)}
		c.buckets[key] = b
	}
	sk := digest.Species(species)
	sc, ok := b.species[sk]
	if !ok {
		sc = &SpeciesCount{Species: species}
		b.species[sk] = sc
	}
	sc.Count++
}

func speciesOf(s *structure.Structure, sites []lattice.Site) ([]int, error) {
	out := make([]int, len(sites))
	for i, site := range sites {
		z, err := s.AtomicNumber(site.Index)
		if err != nil {
			return nil, err
		}
		out[i] = z
	}

	return out, nil
}

// Count adds the species of every tuple in sitesList under cl.
func (c *Counts) Count(s *structure.Structure, sitesList [][]lattice.Site, cl cluster.Cluster, orderIntact bool) error {
	if s == nil {
		return fmt.Errorf("Count: %w", ErrNilStructure)
	}
	for _, sites := range sitesList {
		if len(sites) != cl.Order() {
			return fmt.Errorf("Count: %d sites for order %d: %w", len(sites), cl.Order(), ErrSizeMismatch)
		}
		species, err := speciesOf(s, sites)
		if err != nil {
			return fmt.Errorf("Count: %w", err)
		}
		c.add(cl, species, orderIntact)
	}

	return nil
}

// CountSites builds the canonical cluster of sites in s and counts its
// species, unordered.
func (c *Counts) CountSites(s *structure.Structure, sites []lattice.Site) error {
	if s == nil {
		return fmt.Errorf("CountSites: %w", ErrNilStructure)
	}
	cl, err := cluster.New(s, sites)
	if err != nil {
		return fmt.Errorf("CountSites: %w", err)
	}

	return c.Count(s, [][]lattice.Site{sites}, cl, false)
}

// CountLatticeSites calls CountSites for every tuple.
func (c *Counts) CountLatticeSites(s *structure.Structure, sitesLists [][]lattice.Site) error {
	for _, sites := range sitesLists {
		if err := c.CountSites(s, sites); err != nil {
			return err
		}
	}

	return nil
}

// CountOrbitList counts every tuple of every orbit under the orbit's
// representative cluster, tagged with the orbit index. With permuteSites
// (and orderIntact) tuples of two or more sites are first permuted into
// representative order.
func (c *Counts) CountOrbitList(s *structure.Structure, ol *orbitlist.OrbitList, orderIntact, permuteSites bool) error {
	if s == nil {
		return fmt.Errorf("CountOrbitList: %w", ErrNilStructure)
	}
	if ol == nil {
		return fmt.Errorf("CountOrbitList: %w", ErrNilOrbitList)
	}
	for i, o := range ol.Orbits() {
		rep := o.Representative()
		rep.SetTag(i)
		sites := o.EquivalentSites()
		if permuteSites && orderIntact && o.Order() >= 2 {
			permuted, err := o.PermutedEquivalentSites()
			if err != nil {
				return fmt.Errorf("CountOrbitList: orbit %d: %w", i, err)
			}
			sites = permuted
		}
		if err := c.Count(s, sites, rep, orderIntact); err != nil {
			return fmt.Errorf("CountOrbitList: orbit %d: %w", i, err)
		}
	}

	return nil
}

func sortedCounts(b *bucket) []SpeciesCount {
	out := make([]SpeciesCount, 0, len(b.species))
	for _, sc := range b.species {
		out = append(out, SpeciesCount{Species: slices.Clone(sc.Species), Count: sc.Count})
	}
	slices.SortFunc(out, func(x, y SpeciesCount) int { return slices.Compare(x.Species, y.Species) })

	return out
}

// Entries returns every cluster with its counts, clusters ordered by
// cluster.Compare and species tuples lexicographically.
func (c *Counts) Entries() []Entry {
	out := make([]Entry, 0, len(c.buckets))
	for _, b := range c.buckets {
		out = append(out, Entry{Cluster: b.cluster, Counts: sortedCounts(b)})
	}
	slices.SortFunc(out, func(x, y Entry) int { return cluster.Compare(x.Cluster, y.Cluster) })

	return out
}

// Lookup returns the counts of cl, if any.
func (c *Counts) Lookup(cl cluster.Cluster) ([]SpeciesCount, bool) {
	b, ok := c.buckets[cl.Key()]
	if !ok {
		return nil, false
	}

	return sortedCounts(b), true
}

// Total returns the sum of all counts.
func (c *Counts) Total() int {
	n := 0
	for _, b := range c.buckets {
		for _, sc := range b.species {
			n += sc.Count
		}
	}

	return n
}
