// SPDX-License-Identifier: MIT

package export

import (
	"github.com/katalvlaran/clustex/clustercounts"
	"github.com/katalvlaran/clustex/lattice"
	"github.com/katalvlaran/clustex/orbitlist"
)

// Version is the snapshot layout version written by this package.
const Version = 1

// Snapshot is the exported form of an orbit list and, optionally, the
// cluster counts of a structure.
type Snapshot struct {
	Version   int            `cbor:"version" yaml:"version"`
	Primitive *Basis         `cbor:"primitive,omitempty" yaml:"primitive,omitempty"`
	Orbits    []Orbit        `cbor:"orbits,omitempty" yaml:"orbits,omitempty"`
	Counts    []ClusterCount `cbor:"counts,omitempty" yaml:"counts,omitempty"`
}

// Basis summarizes the primitive structure.
type Basis struct {
	Numbers     []int `cbor:"numbers" yaml:"numbers,flow"`
	UniqueSites []int `cbor:"unique_sites" yaml:"unique_sites,flow"`
}

// Site is a lattice site.
type Site struct {
	Index  int    `cbor:"index" yaml:"index"`
	Offset [3]int `cbor:"offset" yaml:"offset,flow"`
}

// Orbit is one orbit: its representative cluster, equivalent site tuples
// and permutation bookkeeping.
type Orbit struct {
	Order        int       `cbor:"order" yaml:"order"`
	Radius       float64   `cbor:"radius" yaml:"radius"`
	Sites        []int     `cbor:"sites" yaml:"sites,flow"`
	Distances    []float64 `cbor:"distances" yaml:"distances,flow"`
	Equivalent   [][]Site  `cbor:"equivalent" yaml:"equivalent"`
	Permutations [][]int   `cbor:"permutations,omitempty" yaml:"permutations,omitempty,flow"`
	Allowed      [][]int   `cbor:"allowed,omitempty" yaml:"allowed,omitempty,flow"`
}

// ClusterCount holds the species counts of one cluster.
type ClusterCount struct {
	Order     int            `cbor:"order" yaml:"order"`
	Sites     []int          `cbor:"sites" yaml:"sites,flow"`
	Distances []float64      `cbor:"distances" yaml:"distances,flow"`
	Species   []SpeciesCount `cbor:"species" yaml:"species"`
}

// SpeciesCount is one species tuple and how often it occurs.
type SpeciesCount struct {
	Species []int `cbor:"species" yaml:"species,flow"`
	Count   int   `cbor:"count" yaml:"count"`
}

func exportSites(sites []lattice.Site) []Site {
	out := make([]Site, len(sites))
	for i, s := range sites {
		out[i] = Site{Index: s.Index, Offset: s.Offset}
	}

	return out
}

// FromOrbitList snapshots the orbits of ol in list order.
func FromOrbitList(ol *orbitlist.OrbitList) *Snapshot {
	snap := &Snapshot{Version: Version}
	if prim := ol.PrimitiveStructure(); prim != nil {
		snap.Primitive = &Basis{Numbers: prim.AtomicNumbers(), UniqueSites: prim.UniqueSites()}
	}
	for _, o := range ol.Orbits() {
		rep := o.Representative()
		eq := o.EquivalentSites()
		out := Orbit{
			Order:        o.Order(),
			Radius:       o.Radius(),
			Sites:        rep.Sites(),
			Distances:    rep.Distances(),
			Equivalent:   make([][]Site, len(eq)),
			Permutations: o.EquivalentSitesPermutations(),
			Allowed:      o.AllowedPermutations(),
		}
		for i, sites := range eq {
			out.Equivalent[i] = exportSites(sites)
		}
		snap.Orbits = append(snap.Orbits, out)
	}

	return snap
}

// AddCounts appends the entries of counts, in Entries order.
func (s *Snapshot) AddCounts(counts *clustercounts.Counts) {
	for _, e := range counts.Entries() {
		cc := ClusterCount{
			Order:     e.Cluster.Order(),
			Sites:     e.Cluster.Sites(),
			Distances: e.Cluster.Distances(),
			Species:   make([]SpeciesCount, len(e.Counts)),
		}
		for i, sc := range e.Counts {
			cc.Species[i] = SpeciesCount{Species: sc.Species, Count: sc.Count}
		}
		s.Counts = append(s.Counts, cc)
	}
}

// Total returns the sum of all species counts.
func (s *Snapshot) Total() int {
	n := 0
	for _, cc := range s.Counts {
		for _, sc := range cc.Species {
			n += sc.Count
		}
	}

	return n
}
