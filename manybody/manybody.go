// SPDX-License-Identifier: MIT

// Package manybody grows pairwise neighbor lists into k-site combinations.
//
// A (k+1)-tuple is valid iff its new site is a common neighbor of every site
// already chosen, so the candidate set for the next site is the running
// intersection of sorted neighbor lists:
//
//	C₁ = N(i)
//	C_{m+1} = C_m ∩ (N(j_m) + offset(j_m))
//
// Neighbor lists are indexed by order: lists[0] serves pairs, lists[1]
// triplets, and so on. In the ordered (single-direction) mode every chain is
// strictly increasing, (i,0) < j < k < ..., so each tuple starting at i is
// produced once; tuples reachable from several starting sites are not
// deduplicated here.
//
// Complexity: one intersection costs O(|a|+|b|); the total is proportional to
// the number of emitted chains times the neighbor count.
package manybody

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/clustex/lattice"
	"github.com/katalvlaran/clustex/neighborlist"
)

// Sentinel errors.
var (
	// ErrNoNeighborLists indicates an empty list of neighbor lists.
	ErrNoNeighborLists = errors.New("manybody: no neighbor lists")

	// ErrIndexOutOfRange indicates a starting index outside the neighbor lists.
	ErrIndexOutOfRange = errors.New("manybody: site index out of range")
)

// Combination is a chain of sites together with every site that completes it.
//
// The tuples represented are Sites + [n] for each n in Neighbors; a singlet is
// a one-site chain with no neighbors. Build never emits a longer chain
// without neighbors.
type Combination struct {
	Sites     []lattice.Site
	Neighbors []lattice.Site
}

// Tuples expands c into its site tuples. A singlet yields the chain itself.
func (c Combination) Tuples() [][]lattice.Site {
	if len(c.Neighbors) == 0 {
		return [][]lattice.Site{append([]lattice.Site(nil), c.Sites...)}
	}
	out := make([][]lattice.Site, len(c.Neighbors))
	for k, n := range c.Neighbors {
		t := make([]lattice.Site, len(c.Sites)+1)
		copy(t, c.Sites)
		t[len(c.Sites)] = n
		out[k] = t
	}

	return out
}

// Build returns every combination anchored on site i in the reference cell:
// the singlet, the pairs from lists[0] and, for each further list, the
// chains of the next order.
//
// With saveBothWays false candidates are restricted to sites greater than the
// last chain site. With saveBothWays true no such filter is applied at any
// order; beyond pairs this enumerates every ordering of a tuple.
func Build(lists []*neighborlist.List, i int, saveBothWays bool) ([]Combination, error) {
	if len(lists) == 0 {
		return nil, fmt.Errorf("manybody.Build: %w", ErrNoNeighborLists)
	}
	if i < 0 || i >= lists[0].Size() {
		return nil, fmt.Errorf("manybody.Build(%d): %w", i, ErrIndexOutOfRange)
	}

	origin := lattice.New(i, [3]int{})
	out := []Combination{{Sites: []lattice.Site{origin}}}

	ni, err := lists[0].Neighbors(i)
	if err != nil {
		return nil, fmt.Errorf("manybody.Build: %w", err)
	}
	if !saveBothWays {
		ni = greaterThan(ni, origin)
	}
	if len(ni) > 0 {
		out = append(out, Combination{Sites: []lattice.Site{origin}, Neighbors: ni})
	}

	for c := 1; c < len(lists); c++ {
		nc, err := lists[c].Neighbors(i)
		if err != nil {
			return nil, fmt.Errorf("manybody.Build: order %d: %w", c+2, err)
		}
		out, err = combine(lists[c], out, nc, []lattice.Site{origin}, saveBothWays, c+2)
		if err != nil {
			return nil, fmt.Errorf("manybody.Build: order %d: %w", c+2, err)
		}
	}

	return out, nil
}

// combine extends chain by every candidate j and recurses on the shrinking
// candidate set until the chain reaches maxOrder-1 sites.
func combine(nl *neighborlist.List, out []Combination, candidates, chain []lattice.Site,
	saveBothWays bool, maxOrder int) ([]Combination, error) {
	last := chain[len(chain)-1]
	for _, j := range candidates {
		if !saveBothWays && j.Less(last) {
			continue
		}
		next := make([]lattice.Site, len(chain)+1)
		copy(next, chain)
		next[len(chain)] = j

		nj, err := nl.Neighbors(j.Index)
		if err != nil {
			return nil, err
		}
		nj = lattice.TranslateAll(nj, j.Offset)
		if !saveBothWays {
			nj = greaterThan(nj, j)
		}
		common := Intersection(candidates, nj)

		if len(next)+1 < maxOrder {
			out, err = combine(nl, out, common, next, saveBothWays, maxOrder)
			if err != nil {
				return nil, err
			}
		}
		if len(common) > 0 && len(next) == maxOrder-1 {
			out = append(out, Combination{Sites: next, Neighbors: common})
		}
	}

	return out, nil
}

// greaterThan keeps the sites strictly greater than pivot; sites stays sorted.
func greaterThan(sites []lattice.Site, pivot lattice.Site) []lattice.Site {
	out := make([]lattice.Site, 0, len(sites))
	for _, s := range sites {
		if pivot.Less(s) {
			out = append(out, s)
		}
	}

	return out
}

// Intersection returns the sites present in both sorted slices, in order.
func Intersection(a, b []lattice.Site) []lattice.Site {
	out := make([]lattice.Site, 0, min(len(a), len(b)))
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch c := lattice.Compare(a[i], b[j]); {
		case c < 0:
			i++
		case c > 0:
			j++
		default:
			out = append(out, a[i])
			i++
			j++
		}
	}

	return out
}
