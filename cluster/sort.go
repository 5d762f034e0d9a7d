// SPDX-License-Identifier: MIT

package cluster

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/katalvlaran/clustex/internal/combin"
)

// neighbor is one entry of a local environment.
type neighbor struct {
	dist  float64
	site  int
	index int
}

// environment is the view of the cluster from one member: the member's
// position and the other members sorted by (distance, site, position).
type environment struct {
	index     int
	neighbors []neighbor
}

func (c Cluster) environment(i int) environment {
	k := len(c.sites)
	env := environment{index: i, neighbors: make([]neighbor, 0, k-1)}
	for j := 0; j < k; j++ {
		if j != i {
			env.neighbors = append(env.neighbors, neighbor{
				dist:  c.distances[pairIndex(i, j, k)],
				site:  c.sites[j],
				index: j,
			})
		}
	}
	slices.SortFunc(env.neighbors, func(a, b neighbor) int {
		if r := cmp.Compare(a.dist, b.dist); r != 0 {
			return r
		}
		if r := cmp.Compare(a.site, b.site); r != 0 {
			return r
		}
		return cmp.Compare(a.index, b.index)
	})

	return env
}

// compareDistances orders two environments by their distance lists only.
func compareDistances(a, b environment) int {
	for i := range a.neighbors {
		if c := cmp.Compare(a.neighbors[i].dist, b.neighbors[i].dist); c != 0 {
			return c
		}
	}

	return 0
}

// compareSitesDists orders (distances, sites) pairs: distances first.
func compareSitesDists(d1 []float64, s1 []int, d2 []float64, s2 []int) int {
	if c := slices.Compare(d1, d2); c != 0 {
		return c
	}

	return slices.Compare(s1, s2)
}

// Sort brings c into canonical order and marks it sorted.
// Clusters of fewer than two sites are already canonical.
func (c *Cluster) Sort() {
	c.sorted = true
	k := len(c.sites)
	if k < 2 {
		return
	}

	envs := make([]environment, k)
	for i := range envs {
		envs[i] = c.environment(i)
	}
	minimum := envs[0]
	for _, e := range envs[1:] {
		if compareDistances(e, minimum) < 0 {
			minimum = e
		}
	}

	var (
		bestOrder []int
		bestDists []float64
		bestSites []int
	)
	visit := func(order []int) {
		d, s := c.reordered(order)
		if bestOrder == nil || compareSitesDists(d, s, bestDists, bestSites) < 0 {
			bestOrder = slices.Clone(order)
			bestDists, bestSites = d, s
		}
	}

	for _, e := range envs {
		if compareDistances(e, minimum) != 0 {
			continue
		}
		order := make([]int, 0, k)
		order = append(order, e.index)
		for _, n := range e.neighbors {
			order = append(order, n.index)
		}
		permuteTiedGroups(order, tiedGroups(e), 0, visit)
	}

	c.distances, c.sites = bestDists, bestSites
}

// tiedGroups returns the [lo, hi) ranges, in order positions, of neighbors
// sharing a distance from the environment's member.
func tiedGroups(e environment) [][2]int {
	var groups [][2]int
	n := e.neighbors
	for lo := 0; lo < len(n); {
		hi := lo + 1
		for hi < len(n) && n[hi].dist == n[lo].dist {
			hi++
		}
		if hi-lo > 1 {
			// +1: position 0 of the order is the member itself
			groups = append(groups, [2]int{lo + 1, hi + 1})
		}
		lo = hi
	}

	return groups
}

// permuteTiedGroups calls visit for every ordering obtained by permuting
// each tied group independently. order is restored on return.
func permuteTiedGroups(order []int, groups [][2]int, g int, visit func([]int)) {
	if g == len(groups) {
		visit(order)
		return
	}
	seg := order[groups[g][0]:groups[g][1]]
	saved := slices.Clone(seg)
	slices.Sort(seg)
	for {
		permuteTiedGroups(order, groups, g+1, visit)
		if !combin.NextPermutation(seg) {
			break
		}
	}
	copy(seg, saved)
}

// ValidateSorting compares c against every ordering of its members and
// returns ErrNotCanonical if any of them is smaller.
func (c Cluster) ValidateSorting() error {
	k := len(c.sites)
	if k < 2 {
		return nil
	}
	for _, order := range combin.Permutations(k) {
		d, s := c.reordered(order)
		if compareSitesDists(d, s, c.distances, c.sites) < 0 {
			return fmt.Errorf("ValidateSorting: order %v gives %v :: %v below %v :: %v: %w",
				order, d, s, c.distances, c.sites, ErrNotCanonical)
		}
	}

	return nil
}
