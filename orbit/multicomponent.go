// SPDX-License-Identifier: MIT

package orbit

import (
	"fmt"
	"slices"

	"github.com/katalvlaran/clustex/internal/combin"
)

// AllMultiComponentVectorPermutations returns every tuple x with
// 0 <= x[i] < allowedSpecies[i]-1, in lexicographic order. allowedSpecies[i]
// is the number of species allowed on RepresentativeSites()[i].
func (o *Orbit) AllMultiComponentVectorPermutations(allowedSpecies []int) ([][]int, error) {
	if len(allowedSpecies) != o.Order() {
		return nil, fmt.Errorf("AllMultiComponentVectorPermutations: %d for order %d: %w",
			len(allowedSpecies), o.Order(), ErrSizeMismatch)
	}
	dims := make([]int, len(allowedSpecies))
	for i, m := range allowedSpecies {
		dims[i] = m - 1
	}

	return combin.Product(dims), nil
}

// MultiComponentVectors returns the distinct multi-component vectors: a
// vector is dropped when one of its images under the allowed permutations
// was already kept. Orbits touching a site with fewer than two allowed
// species have none.
func (o *Orbit) MultiComponentVectors(allowedSpecies []int) ([][]int, error) {
	all, err := o.AllMultiComponentVectorPermutations(allowedSpecies)
	if err != nil {
		return nil, fmt.Errorf("MultiComponentVectors: %w", err)
	}
	allowed := o.allowed
	if len(allowed) == 0 {
		allowed = [][]int{combin.Identity(o.Order())}
	}

	var distinct [][]int
	for _, v := range all {
		dup := false
		for _, p := range allowed {
			img := combin.Apply(v, p)
			if slices.ContainsFunc(distinct, func(d []int) bool { return slices.Equal(d, img) }) {
				dup = true
				break
			}
		}
		if !dup {
			distinct = append(distinct, v)
		}
	}

	return distinct, nil
}
