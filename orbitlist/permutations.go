// SPDX-License-Identifier: MIT

package orbitlist

import (
	"fmt"

	"github.com/katalvlaran/clustex/internal/combin"
	"github.com/katalvlaran/clustex/internal/digest"
	"github.com/katalvlaran/clustex/lattice"
	"github.com/katalvlaran/clustex/orbit"
)

// addPermutationInformation derives the allowed self-permutations of orb's
// representative and the permutation of every tuple into representative
// order.
//
// p_equal is the set of all column images of the representative rows (and
// of its translated variants, and their own translated variants), kept in
// representative order. A permutation is allowed when it rearranges some
// translated representative into p_equal. A tuple found in p_equal keeps the
// identity; any other tuple is permuted (through one of its translated
// variants) until it lands in p_equal.
func (b *builder) addPermutationInformation(orb *orbit.Orbit) error {
	repSites := orb.RepresentativeSites()
	k := len(repSites)
	perms := b.permutations(k)

	repVariants, err := translatedVariants(b.s, repSites, false)
	if err != nil {
		return err
	}
	pEqual := make(map[digest.Hash]struct{})
	for _, tv := range repVariants {
		rows, err := b.findRows(tv, false)
		if err != nil {
			continue
		}
		for col := range b.pm[0] {
			images, err := translatedVariants(b.s, b.column(rows, col), false)
			if err != nil {
				return err
			}
			for _, img := range images {
				pEqual[digest.Sites(img)] = struct{}{}
			}
		}
	}
	if len(pEqual) == 0 {
		return fmt.Errorf("representative %s: %w", lattice.FormatSites(repSites), ErrNoPermutationMatch)
	}
	inEqual := func(sites []lattice.Site) bool {
		_, ok := pEqual[digest.Sites(sites)]
		return ok
	}

	var allowed [][]int
	for _, tv := range repVariants {
		for _, p := range perms {
			if inEqual(combin.Apply(tv, p)) {
				allowed = append(allowed, p)
			}
		}
	}
	if len(allowed) == 0 {
		return fmt.Errorf("representative %s: no allowed permutation: %w", lattice.FormatSites(repSites), ErrNoPermutationMatch)
	}

	equivalent := orb.EquivalentSites()
	toRep := make([][]int, len(equivalent))
	for i, eq := range equivalent {
		if inEqual(eq) {
			toRep[i] = combin.Identity(k)
			continue
		}
		variants, err := translatedVariants(b.s, eq, false)
		if err != nil {
			return err
		}
	search:
		for _, t := range variants {
			for _, p := range perms {
				if inEqual(combin.Apply(t, p)) {
					toRep[i] = p
					break search
				}
			}
		}
		if toRep[i] == nil {
			return fmt.Errorf("tuple %s: no permutation into representative order: %w",
				lattice.FormatSites(eq), ErrNoPermutationMatch)
		}
	}

	if err := orb.SetEquivalentSitesPermutations(toRep); err != nil {
		return err
	}

	return orb.SetAllowedPermutations(allowed)
}
