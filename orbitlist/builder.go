// SPDX-License-Identifier: MIT

package orbitlist

import (
	"fmt"
	"slices"
	"time"

	"github.com/katalvlaran/clustex/cluster"
	"github.com/katalvlaran/clustex/internal/combin"
	"github.com/katalvlaran/clustex/internal/digest"
	"github.com/katalvlaran/clustex/lattice"
	"github.com/katalvlaran/clustex/manybody"
	"github.com/katalvlaran/clustex/neighborlist"
	"github.com/katalvlaran/clustex/orbit"
	"github.com/katalvlaran/clustex/structure"
)

// radiusTolerance bounds the radius difference between an equivalent
// cluster and its representative.
const radiusTolerance = 1e-3

// builder carries the state of one New call.
type builder struct {
	s     *structure.Structure
	pm    [][]lattice.Site
	col1  []lattice.Site
	rowOf map[lattice.Site]int

	// taken holds the digests of claimed row tuples (sorted row indices).
	taken  map[digest.Hash]struct{}
	groups [][][]lattice.Site

	perms map[int][][]int
}

// match is a tuple variant found in column 0 together with its rows.
type match struct {
	sites []lattice.Site
	rows  []int
}

func newBuilder(s *structure.Structure, pm [][]lattice.Site) (*builder, error) {
	b := &builder{
		s:     s,
		pm:    make([][]lattice.Site, len(pm)),
		col1:  make([]lattice.Site, len(pm)),
		rowOf: make(map[lattice.Site]int, len(pm)),
		taken: make(map[digest.Hash]struct{}),
		perms: make(map[int][][]int),
	}
	for r, row := range pm {
		if len(row) == 0 || len(row) != len(pm[0]) {
			return nil, fmt.Errorf("row %d has %d columns, row 0 has %d: %w", r, len(row), len(pm[0]), ErrSizeMismatch)
		}
		b.pm[r] = slices.Clone(row)
		b.col1[r] = row[0]
		if prev, dup := b.rowOf[row[0]]; dup {
			return nil, fmt.Errorf("%v in rows %d and %d: %w", row[0], prev, r, ErrDuplicateRows)
		}
		b.rowOf[row[0]] = r
	}

	return b, nil
}

// New builds the orbit list of s from a lattice-site permutation matrix and
// one neighbor list per order above one.
func New(s *structure.Structure, pm [][]lattice.Site, lists []*neighborlist.List, opts ...Option) (*OrbitList, error) {
	o := gatherOptions(opts...)
	start := time.Now()
	if s == nil {
		return nil, fmt.Errorf("orbitlist.New: %w", ErrNilStructure)
	}
	if len(pm) == 0 || len(lists) == 0 {
		return nil, fmt.Errorf("orbitlist.New: %w", ErrEmptyInput)
	}
	if lists[0].Size() != s.Size() {
		return nil, fmt.Errorf("orbitlist.New: neighbor list of %d sites for %d: %w", lists[0].Size(), s.Size(), ErrSizeMismatch)
	}
	b, err := newBuilder(s, pm)
	if err != nil {
		return nil, fmt.Errorf("orbitlist.New: %w", err)
	}
	o.logger.Debug("permutation matrix", "rows", len(b.pm), "columns", len(b.pm[0]))

	for i := 0; i < s.Size(); i++ {
		combos, err := manybody.Build(lists, i, false)
		if err != nil {
			return nil, fmt.Errorf("orbitlist.New: %w", err)
		}
		for _, c := range combos {
			if err := b.collect(c); err != nil {
				return nil, fmt.Errorf("orbitlist.New: site %d: %w", i, err)
			}
		}
	}
	o.logger.Debug("collected orbit groups", "groups", len(b.groups), "claimed", len(b.taken))

	ol := &OrbitList{primitive: s, pm: b.pm, col1: b.col1}
	for _, group := range b.groups {
		slices.SortFunc(group, lattice.CompareSlices)
		rep, err := cluster.New(s, group[0])
		if err != nil {
			return nil, fmt.Errorf("orbitlist.New: %w", err)
		}
		orb := orbit.New(rep)
		orb.AddEquivalentSitesList(group, true)
		ol.orbits = append(ol.orbits, orb)
	}
	for i, orb := range ol.orbits {
		if err := b.addPermutationInformation(orb); err != nil {
			return nil, fmt.Errorf("orbitlist.New: orbit %d: %w", i, err)
		}
	}
	if o.consistencyCheck {
		if err := ol.checkEquivalentClusters(); err != nil {
			return nil, fmt.Errorf("orbitlist.New: %w", err)
		}
	}
	ol.Sort()
	o.logger.Info("orbit list built", "orbits", len(ol.orbits), "elapsed", time.Since(start))

	return ol, nil
}

// collect claims the orbit of every tuple of c that is not yet covered.
func (b *builder) collect(c manybody.Combination) error {
	if len(c.Neighbors) == 0 {
		rows, err := b.findRows(c.Sites, true)
		if err != nil {
			return err
		}
		if !b.isTaken(rows) {
			return b.addColumns(rows)
		}
		return nil
	}
	for _, tuple := range c.Tuples() {
		if !lattice.IsSorted(tuple) {
			return fmt.Errorf("%s: %w", lattice.FormatSites(tuple), ErrUnsortedSites)
		}
		variants, err := translatedVariants(b.s, tuple, true)
		if err != nil {
			return err
		}
		matches, err := b.matches(variants)
		if err != nil {
			return err
		}
		if !b.isTaken(matches[0].rows) {
			if err := b.addColumns(matches[0].rows); err != nil {
				return err
			}
		}
	}

	return nil
}

// addColumns harvests the images of rows under every operation as one
// group and claims the rows of every image.
func (b *builder) addColumns(rows []int) error {
	var group [][]lattice.Site
	for col := range b.pm[0] {
		variants, err := translatedVariants(b.s, b.column(rows, col), true)
		if err != nil {
			return err
		}
		matches, err := b.matches(variants)
		if err != nil {
			return err
		}
		if b.isTaken(matches[0].rows) {
			continue
		}
		first := true
		for _, m := range matches {
			if b.isTaken(m.rows) {
				continue
			}
			if first && hasZeroOffset(m.sites) {
				group = append(group, matches[0].sites)
				first = false
			}
			b.take(m.rows)
		}
	}
	if len(group) > 0 {
		b.groups = append(b.groups, group)
	}

	return nil
}

// column returns the images of rows under operation col, in row order.
func (b *builder) column(rows []int, col int) []lattice.Site {
	out := make([]lattice.Site, len(rows))
	for i, r := range rows {
		out[i] = b.pm[r][col]
	}

	return out
}

// findRows locates every site in column 0.
func (b *builder) findRows(sites []lattice.Site, sortRows bool) ([]int, error) {
	rows := make([]int, len(sites))
	for i, s := range sites {
		r, ok := b.rowOf[s]
		if !ok {
			return nil, fmt.Errorf("%v not in column 0: %w", s, ErrNoPermutationMatch)
		}
		rows[i] = r
	}
	if sortRows {
		slices.Sort(rows)
	}

	return rows, nil
}

// matches keeps the variants whose sites all appear in column 0.
func (b *builder) matches(variants [][]lattice.Site) ([]match, error) {
	var out []match
	for _, v := range variants {
		rows, err := b.findRows(v, true)
		if err != nil {
			continue
		}
		out = append(out, match{sites: v, rows: rows})
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%s: %w", lattice.FormatSites(variants[0]), ErrNoPermutationMatch)
	}

	return out, nil
}

func (b *builder) isTaken(rows []int) bool {
	_, ok := b.taken[digest.Rows(rows)]
	return ok
}

func (b *builder) take(rows []int) { b.taken[digest.Rows(rows)] = struct{}{} }

// permutations returns the memoized k! orderings of 0..k-1.
func (b *builder) permutations(k int) [][]int {
	p, ok := b.perms[k]
	if !ok {
		p = combin.Permutations(k)
		b.perms[k] = p
	}

	return p
}

func hasZeroOffset(sites []lattice.Site) bool {
	return slices.ContainsFunc(sites, lattice.Site.IsZeroOffset)
}

// checkPBC rejects offsets along non-periodic axes.
func checkPBC(s *structure.Structure, sites []lattice.Site) error {
	for _, site := range sites {
		for k := 0; k < 3; k++ {
			if !s.HasPBC(k) && site.Offset[k] != 0 {
				return fmt.Errorf("%v: %w", site, ErrPeriodicBoundary)
			}
		}
	}

	return nil
}

// translatedVariants returns sites together with, for every site outside
// the reference cell, the tuple shifted so that site lands in it. Variants
// are sorted internally when sortIt is set; the list itself is sorted.
func translatedVariants(s *structure.Structure, sites []lattice.Site, sortIt bool) ([][]lattice.Site, error) {
	if err := checkPBC(s, sites); err != nil {
		return nil, err
	}
	out := [][]lattice.Site{slices.Clone(sites)}
	for _, site := range sites {
		if site.IsZeroOffset() {
			continue
		}
		t := lattice.TranslateAll(sites, lattice.Negate(site.Offset))
		if sortIt {
			lattice.SortSites(t)
		}
		if err := checkPBC(s, t); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	slices.SortFunc(out, lattice.CompareSlices)

	return out, nil
}

// checkEquivalentClusters verifies that every tuple canonicalizes to its
// orbit's representative.
func (ol *OrbitList) checkEquivalentClusters() error {
	for i, orb := range ol.orbits {
		rep := orb.Representative()
		for _, sites := range orb.EquivalentSites() {
			c, err := cluster.New(ol.primitive, sites)
			if err != nil {
				return err
			}
			if !c.Equal(rep) || absDiff(c.Radius(), rep.Radius()) > radiusTolerance {
				return fmt.Errorf("orbit %d: %s gives %v, representative %v: %w",
					i, lattice.FormatSites(sites), c, rep, ErrInconsistentOrbit)
			}
		}
	}

	return nil
}

func absDiff(a, b float64) float64 {
	if a > b {
		return a - b
	}

	return b - a
}
