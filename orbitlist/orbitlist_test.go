// SPDX-License-Identifier: MIT
package orbitlist_test

import (
	"testing"

	"github.com/katalvlaran/clustex/cluster"
	"github.com/katalvlaran/clustex/lattice"
	"github.com/katalvlaran/clustex/matrix"
	"github.com/katalvlaran/clustex/neighborlist"
	"github.com/katalvlaran/clustex/orbit"
	"github.com/katalvlaran/clustex/orbitlist"
	"github.com/katalvlaran/clustex/permmatrix"
	"github.com/katalvlaran/clustex/structure"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	periodic     = [3]bool{true, true, true}
	identityCell = [3]matrix.Vec3{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}
	fccCell      = [3]matrix.Vec3{{0, 1, 1}, {1, 0, 1}, {1, 1, 0}}
)

func newStructure(t testing.TB, cell [3]matrix.Vec3, positions []matrix.Vec3, numbers []int) *structure.Structure {
	t.Helper()
	s, err := structure.New(cell, positions, numbers, periodic)
	require.NoError(t, err)

	return s
}

func simpleCubic(t testing.TB) *structure.Structure {
	return newStructure(t, identityCell, []matrix.Vec3{{0, 0, 0}}, []int{29})
}

func fcc(t testing.TB) *structure.Structure {
	return newStructure(t, fccCell, []matrix.Vec3{{0, 0, 0}}, []int{29})
}

func cesiumChloride(t testing.TB) *structure.Structure {
	return newStructure(t, identityCell, []matrix.Vec3{{0, 0, 0}, {0.5, 0.5, 0.5}}, []int{55, 17})
}

// build runs FromStructure with the cubic point group of s's cell.
func build(t testing.TB, s *structure.Structure, cutoffs ...float64) *orbitlist.OrbitList {
	t.Helper()
	ops, err := permmatrix.CubicOperations(s.Cell())
	require.NoError(t, err)
	ol, err := orbitlist.FromStructure(s, ops, cutoffs)
	require.NoError(t, err)

	return ol
}

// orbitShape is (order, number of tuples, number of allowed permutations).
type orbitShape [3]int

func shapes(ol *orbitlist.OrbitList) ([]orbitShape, []float64) {
	var (
		out   []orbitShape
		radii []float64
	)
	for _, o := range ol.Orbits() {
		out = append(out, orbitShape{o.Order(), o.Len(), len(o.AllowedPermutations())})
		radii = append(radii, o.Radius())
	}

	return out, radii
}

// TestSimpleCubicPairOrbit: one pair orbit at distance 1 whose three tuples
// are the x, y and z bonds of the reference cell.
func TestSimpleCubicPairOrbit(t *testing.T) {
	s := simpleCubic(t)
	ol := build(t, s, 1.1)

	require.Equal(t, 2, ol.Len())
	assert.Equal(t, 1, ol.NumberOfNBodyClusters(1))
	assert.Equal(t, 1, ol.NumberOfNBodyClusters(2))

	pair, err := ol.Orbit(1)
	require.NoError(t, err)
	assert.Equal(t, []float64{1}, pair.Representative().Distances())
	assert.Equal(t, [][]lattice.Site{
		{lattice.New(0, [3]int{-1, 0, 0}), lattice.New(0, [3]int{})},
		{lattice.New(0, [3]int{0, -1, 0}), lattice.New(0, [3]int{})},
		{lattice.New(0, [3]int{0, 0, -1}), lattice.New(0, [3]int{})},
	}, pair.EquivalentSites())
	assert.Equal(t, [][]int{{0, 1}, {1, 0}}, pair.AllowedPermutations())
	assert.Equal(t, [][]int{{0, 1}, {0, 1}, {0, 1}}, pair.EquivalentSitesPermutations())

	assert.Len(t, ol.Column1(), 7)
	assert.Len(t, ol.PermutationMatrix()[0], 48)
	assert.Same(t, s, ol.PrimitiveStructure())
}

func TestOrbitShapes(t *testing.T) {
	tests := []struct {
		name    string
		s       func(testing.TB) *structure.Structure
		cutoffs []float64
		want    []orbitShape
		radii   []float64
	}{
		{"sc second shell", simpleCubic, []float64{1.5, 1.5}, []orbitShape{
			{1, 1, 1}, {2, 3, 2}, {2, 6, 2}, {3, 12, 2}, {3, 8, 6},
		}, []float64{0, 0.5, 0.7071, 0.654, 0.8165}},
		{"fcc nearest neighbor", fcc, []float64{1.5, 1.5, 1.5}, []orbitShape{
			{1, 1, 1}, {2, 6, 2}, {3, 8, 6}, {4, 2, 24},
		}, []float64{0, 0.7071, 0.8165, 0.866}},
		{"cesium chloride", cesiumChloride, []float64{1.1}, []orbitShape{
			{1, 1, 1}, {1, 1, 1}, {2, 8, 1}, {2, 3, 2}, {2, 3, 2},
		}, []float64{0, 0, 0.433, 0.5, 0.5}},
		{"cesium chloride triplets", cesiumChloride, []float64{1.1, 1.1}, []orbitShape{
			{1, 1, 1}, {1, 1, 1}, {2, 8, 1}, {2, 3, 2}, {2, 3, 2}, {3, 12, 2}, {3, 12, 2},
		}, []float64{0, 0, 0.433, 0.5, 0.5, 0.5256, 0.5256}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ol := build(t, tt.s(t), tt.cutoffs...)
			got, radii := shapes(ol)
			assert.Equal(t, tt.want, got)
			assert.InDeltaSlice(t, tt.radii, radii, 1e-4)
		})
	}
}

// TestOrbitInvariants checks on several lattices that every tuple
// canonicalizes to the representative, that the identity is allowed, and
// that tuples permuted into representative order reproduce the
// representative's distance table.
func TestOrbitInvariants(t *testing.T) {
	systems := []struct {
		name    string
		s       *structure.Structure
		cutoffs []float64
	}{
		{"sc", simpleCubic(t), []float64{1.5, 1.5}},
		{"fcc", fcc(t), []float64{1.5, 1.5, 1.5}},
		{"cscl", cesiumChloride(t), []float64{1.1, 1.1}},
	}
	for _, sys := range systems {
		t.Run(sys.name, func(t *testing.T) {
			ol := build(t, sys.s, sys.cutoffs...)
			for i := 1; i < ol.Len(); i++ {
				prev, _ := ol.Orbit(i - 1)
				cur, _ := ol.Orbit(i)
				assert.LessOrEqual(t, orbit.Compare(prev, cur), 0, "orbits %d and %d out of order", i-1, i)
			}
			for _, o := range ol.Orbits() {
				assert.Contains(t, o.AllowedPermutations(), identity(o.Order()))
				rep := o.RepresentativeSites()
				permuted, err := o.PermutedEquivalentSites()
				require.NoError(t, err)
				for j, sites := range o.EquivalentSites() {
					c, err := cluster.New(sys.s, sites)
					require.NoError(t, err)
					assert.True(t, c.Equal(o.Representative()), "%s vs %s", c, o.Representative())
					assert.InDelta(t, o.Radius(), c.Radius(), 1e-3)
					assertSameDistances(t, sys.s, rep, permuted[j])
				}
			}
		})
	}
}

func identity(n int) []int {
	p := make([]int, n)
	for i := range p {
		p[i] = i
	}

	return p
}

func assertSameDistances(t *testing.T, s *structure.Structure, want, got []lattice.Site) {
	t.Helper()
	for a := range want {
		for b := a + 1; b < len(want); b++ {
			dw, err := s.SiteDistance(want[a], want[b])
			require.NoError(t, err)
			dg, err := s.SiteDistance(got[a], got[b])
			require.NoError(t, err)
			assert.InDelta(t, dw, dg, 1e-6, "pair (%d,%d) of %s", a, b, lattice.FormatSites(got))
		}
	}
}

// doubledCell is simple cubic described by a 2×1×1 cell; its two basis
// sites are related by the half-cell translation only.
func doubledCell(t *testing.T) (*structure.Structure, []permmatrix.Operation) {
	t.Helper()
	cell := [3]matrix.Vec3{{2, 0, 0}, {0, 1, 0}, {0, 0, 1}}
	s := newStructure(t, cell, []matrix.Vec3{{0, 0, 0}, {1, 0, 0}}, []int{29, 29})
	ops, err := permmatrix.CubicOperations(cell)
	require.NoError(t, err)
	require.Len(t, ops, 16)
	for _, op := range ops[:16] {
		op.Translation = matrix.Vec3{0.5, 0, 0}
		ops = append(ops, op)
	}

	return s, ops
}

func TestUniqueSitesFromTranslations(t *testing.T) {
	s, ops := doubledCell(t)
	ol, err := orbitlist.FromStructure(s, ops, []float64{1.1})
	require.NoError(t, err)

	assert.Equal(t, []int{0, 0}, s.UniqueSites())
	assert.Equal(t, 1, ol.NumberOfNBodyClusters(1))
	singlet, err := ol.Orbit(0)
	require.NoError(t, err)
	assert.Equal(t, 2, singlet.Len())

	pairs := 0
	for _, o := range ol.Orbits() {
		if o.Order() == 2 {
			pairs += o.Len()
		}
	}
	assert.Equal(t, 6, pairs, "three bonds per site")
}

func TestInconsistentUniqueSites(t *testing.T) {
	s, ops := doubledCell(t)
	pm, err := permmatrix.LatticeSiteMatrix(s, ops, 1.1)
	require.NoError(t, err)
	nl, err := neighborlist.Build(s, 1.1)
	require.NoError(t, err)

	// identity unique sites although the translation maps site 0 onto site 1
	_, err = orbitlist.New(s, pm, []*neighborlist.List{nl})
	require.ErrorIs(t, err, orbitlist.ErrInconsistentOrbit)

	_, err = orbitlist.New(s, pm, []*neighborlist.List{nl}, orbitlist.WithConsistencyCheck(false))
	require.NoError(t, err)
}

func TestNewValidation(t *testing.T) {
	s := simpleCubic(t)
	nl, err := neighborlist.Build(s, 1.1)
	require.NoError(t, err)
	lists := []*neighborlist.List{nl}
	o := lattice.New(0, [3]int{})
	x := lattice.New(0, [3]int{1, 0, 0})

	_, err = orbitlist.New(nil, [][]lattice.Site{{o}}, lists)
	require.ErrorIs(t, err, orbitlist.ErrNilStructure)

	_, err = orbitlist.New(s, nil, lists)
	require.ErrorIs(t, err, orbitlist.ErrEmptyInput)

	_, err = orbitlist.New(s, [][]lattice.Site{{o}}, nil)
	require.ErrorIs(t, err, orbitlist.ErrEmptyInput)

	_, err = orbitlist.New(s, [][]lattice.Site{{o}, {o}}, lists)
	require.ErrorIs(t, err, orbitlist.ErrDuplicateRows)

	_, err = orbitlist.New(s, [][]lattice.Site{{o, o}, {x}}, lists)
	require.ErrorIs(t, err, orbitlist.ErrSizeMismatch)

	// the neighbors of the origin are missing from column 0
	_, err = orbitlist.New(s, [][]lattice.Site{{o}}, lists)
	require.ErrorIs(t, err, orbitlist.ErrNoPermutationMatch)

	require.Panics(t, func() { orbitlist.WithLogger(nil) })
}

func TestPeriodicBoundaryViolation(t *testing.T) {
	slab, err := structure.New(identityCell, []matrix.Vec3{{0, 0, 0}}, []int{29}, [3]bool{true, true, false})
	require.NoError(t, err)
	nl, err := neighborlist.Build(slab, 1.1)
	require.NoError(t, err)

	pm := [][]lattice.Site{{lattice.New(0, [3]int{}), lattice.New(0, [3]int{0, 0, 1})}}
	_, err = orbitlist.New(slab, pm, []*neighborlist.List{nl})
	require.ErrorIs(t, err, orbitlist.ErrPeriodicBoundary)

	_, err = orbitlist.Empty(slab).TranslatedToUnitCell(pm[0], true)
	require.ErrorIs(t, err, orbitlist.ErrPeriodicBoundary)
}

func TestTranslatedToUnitCell(t *testing.T) {
	ol := orbitlist.Empty(simpleCubic(t))
	variants, err := ol.TranslatedToUnitCell([]lattice.Site{
		lattice.New(0, [3]int{0, 0, 0}),
		lattice.New(0, [3]int{1, 0, 0}),
	}, true)
	require.NoError(t, err)
	assert.Equal(t, [][]lattice.Site{
		{lattice.New(0, [3]int{-1, 0, 0}), lattice.New(0, [3]int{0, 0, 0})},
		{lattice.New(0, [3]int{0, 0, 0}), lattice.New(0, [3]int{1, 0, 0})},
	}, variants)
}

func TestEditing(t *testing.T) {
	s := simpleCubic(t)
	ol := build(t, s, 1.5, 1.5)
	require.Equal(t, 5, ol.Len())
	assert.Equal(t, 2, ol.NumberOfNBodyClusters(3))

	clone := ol.Clone()
	require.NoError(t, clone.RemoveOrbit(0))
	assert.Equal(t, 4, clone.Len())
	assert.Equal(t, 5, ol.Len())
	require.ErrorIs(t, clone.RemoveOrbit(4), orbitlist.ErrIndexOutOfRange)
	_, err := clone.Orbit(-1)
	require.ErrorIs(t, err, orbitlist.ErrIndexOutOfRange)

	require.ErrorIs(t, clone.Merge(ol), orbitlist.ErrSizeMismatch)
	require.ErrorIs(t, clone.SubtractSites(ol), orbitlist.ErrSizeMismatch)

	merged := orbitlist.Empty(s)
	require.NoError(t, merged.Merge(ol))
	require.NoError(t, merged.Merge(ol))
	for i, o := range merged.Orbits() {
		orig, _ := ol.Orbit(i)
		assert.Equal(t, 2*orig.Len(), o.Len())
	}

	require.NoError(t, merged.SubtractSites(ol))
	for i, o := range merged.Orbits() {
		orig, _ := ol.Orbit(i)
		assert.Equal(t, orig.Len(), o.Len(), "one copy of every tuple is removed")
	}

	clone.Clear()
	assert.Zero(t, clone.Len())
}

func TestRemoveInactiveOrbits(t *testing.T) {
	s := cesiumChloride(t)
	ol := build(t, s, 1.1)
	require.Equal(t, 5, ol.Len())

	require.NoError(t, s.SetNumberOfAllowedSpecies([]int{2, 1}))
	active := ol.Clone()
	require.NoError(t, active.RemoveInactiveOrbits(s))
	require.Equal(t, 2, active.Len())
	for _, o := range active.Orbits() {
		for _, site := range o.RepresentativeSites() {
			assert.Equal(t, 0, site.Index)
		}
	}

	require.NoError(t, s.SetAllAllowedSpecies(1))
	require.NoError(t, ol.RemoveInactiveOrbits(s))
	assert.Zero(t, ol.Len())
	require.ErrorIs(t, ol.RemoveInactiveOrbits(nil), orbitlist.ErrNilStructure)
}

func TestRemoveSitesByIndex(t *testing.T) {
	ol := build(t, cesiumChloride(t), 1.1)

	without := ol.Clone()
	without.RemoveSitesContainingIndex(1, false)
	sizes := make([]int, without.Len())
	for i, o := range without.Orbits() {
		sizes[i] = o.Len()
	}
	assert.Equal(t, []int{1, 0, 0, 3, 0}, sizes)

	with := ol.Clone()
	with.RemoveSitesNotContainingIndex(1, false)
	for i, o := range with.Orbits() {
		sizes[i] = o.Len()
	}
	assert.Equal(t, []int{0, 1, 8, 0, 3}, sizes)
}

func TestAddClusterSites(t *testing.T) {
	ol := orbitlist.Empty(simpleCubic(t))
	index := orbitlist.ClusterIndex{}
	pair, err := cluster.FromData([]int{0, 0}, []float64{1}, 0.5)
	require.NoError(t, err)
	far, err := cluster.FromData([]int{0, 0}, []float64{2}, 1)
	require.NoError(t, err)

	o := lattice.New(0, [3]int{})
	ol.AddClusterSites(pair, []lattice.Site{o, lattice.New(0, [3]int{1, 0, 0})}, index)
	ol.AddClusterSites(pair, []lattice.Site{o, lattice.New(0, [3]int{0, 1, 0})}, index)
	ol.AddClusterSites(far, []lattice.Site{o, lattice.New(0, [3]int{2, 0, 0})}, index)

	require.Equal(t, 2, ol.Len())
	first, _ := ol.Orbit(0)
	assert.Equal(t, 2, first.Len())
	assert.Equal(t, 1, index[far.Key()])
}
