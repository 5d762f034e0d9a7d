// SPDX-License-Identifier: MIT
package structure_test

import (
	"fmt"
	"testing"

	"github.com/katalvlaran/clustex/lattice"
	"github.com/katalvlaran/clustex/matrix"
	"github.com/katalvlaran/clustex/structure"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var identityCell = [3]matrix.Vec3{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}

// fccPrimitive returns a one-site face-centred cubic cell with lattice constant 2.
func fccPrimitive(t *testing.T) *structure.Structure {
	t.Helper()
	s, err := structure.New(
		[3]matrix.Vec3{{0, 1, 1}, {1, 0, 1}, {1, 1, 0}},
		[]matrix.Vec3{{0, 0, 0}},
		[]int{29},
		[3]bool{true, true, true},
	)
	require.NoError(t, err)

	return s
}

func TestNewValidation(t *testing.T) {
	pbc := [3]bool{true, true, true}

	_, err := structure.New(identityCell, nil, nil, pbc)
	require.ErrorIs(t, err, structure.ErrEmptyStructure)

	_, err = structure.New(identityCell, []matrix.Vec3{{0, 0, 0}}, []int{1, 2}, pbc)
	require.ErrorIs(t, err, structure.ErrSizeMismatch)

	_, err = structure.New([3]matrix.Vec3{{1, 0, 0}, {2, 0, 0}, {0, 0, 1}}, []matrix.Vec3{{0, 0, 0}}, []int{1}, pbc)
	require.ErrorIs(t, err, structure.ErrSingularCell)
	require.ErrorIs(t, err, matrix.ErrSingular)

	_, err = structure.New(identityCell, []matrix.Vec3{{0, 0, 0}}, []int{1}, pbc, structure.WithUniqueSites([]int{0, 1}))
	require.ErrorIs(t, err, structure.ErrSizeMismatch)

	_, err = structure.New(identityCell, []matrix.Vec3{{0, 0, 0}}, []int{1}, pbc, structure.WithAllowedSpecies([]int{0}))
	require.ErrorIs(t, err, structure.ErrInvalidSpecies)

	require.Panics(t, func() { structure.WithTolerance(0) })
}

func TestDefaults(t *testing.T) {
	s, err := structure.New(identityCell, []matrix.Vec3{{0, 0, 0}, {0.5, 0.5, 0.5}}, []int{11, 17}, [3]bool{true, true, false})
	require.NoError(t, err)

	assert.Equal(t, 2, s.Size())
	assert.Equal(t, []int{0, 1}, s.UniqueSites())
	assert.Equal(t, structure.DefaultTolerance, s.Tolerance())
	assert.False(t, s.HasPBC(2))
	assert.False(t, s.HasPBC(7))

	n, err := s.NumberOfAllowedSpecies(1)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	_, err = s.AtomicNumber(2)
	require.ErrorIs(t, err, structure.ErrIndexOutOfRange)
	_, err = s.UniqueSite(-1)
	require.ErrorIs(t, err, structure.ErrIndexOutOfRange)
}

func TestDistanceWithOffsets(t *testing.T) {
	s := fccPrimitive(t)

	d, err := s.Distance(0, 0, [3]int{}, [3]int{1, 0, 0})
	require.NoError(t, err)
	assert.InDelta(t, 1.4142135623730951, d, 1e-12)

	d, err = s.SiteDistance(lattice.New(0, [3]int{1, 0, 0}), lattice.New(0, [3]int{0, 1, 0}))
	require.NoError(t, err)
	assert.InDelta(t, 1.4142135623730951, d, 1e-12)

	_, err = s.Distance(0, 1, [3]int{}, [3]int{})
	require.ErrorIs(t, err, structure.ErrIndexOutOfRange)
}

func TestFindLatticeSiteRoundTrip(t *testing.T) {
	s, err := structure.New(
		[3]matrix.Vec3{{2.5, 0, 0}, {-1.25, 2.1650635094610964, 0}, {0, 0, 4}},
		[]matrix.Vec3{{0, 0, 0}, {0, 1.4433756729740643, 2}},
		[]int{22, 22},
		[3]bool{true, true, true},
	)
	require.NoError(t, err)

	for _, want := range []lattice.Site{
		lattice.New(0, [3]int{0, 0, 0}),
		lattice.New(1, [3]int{-1, 2, 0}),
		lattice.New(0, [3]int{3, -4, 1}),
		lattice.New(1, [3]int{0, 0, -1}),
	} {
		r, err := s.Position(want)
		require.NoError(t, err)
		got, err := s.FindLatticeSiteByPosition(r)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err = s.FindLatticeSiteByPosition(matrix.Vec3{0.3, 0.3, 0.3})
	require.ErrorIs(t, err, structure.ErrSiteNotFound)

	i, err := s.FindSiteByPosition(matrix.Vec3{0, 1.4433756729740643, 2})
	require.NoError(t, err)
	assert.Equal(t, 1, i)
}

func TestFractionalRoundTrip(t *testing.T) {
	s := fccPrimitive(t)
	f := matrix.Vec3{0.25, -0.5, 1.75}
	got := s.ToFractional(s.ToCartesian(f))
	assert.InDeltaSlice(t, f[:], got[:], 1e-12)

	norms := s.ReciprocalNorms()
	for _, n := range norms {
		assert.InDelta(t, 0.8660254037844386, n, 1e-12)
	}
}

func TestGeometricRadius(t *testing.T) {
	s, err := structure.New(identityCell, []matrix.Vec3{{0, 0, 0}}, []int{29}, [3]bool{true, true, true})
	require.NoError(t, err)

	r, err := s.GeometricRadius([]lattice.Site{lattice.New(0, [3]int{}), lattice.New(0, [3]int{1, 0, 0})})
	require.NoError(t, err)
	assert.InDelta(t, 0.5, r, 1e-12)

	r, err = s.GeometricRadius(nil)
	require.NoError(t, err)
	assert.Zero(t, r)
}

func TestRepeat(t *testing.T) {
	prim, err := structure.New(identityCell, []matrix.Vec3{{0, 0, 0}}, []int{29}, [3]bool{true, true, true},
		structure.WithAllowedSpecies([]int{2}))
	require.NoError(t, err)

	super, err := prim.Repeat([3]int{2, 2, 2})
	require.NoError(t, err)
	assert.Equal(t, 8, super.Size())
	assert.Equal(t, matrix.Vec3{2, 0, 0}, super.Cell()[0])
	assert.Equal(t, []int{0, 0, 0, 0, 0, 0, 0, 0}, super.UniqueSites())

	n, err := super.NumberOfAllowedSpecies(7)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	i, err := super.FindSiteByPosition(matrix.Vec3{1, 1, 1})
	require.NoError(t, err)
	assert.Equal(t, 7, i)

	_, err = prim.Repeat([3]int{1, 0, 1})
	require.ErrorIs(t, err, structure.ErrInvalidRepeat)
}

func ExampleStructure_FindLatticeSiteByPosition() {
	s, _ := structure.New(
		[3]matrix.Vec3{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}},
		[]matrix.Vec3{{0, 0, 0}, {0.5, 0.5, 0.5}},
		[]int{55, 17},
		[3]bool{true, true, true},
	)
	site, _ := s.FindLatticeSiteByPosition(matrix.Vec3{-0.5, 1.5, 0.5})
	fmt.Println(site)
	// Output:
	// 1:[-1 1 0]
}
