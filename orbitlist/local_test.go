// SPDX-License-Identifier: MIT
package orbitlist_test

import (
	"testing"

	"github.com/katalvlaran/clustex/lattice"
	"github.com/katalvlaran/clustex/orbitlist"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalOrbitList(t *testing.T) {
	prim := simpleCubic(t)
	ol := build(t, prim, 1.1)
	super, err := prim.Repeat([3]int{2, 2, 2})
	require.NoError(t, err)

	tests := []struct {
		name   string
		offset [3]int
		want   []lattice.Site
	}{
		{"reference cell", [3]int{}, []lattice.Site{
			lattice.New(4, [3]int{-1, 0, 0}), lattice.New(0, [3]int{}),
		}},
		{"shifted along x", [3]int{1, 0, 0}, []lattice.Site{
			lattice.New(0, [3]int{}), lattice.New(4, [3]int{}),
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			local, err := ol.LocalOrbitList(super, tt.offset, nil)
			require.NoError(t, err)
			require.Equal(t, ol.Len(), local.Len())

			pair, err := local.Orbit(1)
			require.NoError(t, err)
			require.Equal(t, 3, pair.Len())
			assert.Equal(t, tt.want, pair.EquivalentSites()[0])
			assert.Len(t, pair.EquivalentSitesPermutations(), 3)

			orig, _ := ol.Orbit(1)
			assert.Equal(t, lattice.New(0, [3]int{-1, 0, 0}), orig.EquivalentSites()[0][0], "receiver untouched")
		})
	}
}

type failingMapper struct{}

func (failingMapper) MapSite(lattice.Site) (lattice.Site, error) {
	return lattice.Site{}, orbitlist.ErrIndexOutOfRange
}

func TestLocalOrbitListErrors(t *testing.T) {
	prim := simpleCubic(t)
	ol := build(t, prim, 1.1)

	_, err := ol.LocalOrbitList(nil, [3]int{}, nil)
	require.ErrorIs(t, err, orbitlist.ErrNilStructure)

	_, err = ol.LocalOrbitList(prim, [3]int{}, failingMapper{})
	require.ErrorIs(t, err, orbitlist.ErrIndexOutOfRange)
}

func TestPositionMapper(t *testing.T) {
	prim := simpleCubic(t)
	super, err := prim.Repeat([3]int{2, 1, 1})
	require.NoError(t, err)
	m := orbitlist.PositionMapper{Primitive: prim, Supercell: super}

	got, err := m.MapSite(lattice.New(0, [3]int{3, 0, -1}))
	require.NoError(t, err)
	assert.Equal(t, lattice.New(1, [3]int{1, 0, -1}), got)
}
