// SPDX-License-Identifier: MIT
package manybody_test

import (
	"fmt"
	"testing"

	"github.com/katalvlaran/clustex/lattice"
	"github.com/katalvlaran/clustex/manybody"
	"github.com/katalvlaran/clustex/matrix"
	"github.com/katalvlaran/clustex/neighborlist"
	"github.com/katalvlaran/clustex/structure"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func simpleCubic(t testing.TB) *structure.Structure {
	t.Helper()
	s, err := structure.New(
		[3]matrix.Vec3{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}},
		[]matrix.Vec3{{0, 0, 0}},
		[]int{29},
		[3]bool{true, true, true},
	)
	require.NoError(t, err)

	return s
}

// countByOrder tallies the number of tuples of each size.
func countByOrder(combos []manybody.Combination) map[int]int {
	out := map[int]int{}
	for _, c := range combos {
		for _, tuple := range c.Tuples() {
			out[len(tuple)]++
		}
	}

	return out
}

func TestIntersection(t *testing.T) {
	s := func(i, z int) lattice.Site { return lattice.New(i, [3]int{0, 0, z}) }
	cases := []struct {
		name    string
		a, b    []lattice.Site
		wantLen int
	}{
		{"disjoint", []lattice.Site{s(0, 0), s(0, 2)}, []lattice.Site{s(0, 1), s(1, 0)}, 0},
		{"overlap", []lattice.Site{s(0, 0), s(0, 1), s(1, 0)}, []lattice.Site{s(0, 1), s(1, 0), s(2, 0)}, 2},
		{"empty", nil, []lattice.Site{s(0, 0)}, 0},
		{"same", []lattice.Site{s(0, 0), s(1, 1)}, []lattice.Site{s(0, 0), s(1, 1)}, 2},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := manybody.Intersection(tc.a, tc.b)
			assert.Len(t, got, tc.wantLen)
			assert.True(t, lattice.IsSorted(got))
		})
	}
}

func TestPairsOnly(t *testing.T) {
	s := simpleCubic(t)
	nl, err := neighborlist.Build(s, 1.1)
	require.NoError(t, err)

	combos, err := manybody.Build([]*neighborlist.List{nl}, 0, false)
	require.NoError(t, err)
	assert.Equal(t, map[int]int{1: 1, 2: 3}, countByOrder(combos))

	both, err := manybody.Build([]*neighborlist.List{nl}, 0, true)
	require.NoError(t, err)
	assert.Equal(t, map[int]int{1: 1, 2: 6}, countByOrder(both))
}

// TestTripletsAndQuadruplets checks the number of sub-clusters per cell of the
// simple cubic lattice with first and second neighbor edges: 12 right and 8
// equilateral triangles.
func TestTripletsAndQuadruplets(t *testing.T) {
	s := simpleCubic(t)
	lists, err := neighborlist.BuildAll(s, []float64{1.5, 1.5, 1.5})
	require.NoError(t, err)

	combos, err := manybody.Build(lists[:2], 0, false)
	require.NoError(t, err)
	assert.Equal(t, map[int]int{1: 1, 2: 9, 3: 20}, countByOrder(combos))

	combos, err = manybody.Build(lists, 0, false)
	require.NoError(t, err)
	counts := countByOrder(combos)
	assert.Equal(t, 20, counts[3])
	assert.Equal(t, 13, counts[4])

	for _, c := range combos {
		for _, tuple := range c.Tuples() {
			require.True(t, lattice.IsSorted(tuple), "tuple %v", tuple)
			require.True(t, tuple[0].IsZeroOffset())
			for a := range tuple {
				for b := a + 1; b < len(tuple); b++ {
					d, err := s.SiteDistance(tuple[a], tuple[b])
					require.NoError(t, err)
					require.LessOrEqual(t, d, 1.5+1e-5)
				}
			}
		}
	}
}

func TestBuildErrors(t *testing.T) {
	_, err := manybody.Build(nil, 0, false)
	require.ErrorIs(t, err, manybody.ErrNoNeighborLists)

	nl, err := neighborlist.Build(simpleCubic(t), 1.1)
	require.NoError(t, err)
	_, err = manybody.Build([]*neighborlist.List{nl}, 1, false)
	require.ErrorIs(t, err, manybody.ErrIndexOutOfRange)
}

func ExampleBuild() {
	s, _ := structure.New(
		[3]matrix.Vec3{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}},
		[]matrix.Vec3{{0, 0, 0}},
		[]int{29},
		[3]bool{true, true, true},
	)
	nl, _ := neighborlist.Build(s, 1.1)
	combos, _ := manybody.Build([]*neighborlist.List{nl}, 0, false)
	for _, c := range combos {
		for _, tuple := range c.Tuples() {
			fmt.Println(lattice.FormatSites(tuple))
		}
	}
	// Output:
	// 0:[0 0 0]
	// 0:[0 0 0] . 0:[0 0 1]
	// 0:[0 0 0] . 0:[0 1 0]
	// 0:[0 0 0] . 0:[1 0 0]
}

func BenchmarkBuildQuadruplets(b *testing.B) {
	s := simpleCubic(b)
	lists, _ := neighborlist.BuildAll(s, []float64{1.8, 1.8, 1.8})
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_, _ = manybody.Build(lists, 0, false)
	}
}
