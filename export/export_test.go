// SPDX-License-Identifier: MIT
package export_test

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/katalvlaran/clustex/clustercounts"
	"github.com/katalvlaran/clustex/export"
	"github.com/katalvlaran/clustex/matrix"
	"github.com/katalvlaran/clustex/orbitlist"
	"github.com/katalvlaran/clustex/permmatrix"
	"github.com/katalvlaran/clustex/structure"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var identityCell = [3]matrix.Vec3{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}

func simpleCubic(t testing.TB) (*structure.Structure, *orbitlist.OrbitList) {
	t.Helper()
	s, err := structure.New(identityCell, []matrix.Vec3{{0, 0, 0}}, []int{29}, [3]bool{true, true, true})
	require.NoError(t, err)
	ops, err := permmatrix.CubicOperations(identityCell)
	require.NoError(t, err)
	ol, err := orbitlist.FromStructure(s, ops, []float64{1.1})
	require.NoError(t, err)

	return s, ol
}

func TestFromOrbitList(t *testing.T) {
	_, ol := simpleCubic(t)
	snap := export.FromOrbitList(ol)

	require.Len(t, snap.Orbits, 2)
	assert.Equal(t, export.Version, snap.Version)
	assert.Equal(t, &export.Basis{Numbers: []int{29}, UniqueSites: []int{0}}, snap.Primitive)

	pair := snap.Orbits[1]
	assert.Equal(t, 2, pair.Order)
	assert.Equal(t, []float64{1}, pair.Distances)
	assert.Equal(t, []export.Site{{Index: 0, Offset: [3]int{-1, 0, 0}}, {Index: 0}}, pair.Equivalent[0])
	assert.Equal(t, [][]int{{0, 1}, {1, 0}}, pair.Allowed)
	assert.Len(t, pair.Permutations, 3)
}

func TestCBORRoundTrip(t *testing.T) {
	s, ol := simpleCubic(t)
	snap := export.FromOrbitList(ol)
	counts := clustercounts.New()
	require.NoError(t, counts.CountOrbitList(s, ol, false, false))
	snap.AddCounts(counts)
	require.Equal(t, 4, snap.Total())

	var buf bytes.Buffer
	require.NoError(t, export.Encode(&buf, snap, export.FormatCBOR))
	data := bytes.Clone(buf.Bytes())

	decoded, err := export.Decode(&buf, export.FormatCBOR)
	require.NoError(t, err)
	again, err := decoded.CBOR()
	require.NoError(t, err)
	assert.Equal(t, data, again, "encoding is stable")
	assert.Equal(t, snap.Orbits[1].Equivalent, decoded.Orbits[1].Equivalent)
	assert.Equal(t, snap.Counts, decoded.Counts)

	want, err := snap.Fingerprint()
	require.NoError(t, err)
	got, err := decoded.Fingerprint()
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestFingerprint(t *testing.T) {
	_, first := simpleCubic(t)
	_, second := simpleCubic(t)

	a, err := export.FromOrbitList(first).Fingerprint()
	require.NoError(t, err)
	b, err := export.FromOrbitList(second).Fingerprint()
	require.NoError(t, err)
	assert.Equal(t, a, b, "independent builds fingerprint equally")

	require.NoError(t, second.RemoveOrbit(0))
	c, err := export.FromOrbitList(second).Fingerprint()
	require.NoError(t, err)
	assert.NotEqual(t, a, c)
}

func TestYAML(t *testing.T) {
	_, ol := simpleCubic(t)
	snap := export.FromOrbitList(ol)

	var buf bytes.Buffer
	require.NoError(t, export.Encode(&buf, snap, export.FormatYAML))
	text := buf.String()
	assert.Contains(t, text, "version: 1")
	assert.Contains(t, text, "offset: [-1, 0, 0]")

	decoded, err := export.Decode(&buf, export.FormatYAML)
	require.NoError(t, err)
	require.Len(t, decoded.Orbits, len(snap.Orbits))
	for i, o := range decoded.Orbits {
		assert.Equal(t, snap.Orbits[i].Equivalent, o.Equivalent)
		assert.Equal(t, snap.Orbits[i].Sites, o.Sites)
		assert.Equal(t, snap.Orbits[i].Allowed, o.Allowed)
		assert.InDelta(t, snap.Orbits[i].Radius, o.Radius, 1e-12)
	}
}

func TestFormatErrors(t *testing.T) {
	for _, name := range []string{"yaml", "YML", "cbor"} {
		_, err := export.ParseFormat(name)
		require.NoError(t, err, name)
	}
	_, err := export.ParseFormat("json")
	require.ErrorIs(t, err, export.ErrUnknownFormat)

	snap := &export.Snapshot{Version: export.Version}
	require.ErrorIs(t, export.Encode(&bytes.Buffer{}, snap, "toml"), export.ErrUnknownFormat)
	_, err = export.Decode(&bytes.Buffer{}, "toml")
	require.ErrorIs(t, err, export.ErrUnknownFormat)

	future, err := (&export.Snapshot{Version: export.Version + 1}).CBOR()
	require.NoError(t, err)
	_, err = export.Decode(bytes.NewReader(future), export.FormatCBOR)
	require.ErrorIs(t, err, export.ErrUnsupportedVersion)

	_, err = export.Decode(bytes.NewReader([]byte{0xff, 0x00}), export.FormatCBOR)
	require.Error(t, err)
}

func ExampleSnapshot_YAML() {
	snap := &export.Snapshot{
		Version: export.Version,
		Counts: []export.ClusterCount{{
			Order:     2,
			Sites:     []int{0, 0},
			Distances: []float64{1},
			Species:   []export.SpeciesCount{{Species: []int{29, 79}, Count: 24}},
		}},
	}
	data, _ := snap.YAML()
	fmt.Print(string(data))
	// Output:
	// version: 1
	// counts:
	//   - order: 2
	//     sites: [0, 0]
	//     distances: [1]
	//     species:
	//       - species: [29, 79]
	//         count: 24
}
