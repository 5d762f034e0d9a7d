// SPDX-License-Identifier: MIT
package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/katalvlaran/clustex/config"
	"github.com/katalvlaran/clustex/matrix"
	"github.com/katalvlaran/clustex/orbitlist"
	"github.com/katalvlaran/clustex/permmatrix"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const simpleCubic = `
[structure]
cell = [[1, 0, 0], [0, 1, 0], [0, 0, 1]]
positions = [[0, 0, 0]]
numbers = [29]
allowed_species = [2]

[[symmetry]]
generate = "cubic"

[clusters]
cutoffs = [1.1]

[supercell]
repeat = [2, 2, 2]
numbers = [29, 79, 79, 29, 79, 29, 29, 79]
`

func TestParse(t *testing.T) {
	f, err := config.Parse([]byte(simpleCubic))
	require.NoError(t, err)

	prim, err := f.Structure()
	require.NoError(t, err)
	assert.Equal(t, 1, prim.Size())
	assert.Equal(t, [3]bool{true, true, true}, prim.PBC(), "periodic by default")
	n, err := prim.NumberOfAllowedSpecies(0)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	ops, err := f.Operations()
	require.NoError(t, err)
	require.Len(t, ops, 48)
	assert.True(t, ops[0].IsIdentity())
	assert.Equal(t, []float64{1.1}, f.Cutoffs())

	super, err := f.Supercell(prim)
	require.NoError(t, err)
	assert.Equal(t, 8, super.Size())
	assert.Equal(t, []int{29, 79, 79, 29, 79, 29, 29, 79}, super.AtomicNumbers())

	ol, err := orbitlist.FromStructure(prim, ops, f.Cutoffs())
	require.NoError(t, err)
	pair, err := ol.Orbit(1)
	require.NoError(t, err)
	assert.Equal(t, 3, pair.Len())
}

func TestListedAndTranslatedOperations(t *testing.T) {
	f, err := config.Parse([]byte(`
[structure]
cell = [[2, 0, 0], [0, 1, 0], [0, 0, 1]]
positions = [[0, 0, 0], [1, 0, 0]]
numbers = [29, 29]
pbc = [true, true, false]
tolerance = 1e-4

[[symmetry]]
rotation = [[1, 0, 0], [0, 1, 0], [0, 0, 1]]

[[symmetry]]
generate = "cubic"
translation = [0.5, 0, 0]

[clusters]
cutoffs = [1.1]
`))
	require.NoError(t, err)

	prim, err := f.Structure()
	require.NoError(t, err)
	assert.Equal(t, [3]bool{true, true, false}, prim.PBC())
	assert.Equal(t, 1e-4, prim.Tolerance())

	ops, err := f.Operations()
	require.NoError(t, err)
	require.Len(t, ops, 1+16)
	assert.Equal(t, permmatrix.Identity(), ops[0])
	for _, op := range ops[1:] {
		assert.Equal(t, matrix.Vec3{0.5, 0, 0}, op.Translation)
	}

	_, err = f.Supercell(prim)
	require.ErrorIs(t, err, config.ErrNoSupercell)
}

func TestParseRejects(t *testing.T) {
	tests := []struct {
		name    string
		replace [2]string
		msg     string
	}{
		{"syntax", [2]string{"numbers = [29]", "numbers = [29"}, ""},
		{"unknown key", [2]string{"numbers = [29]", "numbers = [29]\ncharge = 1"}, "structure.charge"},
		{"short cell", [2]string{"[0, 0, 1]]", "]"}, "structure.cell"},
		{"numbers", [2]string{"numbers = [29]", "numbers = [29, 79]"}, "structure.numbers"},
		{"allowed species", [2]string{"allowed_species = [2]", "allowed_species = [2, 2]"}, "allowed_species"},
		{"no cutoffs", [2]string{"cutoffs = [1.1]", "cutoffs = []"}, "clusters.cutoffs"},
		{"negative cutoff", [2]string{"cutoffs = [1.1]", "cutoffs = [-1]"}, "not positive"},
		{"generator", [2]string{`generate = "cubic"`, `generate = "hexagonal"`}, "unknown generator"},
		{"exclusive", [2]string{`generate = "cubic"`, `generate = "cubic"` + "\nrotation = [[1, 0, 0], [0, 1, 0], [0, 0, 1]]"}, "exclusive"},
		{"translation", [2]string{`generate = "cubic"`, `generate = "cubic"` + "\ntranslation = [0.5]"}, "translation"},
		{"repeat", [2]string{"repeat = [2, 2, 2]", "repeat = [2, 0, 2]"}, "factor below 1"},
		{"supercell numbers", [2]string{"repeat = [2, 2, 2]", "repeat = [2, 2, 1]"}, "supercell.numbers"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := strings.Replace(simpleCubic, tt.replace[0], tt.replace[1], 1)
			require.NotEqual(t, simpleCubic, doc)
			_, err := config.Parse([]byte(doc))
			require.ErrorIs(t, err, config.ErrInvalidConfig)
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
}

func TestValidateJoinsProblems(t *testing.T) {
	f := &config.File{}
	err := f.Validate()
	require.ErrorIs(t, err, config.ErrInvalidConfig)
	for _, part := range []string{"structure.cell", "structure.positions", "symmetry", "clusters.cutoffs"} {
		assert.Contains(t, err.Error(), part)
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.toml")
	require.NoError(t, os.WriteFile(path, []byte(simpleCubic), 0o600))

	f, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, []int{2, 2, 2}, f.Tiling.Repeat)

	_, err = config.Load(filepath.Join(t.TempDir(), "missing.toml"))
	require.ErrorIs(t, err, os.ErrNotExist)
}
