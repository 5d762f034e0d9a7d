// SPDX-License-Identifier: MIT

package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/katalvlaran/clustex/matrix"
	"github.com/katalvlaran/clustex/permmatrix"
	"github.com/katalvlaran/clustex/structure"
)

// Sentinel errors.
var (
	// ErrInvalidConfig indicates a configuration that cannot describe a run.
	ErrInvalidConfig = errors.New("config: invalid configuration")

	// ErrNoSupercell indicates a configuration without a [supercell] table.
	ErrNoSupercell = errors.New("config: no supercell configured")
)

// GenerateCubic is the generate value for the m-3m point group.
const GenerateCubic = "cubic"

// File is a decoded configuration file.
type File struct {
	Basis    BasisTable      `toml:"structure"`
	Symmetry []SymmetryEntry `toml:"symmetry"`
	Clusters ClustersTable   `toml:"clusters"`
	Tiling   *TilingTable    `toml:"supercell"`
}

// BasisTable describes the primitive structure.
type BasisTable struct {
	Cell           [][]float64 `toml:"cell"`
	Positions      [][]float64 `toml:"positions"`
	Numbers        []int       `toml:"numbers"`
	PBC            []bool      `toml:"pbc"`
	Tolerance      float64     `toml:"tolerance"`
	AllowedSpecies []int       `toml:"allowed_species"`
}

// SymmetryEntry is one listed operation or a generated group.
type SymmetryEntry struct {
	Generate    string    `toml:"generate"`
	Rotation    [][]int   `toml:"rotation"`
	Translation []float64 `toml:"translation"`
}

// ClustersTable holds one cutoff per cluster order above one.
type ClustersTable struct {
	Cutoffs []float64 `toml:"cutoffs"`
}

// TilingTable describes the supercell as a repetition of the primitive
// cell, and its occupation.
type TilingTable struct {
	Repeat  []int `toml:"repeat"`
	Numbers []int `toml:"numbers"`
}

// Load reads and validates the configuration at path.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}
	f, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("config.Load(%s): %w", path, err)
	}

	return f, nil
}

// Parse decodes and validates a TOML document. Unknown keys are rejected.
func Parse(data []byte) (*File, error) {
	var f File
	md, err := toml.Decode(string(data), &f)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("unknown keys %s: %w", strings.Join(keys, ", "), ErrInvalidConfig)
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}

	return &f, nil
}

func invalid(format string, args ...any) error {
	return fmt.Errorf(format+": %w", append(args, ErrInvalidConfig)...)
}

// Validate reports every problem found, joined.
func (f *File) Validate() error {
	var errs []error
	s := f.Basis
	if len(s.Cell) != 3 {
		errs = append(errs, invalid("structure.cell: %d rows, want 3", len(s.Cell)))
	}
	for i, row := range s.Cell {
		if len(row) != 3 {
			errs = append(errs, invalid("structure.cell[%d]: %d entries, want 3", i, len(row)))
		}
	}
	if len(s.Positions) == 0 {
		errs = append(errs, invalid("structure.positions: empty"))
	}
	for i, p := range s.Positions {
		if len(p) != 3 {
			errs = append(errs, invalid("structure.positions[%d]: %d entries, want 3", i, len(p)))
		}
	}
	if len(s.Numbers) != len(s.Positions) {
		errs = append(errs, invalid("structure.numbers: %d for %d positions", len(s.Numbers), len(s.Positions)))
	}
	if len(s.PBC) != 0 && len(s.PBC) != 3 {
		errs = append(errs, invalid("structure.pbc: %d entries, want 3", len(s.PBC)))
	}
	if s.Tolerance < 0 {
		errs = append(errs, invalid("structure.tolerance: %g is negative", s.Tolerance))
	}
	if len(s.AllowedSpecies) != 0 && len(s.AllowedSpecies) != len(s.Positions) {
		errs = append(errs, invalid("structure.allowed_species: %d for %d positions", len(s.AllowedSpecies), len(s.Positions)))
	}

	if len(f.Symmetry) == 0 {
		errs = append(errs, invalid("symmetry: no operations"))
	}
	for i, e := range f.Symmetry {
		switch {
		case e.Generate != "" && e.Rotation != nil:
			errs = append(errs, invalid("symmetry[%d]: generate and rotation are exclusive", i))
		case e.Generate != "" && e.Generate != GenerateCubic:
			errs = append(errs, invalid("symmetry[%d]: unknown generator %q", i, e.Generate))
		case e.Generate == "" && !isSquare3(e.Rotation):
			errs = append(errs, invalid("symmetry[%d]: rotation must be 3×3", i))
		}
		if len(e.Translation) != 0 && len(e.Translation) != 3 {
			errs = append(errs, invalid("symmetry[%d]: translation has %d entries, want 3", i, len(e.Translation)))
		}
	}

	if len(f.Clusters.Cutoffs) == 0 {
		errs = append(errs, invalid("clusters.cutoffs: empty"))
	}
	for i, c := range f.Clusters.Cutoffs {
		if c <= 0 {
			errs = append(errs, invalid("clusters.cutoffs[%d]: %g is not positive", i, c))
		}
	}

	if sc := f.Tiling; sc != nil {
		if len(sc.Repeat) != 3 {
			errs = append(errs, invalid("supercell.repeat: %d entries, want 3", len(sc.Repeat)))
		} else {
			cells := 1
			for _, n := range sc.Repeat {
				if n < 1 {
					errs = append(errs, invalid("supercell.repeat: %v has a factor below 1", sc.Repeat))
				}
				cells *= n
			}
			if want := cells * len(s.Positions); len(sc.Numbers) != 0 && len(sc.Numbers) != want {
				errs = append(errs, invalid("supercell.numbers: %d for %d sites", len(sc.Numbers), want))
			}
		}
	}

	return errors.Join(errs...)
}

func isSquare3(m [][]int) bool {
	if len(m) != 3 {
		return false
	}
	for _, row := range m {
		if len(row) != 3 {
			return false
		}
	}

	return true
}

func vec3(v []float64) matrix.Vec3 {
	var out matrix.Vec3
	copy(out[:], v)

	return out
}

func (f *File) cell() [3]matrix.Vec3 {
	var cell [3]matrix.Vec3
	for i := range cell {
		cell[i] = vec3(f.Basis.Cell[i])
	}

	return cell
}

// Structure builds the primitive structure.
func (f *File) Structure() (*structure.Structure, error) {
	s := f.Basis
	positions := make([]matrix.Vec3, len(s.Positions))
	for i, p := range s.Positions {
		positions[i] = vec3(p)
	}
	pbc := [3]bool{true, true, true}
	if len(s.PBC) == 3 {
		copy(pbc[:], s.PBC)
	}
	var opts []structure.Option
	if s.Tolerance > 0 {
		opts = append(opts, structure.WithTolerance(s.Tolerance))
	}
	if len(s.AllowedSpecies) > 0 {
		opts = append(opts, structure.WithAllowedSpecies(s.AllowedSpecies))
	}

	prim, err := structure.New(f.cell(), positions, s.Numbers, pbc, opts...)
	if err != nil {
		return nil, fmt.Errorf("config.Structure: %w", err)
	}

	return prim, nil
}

// Operations returns the symmetry operations in file order, generated
// groups expanded in place.
func (f *File) Operations() ([]permmatrix.Operation, error) {
	var ops []permmatrix.Operation
	for i, e := range f.Symmetry {
		t := vec3(e.Translation)
		if e.Generate == GenerateCubic {
			generated, err := permmatrix.CubicOperations(f.cell())
			if err != nil {
				return nil, fmt.Errorf("config.Operations: symmetry[%d]: %w", i, err)
			}
			for _, op := range generated {
				op.Translation = t
				ops = append(ops, op)
			}
			continue
		}
		var op permmatrix.Operation
		for r := 0; r < 3; r++ {
			copy(op.Rotation[r][:], e.Rotation[r])
		}
		op.Translation = t
		ops = append(ops, op)
	}

	return ops, nil
}

// Cutoffs returns a copy of the cluster cutoffs.
func (f *File) Cutoffs() []float64 {
	return append([]float64(nil), f.Clusters.Cutoffs...)
}

// Supercell repeats prim and applies the configured occupation.
func (f *File) Supercell(prim *structure.Structure) (*structure.Structure, error) {
	if f.Tiling == nil {
		return nil, fmt.Errorf("config.Supercell: %w", ErrNoSupercell)
	}
	var n [3]int
	copy(n[:], f.Tiling.Repeat)
	super, err := prim.Repeat(n)
	if err != nil {
		return nil, fmt.Errorf("config.Supercell: %w", err)
	}
	if len(f.Tiling.Numbers) > 0 {
		if err := super.SetAtomicNumbers(f.Tiling.Numbers); err != nil {
			return nil, fmt.Errorf("config.Supercell: %w", err)
		}
	}

	return super, nil
}
