// SPDX-License-Identifier: MIT

package structure

import (
	"fmt"
	"math"
	"slices"

	"github.com/katalvlaran/clustex/lattice"
	"github.com/katalvlaran/clustex/matrix"
)

// Structure is a periodic crystal structure. See the package documentation.
type Structure struct {
	cell           [3]matrix.Vec3
	invT           *matrix.Dense // (cell⁻¹)ᵀ: Cartesian → fractional
	recip          [3]float64    // |col_k(cell⁻¹)|
	positions      []matrix.Vec3
	numbers        []int
	pbc            [3]bool
	tol            float64
	uniqueSites    []int
	allowedSpecies []int
}

// New builds a Structure.
//
// Errors:
//   - ErrEmptyStructure when positions is empty,
//   - ErrSizeMismatch when numbers, unique sites or allowed species do not
//     match len(positions),
//   - ErrInvalidSpecies for an allowed-species entry below 1,
//   - ErrSingularCell when the cell cannot be inverted.
func New(cell [3]matrix.Vec3, positions []matrix.Vec3, numbers []int, pbc [3]bool, opts ...Option) (*Structure, error) {
	if len(positions) == 0 {
		return nil, fmt.Errorf("structure.New: %w", ErrEmptyStructure)
	}
	if len(numbers) != len(positions) {
		return nil, fmt.Errorf("structure.New: %d numbers for %d positions: %w", len(numbers), len(positions), ErrSizeMismatch)
	}
	o := gatherOptions(opts...)

	inv, err := matrix.Inverse(matrix.FromRows3(cell))
	if err != nil {
		return nil, fmt.Errorf("structure.New: %w: %w", ErrSingularCell, err)
	}

	s := &Structure{
		cell:      cell,
		invT:      inv.Transpose(),
		positions: slices.Clone(positions),
		numbers:   slices.Clone(numbers),
		pbc:       pbc,
		tol:       o.tol,
	}
	for k := 0; k < 3; k++ {
		col, _ := inv.Col(k)
		s.recip[k] = math.Sqrt(col[0]*col[0] + col[1]*col[1] + col[2]*col[2])
	}

	if o.uniqueSites == nil {
		s.uniqueSites = make([]int, len(positions))
		for i := range s.uniqueSites {
			s.uniqueSites[i] = i
		}
	} else if err = s.SetUniqueSites(o.uniqueSites); err != nil {
		return nil, fmt.Errorf("structure.New: %w", err)
	}

	if o.allowedSpecies == nil {
		s.allowedSpecies = make([]int, len(positions))
		for i := range s.allowedSpecies {
			s.allowedSpecies[i] = 1
		}
	} else if err = s.SetNumberOfAllowedSpecies(o.allowedSpecies); err != nil {
		return nil, fmt.Errorf("structure.New: %w", err)
	}

	return s, nil
}

// Size returns the number of basis sites.
func (s *Structure) Size() int { return len(s.positions) }

// Cell returns the lattice vectors (rows).
func (s *Structure) Cell() [3]matrix.Vec3 { return s.cell }

// PBC returns the periodic-boundary flags.
func (s *Structure) PBC() [3]bool { return s.pbc }

// HasPBC reports whether axis k is periodic.
func (s *Structure) HasPBC(k int) bool { return k >= 0 && k < 3 && s.pbc[k] }

// Tolerance returns the position-matching tolerance.
func (s *Structure) Tolerance() float64 { return s.tol }

// ReciprocalNorms returns |col_k(cell⁻¹)| for k = 0,1,2, i.e. the inverse
// spacing of the lattice planes spanned by the other two vectors.
func (s *Structure) ReciprocalNorms() [3]float64 { return s.recip }

// Positions returns a copy of the Cartesian basis positions.
func (s *Structure) Positions() []matrix.Vec3 { return slices.Clone(s.positions) }

// AtomicNumbers returns a copy of the atomic numbers.
func (s *Structure) AtomicNumbers() []int { return slices.Clone(s.numbers) }

func (s *Structure) checkIndex(i int) error {
	if i < 0 || i >= len(s.positions) {
		return fmt.Errorf("site %d of %d: %w", i, len(s.positions), ErrIndexOutOfRange)
	}

	return nil
}

// AtomicNumber returns the atomic number on site i.
func (s *Structure) AtomicNumber(i int) (int, error) {
	if err := s.checkIndex(i); err != nil {
		return 0, err
	}

	return s.numbers[i], nil
}

// SetAtomicNumbers replaces the occupation of every site.
func (s *Structure) SetAtomicNumbers(numbers []int) error {
	if len(numbers) != len(s.positions) {
		return fmt.Errorf("SetAtomicNumbers: %d for %d sites: %w", len(numbers), len(s.positions), ErrSizeMismatch)
	}
	s.numbers = slices.Clone(numbers)

	return nil
}

// CellOffset returns Σ_k offset[k]·cell[k].
func (s *Structure) CellOffset(offset [3]int) matrix.Vec3 {
	var r matrix.Vec3
	for k := 0; k < 3; k++ {
		r = r.Add(s.cell[k].Scale(float64(offset[k])))
	}

	return r
}

// Position returns the Cartesian position of a lattice site.
func (s *Structure) Position(site lattice.Site) (matrix.Vec3, error) {
	if err := s.checkIndex(site.Index); err != nil {
		return matrix.Vec3{}, err
	}

	return s.positions[site.Index].Add(s.CellOffset(site.Offset)), nil
}

// Distance returns |r(j, offset2) - r(i, offset1)|.
func (s *Structure) Distance(i, j int, offset1, offset2 [3]int) (float64, error) {
	if err := s.checkIndex(i); err != nil {
		return 0, fmt.Errorf("Distance: %w", err)
	}
	if err := s.checkIndex(j); err != nil {
		return 0, fmt.Errorf("Distance: %w", err)
	}
	a := s.positions[i].Add(s.CellOffset(offset1))
	b := s.positions[j].Add(s.CellOffset(offset2))

	return b.Sub(a).Norm(), nil
}

// SiteDistance is Distance for two lattice sites.
func (s *Structure) SiteDistance(a, b lattice.Site) (float64, error) {
	return s.Distance(a.Index, b.Index, a.Offset, b.Offset)
}

// ToFractional converts a Cartesian position into cell coordinates.
func (s *Structure) ToFractional(r matrix.Vec3) matrix.Vec3 {
	f, _ := s.invT.MulVec3(r) // invT is 3×3 by construction

	return f
}

// ToCartesian converts cell coordinates into a Cartesian position.
func (s *Structure) ToCartesian(f matrix.Vec3) matrix.Vec3 {
	var r matrix.Vec3
	for k := 0; k < 3; k++ {
		r = r.Add(s.cell[k].Scale(f[k]))
	}

	return r
}

// FractionalPositions returns every basis position in cell coordinates.
func (s *Structure) FractionalPositions() []matrix.Vec3 {
	out := make([]matrix.Vec3, len(s.positions))
	for i, p := range s.positions {
		out[i] = s.ToFractional(p)
	}

	return out
}

// FindSiteByPosition returns the basis index whose position is within
// tolerance of r (no cell translation is applied).
func (s *Structure) FindSiteByPosition(r matrix.Vec3) (int, error) {
	for i, p := range s.positions {
		if p.Sub(r).Norm() < s.tol {
			return i, nil
		}
	}

	return -1, fmt.Errorf("FindSiteByPosition(%v): %w", r, ErrSiteNotFound)
}

// FindLatticeSiteByPosition returns the lattice site at r: the basis site
// whose fractional position differs from r's by an integer vector, and that
// vector as offset.
func (s *Structure) FindLatticeSiteByPosition(r matrix.Vec3) (lattice.Site, error) {
	f := s.ToFractional(r)
	for i, p := range s.positions {
		d := f.Sub(s.ToFractional(p))
		off := [3]int{int(math.Round(d[0])), int(math.Round(d[1])), int(math.Round(d[2]))}
		img := p.Add(s.CellOffset(off))
		if img.Sub(r).Norm() < s.tol {
			return lattice.New(i, off), nil
		}
	}

	return lattice.Site{}, fmt.Errorf("FindLatticeSiteByPosition(%v): %w", r, ErrSiteNotFound)
}

// FindLatticeSitesByPositions maps every position to its lattice site.
func (s *Structure) FindLatticeSitesByPositions(rs []matrix.Vec3) ([]lattice.Site, error) {
	out := make([]lattice.Site, len(rs))
	for i, r := range rs {
		site, err := s.FindLatticeSiteByPosition(r)
		if err != nil {
			return nil, err
		}
		out[i] = site
	}

	return out, nil
}

// UniqueSites returns a copy of the unique-site ids.
func (s *Structure) UniqueSites() []int { return slices.Clone(s.uniqueSites) }

// UniqueSite returns the unique-site id of site i.
func (s *Structure) UniqueSite(i int) (int, error) {
	if err := s.checkIndex(i); err != nil {
		return 0, err
	}

	return s.uniqueSites[i], nil
}

// SetUniqueSites sets the unique-site id of every basis site.
func (s *Structure) SetUniqueSites(ids []int) error {
	if len(ids) != len(s.positions) {
		return fmt.Errorf("SetUniqueSites: %d ids for %d sites: %w", len(ids), len(s.positions), ErrSizeMismatch)
	}
	s.uniqueSites = slices.Clone(ids)

	return nil
}

// SetNumberOfAllowedSpecies sets the number of species allowed on every site.
func (s *Structure) SetNumberOfAllowedSpecies(n []int) error {
	if len(n) != len(s.positions) {
		return fmt.Errorf("SetNumberOfAllowedSpecies: %d for %d sites: %w", len(n), len(s.positions), ErrSizeMismatch)
	}
	for i, v := range n {
		if v < 1 {
			return fmt.Errorf("SetNumberOfAllowedSpecies: site %d has %d: %w", i, v, ErrInvalidSpecies)
		}
	}
	s.allowedSpecies = slices.Clone(n)

	return nil
}

// SetAllAllowedSpecies sets the same number of allowed species on every site.
func (s *Structure) SetAllAllowedSpecies(n int) error {
	all := make([]int, len(s.positions))
	for i := range all {
		all[i] = n
	}

	return s.SetNumberOfAllowedSpecies(all)
}

// NumberOfAllowedSpecies returns the number of species allowed on site i.
func (s *Structure) NumberOfAllowedSpecies(i int) (int, error) {
	if err := s.checkIndex(i); err != nil {
		return 0, err
	}

	return s.allowedSpecies[i], nil
}

// NumberOfAllowedSpeciesBySites returns the number of allowed species of every site.
func (s *Structure) NumberOfAllowedSpeciesBySites(sites []lattice.Site) ([]int, error) {
	out := make([]int, len(sites))
	for i, site := range sites {
		n, err := s.NumberOfAllowedSpecies(site.Index)
		if err != nil {
			return nil, fmt.Errorf("NumberOfAllowedSpeciesBySites: %w", err)
		}
		out[i] = n
	}

	return out, nil
}

// GeometricRadius returns the mean distance of the sites to their centroid.
// An empty tuple has radius 0.
func (s *Structure) GeometricRadius(sites []lattice.Site) (float64, error) {
	if len(sites) == 0 {
		return 0, nil
	}
	pos := make([]matrix.Vec3, len(sites))
	var center matrix.Vec3
	for i, site := range sites {
		p, err := s.Position(site)
		if err != nil {
			return 0, fmt.Errorf("GeometricRadius: %w", err)
		}
		pos[i] = p
		center = center.Add(p)
	}
	center = center.Scale(1 / float64(len(sites)))

	var sum float64
	for _, p := range pos {
		sum += p.Sub(center).Norm()
	}

	return sum / float64(len(sites)), nil
}

// Repeat returns the supercell obtained by repeating s n[k] times along axis k.
// Sites are ordered cell by cell (first axis slowest) with the basis order
// kept inside every cell; per-site annotations are repeated alongside.
func (s *Structure) Repeat(n [3]int) (*Structure, error) {
	for k := 0; k < 3; k++ {
		if n[k] < 1 {
			return nil, fmt.Errorf("Repeat(%v): %w", n, ErrInvalidRepeat)
		}
	}
	cells := n[0] * n[1] * n[2]
	size := len(s.positions)
	positions := make([]matrix.Vec3, 0, cells*size)
	numbers := make([]int, 0, cells*size)
	unique := make([]int, 0, cells*size)
	allowed := make([]int, 0, cells*size)
	for a := 0; a < n[0]; a++ {
		for b := 0; b < n[1]; b++ {
			for c := 0; c < n[2]; c++ {
				shift := s.CellOffset([3]int{a, b, c})
				for i, p := range s.positions {
					positions = append(positions, p.Add(shift))
					numbers = append(numbers, s.numbers[i])
					unique = append(unique, s.uniqueSites[i])
					allowed = append(allowed, s.allowedSpecies[i])
				}
			}
		}
	}
	var cell [3]matrix.Vec3
	for k := 0; k < 3; k++ {
		cell[k] = s.cell[k].Scale(float64(n[k]))
	}

	return New(cell, positions, numbers, s.pbc,
		WithTolerance(s.tol), WithUniqueSites(unique), WithAllowedSpecies(allowed))
}
