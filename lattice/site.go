// SPDX-License-Identifier: MIT

package lattice

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
)

// Site identifies one periodic image of a basis site.
//
// Index is the position of the site in the primitive basis; Offset is the
// integer unit-cell translation (in units of the cell vectors).
type Site struct {
	Index  int
	Offset [3]int
}

// New returns the site with the given index and offset.
func New(index int, offset [3]int) Site {
	return Site{Index: index, Offset: offset}
}

// Compare returns -1, 0 or +1 ordering a and b by Index, then Offset.
func Compare(a, b Site) int {
	if c := cmp.Compare(a.Index, b.Index); c != 0 {
		return c
	}
	for k := 0; k < 3; k++ {
		if c := cmp.Compare(a.Offset[k], b.Offset[k]); c != 0 {
			return c
		}
	}

	return 0
}

// Less reports whether s sorts before o.
func (s Site) Less(o Site) bool { return Compare(s, o) < 0 }

// Add returns s translated by offset.
func (s Site) Add(offset [3]int) Site {
	s.Offset = [3]int{s.Offset[0] + offset[0], s.Offset[1] + offset[1], s.Offset[2] + offset[2]}

	return s
}

// Translate moves s by offset in place.
func (s *Site) Translate(offset [3]int) {
	s.Offset[0] += offset[0]
	s.Offset[1] += offset[1]
	s.Offset[2] += offset[2]
}

// IsZeroOffset reports whether s lies in the reference cell.
func (s Site) IsZeroOffset() bool {
	return s.Offset == [3]int{}
}

// String renders s as "index:[a b c]".
func (s Site) String() string {
	return fmt.Sprintf("%d:[%d %d %d]", s.Index, s.Offset[0], s.Offset[1], s.Offset[2])
}

// CompareSlices orders two site tuples lexicographically; a shorter prefix sorts first.
func CompareSlices(a, b []Site) int {
	return slices.CompareFunc(a, b, Compare)
}

// SortSites sorts sites in place.
func SortSites(sites []Site) {
	slices.SortFunc(sites, Compare)
}

// Sorted returns a sorted copy of sites.
func Sorted(sites []Site) []Site {
	out := slices.Clone(sites)
	SortSites(out)

	return out
}

// IsSorted reports whether sites is in non-decreasing order.
func IsSorted(sites []Site) bool {
	return slices.IsSortedFunc(sites, Compare)
}

// Negate returns -offset.
func Negate(offset [3]int) [3]int {
	return [3]int{-offset[0], -offset[1], -offset[2]}
}

// TranslateAll returns a copy of sites with every offset moved by offset.
func TranslateAll(sites []Site, offset [3]int) []Site {
	out := make([]Site, len(sites))
	for i, s := range sites {
		out[i] = s.Add(offset)
	}

	return out
}

// Indices returns the Index of every site.
func Indices(sites []Site) []int {
	out := make([]int, len(sites))
	for i, s := range sites {
		out[i] = s.Index
	}

	return out
}

// FormatSites renders a tuple as "(a) . (b) . ...".
func FormatSites(sites []Site) string {
	parts := make([]string, len(sites))
	for i, s := range sites {
		parts[i] = s.String()
	}

	return strings.Join(parts, " . ")
}
