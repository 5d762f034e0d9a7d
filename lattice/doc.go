// SPDX-License-Identifier: MIT

// Package lattice defines Site, the (primitive-site index, unit-cell offset)
// pair that names one periodic image of a basis site.
//
// Site is a plain comparable value: it can be used directly as a map key,
// copied freely and compared with ==. Sites are totally ordered
// lexicographically by Index and then by the three Offset components; every
// package in clustex that sorts or deduplicates sites relies on this order.
//
// Translation is pure integer arithmetic on Offset and never touches Index:
//
//	s := lattice.Site{Index: 1, Offset: [3]int{0, 0, 1}}
//	t := s.Add([3]int{0, 0, -1}) // {1 [0 0 0]}
//
// Complexity: every operation is O(1) per site, slice helpers are linear
// (SortSites is O(n log n)).
package lattice
