// SPDX-License-Identifier: MIT

// Package cluster implements the canonical (sites, distances) form of a
// finite set of lattice sites.
//
// Representation:
//
//   - sites: the unique-site id of every member, in cluster order,
//   - distances: the k(k-1)/2 pairwise distances stored upper-triangular in
//     pair order d₀₁, d₀₂, …, d₀ₖ, d₁₂, …, rounded to DistanceRounding,
//   - radius: the mean distance of the members to their centroid,
//   - sorted: whether the cluster was canonicalized,
//   - tag: identity of unsorted clusters.
//
// Canonical form:
//
// Sort picks, among all k! orderings of the members, the one whose
// (distances, sites) pair is lexicographically smallest (distances first).
// It does not scan all orderings. The first k-1 distances are the distances
// from the first member to the others, so the first member must have the
// smallest sorted distance list (its local environment) and the other members
// must follow in increasing distance from it. Only orderings that permute
// members at equal distance remain, and Sort enumerates exactly those, for
// every member whose environment ties for the minimum. ValidateSorting runs
// the full k! scan and is used as a cross-check.
//
// Comparison:
//
// Two sorted clusters are ordered by order (number of sites), then distances
// with absolute tolerance EqualityTolerance, then sites. Unsorted clusters
// carry no geometric identity and are ordered by tag; an unsorted cluster
// always sorts before a sorted one. Key returns a digest consistent with
// Equal for distances that round identically.
//
// Complexity: New is O(k²) plus Sort; Sort is O(c·Π g_i!·k²) where c is the
// number of tied environments and g_i the sizes of equal-distance groups,
// bounded by the O(k!·k²) of ValidateSorting.
package cluster
