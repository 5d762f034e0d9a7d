// SPDX-License-Identifier: MIT

// Package orbit groups symmetry-equivalent site tuples under one
// representative cluster.
//
// An Orbit holds:
//
//   - the representative Cluster (canonical geometry of the group),
//   - the equivalent site tuples, the first one being the representative
//     sites,
//   - per tuple, the permutation carrying it into representative order:
//     Apply(EquivalentSites()[i], EquivalentSitesPermutations()[i]) lists the
//     sites in the order of RepresentativeSites(),
//   - the allowed permutations: reorderings of the representative sites that
//     map the orbit onto itself. The identity is always among them once
//     orbit-list construction has run.
//
// Multi-component vectors enumerate the distinct cluster-function index
// tuples of the orbit: every tuple in Π_i [0, M_i-1) counted once up to the
// allowed permutations.
package orbit
