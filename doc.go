// SPDX-License-Identifier: MIT

// Package clustex enumerates the symmetry-distinct clusters of a crystal
// structure and maps them onto supercells.
//
// 🚀 What is clustex?
//
//	Given a primitive structure and its symmetry operations, clustex:
//		• canonicalizes finite sets of lattice sites (clusters),
//		• groups symmetry-equivalent site tuples into orbits,
//		• tracks how each tuple permutes into its representative's order,
//		• maps the orbits onto any supercell and counts species patterns.
//
// Packages, leaves first:
//
//	matrix/          Vec3, 3×3 dense matrices, LU inverse, rounding
//	lattice/         lattice sites (basis index + cell offset)
//	structure/       cell, basis, periodicity, supercell repetition
//	neighborlist/    periodic neighbor search
//	manybody/        many-body combinations by neighbor-set intersection
//	cluster/         canonical (sites, distances) form of a cluster
//	permmatrix/      symmetry images of positions and lattice sites
//	orbit/           one orbit: representative + equivalent tuples
//	orbitlist/       the orbit-list construction pipeline
//	localorbit/      supercell orbit lists on a worker pool
//	clustercounts/   species-tuple counts per cluster
//	export/          CBOR / YAML snapshots with BLAKE3 fingerprints
//	config/          TOML run configuration
//
// Quick ASCII example (simple cubic, nearest neighbors):
//
//	    o───o
//	    │   │      one pair orbit: the x, y and z bonds of a cell,
//	    o───o      6 bonds per atom, 3 per primitive cell
//
// The clustex command (cmd/clustex) wraps the pipeline behind a TOML
// configuration file.
//
//	go install github.com/katalvlaran/clustex/cmd/clustex@latest
package clustex
