// SPDX-License-Identifier: MIT

// Package localorbit maps the orbit list of a primitive structure onto a
// supercell.
//
// A Generator finds the primitive cells the supercell is made of (the unique
// offsets) by locating every supercell site in the primitive lattice and
// keeping the offsets of the sites that share the basis index of the site
// closest to the origin. For each offset, a local orbit list holds the
// primitive orbits translated into that cell and re-expressed as supercell
// lattice sites. The full orbit list is the merge of all local lists, built
// by a bounded worker pool and merged in offset order so the result does not
// depend on scheduling.
//
// The primitive→supercell site map is memoized and shared by the workers
// behind a sync.RWMutex. The primitive orbit list must not be edited while a
// Generator uses it.
package localorbit
