// SPDX-License-Identifier: MIT

// Package clustercounts accumulates, per canonical cluster, how often each
// species tuple occupies the cluster's sites in a structure.
//
// Species are atomic numbers read from the structure at the site indices.
// With orderIntact=false the tuple is sorted before counting, so AB and BA
// are one pattern. Counts only ever grow; Reset starts over.
package clustercounts
