// SPDX-License-Identifier: MIT

// Package digest derives fixed-size BLAKE3 keys for variable-length values
// (row tuples, site tuples, canonical clusters, snapshots) so they can be used
// as Go map keys or compared cheaply.
//
// Every domain hashes under its own 32-byte key, so the same bytes hashed in
// two domains never collide.
package digest

import (
	"encoding/binary"
	"encoding/hex"
	"math"

	"github.com/zeebo/blake3"

	"github.com/katalvlaran/clustex/lattice"
)

// Hash is a 32-byte BLAKE3 digest.
type Hash [32]byte

type domainKey [32]byte

// Domain keys: ASCII domain name, zero padded to 32 bytes.
var (
	rowsDomainKey = domainKey{
		'c', 'l', 'u', 's', 't', 'e', 'x', '.', 'r', 'o', 'w', 's',
	}
	sitesDomainKey = domainKey{
		'c', 'l', 'u', 's', 't', 'e', 'x', '.', 's', 'i', 't', 'e', 's',
	}
	clusterDomainKey = domainKey{
		'c', 'l', 'u', 's', 't', 'e', 'x', '.', 'c', 'l', 'u', 's', 't', 'e', 'r',
	}
	tagDomainKey = domainKey{
		'c', 'l', 'u', 's', 't', 'e', 'x', '.', 't', 'a', 'g',
	}
	speciesDomainKey = domainKey{
		'c', 'l', 'u', 's', 't', 'e', 'x', '.', 's', 'p', 'e', 'c', 'i', 'e', 's',
	}
	snapshotDomainKey = domainKey{
		'c', 'l', 'u', 's', 't', 'e', 'x', '.', 's', 'n', 'a', 'p', 's', 'h', 'o', 't',
	}
)

// encoder accumulates fixed-width little-endian words for one hash.
type encoder struct {
	buf []byte
}

func (e *encoder) int(v int) {
	e.buf = binary.LittleEndian.AppendUint64(e.buf, uint64(int64(v)))
}

func (e *encoder) float(v float64) {
	if v == 0 {
		v = 0 // fold -0 into +0
	}
	e.buf = binary.LittleEndian.AppendUint64(e.buf, math.Float64bits(v))
}

func (e *encoder) sum(key domainKey) Hash {
	return keyedHash(key, e.buf)
}

// Rows hashes an ordered tuple of permutation-matrix row indices.
func Rows(rows []int) Hash {
	e := encoder{buf: make([]byte, 0, 8*(len(rows)+1))}
	e.int(len(rows))
	for _, r := range rows {
		e.int(r)
	}

	return e.sum(rowsDomainKey)
}

// Sites hashes an ordered tuple of lattice sites.
func Sites(sites []lattice.Site) Hash {
	e := encoder{buf: make([]byte, 0, 32*len(sites)+8)}
	e.int(len(sites))
	for _, s := range sites {
		e.int(s.Index)
		e.int(s.Offset[0])
		e.int(s.Offset[1])
		e.int(s.Offset[2])
	}

	return e.sum(sitesDomainKey)
}

// Cluster hashes a canonical (sites, distances) pair. Distances must already
// be rounded onto a fixed grid for equal clusters to hash equally.
func Cluster(sites []int, distances []float64) Hash {
	e := encoder{buf: make([]byte, 0, 8*(len(sites)+len(distances)+2))}
	e.int(len(sites))
	for _, s := range sites {
		e.int(s)
	}
	e.int(len(distances))
	for _, d := range distances {
		e.float(d)
	}

	return e.sum(clusterDomainKey)
}

// Tag hashes the identity tag of an unsorted cluster.
func Tag(tag int) Hash {
	e := encoder{}
	e.int(tag)

	return e.sum(tagDomainKey)
}

// Species hashes an ordered tuple of atomic numbers.
func Species(numbers []int) Hash {
	e := encoder{buf: make([]byte, 0, 8*(len(numbers)+1))}
	e.int(len(numbers))
	for _, n := range numbers {
		e.int(n)
	}

	return e.sum(speciesDomainKey)
}

// Snapshot hashes an encoded snapshot document.
func Snapshot(data []byte) Hash {
	return keyedHash(snapshotDomainKey, data)
}

// String returns the hex encoding of h.
func (h Hash) String() string {
	return hex.EncodeToString(h[:])
}

// Short returns the first 12 hex characters of h.
func (h Hash) Short() string {
	return hex.EncodeToString(h[:6])
}

// keyedHash computes the BLAKE3 keyed hash of data under key.
func keyedHash(key domainKey, data []byte) Hash {
	// NewKeyed only fails for a key that is not 32 bytes long.
	hasher, err := blake3.NewKeyed(key[:])
	if err != nil {
		panic("digest: BLAKE3 keyed hash initialization failed: " + err.Error())
	}
	_, _ = hasher.Write(data)
	var h Hash
	copy(h[:], hasher.Sum(nil))

	return h
}
