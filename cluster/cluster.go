// SPDX-License-Identifier: MIT

package cluster

import (
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/katalvlaran/clustex/internal/digest"
	"github.com/katalvlaran/clustex/lattice"
	"github.com/katalvlaran/clustex/matrix"
	"github.com/katalvlaran/clustex/structure"
)

const (
	// DistanceRounding is the grid pairwise distances are rounded onto.
	DistanceRounding = 1e-6

	// EqualityTolerance is the absolute distance tolerance of Equal/Compare.
	EqualityTolerance = 1e-5
)

// Option configures New and FromData.
type Option func(*options)

type options struct {
	sorted bool
	tag    int
}

// WithSorted controls canonicalization at construction (default true).
func WithSorted(sorted bool) Option {
	return func(o *options) { o.sorted = sorted }
}

// WithTag sets the identity tag (default 0).
func WithTag(tag int) Option {
	return func(o *options) { o.tag = tag }
}

func gatherOptions(opts ...Option) options {
	o := options{sorted: true}
	for _, fn := range opts {
		if fn != nil {
			fn(&o)
		}
	}

	return o
}

// Cluster is the canonical representation of a set of lattice sites.
// The zero value is an empty, unsorted cluster with tag 0.
type Cluster struct {
	sites     []int
	distances []float64
	radius    float64
	sorted    bool
	tag       int
}

// New builds the cluster of latticeSites in s: unique-site ids, rounded
// pairwise distances and geometric radius, canonicalized unless
// WithSorted(false) is given.
func New(s *structure.Structure, latticeSites []lattice.Site, opts ...Option) (Cluster, error) {
	if s == nil {
		return Cluster{}, fmt.Errorf("cluster.New: %w", ErrNilStructure)
	}
	if len(latticeSites) == 0 {
		return Cluster{}, fmt.Errorf("cluster.New: %w", ErrEmptyCluster)
	}
	o := gatherOptions(opts...)

	k := len(latticeSites)
	c := Cluster{
		sites:     make([]int, k),
		distances: make([]float64, 0, k*(k-1)/2),
		tag:       o.tag,
	}
	for i, a := range latticeSites {
		id, err := s.UniqueSite(a.Index)
		if err != nil {
			return Cluster{}, fmt.Errorf("cluster.New: %w", err)
		}
		c.sites[i] = id
		for _, b := range latticeSites[i+1:] {
			d, err := s.SiteDistance(a, b)
			if err != nil {
				return Cluster{}, fmt.Errorf("cluster.New: %w", err)
			}
			c.distances = append(c.distances, matrix.Round(d, DistanceRounding))
		}
	}
	r, err := s.GeometricRadius(latticeSites)
	if err != nil {
		return Cluster{}, fmt.Errorf("cluster.New: %w", err)
	}
	c.radius = r
	if o.sorted {
		c.Sort()
	}

	return c, nil
}

// FromData builds a cluster from raw site ids and an upper-triangular
// distance table (pair order d₀₁, d₀₂, …). Distances are rounded.
func FromData(sites []int, distances []float64, radius float64, opts ...Option) (Cluster, error) {
	k := len(sites)
	if k == 0 {
		return Cluster{}, fmt.Errorf("cluster.FromData: %w", ErrEmptyCluster)
	}
	if len(distances) != k*(k-1)/2 {
		return Cluster{}, fmt.Errorf("cluster.FromData: %d distances for %d sites: %w", len(distances), k, ErrSizeMismatch)
	}
	o := gatherOptions(opts...)
	c := Cluster{
		sites:     slices.Clone(sites),
		distances: make([]float64, len(distances)),
		radius:    radius,
		tag:       o.tag,
	}
	for i, d := range distances {
		c.distances[i] = matrix.Round(d, DistanceRounding)
	}
	if o.sorted {
		c.Sort()
	}

	return c, nil
}

// Sites returns a copy of the unique-site ids in cluster order.
func (c Cluster) Sites() []int { return slices.Clone(c.sites) }

// Distances returns a copy of the pairwise distances.
func (c Cluster) Distances() []float64 { return slices.Clone(c.distances) }

// Radius returns the geometric radius.
func (c Cluster) Radius() float64 { return c.radius }

// Order returns the number of sites.
func (c Cluster) Order() int { return len(c.sites) }

// IsSorted reports whether the cluster is canonical.
func (c Cluster) IsSorted() bool { return c.sorted }

// Tag returns the identity tag.
func (c Cluster) Tag() int { return c.tag }

// SetTag replaces the identity tag.
func (c *Cluster) SetTag(tag int) { c.tag = tag }

// Distance returns the stored distance between positions a and b.
func (c Cluster) Distance(a, b int) (float64, error) {
	k := len(c.sites)
	if a < 0 || a >= k || b < 0 || b >= k {
		return 0, fmt.Errorf("Distance(%d,%d): %w", a, b, ErrIndexOutOfRange)
	}
	if a == b {
		return 0, nil
	}

	return c.distances[pairIndex(a, b, k)], nil
}

// pairIndex is the offset of pair (a, b) in the upper-triangular table.
func pairIndex(a, b, k int) int {
	if a > b {
		a, b = b, a
	}

	return a*(2*k-a-1)/2 + (b - a - 1)
}

// reordered returns the (distances, sites) pair seen when position i of the
// result holds the member at position order[i].
func (c Cluster) reordered(order []int) ([]float64, []int) {
	k := len(c.sites)
	sites := make([]int, k)
	pos := make([]int, k)
	for i, o := range order {
		sites[i] = c.sites[o]
		pos[o] = i
	}
	dists := make([]float64, len(c.distances))
	p := 0
	for a := 0; a < k; a++ {
		for b := a + 1; b < k; b++ {
			dists[pairIndex(pos[a], pos[b], k)] = c.distances[p]
			p++
		}
	}

	return dists, sites
}

// Reordered returns a copy of c with its members rearranged so that position
// i holds the member at position order[i]. The sorted flag is kept as is.
func (c Cluster) Reordered(order []int) (Cluster, error) {
	k := len(c.sites)
	if len(order) != k {
		return Cluster{}, fmt.Errorf("Reordered: %d entries for %d sites: %w", len(order), k, ErrSizeMismatch)
	}
	seen := make([]bool, k)
	for _, o := range order {
		if o < 0 || o >= k || seen[o] {
			return Cluster{}, fmt.Errorf("Reordered(%v): %w", order, ErrInvalidOrder)
		}
		seen[o] = true
	}
	out := c
	out.distances, out.sites = c.reordered(order)

	return out, nil
}

// SwapSites exchanges the members at positions i and j and moves their
// distances accordingly, without re-sorting.
func (c *Cluster) SwapSites(i, j int) error {
	k := len(c.sites)
	if i < 0 || i >= k || j < 0 || j >= k {
		return fmt.Errorf("SwapSites(%d,%d): %w", i, j, ErrIndexOutOfRange)
	}
	order := make([]int, k)
	for p := range order {
		order[p] = p
	}
	order[i], order[j] = j, i
	c.distances, c.sites = c.reordered(order)

	return nil
}

// Key returns a digest suitable as a map key: geometric for sorted clusters,
// tag-based for unsorted ones.
func (c Cluster) Key() digest.Hash {
	if !c.sorted {
		return digest.Tag(c.tag)
	}

	return digest.Cluster(c.sites, c.distances)
}

// Compare returns -1, 0 or +1 ordering a and b. See the package documentation.
func Compare(a, b Cluster) int {
	if a.sorted != b.sorted {
		if !a.sorted {
			return -1
		}
		return 1
	}
	if !a.sorted {
		return cmpInt(a.tag, b.tag)
	}
	if c := cmpInt(len(a.sites), len(b.sites)); c != 0 {
		return c
	}
	for i := range a.distances {
		if math.Abs(a.distances[i]-b.distances[i]) > EqualityTolerance {
			if a.distances[i] < b.distances[i] {
				return -1
			}
			return 1
		}
	}

	return slices.Compare(a.sites, b.sites)
}

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}

	return 0
}

// Equal reports whether c and o represent the same cluster.
func (c Cluster) Equal(o Cluster) bool { return Compare(c, o) == 0 }

// Less reports whether c sorts before o.
func (c Cluster) Less(o Cluster) bool { return Compare(c, o) < 0 }

// String renders "d01 d02 ... :: s0 s1 ... (r=radius)".
func (c Cluster) String() string {
	var sb strings.Builder
	for i, d := range c.distances {
		if i > 0 {
			sb.WriteByte(' ')
		}
		fmt.Fprintf(&sb, "%.4f", d)
	}
	sb.WriteString(" ::")
	for _, s := range c.sites {
		fmt.Fprintf(&sb, " %d", s)
	}
	fmt.Fprintf(&sb, " (r=%.4f)", c.radius)

	return sb.String()
}
