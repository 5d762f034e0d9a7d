// SPDX-License-Identifier: MIT

// Package combin holds the small combinatorial helpers shared by the cluster
// and orbit packages: lexicographic permutation stepping, permutation
// tables and bounded cartesian products.
package combin

import (
	"cmp"
	"slices"
)

// NextPermutation rearranges p into the lexicographically next permutation
// and reports whether one existed. When p is the last permutation it is
// reset to ascending order and false is returned.
func NextPermutation[T cmp.Ordered](p []T) bool {
	i := len(p) - 2
	for i >= 0 && p[i] >= p[i+1] {
		i--
	}
	if i < 0 {
		reverse(p)
		return false
	}
	j := len(p) - 1
	for p[j] <= p[i] {
		j--
	}
	p[i], p[j] = p[j], p[i]
	reverse(p[i+1:])

	return true
}

// NextPermutationFunc is NextPermutation under an explicit three-way comparison.
func NextPermutationFunc[T any](p []T, compare func(a, b T) int) bool {
	i := len(p) - 2
	for i >= 0 && compare(p[i], p[i+1]) >= 0 {
		i--
	}
	if i < 0 {
		reverse(p)
		return false
	}
	j := len(p) - 1
	for compare(p[j], p[i]) <= 0 {
		j--
	}
	p[i], p[j] = p[j], p[i]
	reverse(p[i+1:])

	return true
}

func reverse[T any](p []T) {
	for i, j := 0, len(p)-1; i < j; i, j = i+1, j-1 {
		p[i], p[j] = p[j], p[i]
	}
}

// Permutations returns all n! orderings of 0..n-1 in lexicographic order;
// the identity comes first.
func Permutations(n int) [][]int {
	p := Identity(n)
	var out [][]int
	for {
		out = append(out, slices.Clone(p))
		if !NextPermutation(p) {
			break
		}
	}

	return out
}

// Identity returns [0, 1, ..., n-1].
func Identity(n int) []int {
	p := make([]int, n)
	for i := range p {
		p[i] = i
	}

	return p
}

// Apply returns v permuted by p: out[i] = v[p[i]].
func Apply[T any](v []T, p []int) []T {
	out := make([]T, len(p))
	for i, k := range p {
		out[i] = v[k]
	}

	return out
}

// Product returns every vector x with 0 <= x[i] < dims[i], in lexicographic
// order. Any non-positive dimension yields no vectors.
func Product(dims []int) [][]int {
	for _, d := range dims {
		if d <= 0 {
			return nil
		}
	}
	cur := make([]int, len(dims))
	var out [][]int
	for {
		out = append(out, slices.Clone(cur))
		k := len(dims) - 1
		for k >= 0 {
			cur[k]++
			if cur[k] < dims[k] {
				break
			}
			cur[k] = 0
			k--
		}
		if k < 0 {
			return out
		}
	}
}
