// SPDX-License-Identifier: MIT
package combin_test

import (
	"testing"

	"github.com/katalvlaran/clustex/internal/combin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPermutations(t *testing.T) {
	got := combin.Permutations(3)
	require.Len(t, got, 6)
	assert.Equal(t, []int{0, 1, 2}, got[0])
	assert.Equal(t, []int{0, 2, 1}, got[1])
	assert.Equal(t, []int{2, 1, 0}, got[5])

	assert.Len(t, combin.Permutations(4), 24)
	assert.Equal(t, [][]int{{}}, combin.Permutations(0))
}

func TestNextPermutationWithDuplicates(t *testing.T) {
	p := []int{1, 1, 2}
	n := 1
	for combin.NextPermutation(p) {
		n++
	}
	assert.Equal(t, 3, n)
	assert.Equal(t, []int{1, 1, 2}, p, "wraps back to ascending order")
}

func TestNextPermutationFunc(t *testing.T) {
	p := []string{"b", "a"}
	cmp := func(a, b string) int {
		switch {
		case a < b:
			return -1
		case a > b:
			return 1
		}
		return 0
	}
	assert.False(t, combin.NextPermutationFunc(p, cmp))
	assert.Equal(t, []string{"a", "b"}, p)
	assert.True(t, combin.NextPermutationFunc(p, cmp))
	assert.Equal(t, []string{"b", "a"}, p)
}

func TestApplyAndProduct(t *testing.T) {
	assert.Equal(t, []string{"c", "a", "b"}, combin.Apply([]string{"a", "b", "c"}, []int{2, 0, 1}))

	assert.Equal(t, [][]int{{0, 0}, {0, 1}, {0, 2}, {1, 0}, {1, 1}, {1, 2}}, combin.Product([]int{2, 3}))
	assert.Nil(t, combin.Product([]int{2, 0}))
	assert.Equal(t, [][]int{{}}, combin.Product(nil))
}
