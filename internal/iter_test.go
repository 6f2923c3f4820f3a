package internal

import (
	"maps"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIterSeqConcat(t *testing.T) {
	assert := assert.New(t)

	seq := IterSeqConcat(slices.Values([]int{1, 2}), slices.Values([]int{}), slices.Values([]int{3}))
	assert.Equal([]int{1, 2, 3}, slices.Collect(seq))

	var first []int
	for val := range seq {
		first = append(first, val)
		break
	}
	assert.Equal([]int{1}, first)
}

func TestIterSeq2Concat(t *testing.T) {
	assert := assert.New(t)

	a := map[string]int{"A": 1}
	b := map[string]int{"B": 2, "C": 3}

	got := maps.Collect(IterSeq2Concat(maps.All(a), maps.All(b)))
	assert.Equal(map[string]int{"A": 1, "B": 2, "C": 3}, got)
}

func TestSortedUnique(t *testing.T) {
	assert := assert.New(t)

	assert.Equal([]int{1, 2, 5, 9}, SortedUnique(slices.Values([]int{9, 2, 5, 1, 2, 9})))
	assert.Empty(SortedUnique(slices.Values([]int{})))
}
