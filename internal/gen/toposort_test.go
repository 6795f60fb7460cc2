package gen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTopoSortOrder(t *testing.T) {
	// 0 depends on 2, 2 depends on 1.
	deps := map[int][]int{0: {2}, 2: {1}}

	order, cyclic, err := topoSort(4, func(i int) []int { return deps[i] })
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 0, 3}, order)
	assert.Empty(t, cyclic)
}

func TestTopoSortDeclaredOrderTiebreak(t *testing.T) {
	order, _, err := topoSort(3, func(int) []int { return nil })
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2}, order)
}

func TestTopoSortSelfReference(t *testing.T) {
	order, cyclic, err := topoSort(2, func(i int) []int { return []int{i} })
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1}, order)
	assert.Empty(t, cyclic)
}

func TestTopoSortCycle(t *testing.T) {
	// 1 and 2 depend on each other; 0 is free.
	deps := map[int][]int{1: {2}, 2: {1}}

	order, cyclic, err := topoSort(3, func(i int) []int { return deps[i] })
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2}, order)
	assert.Equal(t, []int{1, 2}, cyclic)
}

func TestTopoSortOutOfRange(t *testing.T) {
	_, _, err := topoSort(1, func(int) []int { return []int{3} })
	assert.EqualError(t, err, "dependency index out of range: 0 depends on 3")
}
