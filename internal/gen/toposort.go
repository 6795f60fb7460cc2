package gen

import (
	"fmt"
	"slices"
)

// topoSort returns node indices so that every node comes after the nodes it
// depends on.
//
// depsFn(i) yields indices that must be emitted before i. When several nodes
// are ready the smallest index wins, so declared order is the tiebreak.
// Nodes caught in a cycle cannot be ordered; they are appended in index
// order and reported through the second return value.
func topoSort(n int, depsFn func(i int) []int) ([]int, []int, error) {
	if n <= 0 {
		return nil, nil, nil
	}

	indeg := make([]int, n)
	out := make([][]int, n)

	for i := range n {
		for _, d := range depsFn(i) {
			if d < 0 || d >= n {
				return nil, nil, fmt.Errorf("dependency index out of range: %d depends on %d", i, d)
			}

			if d == i {
				continue
			}

			indeg[i]++
			out[d] = append(out[d], i)
		}
	}

	var ready []int

	for i := range n {
		if indeg[i] == 0 {
			ready = append(ready, i)
		}
	}

	order := make([]int, 0, n)
	placed := make([]bool, n)

	for len(ready) > 0 {
		i := ready[0]
		ready = ready[1:]

		order = append(order, i)
		placed[i] = true

		for _, j := range out[i] {
			indeg[j]--
			if indeg[j] == 0 {
				k, _ := slices.BinarySearch(ready, j)
				ready = slices.Insert(ready, k, j)
			}
		}
	}

	var cyclic []int

	for i := range n {
		if !placed[i] {
			cyclic = append(cyclic, i)
		}
	}

	return append(order, cyclic...), cyclic, nil
}
