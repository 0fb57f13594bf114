package ranking

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func insertAll(keys []float64) *Tree[float64] {
	tree := NewTree[float64]()
	for _, k := range keys {
		tree.Insert(k, k)
	}
	return tree
}

func TestTreeDescendingEntriesNonIncreasing(t *testing.T) {
	assertion := assert.New(t)

	cases := map[string][]float64{
		"mixed":      {1.5, -0.3, 2.7, 0.0, 2.7, -4.1, 0.9},
		"increasing": {1, 2, 3, 4, 5},
		"decreasing": {5, 4, 3, 2, 1},
		"duplicates": {2, 2, 2, 2},
		"single":     {0.25},
	}

	for name, keys := range cases {
		tree := insertAll(keys)
		entries := tree.DescendingEntries()
		assertion.Equal(len(keys), len(entries), name)
		assertion.Equal(len(keys), tree.Len(), name)
		for i := 1; i < len(entries); i++ {
			assertion.LessOrEqual(entries[i], entries[i-1], name)
		}
	}
}

func TestTreeCountBelowMatchesTraversal(t *testing.T) {
	assertion := assert.New(t)

	keys := []float64{1.5, -0.3, 2.7, 0.0, 2.7, -4.1, 0.9}
	tree := insertAll(keys)

	thresholds := []float64{-10, -0.3, 0, 0.9, 2.7, 3, 100}
	for _, threshold := range thresholds {
		want := 0
		for _, key := range tree.DescendingEntries() {
			if key < threshold {
				want++
			}
		}
		assertion.Equal(want, tree.CountBelow(threshold), "threshold %v", threshold)
	}
}

func TestTreeMax(t *testing.T) {
	assertion := assert.New(t)

	tree := NewTree[string]()
	_, _, ok := tree.Max()
	assertion.False(ok)

	tree.Insert(0.5, "mid")
	tree.Insert(-1.2, "low")
	tree.Insert(3.4, "high")
	tree.Insert(3.4, "high-dup")

	key, payload, ok := tree.Max()
	assertion.True(ok)
	assertion.Equal(3.4, key)
	assertion.Equal("high", payload)
}

func TestTreeKeepsDuplicateKeys(t *testing.T) {
	assertion := assert.New(t)

	tree := NewTree[int]()
	for i := 0; i < 5; i++ {
		tree.Insert(1.0, i)
	}

	entries := tree.DescendingEntries()
	assertion.Len(entries, 5)
	assertion.ElementsMatch([]int{0, 1, 2, 3, 4}, entries)
}
