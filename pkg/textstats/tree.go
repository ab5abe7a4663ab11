package textstats

import (
	"github.com/matzehuels/mosaic/pkg/tree"
)

// FrequencyTree ranks the tokens across all documents and builds a
// weighted tree for treemap display: one leaf per top-k token weighted
// by its count, plus an "other" leaf aggregating the remainder. The
// tree's total weight equals the total token count. Returns ErrInvalidK
// when k is negative.
func FrequencyTree(docs [][]string, k int) (*tree.Node, error) {
	if k < 0 {
		return nil, ErrInvalidK
	}

	counts := make(map[string]int)
	var total int
	for _, doc := range docs {
		for _, tok := range doc {
			counts[tok]++
			total++
		}
	}

	pairs := sortedPairs(counts)
	if k > len(pairs) {
		k = len(pairs)
	}

	children := make([]*tree.Node, 0, k+1)
	var counted int
	for _, p := range pairs[:k] {
		leaf, err := tree.Leaf(p.token, float64(p.count))
		if err != nil {
			return nil, err
		}
		children = append(children, leaf)
		counted += p.count
	}
	if rest := total - counted; rest > 0 {
		leaf, err := tree.Leaf("other", float64(rest))
		if err != nil {
			return nil, err
		}
		children = append(children, leaf)
	}
	return tree.Branch("terms", children...)
}
