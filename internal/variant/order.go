package variant

import (
	"sort"
	"strings"

	"lorad/pkg/types"
)

// labelPriority orders variants on a card: High before Low before anything
// else.
func labelPriority(label string) int {
	switch strings.ToLower(label) {
	case "high":
		return 0
	case "low":
		return 1
	default:
		return 2
	}
}

// sortVariants sorts vs by priority, ties broken by case-insensitive label
// text. Fully deterministic for identical input sets regardless of map
// iteration order.
func sortVariants(vs []types.Variant) {
	sort.SliceStable(vs, func(i, j int) bool {
		pi, pj := labelPriority(vs[i].Label), labelPriority(vs[j].Label)
		if pi != pj {
			return pi < pj
		}
		return strings.ToLower(vs[i].Label) < strings.ToLower(vs[j].Label)
	})
}
