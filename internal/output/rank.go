package output

import (
	"sort"

	"github.com/samber/lo"
)

// Ranked is one name/count pair of a top-N listing.
type Ranked struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// TopN orders counts by count descending, then name ascending, and keeps at
// most n. n <= 0 keeps everything.
func TopN(counts map[string]int, n int) []Ranked {
	ranked := lo.Map(lo.Entries(counts), func(e lo.Entry[string, int], _ int) Ranked {
		return Ranked{Name: e.Key, Count: e.Value}
	})
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Count != ranked[j].Count {
			return ranked[i].Count > ranked[j].Count
		}
		return ranked[i].Name < ranked[j].Name
	})
	if n > 0 && len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

// sortedKeys returns the keys of m in ascending order.
func sortedKeys[V any](m map[string]V) []string {
	keys := lo.Keys(m)
	sort.Strings(keys)
	return keys
}
