package match

import "sort"

// Order is a pure ordering over a scored collection.
type Order string

const (
	OrderNone         Order = "none"
	OrderScoreDesc    Order = "score-desc"
	OrderScoreAsc     Order = "score-asc"
	OrderByExperience Order = "experience"
)

// ValidOrder reports whether s names a known sort order.
func ValidOrder(s string) bool {
	switch Order(s) {
	case OrderNone, OrderScoreDesc, OrderScoreAsc, OrderByExperience:
		return true
	}
	return false
}

// Sort returns a sorted copy of items. The input is never mutated and ties
// keep their relative input order. Under both score orders, items without a
// score land after every scored item, including a scored 0: for descending
// order a nil score counts as -1, for ascending as +Inf.
func Sort(items []Item, order Order) []Item {
	sorted := make([]Item, len(items))
	copy(sorted, items)

	switch order {
	case OrderScoreDesc:
		sort.SliceStable(sorted, func(i, j int) bool {
			return scoreOr(sorted[i], -1) > scoreOr(sorted[j], -1)
		})
	case OrderScoreAsc:
		sort.SliceStable(sorted, func(i, j int) bool {
			a, b := sorted[i].Score, sorted[j].Score
			if a == nil {
				return false
			}
			if b == nil {
				return true
			}
			return *a < *b
		})
	case OrderByExperience:
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].Experience > sorted[j].Experience
		})
	}

	return sorted
}

func scoreOr(item Item, fallback float64) float64 {
	if item.Score == nil {
		return fallback
	}
	return *item.Score
}
