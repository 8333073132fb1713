package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func score(v float64) *float64 {
	return &v
}

func idsOf(items []Item) []string {
	ids := make([]string, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ID)
	}
	return ids
}

func TestSortScoreDescUnscoredLast(t *testing.T) {
	items := []Item{
		{ID: "a"},
		{ID: "b", Score: score(0)},
		{ID: "c", Score: score(88)},
		{ID: "d"},
	}

	sorted := Sort(items, OrderScoreDesc)

	// A scored 0 still outranks missing scores.
	assert.Equal(t, []string{"c", "b", "a", "d"}, idsOf(sorted))
}

func TestSortScoreAscUnscoredLast(t *testing.T) {
	items := []Item{
		{ID: "a"},
		{ID: "b", Score: score(0)},
		{ID: "c", Score: score(88)},
		{ID: "d"},
	}

	sorted := Sort(items, OrderScoreAsc)

	assert.Equal(t, []string{"b", "c", "a", "d"}, idsOf(sorted))
}

func TestSortIsStableOnTies(t *testing.T) {
	items := []Item{
		{ID: "a", Score: score(50)},
		{ID: "b", Score: score(50)},
		{ID: "c", Score: score(50)},
	}

	sorted := Sort(items, OrderScoreDesc)

	assert.Equal(t, []string{"a", "b", "c"}, idsOf(sorted))
}

func TestSortNoneKeepsBackendOrder(t *testing.T) {
	items := []Item{
		{ID: "a", Score: score(10)},
		{ID: "b", Score: score(90)},
		{ID: "c"},
	}

	sorted := Sort(items, OrderNone)

	assert.Equal(t, []string{"a", "b", "c"}, idsOf(sorted))
}

func TestSortByExperience(t *testing.T) {
	items := []Item{
		{ID: "a", Experience: 2},
		{ID: "b", Experience: 9},
		{ID: "c", Experience: 5},
	}

	sorted := Sort(items, OrderByExperience)

	assert.Equal(t, []string{"b", "c", "a"}, idsOf(sorted))
}

func TestSortDoesNotMutateInput(t *testing.T) {
	items := []Item{
		{ID: "a", Score: score(10)},
		{ID: "b", Score: score(90)},
	}

	_ = Sort(items, OrderScoreDesc)

	require.Equal(t, []string{"a", "b"}, idsOf(items))
}

func TestValidOrder(t *testing.T) {
	for _, order := range []string{"none", "score-desc", "score-asc", "experience"} {
		assert.True(t, ValidOrder(order), order)
	}
	assert.False(t, ValidOrder("salary"))
	assert.False(t, ValidOrder(""))
}
