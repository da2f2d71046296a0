package catalog

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func ids(items []Item) []int {
	out := make([]int, 0, len(items))
	for _, it := range items {
		out = append(out, it.ID)
	}
	return out
}

func sampleItems() []Item {
	return []Item{
		{ID: 1, Title: "Menu Mod", Categories: []string{"pc"}},
		{ID: 2, Title: "Car Spawner", Categories: []string{"android"}},
	}
}

func TestFilterExampleCollection(t *testing.T) {
	t.Parallel()

	items := sampleItems()
	require.Empty(t, Filter(items, "pc", "car"))
	require.Equal(t, []int{2}, ids(Filter(items, AllCategories, "car")))
	require.Equal(t, []int{1, 2}, ids(Filter(items, AllCategories, "")))
}

func TestFilterEmptyInput(t *testing.T) {
	t.Parallel()

	require.Empty(t, Filter(nil, "pc", "x"))
	require.Empty(t, Filter([]Item{}, AllCategories, ""))
}

func TestFilterAllWithEmptyTermKeepsOrder(t *testing.T) {
	t.Parallel()

	items := []Item{{ID: 5}, {ID: 3}, {ID: 9}, {ID: 1}}
	got := Filter(items, AllCategories, "   ")
	if diff := cmp.Diff(items, got); diff != "" {
		t.Fatalf("unexpected result (-want +got):\n%s", diff)
	}
}

func TestFilterCategoryOnly(t *testing.T) {
	t.Parallel()

	items := []Item{
		{ID: 1, Categories: []string{"pc", "cleo"}},
		{ID: 2, Categories: []string{"android"}},
		{ID: 3},
		{ID: 4, Categories: []string{"cleo"}},
	}
	got := Filter(items, "cleo", "")
	require.Equal(t, []int{1, 4}, ids(got))
	for _, it := range got {
		require.True(t, it.HasCategory("cleo"))
	}

	// tags are matched exactly
	require.Empty(t, Filter(items, "cle", ""))
	require.Empty(t, Filter(items, "PC", ""))
}

func TestFilterTermFields(t *testing.T) {
	t.Parallel()

	items := []Item{
		{ID: 1, Title: "Speedometer HUD"},
		{ID: 2, Description: "Shows the current SPEED"},
		{ID: 3, Tags: []string{"misc", "SpeedHack"}},
		{ID: 4, Author: "speedy"},
		{ID: 5, Title: "Other", Content: "speed in content only"},
	}

	require.Equal(t, []int{1, 2, 3, 4}, ids(Filter(items, AllCategories, "SPEED")))

	detail := Query{Category: AllCategories, Term: "speed"}.Apply(items)
	require.Equal(t, []int{1, 2, 3}, ids(detail), "author only matches on the list page")
}

func TestFilterIsIntersectionOfPredicates(t *testing.T) {
	t.Parallel()

	items := []Item{
		{ID: 1, Title: "Aim assist", Categories: []string{"pc"}},
		{ID: 2, Title: "Aim trainer", Categories: []string{"android"}},
		{ID: 3, Title: "Radar", Categories: []string{"pc"}},
		{ID: 4, Title: "aim overlay", Categories: []string{"pc", "android"}},
	}

	byCategory := Filter(items, "pc", "")
	byTerm := Filter(items, AllCategories, "aim")
	inTerm := map[int]bool{}
	for _, it := range byTerm {
		inTerm[it.ID] = true
	}
	var want []int
	for _, it := range byCategory {
		if inTerm[it.ID] {
			want = append(want, it.ID)
		}
	}

	require.Equal(t, want, ids(Filter(items, "pc", "aim")))
	require.Equal(t, []int{1, 4}, want)
}

func TestFilterDoesNotMutateInput(t *testing.T) {
	t.Parallel()

	items := sampleItems()
	before := append([]Item(nil), items...)
	_ = Filter(items, "android", "car")
	if diff := cmp.Diff(before, items); diff != "" {
		t.Fatalf("input mutated (-before +after):\n%s", diff)
	}
}

func TestQueryIsZero(t *testing.T) {
	t.Parallel()

	require.True(t, Query{}.IsZero())
	require.True(t, Query{Category: "all", Term: "  "}.IsZero())
	require.False(t, Query{Category: "pc"}.IsZero())
	require.False(t, Query{Term: "x"}.IsZero())
}
