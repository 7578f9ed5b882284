package recipes

import (
	"reflect"
	"testing"
)

func sampleRecords() []Recipe {
	return []Recipe{
		{ID: "r1", Name: "Pancakes", Categories: []string{"Breakfast"}},
		{ID: "r2", Name: "Chili", Categories: []string{"Dinner"}},
	}
}

func names(rs []Recipe) []string {
	out := make([]string, 0, len(rs))
	for _, r := range rs {
		out = append(out, r.Name)
	}
	return out
}

func TestFilterQuerySubstring(t *testing.T) {
	got := Filter(sampleRecords(), "pan", nil)
	if want := []string{"Pancakes"}; !reflect.DeepEqual(names(got), want) {
		t.Fatalf("query pan: got %v, want %v", names(got), want)
	}
}

func TestFilterQueryCaseInsensitive(t *testing.T) {
	records := []Recipe{
		{ID: "r1", Name: "PANCAKES"},
		{ID: "r2", Name: "chili"},
	}
	got := Filter(records, "PaNcAkEs", nil)
	if len(got) != 1 || got[0].ID != "r1" {
		t.Fatalf("mixed-case query: got %v", names(got))
	}
}

func TestFilterQueryMatchesTags(t *testing.T) {
	records := []Recipe{
		{ID: "r1", Name: "Weeknight stew", Tags: []string{"quick", "Spicy"}},
		{ID: "r2", Name: "Slow roast"},
	}
	got := Filter(records, "spicy", nil)
	if len(got) != 1 || got[0].ID != "r1" {
		t.Fatalf("tag match: got %v", names(got))
	}
}

func TestFilterEmptyQueryMatchesAll(t *testing.T) {
	got := Filter(sampleRecords(), "", nil)
	if len(got) != 2 {
		t.Fatalf("empty query: got %d records, want 2", len(got))
	}
}

func TestFilterSelectedCategoryIntersection(t *testing.T) {
	got := Filter(sampleRecords(), "", []string{"Dinner"})
	if want := []string{"Chili"}; !reflect.DeepEqual(names(got), want) {
		t.Fatalf("category Dinner: got %v, want %v", names(got), want)
	}

	got = Filter(sampleRecords(), "", []string{"Breakfast", "Dinner"})
	if want := []string{"Pancakes", "Chili"}; !reflect.DeepEqual(names(got), want) {
		t.Fatalf("categories Breakfast+Dinner: got %v, want %v", names(got), want)
	}
}

func TestFilterMultiCategoryRecord(t *testing.T) {
	records := []Recipe{
		{ID: "r1", Name: "Frittata", Categories: []string{"Breakfast", "Lunch"}},
		{ID: "r2", Name: "Chili", Categories: []string{"Dinner"}},
	}
	got := Filter(records, "", []string{"Lunch"})
	if len(got) != 1 || got[0].ID != "r1" {
		t.Fatalf("set intersection: got %v", names(got))
	}
}

func TestFilterCombinesQueryAndCategories(t *testing.T) {
	records := []Recipe{
		{ID: "r1", Name: "Pancakes", Categories: []string{"Breakfast"}},
		{ID: "r2", Name: "Pan-seared salmon", Categories: []string{"Dinner"}},
	}
	got := Filter(records, "pan", []string{"Dinner"})
	if len(got) != 1 || got[0].ID != "r2" {
		t.Fatalf("query+category: got %v", names(got))
	}
}

func TestFilterPreservesOrder(t *testing.T) {
	records := []Recipe{
		{ID: "r3", Name: "Apple pie", Categories: []string{"Dessert"}},
		{ID: "r1", Name: "Apple salad", Categories: []string{"Lunch"}},
		{ID: "r2", Name: "Apple crumble", Categories: []string{"Dessert"}},
	}
	got := Filter(records, "apple", nil)
	if want := []string{"Apple pie", "Apple salad", "Apple crumble"}; !reflect.DeepEqual(names(got), want) {
		t.Fatalf("order not preserved: got %v, want %v", names(got), want)
	}
}

func TestFilterIdempotent(t *testing.T) {
	records := sampleRecords()
	first := Filter(records, "chi", []string{"Dinner"})
	second := Filter(records, "chi", []string{"Dinner"})
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("repeated call diverged: %v vs %v", names(first), names(second))
	}
}

func TestFilterNoMatches(t *testing.T) {
	got := Filter(sampleRecords(), "tiramisu", nil)
	if len(got) != 0 {
		t.Fatalf("expected empty result, got %v", names(got))
	}
}

func TestFilterEmptyInput(t *testing.T) {
	got := Filter(nil, "pan", []string{"Breakfast"})
	if len(got) != 0 {
		t.Fatalf("nil input: got %v", names(got))
	}
}
