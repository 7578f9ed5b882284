package recipes

import "strings"

// Filter narrows a recipe sequence by a free-text query and a selected
// category set. It is a pure function: identical inputs always yield the
// same output order and membership, and the input order is preserved.
//
// A record matches the text filter when its lowercased name contains the
// lowercased query as a substring, or any of its tags does. An empty query
// matches everything. A record matches the category filter when no category
// is selected, or its category set intersects the selection. The result is
// the intersection of both.
func Filter(records []Recipe, query string, selected []string) []Recipe {
	q := strings.ToLower(strings.TrimSpace(query))

	var selectedSet map[string]struct{}
	if len(selected) > 0 {
		selectedSet = make(map[string]struct{}, len(selected))
		for _, c := range selected {
			selectedSet[c] = struct{}{}
		}
	}

	out := make([]Recipe, 0, len(records))
	for _, r := range records {
		if !matchesQuery(r, q) {
			continue
		}
		if !matchesCategories(r, selectedSet) {
			continue
		}
		out = append(out, r)
	}
	return out
}

func matchesQuery(r Recipe, q string) bool {
	if q == "" {
		return true
	}
	if strings.Contains(strings.ToLower(r.Name), q) {
		return true
	}
	for _, tag := range r.Tags {
		if strings.Contains(strings.ToLower(tag), q) {
			return true
		}
	}
	return false
}

func matchesCategories(r Recipe, selected map[string]struct{}) bool {
	if len(selected) == 0 {
		return true
	}
	for _, c := range r.Categories {
		if _, ok := selected[c]; ok {
			return true
		}
	}
	return false
}
