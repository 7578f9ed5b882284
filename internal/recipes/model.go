package recipes

import (
	"strings"
	"time"
)

const (
	FileTypePDF   = "pdf"
	FileTypeImage = "image"
)

// CategoryVocabulary is the fixed, ordered list of allowed category labels.
// The order matters for rendering; membership checks go through ValidCategory.
var CategoryVocabulary = []string{
	"Breakfast",
	"Lunch",
	"Dinner",
	"Snack",
	"Dessert",
	"Extra",
}

// Recipe is the stored metadata unit representing one uploaded recipe file.
type Recipe struct {
	ID              string    `json:"id"`
	UserID          string    `json:"userId"`
	Name            string    `json:"name"`
	Categories      []string  `json:"categories"`
	FileType        string    `json:"fileType"`
	FileURL         string    `json:"fileUrl"`
	ThumbURL        string    `json:"thumbUrl,omitempty"`
	Tags            []string  `json:"tags,omitempty"`
	StorageKey      string    `json:"-"`
	ThumbStorageKey string    `json:"-"`
	CreatedAt       time.Time `json:"createdAt"`
}

// ValidCategory reports whether the label is part of the fixed vocabulary.
// Comparison is case-sensitive; the vocabulary is the source of truth for
// spelling and casing.
func ValidCategory(label string) bool {
	for _, c := range CategoryVocabulary {
		if c == label {
			return true
		}
	}
	return false
}

// NormalizeCategories trims, de-duplicates, and validates a category
// selection. Returns the cleaned set and the first invalid label, if any.
func NormalizeCategories(in []string) ([]string, string) {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, raw := range in {
		label := strings.TrimSpace(raw)
		if label == "" {
			continue
		}
		if !ValidCategory(label) {
			return nil, label
		}
		if _, dup := seen[label]; dup {
			continue
		}
		seen[label] = struct{}{}
		out = append(out, label)
	}
	return out, ""
}

// NormalizeTags trims and de-duplicates free-form search keywords. Unlike
// categories, tags are unrestricted.
func NormalizeTags(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, raw := range in {
		tag := strings.TrimSpace(raw)
		if tag == "" {
			continue
		}
		if _, dup := seen[tag]; dup {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}
	return out
}
