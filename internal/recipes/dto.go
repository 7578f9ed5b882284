package recipes

import "time"

// RecipeResponse is the outward-facing representation of a recipe.
type RecipeResponse struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Categories []string  `json:"categories"`
	FileType   string    `json:"fileType"`
	FileURL    string    `json:"fileUrl"`
	ThumbURL   string    `json:"thumbUrl,omitempty"`
	Tags       []string  `json:"tags,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

// ListResponse wraps the filtered items with the counts the UI needs to
// pick between "no recipes yet" and "no results".
type ListResponse struct {
	Items    []RecipeResponse `json:"items"`
	Total    int              `json:"total"`
	Filtered int              `json:"filtered"`
}

func toResponse(recipe Recipe) RecipeResponse {
	categories := recipe.Categories
	if categories == nil {
		categories = []string{}
	}
	return RecipeResponse{
		ID:         recipe.ID,
		Name:       recipe.Name,
		Categories: categories,
		FileType:   recipe.FileType,
		FileURL:    recipe.FileURL,
		ThumbURL:   recipe.ThumbURL,
		Tags:       recipe.Tags,
		CreatedAt:  recipe.CreatedAt,
	}
}

func toListResponse(res ListResult) ListResponse {
	items := make([]RecipeResponse, 0, len(res.Items))
	for _, recipe := range res.Items {
		items = append(items, toResponse(recipe))
	}
	return ListResponse{
		Items:    items,
		Total:    res.Total,
		Filtered: res.Filtered,
	}
}
