package recipes

import "context"

// Update carries a partial edit. Nil fields are left untouched; only the
// fields the edit form owns (name, categories, tags) can change.
type Update struct {
	Name       *string
	Categories *[]string
	Tags       *[]string
}

// RecipesRepo defines persistence operations for recipes. Every lookup is
// scoped by user so ownership is enforced at the query, not the handler.
type RecipesRepo interface {
	Create(ctx context.Context, recipe Recipe) error
	GetByID(ctx context.Context, userId, recipeID string) (Recipe, error)
	ListByUser(ctx context.Context, userId string) ([]Recipe, error)
	Update(ctx context.Context, userId, recipeID string, upd Update) (Recipe, error)
	Delete(ctx context.Context, userId, recipeID string) error
	CountByUser(ctx context.Context, userId string) (int, error)
}
