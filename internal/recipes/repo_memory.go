package recipes

import (
	"context"
	"sync"
)

// MemoryRepo is an in-memory implementation of RecipesRepo. Records are kept
// in insertion order per user, which is also the order ListByUser returns.
type MemoryRepo struct {
	mu   sync.RWMutex
	data map[string][]Recipe // userId -> recipes
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		data: make(map[string][]Recipe),
	}
}

// Create stores a new recipe for its owner.
func (r *MemoryRepo) Create(ctx context.Context, recipe Recipe) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data[recipe.UserID] = append(r.data[recipe.UserID], cloneRecipe(recipe))
	return nil
}

// GetByID returns a recipe by ID for a user.
func (r *MemoryRepo) GetByID(ctx context.Context, userId, recipeID string) (Recipe, error) {
	if err := ctx.Err(); err != nil {
		return Recipe{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, rec := range r.data[userId] {
		if rec.ID == recipeID {
			return cloneRecipe(rec), nil
		}
	}
	return Recipe{}, ErrNotFound
}

// ListByUser returns all recipes for a user in insertion order.
func (r *MemoryRepo) ListByUser(ctx context.Context, userId string) ([]Recipe, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	stored := r.data[userId]
	out := make([]Recipe, 0, len(stored))
	for _, rec := range stored {
		out = append(out, cloneRecipe(rec))
	}
	return out, nil
}

// Update applies a partial edit and returns the updated record.
func (r *MemoryRepo) Update(ctx context.Context, userId, recipeID string, upd Update) (Recipe, error) {
	if err := ctx.Err(); err != nil {
		return Recipe{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	stored := r.data[userId]
	for i := range stored {
		if stored[i].ID != recipeID {
			continue
		}
		if upd.Name != nil {
			stored[i].Name = *upd.Name
		}
		if upd.Categories != nil {
			stored[i].Categories = append([]string(nil), (*upd.Categories)...)
		}
		if upd.Tags != nil {
			stored[i].Tags = append([]string(nil), (*upd.Tags)...)
		}
		r.data[userId] = stored
		return cloneRecipe(stored[i]), nil
	}
	return Recipe{}, ErrNotFound
}

// Delete removes a recipe by ID for a user.
func (r *MemoryRepo) Delete(ctx context.Context, userId, recipeID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	stored := r.data[userId]
	for i := range stored {
		if stored[i].ID == recipeID {
			r.data[userId] = append(stored[:i:i], stored[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

// CountByUser returns the number of recipes a user owns.
func (r *MemoryRepo) CountByUser(ctx context.Context, userId string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.data[userId]), nil
}

func cloneRecipe(rec Recipe) Recipe {
	out := rec
	if rec.Categories != nil {
		out.Categories = append([]string(nil), rec.Categories...)
	}
	if rec.Tags != nil {
		out.Tags = append([]string(nil), rec.Tags...)
	}
	return out
}

var _ RecipesRepo = (*MemoryRepo)(nil)
