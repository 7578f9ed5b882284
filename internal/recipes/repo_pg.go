package recipes

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// PGRepo implements RecipesRepo using Postgres. Category and tag sets live
// in jsonb columns; older rows may instead carry a single value in the
// legacy category text column, which scanRecipe folds into the set form.
type PGRepo struct {
	DB *sql.DB
}

const recipeColumns = `id, user_id, name, category, categories, tags, file_type, file_url, thumb_url, storage_key, thumb_storage_key, created_at`

// Create inserts a new recipe.
func (r *PGRepo) Create(ctx context.Context, recipe Recipe) error {
	const query = `
INSERT INTO recipes (
    id,
    user_id,
    name,
    categories,
    tags,
    file_type,
    file_url,
    thumb_url,
    storage_key,
    thumb_storage_key,
    created_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	categoriesJSON, err := marshalStringSet(recipe.Categories)
	if err != nil {
		return fmt.Errorf("marshal categories: %w", err)
	}
	tagsJSON, err := marshalStringSet(recipe.Tags)
	if err != nil {
		return fmt.Errorf("marshal tags: %w", err)
	}

	var thumbURL sql.NullString
	if recipe.ThumbURL != "" {
		thumbURL = sql.NullString{String: recipe.ThumbURL, Valid: true}
	}
	var thumbKey sql.NullString
	if recipe.ThumbStorageKey != "" {
		thumbKey = sql.NullString{String: recipe.ThumbStorageKey, Valid: true}
	}

	_, err = r.DB.ExecContext(
		ctx,
		query,
		recipe.ID,
		recipe.UserID,
		recipe.Name,
		categoriesJSON,
		tagsJSON,
		recipe.FileType,
		recipe.FileURL,
		thumbURL,
		recipe.StorageKey,
		thumbKey,
		recipe.CreatedAt,
	)
	return err
}

// GetByID fetches a recipe by ID for a user.
func (r *PGRepo) GetByID(ctx context.Context, userId, recipeID string) (Recipe, error) {
	query := `
SELECT ` + recipeColumns + `
FROM recipes
WHERE user_id = $1 AND id = $2
LIMIT 1`
	row := r.DB.QueryRowContext(ctx, query, userId, recipeID)
	recipe, err := scanRecipe(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Recipe{}, ErrNotFound
		}
		return Recipe{}, err
	}
	return recipe, nil
}

// ListByUser returns all recipes for a user in creation order.
func (r *PGRepo) ListByUser(ctx context.Context, userId string) ([]Recipe, error) {
	query := `
SELECT ` + recipeColumns + `
FROM recipes
WHERE user_id = $1
ORDER BY created_at ASC, id ASC`

	rows, err := r.DB.QueryContext(ctx, query, userId)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Recipe
	for rows.Next() {
		recipe, err := scanRecipe(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, recipe)
	}
	return out, rows.Err()
}

// Update applies a partial edit and returns the resulting record. Writing
// the categories set clears the legacy category column for that row.
func (r *PGRepo) Update(ctx context.Context, userId, recipeID string, upd Update) (Recipe, error) {
	sets := make([]string, 0, 3)
	args := make([]any, 0, 5)
	idx := 1

	if upd.Name != nil {
		sets = append(sets, fmt.Sprintf("name = $%d", idx))
		args = append(args, *upd.Name)
		idx++
	}
	if upd.Categories != nil {
		categoriesJSON, err := marshalStringSet(*upd.Categories)
		if err != nil {
			return Recipe{}, fmt.Errorf("marshal categories: %w", err)
		}
		sets = append(sets, fmt.Sprintf("categories = $%d", idx), "category = NULL")
		args = append(args, categoriesJSON)
		idx++
	}
	if upd.Tags != nil {
		tagsJSON, err := marshalStringSet(*upd.Tags)
		if err != nil {
			return Recipe{}, fmt.Errorf("marshal tags: %w", err)
		}
		sets = append(sets, fmt.Sprintf("tags = $%d", idx))
		args = append(args, tagsJSON)
		idx++
	}
	if len(sets) == 0 {
		return r.GetByID(ctx, userId, recipeID)
	}

	query := fmt.Sprintf(`
UPDATE recipes
SET %s
WHERE user_id = $%d AND id = $%d
RETURNING %s`, strings.Join(sets, ", "), idx, idx+1, recipeColumns)
	args = append(args, userId, recipeID)

	row := r.DB.QueryRowContext(ctx, query, args...)
	recipe, err := scanRecipe(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Recipe{}, ErrNotFound
		}
		return Recipe{}, err
	}
	return recipe, nil
}

// Delete removes a recipe by ID for a user.
func (r *PGRepo) Delete(ctx context.Context, userId, recipeID string) error {
	const query = `
DELETE FROM recipes
WHERE user_id = $1 AND id = $2`
	res, err := r.DB.ExecContext(ctx, query, userId, recipeID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// CountByUser returns the number of recipes a user owns.
func (r *PGRepo) CountByUser(ctx context.Context, userId string) (int, error) {
	const query = `
SELECT COUNT(*)
FROM recipes
WHERE user_id = $1`
	var count int
	if err := r.DB.QueryRowContext(ctx, query, userId).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecipe(row rowScanner) (Recipe, error) {
	var recipe Recipe
	var legacyCategory sql.NullString
	var categoriesJSON []byte
	var tagsJSON []byte
	var thumbURL sql.NullString
	var storageKey sql.NullString
	var thumbKey sql.NullString

	err := row.Scan(
		&recipe.ID,
		&recipe.UserID,
		&recipe.Name,
		&legacyCategory,
		&categoriesJSON,
		&tagsJSON,
		&recipe.FileType,
		&recipe.FileURL,
		&thumbURL,
		&storageKey,
		&thumbKey,
		&recipe.CreatedAt,
	)
	if err != nil {
		return Recipe{}, err
	}

	if len(categoriesJSON) > 0 {
		if err := json.Unmarshal(categoriesJSON, &recipe.Categories); err != nil {
			return Recipe{}, fmt.Errorf("unmarshal categories id=%s: %w", recipe.ID, err)
		}
	}
	if len(recipe.Categories) == 0 && legacyCategory.Valid && legacyCategory.String != "" {
		recipe.Categories = []string{legacyCategory.String}
	}
	if len(tagsJSON) > 0 {
		if err := json.Unmarshal(tagsJSON, &recipe.Tags); err != nil {
			return Recipe{}, fmt.Errorf("unmarshal tags id=%s: %w", recipe.ID, err)
		}
	}
	if thumbURL.Valid {
		recipe.ThumbURL = thumbURL.String
	}
	if storageKey.Valid {
		recipe.StorageKey = storageKey.String
	}
	if thumbKey.Valid {
		recipe.ThumbStorageKey = thumbKey.String
	}
	return recipe, nil
}

func marshalStringSet(values []string) ([]byte, error) {
	if values == nil {
		values = []string{}
	}
	return json.Marshal(values)
}

var _ RecipesRepo = (*PGRepo)(nil)
