package recipes

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"

	"recipe-backend/internal/shared/metrics"
	"recipe-backend/internal/shared/storage/object"
	"recipe-backend/internal/shared/telemetry"
)

// UploadInput carries everything the upload form collects. Thumbnail is
// required when the primary file is a PDF and ignored otherwise; image
// records reuse the primary file as their own preview.
type UploadInput struct {
	Name        string
	Categories  []string
	Tags        []string
	FileName    string
	ContentType string
	File        io.Reader
	ThumbName   string
	ThumbFile   io.Reader
}

// ListResult pairs the filtered view with the counts the UI needs to pick
// the right empty state.
type ListResult struct {
	Items    []Recipe
	Total    int
	Filtered int
}

// Service contains business logic for recipes.
type Service struct {
	Repo    RecipesRepo
	Store   object.ObjectStore
	Hub     *WatchHub
	Metrics *metrics.Metrics
}

// Create validates the upload, stores the blobs sequentially, then writes
// the record. Validation runs before any blob write, so a PDF without a
// thumbnail is rejected without touching storage. A record-create failure
// after the blobs are stored leaves orphaned blobs behind; they are logged,
// not compensated.
func (s *Service) Create(ctx context.Context, userId string, in UploadInput) (Recipe, error) {
	if userId == "" {
		return Recipe{}, fmt.Errorf("%w: userId is required", ErrInvalidInput)
	}
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return Recipe{}, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if in.File == nil || in.FileName == "" {
		return Recipe{}, fmt.Errorf("%w: file is required", ErrInvalidInput)
	}

	categories, invalid := NormalizeCategories(in.Categories)
	if invalid != "" {
		return Recipe{}, fmt.Errorf("%w: unknown category %q", ErrInvalidInput, invalid)
	}
	if len(categories) == 0 {
		return Recipe{}, fmt.Errorf("%w: at least one category is required", ErrInvalidInput)
	}
	tags := NormalizeTags(in.Tags)

	fileType := FileTypeImage
	if isPDF(in.ContentType, in.FileName) {
		fileType = FileTypePDF
		if in.ThumbFile == nil || in.ThumbName == "" {
			return Recipe{}, ErrThumbnailRequired
		}
	}

	startedAt := time.Now()

	storageKey, sizeBytes, mimeType, err := s.Store.Save(ctx, userId, in.FileName, in.File)
	if err != nil {
		return Recipe{}, fmt.Errorf("store file: %w", err)
	}

	recipe := Recipe{
		ID:         uuid.NewString(),
		UserID:     userId,
		Name:       in.Name,
		Categories: categories,
		Tags:       tags,
		FileType:   fileType,
		FileURL:    s.Store.PublicURL(storageKey),
		StorageKey: storageKey,
		CreatedAt:  time.Now().UTC(),
	}

	if fileType == FileTypePDF {
		thumbKey, _, _, err := s.Store.Save(ctx, userId, in.ThumbName, in.ThumbFile)
		if err != nil {
			telemetry.Warn("recipes.upload.orphaned_blob", map[string]any{
				"user_id":     userId,
				"storage_key": storageKey,
				"err":         err.Error(),
			})
			return Recipe{}, fmt.Errorf("store thumbnail: %w", err)
		}
		recipe.ThumbStorageKey = thumbKey
		recipe.ThumbURL = s.Store.PublicURL(thumbKey)
	} else {
		recipe.ThumbURL = recipe.FileURL
	}

	if err := s.Repo.Create(ctx, recipe); err != nil {
		telemetry.Warn("recipes.upload.orphaned_blob", map[string]any{
			"user_id":           userId,
			"storage_key":       recipe.StorageKey,
			"thumb_storage_key": recipe.ThumbStorageKey,
			"err":               err.Error(),
		})
		return Recipe{}, fmt.Errorf("create record: %w", err)
	}

	if s.Metrics != nil {
		s.Metrics.IncUpload()
		s.Metrics.ObserveUploadSeconds(time.Since(startedAt).Seconds())
	}
	telemetry.Info("recipes.created", map[string]any{
		"user_id":    userId,
		"recipe_id":  recipe.ID,
		"file_type":  recipe.FileType,
		"size_bytes": sizeBytes,
		"mime_type":  mimeType,
	})

	s.notifyWatchers(ctx, userId)
	return recipe, nil
}

// List returns the user's recipes narrowed by query and category selection,
// together with the unfiltered total.
func (s *Service) List(ctx context.Context, userId, query string, selected []string) (ListResult, error) {
	if userId == "" {
		return ListResult{}, fmt.Errorf("%w: userId is required", ErrInvalidInput)
	}
	records, err := s.Repo.ListByUser(ctx, userId)
	if err != nil {
		return ListResult{}, err
	}
	items := Filter(records, query, selected)
	return ListResult{
		Items:    items,
		Total:    len(records),
		Filtered: len(items),
	}, nil
}

// Get returns a single recipe owned by the user.
func (s *Service) Get(ctx context.Context, userId, recipeID string) (Recipe, error) {
	if userId == "" || recipeID == "" {
		return Recipe{}, fmt.Errorf("%w: userId and recipeID are required", ErrInvalidInput)
	}
	return s.Repo.GetByID(ctx, userId, recipeID)
}

// Edit applies a partial update to the fields the edit form owns. Concurrent
// edits are not reconciled; the last write wins at the store.
func (s *Service) Edit(ctx context.Context, userId, recipeID string, upd Update) (Recipe, error) {
	if userId == "" || recipeID == "" {
		return Recipe{}, fmt.Errorf("%w: userId and recipeID are required", ErrInvalidInput)
	}
	if upd.Name != nil {
		name := strings.TrimSpace(*upd.Name)
		if name == "" {
			return Recipe{}, fmt.Errorf("%w: name cannot be empty", ErrInvalidInput)
		}
		upd.Name = &name
	}
	if upd.Categories != nil {
		categories, invalid := NormalizeCategories(*upd.Categories)
		if invalid != "" {
			return Recipe{}, fmt.Errorf("%w: unknown category %q", ErrInvalidInput, invalid)
		}
		upd.Categories = &categories
	}
	if upd.Tags != nil {
		tags := NormalizeTags(*upd.Tags)
		upd.Tags = &tags
	}

	recipe, err := s.Repo.Update(ctx, userId, recipeID, upd)
	if err != nil {
		return Recipe{}, err
	}

	telemetry.Info("recipes.updated", map[string]any{
		"user_id":   userId,
		"recipe_id": recipeID,
	})
	s.notifyWatchers(ctx, userId)
	return recipe, nil
}

// Delete removes the record first, then clears the blobs best-effort. A
// blob delete failure is logged and swallowed; the record stays gone and
// the blob can be retried or garbage-collected later.
func (s *Service) Delete(ctx context.Context, userId, recipeID string) error {
	if userId == "" || recipeID == "" {
		return fmt.Errorf("%w: userId and recipeID are required", ErrInvalidInput)
	}

	recipe, err := s.Repo.GetByID(ctx, userId, recipeID)
	if err != nil {
		return err
	}

	if err := s.Repo.Delete(ctx, userId, recipeID); err != nil {
		return err
	}

	for _, key := range s.blobKeys(recipe) {
		if err := s.Store.Delete(ctx, key); err != nil {
			telemetry.Warn("recipes.delete.blob_failed", map[string]any{
				"user_id":     userId,
				"recipe_id":   recipeID,
				"storage_key": key,
				"err":         err.Error(),
			})
		}
	}

	if s.Metrics != nil {
		s.Metrics.IncDelete()
	}
	telemetry.Info("recipes.deleted", map[string]any{
		"user_id":   userId,
		"recipe_id": recipeID,
	})
	s.notifyWatchers(ctx, userId)
	return nil
}

// CountForUser exposes the owned-recipe count for profile stats.
func (s *Service) CountForUser(ctx context.Context, userId string) (int, error) {
	if userId == "" {
		return 0, fmt.Errorf("%w: userId is required", ErrInvalidInput)
	}
	return s.Repo.CountByUser(ctx, userId)
}

// StatsForUser returns the recipe count and the most used category for a
// user. Frequency ties resolve in vocabulary order.
func (s *Service) StatsForUser(ctx context.Context, userId string) (int, string, error) {
	if userId == "" {
		return 0, "", fmt.Errorf("%w: userId is required", ErrInvalidInput)
	}
	records, err := s.Repo.ListByUser(ctx, userId)
	if err != nil {
		return 0, "", err
	}

	counts := make(map[string]int)
	for _, r := range records {
		for _, c := range r.Categories {
			counts[c]++
		}
	}
	var top string
	var topCount int
	for _, c := range CategoryVocabulary {
		if counts[c] > topCount {
			top = c
			topCount = counts[c]
		}
	}
	return len(records), top, nil
}

// Watch subscribes to live list snapshots for a user. The first snapshot is
// the current list; subsequent ones follow each mutation. Callers must
// invoke cancel on teardown.
func (s *Service) Watch(ctx context.Context, userId string) (<-chan []Recipe, func(), error) {
	if userId == "" {
		return nil, nil, fmt.Errorf("%w: userId is required", ErrInvalidInput)
	}
	if s.Hub == nil {
		return nil, nil, errors.New("watch hub not configured")
	}
	ch, cancel := s.Hub.Subscribe(userId)
	snapshot, err := s.Repo.ListByUser(ctx, userId)
	if err != nil {
		cancel()
		return nil, nil, err
	}
	s.Hub.Publish(userId, snapshot)
	return ch, cancel, nil
}

// blobKeys resolves the storage keys to clear for a record, falling back to
// parsing the public URLs when older rows only persisted those.
func (s *Service) blobKeys(recipe Recipe) []string {
	keys := make([]string, 0, 2)

	primary := recipe.StorageKey
	if primary == "" {
		if key, ok := s.Store.KeyFromURL(recipe.FileURL); ok {
			primary = key
		}
	}
	if primary != "" {
		keys = append(keys, primary)
	}

	if recipe.FileType != FileTypePDF {
		return keys
	}
	thumb := recipe.ThumbStorageKey
	if thumb == "" && recipe.ThumbURL != "" {
		if key, ok := s.Store.KeyFromURL(recipe.ThumbURL); ok {
			thumb = key
		}
	}
	if thumb != "" && thumb != primary {
		keys = append(keys, thumb)
	}
	return keys
}

// isPDF derives the file type from the declared media type and the filename
// extension, so the decision is made before any blob write.
func isPDF(contentType, fileName string) bool {
	ct := strings.ToLower(strings.TrimSpace(contentType))
	if ct == "application/pdf" || strings.HasPrefix(ct, "application/pdf;") {
		return true
	}
	return strings.EqualFold(path.Ext(fileName), ".pdf")
}
