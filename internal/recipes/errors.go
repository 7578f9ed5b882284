package recipes

import "errors"

var (
	// ErrNotFound indicates the recipe does not exist or belongs to another user.
	ErrNotFound = errors.New("recipe not found")
	// ErrInvalidInput indicates a validation failure before any store call.
	ErrInvalidInput = errors.New("invalid input")
	// ErrThumbnailRequired indicates a PDF upload arrived without a thumbnail image.
	ErrThumbnailRequired = errors.New("thumbnail image is required for pdf uploads")
)
