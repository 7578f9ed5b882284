package recipes

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"recipe-backend/internal/shared/server/middleware"
	"recipe-backend/internal/shared/server/respond"
)

const maxUploadSize = 25 << 20 // primary file plus thumbnail

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches recipe routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/recipes", h.create)
	rg.GET("/recipes", h.list)
	rg.GET("/recipes/watch", h.watch)
	rg.GET("/recipes/:id", h.get)
	rg.PATCH("/recipes/:id", h.update)
	rg.DELETE("/recipes/:id", h.remove)
}

func (h *Handler) create(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadSize)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "file is required", nil)
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "unable to read file", nil)
		return
	}
	defer file.Close()

	in := UploadInput{
		Name:        strings.TrimSpace(c.PostForm("name")),
		Categories:  formValues(c, "categories"),
		Tags:        formValues(c, "tags"),
		FileName:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		File:        file,
	}

	var thumbFile multipart.File
	if thumbHeader, err := c.FormFile("thumbnail"); err == nil {
		thumbFile, err = thumbHeader.Open()
		if err != nil {
			respond.Error(c, http.StatusBadRequest, "validation_error", "unable to read thumbnail", nil)
			return
		}
		defer thumbFile.Close()
		in.ThumbName = thumbHeader.Filename
		in.ThumbFile = thumbFile
	}

	recipe, err := h.Svc.Create(c.Request.Context(), userID, in)
	if err != nil {
		switch {
		case errors.Is(err, ErrThumbnailRequired):
			respond.Error(c, http.StatusBadRequest, "validation_error", ErrThumbnailRequired.Error(), nil)
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to upload recipe", nil)
		}
		return
	}

	respond.JSON(c, http.StatusCreated, toResponse(recipe))
}

func (h *Handler) list(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	res, err := h.Svc.List(c.Request.Context(), userID, c.Query("q"), c.QueryArray("category"))
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list recipes", nil)
		return
	}

	respond.JSON(c, http.StatusOK, toListResponse(res))
}

func (h *Handler) get(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	recipe, err := h.Svc.Get(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "recipe not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch recipe", nil)
		}
		return
	}

	respond.JSON(c, http.StatusOK, toResponse(recipe))
}

type updateRequest struct {
	Name       *string   `json:"name"`
	Categories *[]string `json:"categories"`
	Tags       *[]string `json:"tags"`
}

func (h *Handler) update(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	var req updateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	if req.Name == nil && req.Categories == nil && req.Tags == nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "nothing to update", nil)
		return
	}

	recipe, err := h.Svc.Edit(c.Request.Context(), userID, c.Param("id"), Update{
		Name:       req.Name,
		Categories: req.Categories,
		Tags:       req.Tags,
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "recipe not found", nil)
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to update recipe", nil)
		}
		return
	}

	respond.JSON(c, http.StatusOK, toResponse(recipe))
}

func (h *Handler) remove(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	if err := h.Svc.Delete(c.Request.Context(), userID, c.Param("id")); err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "recipe not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to delete recipe", nil)
		}
		return
	}

	respond.JSON(c, http.StatusOK, gin.H{"deleted": true})
}

// watch streams list snapshots over server-sent events until the client
// disconnects. Each event carries the full current list, not a diff.
func (h *Handler) watch(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	ch, cancel, err := h.Svc.Watch(c.Request.Context(), userID)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to open watch stream", nil)
		return
	}
	defer cancel()

	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")

	clientGone := c.Request.Context().Done()
	c.Stream(func(w io.Writer) bool {
		select {
		case <-clientGone:
			return false
		case snapshot, ok := <-ch:
			if !ok {
				return false
			}
			items := make([]RecipeResponse, 0, len(snapshot))
			for _, recipe := range snapshot {
				items = append(items, toResponse(recipe))
			}
			c.SSEvent("snapshot", items)
			return true
		}
	})
}

// formValues reads a repeated form field, also accepting a single
// comma-separated value for clients that cannot repeat fields.
func formValues(c *gin.Context, field string) []string {
	values := c.PostFormArray(field)
	if len(values) == 1 && strings.Contains(values[0], ",") {
		values = strings.Split(values[0], ",")
	}
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}
