package users

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"recipe-backend/internal/shared/server/middleware"
	"recipe-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches profile routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/profile", h.profile)
	rg.PUT("/profile/motto", h.setMotto)
}

type profileResponse struct {
	User  User         `json:"user"`
	Stats ProfileStats `json:"stats"`
}

func (h *Handler) profile(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	user, stats, err := h.Svc.Profile(c.Request.Context(), userID)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "profile not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch profile", nil)
		}
		return
	}

	respond.JSON(c, http.StatusOK, profileResponse{User: user, Stats: stats})
}

type mottoRequest struct {
	Motto string `json:"motto"`
}

func (h *Handler) setMotto(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	var req mottoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	user, err := h.Svc.SetMotto(c.Request.Context(), userID, req.Motto)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "profile not found", nil)
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to update motto", nil)
		}
		return
	}

	respond.JSON(c, http.StatusOK, user)
}
