package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	googleauth "recipe-backend/internal/auth"
	"recipe-backend/internal/recipes"
	"recipe-backend/internal/shared/config"
	"recipe-backend/internal/shared/metrics"
	"recipe-backend/internal/shared/server/middleware"
	"recipe-backend/internal/shared/server/respond"
	"recipe-backend/internal/shared/storage/object"
	"recipe-backend/internal/users"
)

// RouterDeps carries the handlers and middleware dependencies for the HTTP surface.
type RouterDeps struct {
	Config        config.Config
	RecipeHandler *recipes.Handler
	UserHandler   *users.Handler
	GoogleAuth    *googleauth.GoogleService
	Metrics       *metrics.Metrics
	// FileStore is set when objects are served from this process (local store).
	FileStore object.ObjectStore
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
	)
	if deps.Metrics != nil {
		r.Use(deps.Metrics.RequestCounter())
	}
	r.Use(
		middleware.Auth(),
		middleware.RateLimit(middleware.RateLimitConfig{
			Rules: map[string]middleware.RateLimitRule{
				"UPLOAD": {Rate: 1, Burst: 5},
			},
			GroupFor: func(c *gin.Context) string {
				if c.Request.Method == http.MethodPost && strings.HasPrefix(c.Request.URL.Path, "/api/v1/recipes") {
					return "UPLOAD"
				}
				return ""
			},
		}),
	)

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"ok": true})
	})
	if deps.GoogleAuth != nil {
		deps.GoogleAuth.RegisterRoutes(api)
	}
	registerMeRoutes(api)
	if deps.RecipeHandler != nil {
		deps.RecipeHandler.RegisterRoutes(api)
	}
	if deps.UserHandler != nil {
		deps.UserHandler.RegisterRoutes(api)
	}

	if deps.FileStore != nil {
		r.GET("/files/*key", fileHandler(deps.FileStore))
	}

	if deps.Metrics != nil {
		r.GET("/metrics", deps.Metrics.Handler())
	}

	return r
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
