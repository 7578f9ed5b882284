package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"

	"github.com/gin-gonic/gin"

	googleauth "recipe-backend/internal/auth"
	"recipe-backend/internal/recipes"
	"recipe-backend/internal/shared/config"
	"recipe-backend/internal/shared/metrics"
	"recipe-backend/internal/shared/server"
	"recipe-backend/internal/shared/storage/db"
	"recipe-backend/internal/shared/storage/object"
	localstore "recipe-backend/internal/shared/storage/object/local"
	"recipe-backend/internal/shared/storage/object/miniostore"
	s3store "recipe-backend/internal/shared/storage/object/s3"
	"recipe-backend/internal/users"
)

// App holds shared dependencies wired from configuration.
type App struct {
	Config         config.Config
	Router         *gin.Engine
	DB             *sql.DB
	Store          object.ObjectStore
	Metrics        *metrics.Metrics
	RecipesRepo    recipes.RecipesRepo
	UsersRepo      users.UsersRepo
	RecipesService *recipes.Service
	UsersService   *users.Service
	RecipeHandler  *recipes.Handler
	UserHandler    *users.Handler
	GoogleAuth     *googleauth.GoogleService
}

// Build prepares the dependency graph and the router.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	if strings.TrimSpace(cfg.ObjectStoreType) == "" {
		cfg.ObjectStoreType = "local"
	}
	ctx := context.Background()

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	store, err := buildStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	app := &App{
		Config:  cfg,
		DB:      sqlDB,
		Store:   store,
		Metrics: metrics.New(),
	}
	buildServices(app)

	var fileStore object.ObjectStore
	if cfg.ObjectStoreType == "local" {
		fileStore = store
	}
	app.Router = server.NewRouter(server.RouterDeps{
		Config:        app.Config,
		RecipeHandler: app.RecipeHandler,
		UserHandler:   app.UserHandler,
		GoogleAuth:    app.GoogleAuth,
		Metrics:       app.Metrics,
		FileStore:     fileStore,
	})

	return app, nil
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: DATABASE_URL empty; using in-memory repositories")
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	opts := db.OptionsFromEnv(db.DefaultServerOptions())
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: database connect failed; using in-memory repositories: %v", err)
			return nil, nil
		}
		return nil, err
	}

	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		sqlDB.Close()
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: migrations failed; using in-memory repositories: %v", err)
			return nil, nil
		}
		return nil, err
	}

	return sqlDB, nil
}

func buildStore(ctx context.Context, cfg config.Config) (object.ObjectStore, error) {
	switch cfg.ObjectStoreType {
	case "s3":
		return s3store.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix)
	case "minio":
		return miniostore.New(ctx, miniostore.Config{
			Endpoint:  cfg.MinioEndpoint,
			AccessKey: cfg.MinioAccessKey,
			SecretKey: cfg.MinioSecretKey,
			Bucket:    cfg.MinioBucket,
			UseSSL:    cfg.MinioUseSSL,
		})
	default:
		return localstore.New(cfg.LocalStoreDir, cfg.PublicBaseURL), nil
	}
}

func buildServices(app *App) {
	if app.DB != nil {
		app.RecipesRepo = &recipes.PGRepo{DB: app.DB}
		app.UsersRepo = &users.PGRepo{DB: app.DB}
	} else {
		app.RecipesRepo = recipes.NewMemoryRepo()
		app.UsersRepo = users.NewMemoryRepo()
	}

	app.RecipesService = &recipes.Service{
		Repo:    app.RecipesRepo,
		Store:   app.Store,
		Hub:     recipes.NewWatchHub(),
		Metrics: app.Metrics,
	}
	app.UsersService = &users.Service{
		Repo:  app.UsersRepo,
		Stats: app.RecipesService,
	}

	app.RecipeHandler = recipes.NewHandler(app.RecipesService)
	app.UserHandler = users.NewHandler(app.UsersService)
	app.GoogleAuth = googleauth.NewGoogleService(
		app.Config.GoogleClientID,
		app.Config.GoogleClientSecret,
		app.Config.GoogleRedirectURL,
		app.Config.UIRedirectURL,
		app.UsersService,
	)
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}
