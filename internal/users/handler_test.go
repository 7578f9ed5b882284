package users_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"recipe-backend/internal/bootstrap"
	sharedauth "recipe-backend/internal/shared/auth"
	"recipe-backend/internal/shared/config"
)

func buildTestApp(t *testing.T) *bootstrap.App {
	t.Helper()
	gin.SetMode(gin.TestMode)
	t.Setenv("JWT_SECRET", "profile-test-secret")

	cfg := config.Config{
		Port:            "0",
		CORSAllowOrigin: []string{"http://localhost:5173"},
		LocalStoreDir:   t.TempDir(),
		PublicBaseURL:   "http://localhost:8080",
		Env:             "dev",
		ObjectStoreType: "local",
	}

	app, err := bootstrap.Build(cfg)
	if err != nil {
		t.Fatalf("bootstrap build: %v", err)
	}
	return app
}

func bearerFor(t *testing.T, userID string) string {
	t.Helper()
	token, err := sharedauth.SignJWT(userID, userID+"@example.com", "Test User", "")
	if err != nil {
		t.Fatalf("sign jwt: %v", err)
	}
	return "Bearer " + token
}

func TestProfileFlow(t *testing.T) {
	app := buildTestApp(t)
	bearer := bearerFor(t, "user-1")

	// Sign-in records the profile; seed it the way the auth callback does.
	if _, err := app.UsersService.UpsertFromAuth(context.Background(), "user-1", "user-1@example.com", "Anouk", ""); err != nil {
		t.Fatalf("seed profile: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/profile", nil)
	req.Header.Set("Authorization", bearer)
	resp := httptest.NewRecorder()
	app.Router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("profile: expected 200, got %d: %s", resp.Code, resp.Body.String())
	}

	var profile struct {
		User struct {
			ID    string `json:"id"`
			Name  string `json:"name"`
			Motto string `json:"motto"`
		} `json:"user"`
		Stats struct {
			RecipeCount int `json:"recipeCount"`
		} `json:"stats"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		t.Fatalf("decode profile: %v", err)
	}
	if profile.User.ID != "user-1" || profile.User.Name != "Anouk" {
		t.Fatalf("unexpected profile: %+v", profile.User)
	}
	if profile.Stats.RecipeCount != 0 {
		t.Fatalf("fresh profile should report zero recipes, got %d", profile.Stats.RecipeCount)
	}

	// Set a motto and read it back.
	reqMotto := httptest.NewRequest(http.MethodPut, "/api/v1/profile/motto", strings.NewReader(`{"motto":"Cook more, worry less"}`))
	reqMotto.Header.Set("Content-Type", "application/json")
	reqMotto.Header.Set("Authorization", bearer)
	respMotto := httptest.NewRecorder()
	app.Router.ServeHTTP(respMotto, reqMotto)

	if respMotto.Code != http.StatusOK {
		t.Fatalf("set motto: expected 200, got %d: %s", respMotto.Code, respMotto.Body.String())
	}

	reqAgain := httptest.NewRequest(http.MethodGet, "/api/v1/profile", nil)
	reqAgain.Header.Set("Authorization", bearer)
	respAgain := httptest.NewRecorder()
	app.Router.ServeHTTP(respAgain, reqAgain)

	if err := json.NewDecoder(respAgain.Body).Decode(&profile); err != nil {
		t.Fatalf("decode profile: %v", err)
	}
	if profile.User.Motto != "Cook more, worry less" {
		t.Fatalf("motto not persisted: %q", profile.User.Motto)
	}
}

func TestProfileNotFoundBeforeSignIn(t *testing.T) {
	app := buildTestApp(t)
	bearer := bearerFor(t, "user-unknown")

	req := httptest.NewRequest(http.MethodGet, "/api/v1/profile", nil)
	req.Header.Set("Authorization", bearer)
	resp := httptest.NewRecorder()
	app.Router.ServeHTTP(resp, req)

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.Code)
	}
}

func TestProfileRequiresAuth(t *testing.T) {
	app := buildTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/profile", nil)
	resp := httptest.NewRecorder()
	app.Router.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.Code)
	}
}
