package users

import (
	"context"
	"errors"
	"strings"
	"testing"
)

type fixedStats struct {
	count int
	top   string
	err   error
}

func (f fixedStats) StatsForUser(ctx context.Context, userId string) (int, string, error) {
	return f.count, f.top, f.err
}

func TestUpsertFromAuthKeepsMotto(t *testing.T) {
	svc := &Service{Repo: NewMemoryRepo()}
	ctx := context.Background()

	if _, err := svc.UpsertFromAuth(ctx, "user-1", "a@example.com", "Anouk", ""); err != nil {
		t.Fatalf("first upsert: %v", err)
	}
	if _, err := svc.SetMotto(ctx, "user-1", "Cook more, worry less"); err != nil {
		t.Fatalf("SetMotto: %v", err)
	}

	// Second sign-in refreshes identity fields only.
	user, err := svc.UpsertFromAuth(ctx, "user-1", "a@new.example.com", "Anouk B", "https://pic.example.com/a.png")
	if err != nil {
		t.Fatalf("second upsert: %v", err)
	}
	if user.Email != "a@new.example.com" || user.Name != "Anouk B" {
		t.Fatalf("identity not refreshed: %+v", user)
	}
	if user.Motto != "Cook more, worry less" {
		t.Fatalf("motto lost on re-sign-in: %q", user.Motto)
	}
}

func TestUpsertFromAuthRequiresID(t *testing.T) {
	svc := &Service{Repo: NewMemoryRepo()}
	if _, err := svc.UpsertFromAuth(context.Background(), "", "a@example.com", "Anouk", ""); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestProfileIncludesStats(t *testing.T) {
	svc := &Service{Repo: NewMemoryRepo(), Stats: fixedStats{count: 7, top: "Dinner"}}
	ctx := context.Background()

	if _, err := svc.UpsertFromAuth(ctx, "user-1", "a@example.com", "Anouk", ""); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	user, stats, err := svc.Profile(ctx, "user-1")
	if err != nil {
		t.Fatalf("Profile: %v", err)
	}
	if user.ID != "user-1" {
		t.Fatalf("wrong user: %+v", user)
	}
	if stats.RecipeCount != 7 || stats.MostUsedCategory != "Dinner" {
		t.Fatalf("unexpected stats: %+v", stats)
	}
}

func TestProfileSurvivesStatsFailure(t *testing.T) {
	svc := &Service{Repo: NewMemoryRepo(), Stats: fixedStats{err: errors.New("count failed")}}
	ctx := context.Background()

	if _, err := svc.UpsertFromAuth(ctx, "user-1", "a@example.com", "Anouk", ""); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	_, stats, err := svc.Profile(ctx, "user-1")
	if err != nil {
		t.Fatalf("stats failure must not fail the profile: %v", err)
	}
	if stats.RecipeCount != 0 {
		t.Fatalf("stats should default to zero, got %d", stats.RecipeCount)
	}
}

func TestProfileNotFound(t *testing.T) {
	svc := &Service{Repo: NewMemoryRepo()}
	if _, _, err := svc.Profile(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSetMottoValidation(t *testing.T) {
	svc := &Service{Repo: NewMemoryRepo()}
	ctx := context.Background()

	if _, err := svc.UpsertFromAuth(ctx, "user-1", "a@example.com", "Anouk", ""); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	long := strings.Repeat("x", maxMottoLen+1)
	if _, err := svc.SetMotto(ctx, "user-1", long); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("over-long motto: expected ErrInvalidInput, got %v", err)
	}

	user, err := svc.SetMotto(ctx, "user-1", "  trimmed  ")
	if err != nil {
		t.Fatalf("SetMotto: %v", err)
	}
	if user.Motto != "trimmed" {
		t.Fatalf("motto not trimmed: %q", user.Motto)
	}

	user, err = svc.SetMotto(ctx, "user-1", "")
	if err != nil {
		t.Fatalf("clear motto: %v", err)
	}
	if user.Motto != "" {
		t.Fatalf("motto not cleared: %q", user.Motto)
	}
}
