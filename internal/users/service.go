package users

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"recipe-backend/internal/shared/telemetry"
)

const maxMottoLen = 140

// StatsProvider reports per-user recipe stats owned by other features.
type StatsProvider interface {
	StatsForUser(ctx context.Context, userId string) (count int, mostUsedCategory string, err error)
}

// ProfileStats accompanies the profile view.
type ProfileStats struct {
	RecipeCount      int    `json:"recipeCount"`
	MostUsedCategory string `json:"mostUsedCategory,omitempty"`
}

// Service contains business logic for user profiles.
type Service struct {
	Repo  UsersRepo
	Stats StatsProvider
}

// UpsertFromAuth records the identity after a successful sign-in.
func (s *Service) UpsertFromAuth(ctx context.Context, id, email, name, picture string) (User, error) {
	if id == "" {
		return User{}, fmt.Errorf("%w: id is required", ErrInvalidInput)
	}
	user, err := s.Repo.Upsert(ctx, User{
		ID:         id,
		Email:      email,
		Name:       name,
		PictureURL: picture,
	})
	if err != nil {
		return User{}, err
	}
	telemetry.Info("users.upserted", map[string]any{
		"user_id": user.ID,
	})
	return user, nil
}

// Profile returns the stored profile with its stats.
func (s *Service) Profile(ctx context.Context, userId string) (User, ProfileStats, error) {
	if userId == "" {
		return User{}, ProfileStats{}, fmt.Errorf("%w: userId is required", ErrInvalidInput)
	}
	user, err := s.Repo.GetByID(ctx, userId)
	if err != nil {
		return User{}, ProfileStats{}, err
	}

	var stats ProfileStats
	if s.Stats != nil {
		count, topCategory, err := s.Stats.StatsForUser(ctx, userId)
		if err != nil {
			telemetry.Warn("users.stats_failed", map[string]any{
				"user_id": userId,
				"err":     err.Error(),
			})
		} else {
			stats.RecipeCount = count
			stats.MostUsedCategory = topCategory
		}
	}
	return user, stats, nil
}

// SetMotto updates the profile motto. An empty motto clears it.
func (s *Service) SetMotto(ctx context.Context, userId, motto string) (User, error) {
	if userId == "" {
		return User{}, fmt.Errorf("%w: userId is required", ErrInvalidInput)
	}
	motto = strings.TrimSpace(motto)
	if utf8.RuneCountInString(motto) > maxMottoLen {
		return User{}, fmt.Errorf("%w: motto exceeds %d characters", ErrInvalidInput, maxMottoLen)
	}
	return s.Repo.UpdateMotto(ctx, userId, motto)
}
