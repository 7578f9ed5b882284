package users

import (
	"context"
	"sync"
	"time"
)

// MemoryRepo is an in-memory implementation of UsersRepo.
type MemoryRepo struct {
	mu   sync.RWMutex
	data map[string]User
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		data: make(map[string]User),
	}
}

// Upsert creates the profile on first sign-in and refreshes the identity
// fields afterwards. The motto is user-owned and never overwritten here.
func (r *MemoryRepo) Upsert(ctx context.Context, user User) (User, error) {
	if err := ctx.Err(); err != nil {
		return User{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now().UTC()
	existing, ok := r.data[user.ID]
	if !ok {
		user.CreatedAt = now
		user.UpdatedAt = now
		r.data[user.ID] = user
		return user, nil
	}
	existing.Email = user.Email
	existing.Name = user.Name
	existing.PictureURL = user.PictureURL
	existing.UpdatedAt = now
	r.data[user.ID] = existing
	return existing, nil
}

// GetByID returns a user profile.
func (r *MemoryRepo) GetByID(ctx context.Context, userId string) (User, error) {
	if err := ctx.Err(); err != nil {
		return User{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	user, ok := r.data[userId]
	if !ok {
		return User{}, ErrNotFound
	}
	return user, nil
}

// UpdateMotto sets the profile motto.
func (r *MemoryRepo) UpdateMotto(ctx context.Context, userId, motto string) (User, error) {
	if err := ctx.Err(); err != nil {
		return User{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.data[userId]
	if !ok {
		return User{}, ErrNotFound
	}
	user.Motto = motto
	user.UpdatedAt = time.Now().UTC()
	r.data[userId] = user
	return user, nil
}

var _ UsersRepo = (*MemoryRepo)(nil)
