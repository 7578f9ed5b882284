package users

import "context"

// UsersRepo defines persistence operations for user profiles.
type UsersRepo interface {
	Upsert(ctx context.Context, user User) (User, error)
	GetByID(ctx context.Context, userId string) (User, error)
	UpdateMotto(ctx context.Context, userId, motto string) (User, error)
}
