package user

import (
	"context"
)

type UserRepository interface {
	GetByEmail(ctx context.Context, email string) (User, error)
	GetByID(ctx context.Context, id int64) (User, error)
	// Create inserts a user; used by the first-admin seed at startup.
	Create(ctx context.Context, u User) (User, error)
	Count(ctx context.Context) (int, error)
}
