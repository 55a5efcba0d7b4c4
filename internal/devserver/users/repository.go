package users

import (
	"context"
)

type Repository interface {
	Create(ctx context.Context, user *User) (*User, error)
	GetUserByLogin(ctx context.Context, login string) (*User, error)
	GetUserByID(ctx context.Context, id string) (*User, error)
}

type RefreshTokenRepository interface {
	Create(ctx context.Context, token *RefreshToken) error
	// Take removes the session stored under hash and returns it, so a
	// refresh cookie can be redeemed at most once.
	Take(ctx context.Context, hash string) (*RefreshToken, error)
	Delete(ctx context.Context, hash string) error
	Count(ctx context.Context) (int, error)
}
