package auth

import (
	"context"

	"apartmentbooking/internal/domain"
)

// UserRepository is the slice of the user store the auth service needs.
type UserRepository interface {
	Create(ctx context.Context, u *domain.User) error
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByPhone(ctx context.Context, phone string) (*domain.User, error)
	UpdateProfile(ctx context.Context, u *domain.User) error
}

type TokenIssuer interface {
	GenerateToken(userID int64, role string) (string, error)
}

// TokenRevoker records access tokens invalidated by logout.
type TokenRevoker interface {
	Revoke(ctx context.Context, t *domain.RevokedToken) error
}
