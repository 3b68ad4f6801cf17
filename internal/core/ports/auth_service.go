package ports

import (
	"context"
	"time"

	"github.com/storefront/dashboard-api/internal/core/domain"
)

// TokenPair is the credential set handed out on register and login.
type TokenPair struct {
	AccessToken     string
	RefreshToken    string
	AccessExpiresAt time.Time
}

// RegisterInput carries the fields accepted at registration.
type RegisterInput struct {
	Username string
	Email    string
	Password string
}

type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*domain.User, *TokenPair, error)
	Login(ctx context.Context, username, password string) (*TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (string, time.Time, error)
	ChangePassword(ctx context.Context, id domain.Identity, currentPassword, newPassword string) error
}
