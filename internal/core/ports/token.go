package ports

import (
	"time"

	"github.com/storefront/dashboard-api/internal/core/domain"
)

// TokenVerifier resolves an access token to the caller's identity.
type TokenVerifier interface {
	VerifyAccess(token string) (domain.Identity, error)
}

// TokenIssuer mints and validates access/refresh token pairs.
type TokenIssuer interface {
	TokenVerifier
	Issue(id domain.Identity) (*TokenPair, error)
	RefreshAccess(refreshToken string) (string, time.Time, error)
}

// PasswordHasher is a one-way hash with verification.
type PasswordHasher interface {
	Hash(plain string) (string, error)
	Verify(plain, hash string) bool
}
