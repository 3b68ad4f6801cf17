package ports

import (
	"context"

	"github.com/storefront/dashboard-api/internal/core/domain"
)

// UserRepository is the credential store. Username uniqueness is enforced
// by the store; Create reports a clash as domain.ErrUserExists.
type UserRepository interface {
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
}
