package ports

import (
	"context"

	"github.com/storefront/dashboard-api/internal/core/domain"
)

// ProfileUpdate carries the editable profile fields. Nil means unchanged.
type ProfileUpdate struct {
	Username *string
	Email    *string
	Bio      *string
	Avatar   *string
}

// UserService covers profile management, the privileged user listing and
// the per-user chart.
type UserService interface {
	Profile(ctx context.Context, id domain.Identity) (*domain.User, error)
	UpdateProfile(ctx context.Context, id domain.Identity, in ProfileUpdate) (*domain.User, error)
	ListUsers(ctx context.Context, id domain.Identity) ([]*domain.User, error)
	Statistics(ctx context.Context, id domain.Identity) ([]int, error)
}
