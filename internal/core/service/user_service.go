package service

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"github.com/storefront/dashboard-api/internal/core/domain"
	"github.com/storefront/dashboard-api/internal/core/ports"
)

// UserService handles profile reads and writes, the privileged user listing
// and the chart series.
type UserService struct {
	users ports.UserRepository
	log   zerolog.Logger
	now   func() time.Time
}

var _ ports.UserService = (*UserService)(nil)

func NewUserService(users ports.UserRepository, log zerolog.Logger) *UserService {
	return &UserService{users: users, log: log, now: time.Now}
}

func (s *UserService) Profile(ctx context.Context, id domain.Identity) (*domain.User, error) {
	return s.users.FindByID(ctx, id.UserID)
}

// UpdateProfile applies the non-nil fields of in to the caller's profile.
func (s *UserService) UpdateProfile(ctx context.Context, id domain.Identity, in ports.ProfileUpdate) (*domain.User, error) {
	user, err := s.users.FindByID(ctx, id.UserID)
	if err != nil {
		return nil, err
	}

	fields := map[string]string{}
	if in.Username != nil {
		username := strings.TrimSpace(*in.Username)
		if username == "" {
			fields["username"] = "this field may not be blank"
		}
		user.Username = username
	}
	if in.Email != nil {
		user.Email = strings.TrimSpace(*in.Email)
	}
	if in.Bio != nil {
		if utf8.RuneCountInString(*in.Bio) > domain.MaxBioLength {
			fields["bio"] = "ensure this field has no more than 355 characters"
		}
		user.Bio = *in.Bio
	}
	if in.Avatar != nil {
		user.Avatar = strings.TrimSpace(*in.Avatar)
	}
	if len(fields) > 0 {
		return nil, &domain.ValidationError{Fields: fields}
	}

	user.Touch(s.now().UTC())
	updated, err := s.users.Update(ctx, user)
	if err != nil {
		if errors.Is(err, domain.ErrUserExists) {
			return nil, domain.NewValidationError("username", "a user with that username already exists")
		}
		return nil, err
	}

	s.log.Info().Str("user_id", updated.ID).Msg("profile updated")
	return updated, nil
}

// ListUsers returns every user to a manager.
func (s *UserService) ListUsers(ctx context.Context, id domain.Identity) ([]*domain.User, error) {
	if !id.IsManager() {
		return nil, domain.ErrForbidden
	}
	return s.users.List(ctx)
}

func (s *UserService) Statistics(ctx context.Context, id domain.Identity) ([]int, error) {
	user, err := s.users.FindByID(ctx, id.UserID)
	if err != nil {
		return nil, err
	}
	return user.Statistics, nil
}
