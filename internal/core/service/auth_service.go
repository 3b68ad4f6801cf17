package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/storefront/dashboard-api/internal/core/domain"
	"github.com/storefront/dashboard-api/internal/core/ports"
)

// dummyHash is verified against when the username is unknown.
const dummyHash = "$2a$10$7EqJtq98hPqEX7fNZaFWoOhi5BWX4Z3PAAhXKyOPzAwt6sC3hLL0e"

// AuthService implements registration, login, token refresh and password
// changes.
type AuthService struct {
	users  ports.UserRepository
	hasher ports.PasswordHasher
	tokens ports.TokenIssuer
	log    zerolog.Logger
	now    func() time.Time
}

var _ ports.AuthService = (*AuthService)(nil)

func NewAuthService(users ports.UserRepository, hasher ports.PasswordHasher, tokens ports.TokenIssuer, log zerolog.Logger) *AuthService {
	return &AuthService{users: users, hasher: hasher, tokens: tokens, log: log, now: time.Now}
}

func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, *ports.TokenPair, error) {
	username := strings.TrimSpace(in.Username)
	fields := map[string]string{}
	if username == "" {
		fields["username"] = "this field may not be blank"
	}
	if in.Password == "" {
		fields["password"] = "this field may not be blank"
	}
	if len(fields) > 0 {
		return nil, nil, &domain.ValidationError{Fields: fields}
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, nil, err
	}

	user := &domain.User{
		Username:     username,
		Email:        strings.TrimSpace(in.Email),
		PasswordHash: hash,
		Role:         domain.RoleUser,
		IsActive:     true,
	}
	user.Touch(s.now().UTC())

	created, err := s.users.Create(ctx, user)
	if err != nil {
		if errors.Is(err, domain.ErrUserExists) {
			return nil, nil, domain.NewValidationError("username", "a user with that username already exists")
		}
		return nil, nil, err
	}

	pair, err := s.tokens.Issue(identityOf(created))
	if err != nil {
		return nil, nil, err
	}

	s.log.Info().Str("user_id", created.ID).Str("username", created.Username).Msg("user registered")
	return created, pair, nil
}

// Login verifies credentials and issues a fresh token pair. Unknown users
// and wrong passwords yield the same error.
func (s *AuthService) Login(ctx context.Context, username, password string) (*ports.TokenPair, error) {
	if username == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.hasher.Verify(password, dummyHash)
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return nil, domain.ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, domain.ErrAccountInactive
	}

	pair, err := s.tokens.Issue(identityOf(user))
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("user_id", user.ID).Msg("user logged in")
	return pair, nil
}

func (s *AuthService) Refresh(_ context.Context, refreshToken string) (string, time.Time, error) {
	return s.tokens.RefreshAccess(refreshToken)
}

// ChangePassword rehashes the caller's password. Tokens issued before the
// change remain valid until they expire.
func (s *AuthService) ChangePassword(ctx context.Context, id domain.Identity, currentPassword, newPassword string) error {
	if newPassword == "" {
		return domain.NewValidationError("new_password", "this field may not be blank")
	}

	user, err := s.users.FindByID(ctx, id.UserID)
	if err != nil {
		return err
	}

	if !s.hasher.Verify(currentPassword, user.PasswordHash) {
		return domain.NewValidationError("current_password", "current password is incorrect")
	}
	if currentPassword == newPassword {
		return domain.NewValidationError("new_password", "new password cannot be the same as the current password")
	}

	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return err
	}
	user.PasswordHash = hash
	user.Touch(s.now().UTC())

	if _, err := s.users.Update(ctx, user); err != nil {
		return err
	}

	s.log.Info().Str("user_id", user.ID).Msg("password changed")
	return nil
}

func identityOf(u *domain.User) domain.Identity {
	return domain.Identity{UserID: u.ID, Role: u.Role}
}
