package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/storefront/dashboard-api/internal/core/domain"
	"github.com/storefront/dashboard-api/internal/core/ports"
)

const (
	tokenTypeAccess  = "access"
	tokenTypeRefresh = "refresh"

	DefaultAccessTTL  = 15 * time.Minute
	DefaultRefreshTTL = 7 * 24 * time.Hour
)

// TokenConfig holds the signing key and lifetimes of issued tokens.
type TokenConfig struct {
	Secret     string
	Issuer     string
	AccessTTL  time.Duration
	RefreshTTL time.Duration
	// Now overrides the clock; nil means time.Now.
	Now func() time.Time
}

// tokenClaims is the signed payload of both token kinds.
type tokenClaims struct {
	Role      domain.Role `json:"role"`
	TokenType string      `json:"token_type"`
	jwt.RegisteredClaims
}

// TokenIssuer mints HS256 access/refresh pairs. It keeps no state besides
// the key, so validity depends only on signature and expiry.
type TokenIssuer struct {
	secret     []byte
	issuer     string
	accessTTL  time.Duration
	refreshTTL time.Duration
	now        func() time.Time
}

var _ ports.TokenIssuer = (*TokenIssuer)(nil)

func NewTokenIssuer(cfg TokenConfig) (*TokenIssuer, error) {
	if cfg.Secret == "" {
		return nil, errors.New("token issuer: empty signing secret")
	}
	if cfg.AccessTTL <= 0 {
		cfg.AccessTTL = DefaultAccessTTL
	}
	if cfg.RefreshTTL <= 0 {
		cfg.RefreshTTL = DefaultRefreshTTL
	}
	if cfg.AccessTTL >= cfg.RefreshTTL {
		return nil, fmt.Errorf("token issuer: access ttl %s must be shorter than refresh ttl %s", cfg.AccessTTL, cfg.RefreshTTL)
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &TokenIssuer{
		secret:     []byte(cfg.Secret),
		issuer:     cfg.Issuer,
		accessTTL:  cfg.AccessTTL,
		refreshTTL: cfg.RefreshTTL,
		now:        cfg.Now,
	}, nil
}

// Issue mints a fresh access/refresh pair for id.
func (t *TokenIssuer) Issue(id domain.Identity) (*ports.TokenPair, error) {
	now := t.now()
	access, accessExp, err := t.sign(id, tokenTypeAccess, now, t.accessTTL)
	if err != nil {
		return nil, err
	}
	refresh, _, err := t.sign(id, tokenTypeRefresh, now, t.refreshTTL)
	if err != nil {
		return nil, err
	}
	return &ports.TokenPair{
		AccessToken:     access,
		RefreshToken:    refresh,
		AccessExpiresAt: accessExp,
	}, nil
}

// RefreshAccess mints a new access token for the subject of a valid refresh
// token. The refresh token itself stays valid until it expires.
func (t *TokenIssuer) RefreshAccess(refreshToken string) (string, time.Time, error) {
	id, err := t.parse(refreshToken, tokenTypeRefresh)
	if err != nil {
		return "", time.Time{}, err
	}
	return t.sign(id, tokenTypeAccess, t.now(), t.accessTTL)
}

// VerifyAccess resolves an access token to the identity it was issued for.
func (t *TokenIssuer) VerifyAccess(accessToken string) (domain.Identity, error) {
	return t.parse(accessToken, tokenTypeAccess)
}

func (t *TokenIssuer) sign(id domain.Identity, tokenType string, now time.Time, ttl time.Duration) (string, time.Time, error) {
	exp := jwt.NewNumericDate(now.Add(ttl))
	claims := tokenClaims{
		Role:      id.Role,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    t.issuer,
			Subject:   id.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: exp,
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign %s token: %w", tokenType, err)
	}
	return signed, exp.Time, nil
}

func (t *TokenIssuer) parse(raw, wantType string) (domain.Identity, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(t.now),
		jwt.WithExpirationRequired(),
	}
	if t.issuer != "" {
		opts = append(opts, jwt.WithIssuer(t.issuer))
	}

	var claims tokenClaims
	tkn, err := jwt.ParseWithClaims(raw, &claims, func(*jwt.Token) (any, error) {
		return t.secret, nil
	}, opts...)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return domain.Identity{}, domain.ErrTokenExpired
		}
		return domain.Identity{}, domain.ErrInvalidToken
	}
	if !tkn.Valid || claims.TokenType != wantType || claims.Subject == "" {
		return domain.Identity{}, domain.ErrInvalidToken
	}
	return domain.Identity{UserID: claims.Subject, Role: claims.Role}, nil
}
