package service

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storefront/dashboard-api/internal/core/domain"
)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) Now() time.Time { return c.t }

func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func newClockedIssuer(t *testing.T, secret string, clock *fakeClock) *TokenIssuer {
	t.Helper()
	issuer, err := NewTokenIssuer(TokenConfig{
		Secret:     secret,
		Issuer:     "dashboard-api",
		AccessTTL:  15 * time.Minute,
		RefreshTTL: 24 * time.Hour,
		Now:        clock.Now,
	})
	require.NoError(t, err)
	return issuer
}

var alice = domain.Identity{UserID: "user-1", Role: domain.RoleManager}

func TestNewTokenIssuer_Config(t *testing.T) {
	_, err := NewTokenIssuer(TokenConfig{})
	assert.Error(t, err, "empty secret must be rejected")

	_, err = NewTokenIssuer(TokenConfig{Secret: "s", AccessTTL: time.Hour, RefreshTTL: time.Minute})
	assert.Error(t, err, "access ttl longer than refresh ttl must be rejected")

	issuer, err := NewTokenIssuer(TokenConfig{Secret: "s"})
	require.NoError(t, err)
	assert.Equal(t, DefaultAccessTTL, issuer.accessTTL)
	assert.Equal(t, DefaultRefreshTTL, issuer.refreshTTL)
}

func TestTokenIssuer_IssueAndVerify(t *testing.T) {
	clock := &fakeClock{t: time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)}
	issuer := newClockedIssuer(t, "secret", clock)

	pair, err := issuer.Issue(alice)
	require.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)
	assert.Equal(t, clock.t.Add(15*time.Minute), pair.AccessExpiresAt)

	id, err := issuer.VerifyAccess(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, alice, id)
}

func TestTokenIssuer_PairsAreUnique(t *testing.T) {
	clock := &fakeClock{t: time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)}
	issuer := newClockedIssuer(t, "secret", clock)

	first, err := issuer.Issue(alice)
	require.NoError(t, err)
	second, err := issuer.Issue(alice)
	require.NoError(t, err)
	assert.NotEqual(t, first.AccessToken, second.AccessToken)
	assert.NotEqual(t, first.RefreshToken, second.RefreshToken)
}

func TestTokenIssuer_AccessExpiryBoundary(t *testing.T) {
	start := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)
	clock := &fakeClock{t: start}
	issuer := newClockedIssuer(t, "secret", clock)

	pair, err := issuer.Issue(alice)
	require.NoError(t, err)

	clock.t = pair.AccessExpiresAt.Add(-time.Second)
	_, err = issuer.VerifyAccess(pair.AccessToken)
	assert.NoError(t, err, "token must be valid just before expiry")

	clock.t = pair.AccessExpiresAt
	_, err = issuer.VerifyAccess(pair.AccessToken)
	assert.ErrorIs(t, err, domain.ErrTokenExpired, "token must be rejected at expiry")

	clock.t = pair.AccessExpiresAt.Add(time.Hour)
	_, err = issuer.VerifyAccess(pair.AccessToken)
	assert.ErrorIs(t, err, domain.ErrTokenExpired)
}

func TestTokenIssuer_RefreshAccess(t *testing.T) {
	clock := &fakeClock{t: time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)}
	issuer := newClockedIssuer(t, "secret", clock)

	pair, err := issuer.Issue(alice)
	require.NoError(t, err)

	// The original access token has expired, the refresh token has not.
	clock.Advance(time.Hour)
	_, err = issuer.VerifyAccess(pair.AccessToken)
	require.ErrorIs(t, err, domain.ErrTokenExpired)

	access, exp, err := issuer.RefreshAccess(pair.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, clock.t.Add(15*time.Minute), exp)

	id, err := issuer.VerifyAccess(access)
	require.NoError(t, err)
	assert.Equal(t, alice, id)
}

func TestTokenIssuer_RefreshAccess_Expired(t *testing.T) {
	clock := &fakeClock{t: time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)}
	issuer := newClockedIssuer(t, "secret", clock)

	pair, err := issuer.Issue(alice)
	require.NoError(t, err)

	clock.Advance(25 * time.Hour)
	_, _, err = issuer.RefreshAccess(pair.RefreshToken)
	assert.ErrorIs(t, err, domain.ErrTokenExpired)
}

func TestTokenIssuer_RefreshAccess_ForeignKey(t *testing.T) {
	clock := &fakeClock{t: time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)}
	ours := newClockedIssuer(t, "secret", clock)
	theirs := newClockedIssuer(t, "other-secret", clock)

	pair, err := theirs.Issue(alice)
	require.NoError(t, err)

	_, _, err = ours.RefreshAccess(pair.RefreshToken)
	assert.ErrorIs(t, err, domain.ErrInvalidToken)

	_, err = ours.VerifyAccess(pair.AccessToken)
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}

func TestTokenIssuer_ForeignKeyWinsOverExpiry(t *testing.T) {
	clock := &fakeClock{t: time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)}
	ours := newClockedIssuer(t, "secret", clock)
	theirs := newClockedIssuer(t, "other-secret", clock)

	pair, err := theirs.Issue(alice)
	require.NoError(t, err)

	clock.Advance(48 * time.Hour)
	_, _, err = ours.RefreshAccess(pair.RefreshToken)
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}

func TestTokenIssuer_TokenKindsAreNotInterchangeable(t *testing.T) {
	clock := &fakeClock{t: time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)}
	issuer := newClockedIssuer(t, "secret", clock)

	pair, err := issuer.Issue(alice)
	require.NoError(t, err)

	_, err = issuer.VerifyAccess(pair.RefreshToken)
	assert.ErrorIs(t, err, domain.ErrInvalidToken)

	_, _, err = issuer.RefreshAccess(pair.AccessToken)
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}

func TestTokenIssuer_Malformed(t *testing.T) {
	clock := &fakeClock{t: time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)}
	issuer := newClockedIssuer(t, "secret", clock)

	for _, raw := range []string{"", "not-a-token", "a.b.c"} {
		_, err := issuer.VerifyAccess(raw)
		assert.ErrorIs(t, err, domain.ErrInvalidToken, "token %q", raw)
	}
}

func TestTokenIssuer_RejectsOtherAlgorithms(t *testing.T) {
	clock := &fakeClock{t: time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)}
	issuer := newClockedIssuer(t, "secret", clock)

	claims := tokenClaims{
		Role:      domain.RoleManager,
		TokenType: tokenTypeAccess,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "dashboard-api",
			Subject:   "user-1",
			ExpiresAt: jwt.NewNumericDate(clock.t.Add(time.Minute)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = issuer.VerifyAccess(signed)
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}
