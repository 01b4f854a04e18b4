package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("s3cret!", bcrypt.MinCost)
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret!", hash)

	assert.True(t, VerifyPassword(hash, "s3cret!"))
	assert.False(t, VerifyPassword(hash, "wrong"))
	assert.False(t, VerifyPassword("", "s3cret!"))
	assert.False(t, VerifyPassword("not-a-hash", "s3cret!"))
}

func TestAccessTokenRoundTrip(t *testing.T) {
	tok, err := NewAccessToken("secret", 42, "ana@example.com", KindUser, 24*time.Hour)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(24*time.Hour), tok.Exp, time.Minute)

	id, ok := ParseAccessToken("secret", tok.Token)
	require.True(t, ok)
	assert.Equal(t, Identity{ID: 42, Email: "ana@example.com", Kind: KindUser}, id)
}

func TestParseAccessTokenRejects(t *testing.T) {
	good, err := NewAccessToken("secret", 7, "org@example.com", KindOrganization, time.Hour)
	require.NoError(t, err)

	expired, err := NewAccessToken("secret", 7, "org@example.com", KindOrganization, -time.Minute)
	require.NoError(t, err)

	badKind, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "7", "kind": "admin", "exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte("secret"))
	require.NoError(t, err)

	noExp, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "7", "kind": KindUser,
	}).SignedString([]byte("secret"))
	require.NoError(t, err)

	cases := map[string]struct{ secret, raw string }{
		"wrong secret": {"other", good.Token},
		"expired":      {"secret", expired.Token},
		"garbage":      {"secret", "not.a.token"},
		"empty":        {"secret", ""},
		"unknown kind": {"secret", badKind},
		"missing exp":  {"secret", noExp},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, ok := ParseAccessToken(tc.secret, tc.raw)
			assert.False(t, ok)
		})
	}
}

func TestNewAccessTokenRequiresSecret(t *testing.T) {
	_, err := NewAccessToken("", 1, "a@b.c", KindUser, time.Hour)
	assert.Error(t, err)
}
