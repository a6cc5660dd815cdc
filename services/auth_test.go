package services

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/perlasplay/bingo-backend/models"
)

func TestIssueAndParseToken(t *testing.T) {
	auth := NewAuthService(nil, "test-secret")
	user := &models.User{ID: 42, Role: models.RoleAdmin}

	token, err := auth.IssueToken(user)
	require.NoError(t, err)

	id, role, err := auth.parseToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), id)
	assert.Equal(t, models.RoleAdmin, role)
}

func TestParseTokenRejectsWrongSecret(t *testing.T) {
	issuer := NewAuthService(nil, "secret-a")
	verifier := NewAuthService(nil, "secret-b")

	token, err := issuer.IssueToken(&models.User{ID: 1, Role: models.RolePlayer})
	require.NoError(t, err)

	_, _, err = verifier.parseToken(token)
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestParseTokenRejectsGarbage(t *testing.T) {
	auth := NewAuthService(nil, "test-secret")
	for _, raw := range []string{"", "not-a-token", "a.b.c"} {
		_, _, err := auth.parseToken(raw)
		assert.ErrorIs(t, err, ErrInvalidCredentials, "token %q", raw)
	}
}

func TestParseTokenRejectsExpired(t *testing.T) {
	auth := NewAuthService(nil, "test-secret")
	claims := jwt.MapClaims{
		"sub":  float64(1),
		"role": "player",
		"exp":  time.Now().Add(-time.Minute).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, _, err = auth.parseToken(token)
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestParseTokenRejectsUnsignedAlg(t *testing.T) {
	auth := NewAuthService(nil, "test-secret")
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"sub": float64(1),
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, _, err = auth.parseToken(token)
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
