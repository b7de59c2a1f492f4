package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func TestGenerateAndValidateToken(t *testing.T) {
	token, err := GenerateAccessToken("user-1", "ana@example.com", RoleClient, testSecret)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ValidateToken(token, testSecret)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "ana@example.com", claims.Email)
	assert.Equal(t, RoleClient, claims.Role)
}

func TestGenerateAccessToken_EmptySecret(t *testing.T) {
	_, err := GenerateAccessToken("user-1", "a@b.c", RoleClient, "")
	assert.ErrorIs(t, err, ErrEmptyJWTSecret)
}

func TestGenerateAccessToken_UnknownRole(t *testing.T) {
	_, err := GenerateAccessToken("user-1", "a@b.c", Role("superuser"), testSecret)
	assert.ErrorIs(t, err, ErrUnknownRole)
}

func TestValidateToken_WrongSecret(t *testing.T) {
	token, err := GenerateAccessToken("user-1", "a@b.c", RoleAdmin, testSecret)
	require.NoError(t, err)

	_, err = ValidateToken(token, "other-secret")
	assert.Error(t, err)
}

func TestValidateToken_Expired(t *testing.T) {
	claims := &JWTClaims{
		UserID: "user-1",
		Role:   RoleClient,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    jwtIssuer,
			Audience:  []string{jwtAudience},
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = ValidateToken(token, testSecret)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestValidateToken_WrongIssuer(t *testing.T) {
	claims := &JWTClaims{
		UserID: "user-1",
		Role:   RoleClient,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "someone-else",
			Audience:  []string{jwtAudience},
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = ValidateToken(token, testSecret)
	assert.Error(t, err)
}

func TestActorIsStaff(t *testing.T) {
	assert.False(t, Actor{ID: "u", Role: RoleClient}.IsStaff())
	assert.True(t, Actor{ID: "u", Role: RoleEmployee}.IsStaff())
	assert.True(t, Actor{ID: "u", Role: RoleAdmin}.IsStaff())
}
