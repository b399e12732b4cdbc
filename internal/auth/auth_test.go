package auth

import (
	"testing"
	"time"

	"drivebox/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple")
	require.NoError(t, err)
	require.NotEqual(t, "correct horse battery staple", hash)

	require.True(t, CheckPasswordHash("correct horse battery staple", hash))
	require.False(t, CheckPasswordHash("wrong password", hash))
}

func TestGenerateAndVerifyJWT(t *testing.T) {
	user := &models.User{ID: 42, Email: "jwt@test.local"}

	token, err := GenerateJWT(user, "secret")
	require.NoError(t, err)

	claims, err := VerifyJWT(token, "secret")
	require.NoError(t, err)
	require.Equal(t, int64(42), claims.UserID)
	require.Equal(t, "jwt@test.local", claims.Email)
	require.True(t, claims.ExpiresAt.After(time.Now()))
}

func TestVerifyJWT_WrongSecret(t *testing.T) {
	user := &models.User{ID: 1, Email: "a@test.local"}

	token, err := GenerateJWT(user, "secret")
	require.NoError(t, err)

	_, err = VerifyJWT(token, "other-secret")
	require.Error(t, err)
}

func TestVerifyJWT_RejectsUnsignedToken(t *testing.T) {
	claims := &AppClaims{UserID: 1}
	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, claims)
	token, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = VerifyJWT(token, "secret")
	require.Error(t, err)
}
