package auth

import (
	"testing"
	"time"

	"parkhub/internal/config"
	"parkhub/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testManager() *Manager {
	return NewManager(config.AuthConfig{
		JWTSecret:   "test-secret",
		TokenTTLMin: 60,
		Issuer:      "parkhub-test",
	})
}

func TestIssueAndParseToken(t *testing.T) {
	m := testManager()

	token, err := m.IssueToken(42, models.RoleStaff)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := m.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, models.RoleStaff, claims.Role)
	assert.Equal(t, "parkhub-test", claims.Issuer)
}

func TestIssueTokenRejectsUnknownRole(t *testing.T) {
	m := testManager()
	_, err := m.IssueToken(1, "superuser")
	assert.Error(t, err)
}

func TestParseTokenRejectsBadSignature(t *testing.T) {
	m := testManager()
	other := NewManager(config.AuthConfig{JWTSecret: "other-secret", TokenTTLMin: 60})

	token, err := other.IssueToken(1, models.RoleUser)
	require.NoError(t, err)

	_, err = m.ParseToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseTokenRejectsExpired(t *testing.T) {
	m := testManager()

	claims := Claims{
		UserID: 1,
		Role:   models.RoleUser,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = m.ParseToken(signed)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseTokenRejectsGarbage(t *testing.T) {
	m := testManager()
	_, err := m.ParseToken("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
