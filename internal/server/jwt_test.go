package server

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jonathan/portfolio-builder/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testJWTSecret = "test-secret-key-for-jwt-signing-minimum-32-bytes"

func setupTestJWTService(_ *testing.T, issuer string) *JWTService {
	return NewJWTService(&config.JWTConfig{
		Secret:          testJWTSecret,
		Issuer:          issuer,
		ExpirationHours: 24,
	})
}

func TestJWTService_RoundTrip(t *testing.T) {
	service := setupTestJWTService(t, "")

	token, err := service.GenerateToken("user-1", "ada@example.com")
	require.NoError(t, err)
	assert.Len(t, strings.Split(token, "."), 3)

	claims, err := service.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.Subject)
	assert.Equal(t, "ada@example.com", claims.Email)
	assert.NotEmpty(t, claims.ID)
}

func TestJWTService_UniqueTokens(t *testing.T) {
	service := setupTestJWTService(t, "")

	t1, err := service.GenerateToken("user-1", "")
	require.NoError(t, err)
	t2, err := service.GenerateToken("user-1", "")
	require.NoError(t, err)
	assert.NotEqual(t, t1, t2)
}

func TestJWTService_Issuer(t *testing.T) {
	issuing := setupTestJWTService(t, "https://other.example.com")
	token, err := issuing.GenerateToken("user-1", "")
	require.NoError(t, err)

	verifying := setupTestJWTService(t, "https://id.example.com")
	_, err = verifying.ValidateToken(token)
	assert.Error(t, err)

	same := setupTestJWTService(t, "https://other.example.com")
	_, err = same.ValidateToken(token)
	assert.NoError(t, err)
}

func TestJWTService_Rejections(t *testing.T) {
	service := setupTestJWTService(t, "")

	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	})
	expiredToken, err := expired.SignedString([]byte(testJWTSecret))
	require.NoError(t, err)

	otherKey := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: "user-1"},
	})
	otherKeyToken, err := otherKey.SignedString([]byte("a-completely-different-secret-value"))
	require.NoError(t, err)

	tests := []struct {
		name    string
		token   string
		wantErr string
	}{
		{name: "empty", token: "", wantErr: "empty"},
		{name: "malformed", token: "not.a.jwt", wantErr: "malformed"},
		{name: "expired", token: expiredToken, wantErr: "expired"},
		{name: "wrong key", token: otherKeyToken, wantErr: "signature"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := service.ValidateToken(tt.token)
			require.Error(t, err)
			assert.Nil(t, claims)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestJWTService_AsTokenValidator(t *testing.T) {
	service := setupTestJWTService(t, "")
	token, err := service.GenerateToken("user-9", "")
	require.NoError(t, err)

	claims, err := service.AsTokenValidator().ValidateToken(token)
	require.NoError(t, err)
	subject, err := claims.GetSubject()
	require.NoError(t, err)
	assert.Equal(t, "user-9", subject)
}
