package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"crm/internal/model"
)

func testUser(t *testing.T) *model.User {
	t.Helper()
	u, err := model.NewUser("admin", "hash", "Admin")
	require.NoError(t, err)
	u.ID = uuid.New()
	return u
}

func TestJWTService_GenerateToken(t *testing.T) {
	svc := NewJWTService("test-secret", "crm-api", "crm-client", 60*time.Minute)
	user := testUser(t)

	token, err := svc.GenerateToken(user)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)

	assert.Equal(t, user.ID.String(), claims.Subject)
	assert.Equal(t, "admin", claims.Name)
	assert.Equal(t, "Admin", claims.Role)
	assert.Equal(t, "crm-api", claims.Issuer)
	assert.Equal(t, jwt.ClaimStrings{"crm-client"}, claims.Audience)
	_, err = uuid.Parse(claims.ID)
	assert.NoError(t, err)
	assert.WithinDuration(t, time.Now().UTC().Add(60*time.Minute), claims.ExpiresAt.Time, 5*time.Second)
}

func TestJWTService_UniqueTokenIDs(t *testing.T) {
	svc := NewJWTService("test-secret", "", "", time.Minute)
	user := testUser(t)

	first, err := svc.GenerateToken(user)
	require.NoError(t, err)
	second, err := svc.GenerateToken(user)
	require.NoError(t, err)

	c1, err := svc.ValidateToken(first)
	require.NoError(t, err)
	c2, err := svc.ValidateToken(second)
	require.NoError(t, err)
	assert.NotEqual(t, c1.ID, c2.ID)
}

func TestJWTService_ValidateTokenRejects(t *testing.T) {
	svc := NewJWTService("test-secret", "crm-api", "crm-client", time.Hour)
	user := testUser(t)

	expired := NewJWTService("test-secret", "crm-api", "crm-client", time.Hour)
	expired.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	expiredToken, err := expired.GenerateToken(user)
	require.NoError(t, err)

	otherKey, err := NewJWTService("other-secret", "crm-api", "crm-client", time.Hour).GenerateToken(user)
	require.NoError(t, err)

	otherIssuer, err := NewJWTService("test-secret", "someone-else", "crm-client", time.Hour).GenerateToken(user)
	require.NoError(t, err)

	otherAudience, err := NewJWTService("test-secret", "crm-api", "mobile", time.Hour).GenerateToken(user)
	require.NoError(t, err)

	noneAlg, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"sub": user.ID.String(),
		"exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	tests := map[string]string{
		"garbage":        "not-a-token",
		"expired":        expiredToken,
		"wrong key":      otherKey,
		"wrong issuer":   otherIssuer,
		"wrong audience": otherAudience,
		"none algorithm": noneAlg,
	}
	for name, token := range tests {
		t.Run(name, func(t *testing.T) {
			claims, err := svc.ValidateToken(token)
			assert.ErrorIs(t, err, ErrInvalidToken)
			assert.Nil(t, claims)
		})
	}
}

func TestPassword(t *testing.T) {
	hash, err := HashPassword("admin123")
	require.NoError(t, err)
	assert.NotEqual(t, "admin123", hash)

	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, bcryptCost, cost)

	assert.True(t, VerifyPassword("admin123", hash))
	assert.False(t, VerifyPassword("admin124", hash))
	assert.False(t, VerifyPassword("", hash))
	assert.False(t, VerifyPassword("admin123", ""))
	assert.False(t, VerifyPassword("admin123", "not-a-bcrypt-hash"))

	again, err := HashPassword("admin123")
	require.NoError(t, err)
	assert.NotEqual(t, hash, again, "hashes must be salted")

	_, err = HashPassword("")
	assert.Error(t, err)
}
