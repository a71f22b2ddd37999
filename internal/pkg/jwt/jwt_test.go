package jwt

import (
	"testing"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidate(t *testing.T) {
	svc := New("test-secret", time.Hour)

	token, err := svc.GenerateToken(42, "tenant")
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "tenant", claims.Role)
}

func TestValidateRejectsForeignSecret(t *testing.T) {
	token, err := New("one", time.Hour).GenerateToken(1, "owner")
	require.NoError(t, err)

	_, err = New("two", time.Hour).ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateRejectsExpired(t *testing.T) {
	svc := New("secret", -time.Minute)
	token, err := svc.GenerateToken(1, "owner")
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokensCarryDistinctIDs(t *testing.T) {
	svc := New("secret", time.Hour)
	fixed := time.Date(2024, 1, 5, 9, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }

	first, err := svc.GenerateToken(7, "tenant")
	require.NoError(t, err)
	second, err := svc.GenerateToken(7, "tenant")
	require.NoError(t, err)

	a, err := svc.ValidateToken(first)
	require.NoError(t, err)
	b, err := svc.ValidateToken(second)
	require.NoError(t, err)

	assert.NotEmpty(t, a.TokenID())
	assert.NotEqual(t, a.TokenID(), b.TokenID())
	assert.True(t, a.Expiry().Equal(fixed.Add(time.Hour)))
}

func TestValidateRejectsTokenWithoutID(t *testing.T) {
	claims := Claims{
		UserID: 3,
		Role:   "owner",
		RegisteredClaims: jwtlib.RegisteredClaims{
			ExpiresAt: jwtlib.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims).SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = New("secret", time.Hour).ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
