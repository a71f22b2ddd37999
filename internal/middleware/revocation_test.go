package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"apartmentbooking/internal/pkg/jwt"
)

type MockRevocationChecker struct {
	mock.Mock
}

func (m *MockRevocationChecker) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	args := m.Called(ctx, tokenID)
	return args.Bool(0), args.Error(1)
}

func revocationRouter(t *testing.T, checker RevocationChecker) (*gin.Engine, string, *jwt.Claims) {
	t.Helper()
	svc := jwt.New("secret", time.Hour)
	token, err := svc.GenerateToken(5, "tenant")
	require.NoError(t, err)
	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)

	router := gin.New()
	router.Use(JWTAuth(svc, checker))
	router.GET("/protected", func(c *gin.Context) {
		id, exp := TokenFrom(c)
		c.JSON(http.StatusOK, gin.H{"token_id": id, "expires_at": exp})
	})
	return router, token, claims
}

func getWithToken(router *gin.Engine, token string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)
	return w
}

func TestJWTAuth_RejectsRevokedToken(t *testing.T) {
	checker := new(MockRevocationChecker)
	router, token, claims := revocationRouter(t, checker)
	checker.On("IsRevoked", mock.Anything, claims.TokenID()).Return(true, nil)

	w := getWithToken(router, token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "TOKEN_REVOKED")
	checker.AssertExpectations(t)
}

func TestJWTAuth_ExposesTokenOfLiveSession(t *testing.T) {
	checker := new(MockRevocationChecker)
	router, token, claims := revocationRouter(t, checker)
	checker.On("IsRevoked", mock.Anything, claims.TokenID()).Return(false, nil)

	w := getWithToken(router, token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), claims.TokenID())
}

func TestJWTAuth_RevocationLookupFailure(t *testing.T) {
	checker := new(MockRevocationChecker)
	router, token, _ := revocationRouter(t, checker)
	checker.On("IsRevoked", mock.Anything, mock.Anything).Return(false, errors.New("db down"))

	w := getWithToken(router, token)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "db down")
}
