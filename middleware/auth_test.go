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
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"hotel-admin/services"
)

type brokenStore struct{}

func (brokenStore) Revoke(context.Context, string, time.Duration) error { return errors.New("down") }
func (brokenStore) IsRevoked(context.Context, string) (bool, error) {
	return false, errors.New("down")
}

func newAuthRouter(jwtSvc services.InterfaceJWTService, tokens services.TokenStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/me", Authenticate(jwtSvc, tokens, zap.NewNop()), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"id": CurrentUserID(c), "jti": CurrentClaims(c).ID})
	})
	return r
}

func doGet(r http.Handler, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthenticate(t *testing.T) {
	jwtSvc := services.NewJWTService("secret", time.Hour)
	tokens := services.NewMemoryTokenStore()
	r := newAuthRouter(jwtSvc, tokens)

	token, claims, err := jwtSvc.GenerateToken(7)
	require.NoError(t, err)

	t.Run("missing token", func(t *testing.T) {
		w := doGet(r, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.JSONEq(t, `{"error":"Access denied. No token provided."}`, w.Body.String())
	})

	t.Run("garbage token", func(t *testing.T) {
		w := doGet(r, "Bearer not-a-jwt")
		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.JSONEq(t, `{"error":"Invalid or expired token"}`, w.Body.String())
	})

	t.Run("bearer token", func(t *testing.T) {
		w := doGet(r, "Bearer "+token)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"id":7,"jti":"`+claims.ID+`"}`, w.Body.String())
	})

	t.Run("raw token", func(t *testing.T) {
		w := doGet(r, token)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("revoked token", func(t *testing.T) {
		require.NoError(t, tokens.Revoke(context.Background(), claims.ID, time.Hour))
		w := doGet(r, "Bearer "+token)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}

func TestAuthenticate_ExpiredToken(t *testing.T) {
	issuer := services.NewJWTService("secret", -time.Minute)
	token, _, err := issuer.GenerateToken(7)
	require.NoError(t, err)

	r := newAuthRouter(services.NewJWTService("secret", time.Hour), services.NewMemoryTokenStore())
	w := doGet(r, "Bearer "+token)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestAuthenticate_DenylistDownFailsOpen(t *testing.T) {
	jwtSvc := services.NewJWTService("secret", time.Hour)
	token, _, err := jwtSvc.GenerateToken(7)
	require.NoError(t, err)

	w := doGet(newAuthRouter(jwtSvc, brokenStore{}), "Bearer "+token)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestExtractToken(t *testing.T) {
	assert.Equal(t, "abc", extractToken("Bearer abc"))
	assert.Equal(t, "abc", extractToken("bearer  abc "))
	assert.Equal(t, "abc", extractToken("abc"))
	assert.Equal(t, "", extractToken("   "))
}
