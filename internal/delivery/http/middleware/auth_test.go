package middleware

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthenticator_IssueAndParse(t *testing.T) {
	auth := NewAuthenticator("secret")

	token, err := auth.Issue("user-1", RoleAdmin, time.Hour)
	require.NoError(t, err)

	claims, err := auth.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.Subject)
	assert.Equal(t, RoleAdmin, claims.Role)
}

func TestAuthenticator_Rejects(t *testing.T) {
	auth := NewAuthenticator("secret")

	expired, err := auth.Issue("user-1", "user", -time.Minute)
	require.NoError(t, err)
	_, err = auth.Parse(expired)
	assert.ErrorIs(t, err, ErrInvalidToken)

	foreign, err := NewAuthenticator("other").Issue("user-1", "user", time.Hour)
	require.NoError(t, err)
	_, err = auth.Parse(foreign)
	assert.ErrorIs(t, err, ErrInvalidToken)

	noSubject, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{Role: "user"}).SignedString([]byte("secret"))
	require.NoError(t, err)
	_, err = auth.Parse(noSubject)
	assert.ErrorIs(t, err, ErrInvalidToken)

	hs512, err := jwt.NewWithClaims(jwt.SigningMethodHS512, Claims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: "user-1"},
	}).SignedString([]byte("secret"))
	require.NoError(t, err)
	_, err = auth.Parse(hs512)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestRequireUserSetsIdentity(t *testing.T) {
	gin.SetMode(gin.TestMode)
	auth := NewAuthenticator("secret")

	var logs bytes.Buffer
	r := gin.New()
	r.Use(RequestLogger(slog.New(slog.NewJSONHandler(&logs, nil))))
	r.GET("/me", auth.RequireUser(), func(c *gin.Context) {
		c.String(http.StatusOK, UserID(c))
	})
	r.GET("/admin", auth.RequireUser(), auth.RequireAdmin(), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	token, err := auth.Issue("user-42", "user", time.Hour)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "user-42", w.Body.String())

	req = httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", token)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	assert.Contains(t, logs.String(), `"path":"/me"`)
}
