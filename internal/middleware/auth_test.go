package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type fakeValidator struct {
	claims *TokenClaims
	err    error
}

func (f *fakeValidator) ValidateToken(string) (*TokenClaims, error) {
	return f.claims, f.err
}

func runAuthed(t *testing.T, handler gin.HandlerFunc, authHeader string) (*httptest.ResponseRecorder, *uint) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	var seen *uint
	router := gin.New()
	router.GET("/", handler, func(c *gin.Context) {
		if id, ok := UserID(c); ok {
			seen = &id
		}
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec, seen
}

func TestAuthMiddleware(t *testing.T) {
	ok := &fakeValidator{claims: &TokenClaims{UserID: 42}}
	bad := &fakeValidator{err: errors.New("expired")}

	rec, seen := runAuthed(t, AuthMiddleware(ok), "Bearer token")
	assert.Equal(t, http.StatusOK, rec.Code)
	if assert.NotNil(t, seen) {
		assert.Equal(t, uint(42), *seen)
	}

	rec, _ = runAuthed(t, AuthMiddleware(ok), "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec, _ = runAuthed(t, AuthMiddleware(ok), "NotBearer token")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec, _ = runAuthed(t, AuthMiddleware(bad), "Bearer token")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestOptionalAuthMiddleware(t *testing.T) {
	ok := &fakeValidator{claims: &TokenClaims{UserID: 42}}
	bad := &fakeValidator{err: errors.New("expired")}

	rec, seen := runAuthed(t, OptionalAuthMiddleware(ok), "Bearer token")
	assert.Equal(t, http.StatusOK, rec.Code)
	if assert.NotNil(t, seen) {
		assert.Equal(t, uint(42), *seen)
	}

	// Anonymous and invalid tokens both pass through without identity.
	rec, seen = runAuthed(t, OptionalAuthMiddleware(ok), "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, seen)

	rec, seen = runAuthed(t, OptionalAuthMiddleware(bad), "Bearer token")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, seen)
}
