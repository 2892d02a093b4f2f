package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

const testSecret = "unit-test-secret"

// protectedRouter builds a gin engine with a single authenticated endpoint
// that echoes the owner id.
func protectedRouter() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(Middleware(testSecret))
	router.GET("/whoami", func(c *gin.Context) {
		id, ok := UserId(c)
		if !ok {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "no user"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"user_id": id})
	})
	return router
}

func request(router *gin.Engine, authorization string) *httptest.ResponseRecorder {
	recorder := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/whoami", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	router.ServeHTTP(recorder, req)
	return recorder
}

// TestMiddlewareAcceptsValidToken checks the round trip: mint a token, call a
// protected endpoint, read back the subject.
func TestMiddlewareAcceptsValidToken(t *testing.T) {
	userId := uuid.NewString()
	token, err := Token(testSecret, userId, time.Hour)
	assert.NoError(t, err)

	recorder := request(protectedRouter(), "Bearer "+token)
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), userId)
}

// TestMiddlewareRejectsMissingHeader checks that unauthenticated requests are
// turned away.
func TestMiddlewareRejectsMissingHeader(t *testing.T) {
	recorder := request(protectedRouter(), "")
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

// TestMiddlewareRejectsMalformedHeader checks non-bearer and empty tokens.
func TestMiddlewareRejectsMalformedHeader(t *testing.T) {
	for _, header := range []string{"Basic abc", "Bearer ", "garbage"} {
		recorder := request(protectedRouter(), header)
		assert.Equal(t, http.StatusUnauthorized, recorder.Code, "header=%q", header)
	}
}

// TestMiddlewareRejectsWrongSecret checks that a token signed with a
// different key does not pass.
func TestMiddlewareRejectsWrongSecret(t *testing.T) {
	token, err := Token("other-secret", uuid.NewString(), time.Hour)
	assert.NoError(t, err)
	recorder := request(protectedRouter(), "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

// TestMiddlewareRejectsExpiredToken checks expiry enforcement.
func TestMiddlewareRejectsExpiredToken(t *testing.T) {
	token, err := Token(testSecret, uuid.NewString(), -time.Minute)
	assert.NoError(t, err)
	recorder := request(protectedRouter(), "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

// TestMiddlewareRejectsNonUUIDSubject checks that a syntactically valid token
// with a non-UUID subject is refused.
func TestMiddlewareRejectsNonUUIDSubject(t *testing.T) {
	claims := jwt.MapClaims{"sub": "bob", "exp": time.Now().Add(time.Hour).Unix()}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	assert.NoError(t, err)
	recorder := request(protectedRouter(), "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}
