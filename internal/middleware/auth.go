package middleware

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"chillbills/internal/auth"
	"chillbills/internal/models"
	"chillbills/internal/store"

	"github.com/gin-gonic/gin"
)

const (
	userContextKey = "current_user"

	// CredentialsError is the single message returned for every
	// authentication failure: missing header, malformed or expired token,
	// bad signature, or a subject that no longer resolves to a user.
	// Collapsing them prevents account and token state from leaking.
	CredentialsError = "Could not validate credentials"
)

// Auth verifies the bearer token and resolves its subject to a live user.
// The resolved user is stored in the request context for handlers.
func Auth(tokens *auth.TokenService, users *store.UserStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			unauthorized(c)
			return
		}

		subject, err := tokens.Verify(tokenString)
		if err != nil {
			unauthorized(c)
			return
		}

		// Liveness check: a valid token for a deleted account fails the
		// same way as a bad token. A storage failure is not an auth
		// failure and surfaces as a generic 500 instead.
		user, err := users.FindByUsername(subject)
		if err != nil {
			if errors.Is(err, store.ErrUserNotFound) {
				unauthorized(c)
				return
			}
			log.Printf("request_id=%s error resolving token subject: %v", RequestIDFromContext(c), err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}

		c.Set(userContextKey, user)
		c.Next()
	}
}

// CurrentUser returns the authenticated user resolved by Auth, or nil when
// the request did not pass through it.
func CurrentUser(c *gin.Context) *models.User {
	value, ok := c.Get(userContextKey)
	if !ok {
		return nil
	}
	user, ok := value.(*models.User)
	if !ok {
		return nil
	}
	return user
}

func bearerToken(header string) (string, bool) {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	return token, token != ""
}

func unauthorized(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": CredentialsError})
}
