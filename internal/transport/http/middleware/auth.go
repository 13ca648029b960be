package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/amartov/kinolog/internal/domain"
	"github.com/amartov/kinolog/internal/repository"
	"github.com/gin-gonic/gin"
)

const (
	errUnauthorized = "Authentication required"

	// UserIDKey and UserKey are the gin context keys set by Auth.
	UserIDKey = "userID"
	UserKey   = "user"
)

// tokenVerifier is the subset of auth.TokenService the gateway needs.
type tokenVerifier interface {
	Verify(raw string) (string, error)
}

// Auth validates a Bearer token, resolves the identity behind it, and puts
// both the id and the loaded user into the gin context. A token whose
// subject no longer exists in the store is treated exactly like an invalid
// token — handlers never see a partial or stale identity.
func Auth(tokens tokenVerifier, users repository.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			abortUnauthorized(c)
			return
		}

		userID, err := tokens.Verify(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			abortUnauthorized(c)
			return
		}

		user, err := users.FindByID(c.Request.Context(), userID)
		if err != nil {
			if errors.Is(err, domain.ErrUserNotFound) {
				// Account deleted after the token was minted.
				abortUnauthorized(c)
				return
			}
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"code":  "internal_error",
				"error": "Internal server error",
			})
			return
		}

		c.Set(UserIDKey, user.ID)
		c.Set(UserKey, user)
		c.Next()
	}
}

func abortUnauthorized(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"code":  "authentication_required",
		"error": errUnauthorized,
	})
}
