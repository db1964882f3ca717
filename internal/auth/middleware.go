package auth

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const contextKeyUserID = "user_id"

// UserIDFromContext returns the current user ID set by RequireToken. 0 if not set.
func UserIDFromContext(c *gin.Context) int64 {
	v, ok := c.Get(contextKeyUserID)
	if !ok {
		return 0
	}
	id, ok := v.(int64)
	if !ok {
		return 0
	}
	return id
}

// RequireToken returns a middleware that checks the Authorization header for
// a bearer token and sets the current user ID in context. A missing token is
// rejected with 401; a present but invalid or expired one with 403. Handlers
// behind this middleware must take the owner identity from the context only,
// never from the request body or path.
func RequireToken(tokens *Tokens) gin.HandlerFunc {
	return func(c *gin.Context) {
		fields := strings.Fields(c.GetHeader("Authorization"))
		if len(fields) < 2 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authorization required"})
			return
		}
		// A credential is present. A wrong scheme is an invalid credential,
		// not a missing one.
		if !strings.EqualFold(fields[0], "Bearer") {
			log.Printf("auth: rejected non-bearer credential")
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "invalid or expired token"})
			return
		}
		userID, err := tokens.Verify(fields[1])
		if err != nil {
			if errors.Is(err, ErrTokenExpired) {
				log.Printf("auth: rejected expired token")
			} else {
				log.Printf("auth: rejected invalid token")
			}
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "invalid or expired token"})
			return
		}
		c.Set(contextKeyUserID, userID)
		c.Next()
	}
}
