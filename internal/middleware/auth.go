package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

const (
	// ViewerKey holds the authenticated user id in the gin context.
	ViewerKey = "viewer_id"
	// SessionUserKey is the session cookie field set at log-in.
	SessionUserKey = "user_id"
)

// TokenVerifier resolves a bearer token to a user id.
type TokenVerifier interface {
	Verify(token string) (uint, error)
}

// LoadUser identifies the caller from a bearer token, falling back to the
// session cookie. Anonymous requests pass through untouched.
func LoadUser(tokens TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		if raw, ok := bearerToken(c.GetHeader("Authorization")); ok {
			if id, err := tokens.Verify(raw); err == nil {
				c.Set(ViewerKey, id)
			}
			c.Next()
			return
		}

		session := sessions.Default(c)
		if id, ok := session.Get(SessionUserKey).(uint); ok && id != 0 {
			c.Set(ViewerKey, id)
		}
		c.Next()
	}
}

// AuthRequired rejects requests LoadUser could not identify.
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if ViewerID(c) == 0 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}
		c.Next()
	}
}

// ViewerID returns the authenticated user id, or 0 for anonymous callers.
func ViewerID(c *gin.Context) uint {
	if v, ok := c.Get(ViewerKey); ok {
		if id, ok := v.(uint); ok {
			return id
		}
	}
	return 0
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
