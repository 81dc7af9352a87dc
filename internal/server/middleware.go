package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nikolayk812/storefront/internal/auth"
	"github.com/nikolayk812/storefront/internal/domain"
)

const (
	sessionCookie = "session"
	actorKey      = "actor"
)

// OptionalSession resolves the session cookie into an actor when present,
// but lets anonymous requests through. Used by the public home page.
func OptionalSession(sessions *auth.Sessions) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token, err := c.Cookie(sessionCookie); err == nil {
			if actor, err := sessions.Verify(token); err == nil {
				c.Set(actorKey, actor)
			}
		}
		c.Next()
	}
}

// RequireSession rejects requests without a valid session cookie.
func RequireSession(sessions *auth.Sessions) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(sessionCookie)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "login required"})
			return
		}

		actor, err := sessions.Verify(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "login required"})
			return
		}

		c.Set(actorKey, actor)
		c.Next()
	}
}

// RequireAdmin hides admin routes from non-admins behind the generic 404.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := actorFrom(c)
		if !ok || !actor.IsAdmin() {
			renderNotFound(c)
			return
		}
		c.Next()
	}
}

func actorFrom(c *gin.Context) (domain.Actor, bool) {
	value, exists := c.Get(actorKey)
	if !exists {
		return domain.Actor{}, false
	}

	actor, ok := value.(domain.Actor)
	return actor, ok
}
