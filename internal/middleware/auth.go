package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/stpnv0/EventMarket/internal/domain"
	"github.com/wb-go/wbf/ginext"
)

const actorKey = "actor"

type SessionVerifier interface {
	Verify(token string) (string, error)
}

type ActorLoader interface {
	Actor(ctx context.Context, id string) (domain.Actor, error)
}

// Auth resolves the session cookie (or a Bearer token) into a domain.Actor
// and stores it on the context. Requests without a usable session stop here.
func Auth(cookieName string, sessions SessionVerifier, actors ActorLoader) ginext.HandlerFunc {
	return func(c *ginext.Context) {
		token := sessionToken(c, cookieName)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ginext.H{"error": domain.ErrUnauthenticated.Error()})
			return
		}

		userID, err := sessions.Verify(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ginext.H{"error": domain.ErrUnauthenticated.Error()})
			return
		}

		actor, err := actors.Actor(c.Request.Context(), userID)
		if err != nil {
			c.Set("error", err.Error())
			switch {
			case errors.Is(err, domain.ErrUnauthenticated):
				c.AbortWithStatusJSON(http.StatusUnauthorized, ginext.H{"error": domain.ErrUnauthenticated.Error()})
			case errors.Is(err, domain.ErrForbidden):
				c.AbortWithStatusJSON(http.StatusForbidden, ginext.H{"error": domain.ErrForbidden.Error()})
			default:
				c.AbortWithStatusJSON(http.StatusInternalServerError, ginext.H{"error": "internal server error"})
			}
			return
		}

		c.Set(actorKey, actor)
		c.Next()
	}
}

func ActorFromContext(c *ginext.Context) (domain.Actor, bool) {
	v, ok := c.Get(actorKey)
	if !ok {
		return domain.Actor{}, false
	}
	actor, ok := v.(domain.Actor)
	return actor, ok
}

func sessionToken(c *ginext.Context, cookieName string) string {
	if cookie, err := c.Cookie(cookieName); err == nil && cookie != "" {
		return cookie
	}
	header := c.GetHeader("Authorization")
	if len(header) > 7 && strings.EqualFold(header[:7], "bearer ") {
		return strings.TrimSpace(header[7:])
	}
	return ""
}
