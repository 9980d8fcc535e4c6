package middleware

import (
	"errors"
	"net/http"

	"hospital-admin/internal/models"
	"hospital-admin/internal/session"

	"github.com/gin-gonic/gin"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

const identityKey = "identity"

// MessageForbidden is the body of every role rejection.
const MessageForbidden = "no autorizado."

// RequireLogin resolves the session cookie and stores the identity on the context.
// Requests without a valid session are redirected to /login.
func RequireLogin(mgr *session.Manager, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 1. Resolve the cookie against the session store
		identity, err := mgr.Current(c)
		if err != nil {
			if errors.Is(err, session.ErrNotFound) {
				c.Redirect(http.StatusFound, "/login")
				c.Abort()
				return
			}
			log.Error("session lookup failed", zap.String("path", c.Request.URL.Path), zap.Error(err))
			c.String(http.StatusInternalServerError, "Error al procesar la solicitud")
			c.Abort()
			return
		}

		// 2. Hand the identity to the rest of the chain
		SetIdentity(c, identity)
		c.Next()
	}
}

// RequireRole lets the request through only when the session role is one of roles.
// It rejects when no identity was resolved before it.
func RequireRole(roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := CurrentIdentity(c)
		if !ok || !lo.Contains(roles, identity.Role) {
			c.String(http.StatusForbidden, MessageForbidden)
			c.Abort()
			return
		}
		c.Next()
	}
}

func SetIdentity(c *gin.Context, identity session.Identity) {
	c.Set(identityKey, identity)
}

// CurrentIdentity returns the identity placed by RequireLogin.
func CurrentIdentity(c *gin.Context) (session.Identity, bool) {
	val, exists := c.Get(identityKey)
	if !exists {
		return session.Identity{}, false
	}
	identity, ok := val.(session.Identity)
	return identity, ok
}
