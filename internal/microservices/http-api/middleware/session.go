package middleware

import (
	"errors"
	"net/http"

	"cakehub/internal/logger"
	"cakehub/internal/microservices/http-api/dto"
	"cakehub/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
)

const (
	// SessionCookie carries the opaque session token.
	SessionCookie = "token"

	identityKey = "identity"
)

// SessionMiddleware resolves the `token` cookie into an identity for every
// request. A missing or invalid token leaves the request anonymous; only a
// store failure aborts it.
func SessionMiddleware(authService service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(SessionCookie)
		if err != nil || token == "" {
			c.Next()
			return
		}

		identity, err := authService.Resolve(c.Request.Context(), token)
		if err != nil {
			if errors.Is(err, service.ErrInvalidToken) {
				c.Next()
				return
			}
			logger.FromContext(c.Request.Context()).Error("session lookup failed", "error", err)
			c.AbortWithStatusJSON(http.StatusInternalServerError,
				dto.NewErrorResponse(dto.ErrorTypeServer, "Internal server error", nil))
			return
		}

		c.Set(identityKey, identity)
		c.Next()
	}
}

// RequireAuth rejects anonymous requests with 401.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := IdentityFrom(c); !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				dto.NewErrorResponse(dto.ErrorTypeUnauthorized, "Authentication required", nil))
			return
		}
		c.Next()
	}
}

// SetIdentity stores identity on the context, as SessionMiddleware does.
func SetIdentity(c *gin.Context, identity *service.Identity) {
	c.Set(identityKey, identity)
}

// IdentityFrom returns the identity resolved for this request, if any.
func IdentityFrom(c *gin.Context) (*service.Identity, bool) {
	v, exists := c.Get(identityKey)
	if !exists {
		return nil, false
	}
	identity, ok := v.(*service.Identity)
	if !ok || identity == nil {
		return nil, false
	}
	return identity, true
}
