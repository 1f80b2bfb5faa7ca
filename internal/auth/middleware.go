package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"user-service/internal/domain"
)

const bearerPrefix = "Bearer "

// UserLookup resolves a token subject to a stored user.
type UserLookup interface {
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
}

// Middleware returns a gin middleware that authenticates requests from a
// bearer token. It never rejects a request: on a missing, malformed,
// expired or otherwise invalid token the request simply continues without
// an identity, and the route policy decides later whether that is fatal.
//
// On a valid token for an existing user exactly one Identity is attached
// to the request context. If an identity is already attached the
// middleware is a no-op.
func Middleware(tokens *TokenService, users UserLookup) gin.HandlerFunc {
	return func(c *gin.Context) {
		if FromContext(c.Request.Context()) != nil {
			c.Next()
			return
		}

		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, bearerPrefix) {
			c.Next()
			return
		}
		tokenString := header[len(bearerPrefix):]

		claims, err := tokens.Validate(tokenString)
		if err != nil {
			c.Next()
			return
		}

		user, err := users.GetByUsername(c.Request.Context(), claims.Username)
		if err != nil {
			c.Next()
			return
		}

		// Re-confirm the token against the stored username before trusting
		// it; a structurally valid token for a stale user must not pass.
		if !tokens.IsValid(tokenString, user.Username) {
			c.Next()
			return
		}

		ctx := WithIdentity(c.Request.Context(), &Identity{Username: user.Username})
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// publicRoutes lists the method + route patterns reachable without an
// identity. Everything else requires authentication.
var publicRoutes = map[string]struct{}{
	"GET /api/users":          {},
	"GET /api/params":         {},
	"GET /api/health":         {},
	"POST /api/auth/login":    {},
	"POST /api/auth/register": {},
}

// Authorize returns a gin middleware enforcing the static route access
// table. It must run after Middleware. Requests to non-public routes
// without an attached Identity are rejected with 401 before the handler.
func Authorize() gin.HandlerFunc {
	return func(c *gin.Context) {
		route := c.Request.Method + " " + c.FullPath()
		if _, ok := publicRoutes[route]; ok {
			c.Next()
			return
		}
		if FromContext(c.Request.Context()) == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}
		c.Next()
	}
}
