package middleware

import (
	"net/http"
	"strings"

	"github.com/willy-peters/SmartPOS/internal/domain/identity"
	"github.com/willy-peters/SmartPOS/internal/infrastructure/auth"
	"github.com/willy-peters/SmartPOS/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

// Context keys
const (
	PrincipalKey  = "principal"
	AuthHeaderKey = "Authorization"
	BearerPrefix  = "Bearer "
)

// JWTAuth validates the bearer token and attaches the authenticated
// principal to the request context. Requests without a valid token are
// rejected with 401.
func JWTAuth(jwtService *auth.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader(AuthHeaderKey)
		if header == "" {
			abortUnauthorized(c, "Missing authorization header")
			return
		}
		if !strings.HasPrefix(header, BearerPrefix) {
			abortUnauthorized(c, "Invalid authorization header format")
			return
		}

		token := strings.TrimPrefix(header, BearerPrefix)
		principal, err := jwtService.Validate(token)
		if err != nil {
			message := "Invalid or expired token"
			if err == auth.ErrExpiredToken {
				message = "Token has expired"
			}
			abortUnauthorized(c, message)
			return
		}

		c.Set(PrincipalKey, principal)
		c.Next()
	}
}

// RequireAdmin rejects requests whose principal is not an admin. Must run
// after JWTAuth.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := GetPrincipal(c)
		if !ok {
			abortUnauthorized(c, "Authentication required")
			return
		}
		if principal.Role != identity.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden,
				dto.NewErrorResponse("Admin access required"))
			return
		}
		c.Next()
	}
}

// GetPrincipal extracts the authenticated principal from the context
func GetPrincipal(c *gin.Context) (identity.Principal, bool) {
	value, exists := c.Get(PrincipalKey)
	if !exists {
		return identity.Principal{}, false
	}
	principal, ok := value.(identity.Principal)
	return principal, ok
}

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(message))
}
