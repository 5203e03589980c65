// internal/middleware/auth.go
package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/brightcart/storefront/internal/utils"
	"github.com/brightcart/storefront/pkg/authz"
)

// AuthRequired verifies the bearer token issued by the external identity
// provider and puts the resolved identity (external id, email, role set) on
// the request context. Resolving the identity into a domain Customer happens
// in the handlers that need it.
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := claimsFromHeader(c)
		if !ok {
			utils.UnauthorizedResponse(c, "")
			c.Abort()
			return
		}

		setIdentity(c, claims)
		c.Next()
	}
}

// OptionalAuth attaches the identity when a valid token is present and passes
// the request through anonymously otherwise.
func OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if claims, ok := claimsFromHeader(c); ok {
			setIdentity(c, claims)
		}
		c.Next()
	}
}

// RoleRequired gates a route on holding at least one of the given roles.
// Must run after AuthRequired.
func RoleRequired(required ...authz.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		roles := utils.GetRolesFromContext(c)
		if !authz.HasRole(roles, required...) {
			utils.ForbiddenResponse(c, "")
			c.Abort()
			return
		}
		c.Next()
	}
}

func claimsFromHeader(c *gin.Context) (*utils.IdentityClaims, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return nil, false
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return nil, false
	}

	claims, err := utils.VerifyIdentityToken(parts[1])
	if err != nil {
		return nil, false
	}
	return claims, true
}

func setIdentity(c *gin.Context, claims *utils.IdentityClaims) {
	c.Set(utils.ContextExternalID, claims.Subject)
	c.Set(utils.ContextEmail, claims.Email)
	c.Set(utils.ContextRoles, authz.FromStrings(claims.Roles))
}
