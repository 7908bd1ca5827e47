package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tienda/backend/internal/domain/identity"
)

// RequireCapability returns middleware that only admits callers whose token
// carries the given capability. It must run after JWT authentication.
func RequireCapability(capability string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := GetJWTClaims(c)
		if claims == nil {
			abortForbidden(c, "Authentication required")
			return
		}
		if !claims.HasCapability(capability) {
			abortForbidden(c, "Insufficient permissions")
			return
		}
		c.Next()
	}
}

// RequireAnyCapability returns middleware that admits callers holding at
// least one of the given capabilities.
func RequireAnyCapability(capabilities ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := GetJWTClaims(c)
		if claims == nil {
			abortForbidden(c, "Authentication required")
			return
		}
		for _, capability := range capabilities {
			if claims.HasCapability(capability) {
				c.Next()
				return
			}
		}
		abortForbidden(c, "Insufficient permissions")
	}
}

// RequireManagement restricts the route to management users
func RequireManagement() gin.HandlerFunc {
	return RequireCapability(identity.CapabilityManagement)
}

// IsManagement reports whether the current caller holds the management
// capability
func IsManagement(c *gin.Context) bool {
	claims := GetJWTClaims(c)
	return claims != nil && claims.HasCapability(identity.CapabilityManagement)
}

func abortForbidden(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
		"success": false,
		"error": gin.H{
			"code":    "FORBIDDEN",
			"message": message,
		},
	})
}
