package middleware

import (
	"net/http"
	"strings"

	"github.com/Shrvnsthr/Event-Booking/internal/entity"
	"github.com/Shrvnsthr/Event-Booking/pkg/auth"
	"github.com/gin-gonic/gin"
)

const principalKey = "principal"

// Auth verifies the bearer token and stores the authenticated claims in
// the request context. Handlers downstream can trust Principal() to
// return a verified identity rather than a client-supplied one.
func Auth(tokens *auth.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Authorization header required"})
			return
		}

		tokenString, ok := strings.CutPrefix(header, "Bearer ")
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Invalid authorization header"})
			return
		}

		claims, err := tokens.Parse(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Invalid or expired token"})
			return
		}

		c.Set(principalKey, claims)
		c.Next()
	}
}

// RequireAdmin aborts unless the authenticated principal has the admin
// role. Must run after Auth.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := Principal(c)
		if !ok || claims.Role != entity.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "Admin access required"})
			return
		}
		c.Next()
	}
}

// Principal returns the verified claims set by Auth.
func Principal(c *gin.Context) (*auth.Claims, bool) {
	value, exists := c.Get(principalKey)
	if !exists {
		return nil, false
	}
	claims, ok := value.(*auth.Claims)
	return claims, ok
}
