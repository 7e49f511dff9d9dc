package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"StyleSense/internal/auth"
)

// ContextUsername is the gin context key holding the authenticated username.
const ContextUsername = "username"

// AuthMiddleware accepts "Authorization: Bearer <token>". When allowQuery is set it also accepts
// ?token=, which browsers need for websocket upgrades.
func AuthMiddleware(issuer *auth.TokenIssuer, allowQuery bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := bearerToken(c, allowQuery)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			return
		}

		claims, err := issuer.ValidateToken(tokenString)
		if err != nil {
			if auth.IsExpired(err) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Token has expired"})
				return
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}
		c.Set(ContextUsername, claims.Username)
		c.Next()
	}
}

func bearerToken(c *gin.Context, allowQuery bool) (string, bool) {
	if h := c.GetHeader("Authorization"); h != "" {
		if !strings.HasPrefix(h, "Bearer ") {
			return "", false
		}
		t := strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
		return t, t != ""
	}
	if allowQuery {
		if t := c.Query("token"); t != "" {
			return t, true
		}
	}
	return "", false
}

// Username returns the authenticated username set by AuthMiddleware.
func Username(c *gin.Context) string {
	return c.GetString(ContextUsername)
}
