package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/paperdesk/paperdesk-be/utils"
)

const UserContextKey = "user"

// AuthMiddleware resolves the bearer token to a principal and aborts the
// request before any handler work when it cannot.
func AuthMiddleware(c *gin.Context) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing authorization header"})
		return
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	claims, err := utils.ParseUserToken(parts[1])
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	c.Set(UserContextKey, claims)
	c.Next()
}

// CurrentUser returns the authenticated principal's claims, or nil on routes
// that skipped AuthMiddleware.
func CurrentUser(c *gin.Context) *utils.UserClaims {
	v, ok := c.Get(UserContextKey)
	if !ok {
		return nil
	}
	claims, ok := v.(*utils.UserClaims)
	if !ok {
		return nil
	}
	return claims
}
