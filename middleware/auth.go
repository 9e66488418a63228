package middleware

import (
	"net/http"
	"strings"

	profileRepo "fixkaro/database/repository/profile"
	"fixkaro/models"
	"fixkaro/utils"

	"github.com/gin-gonic/gin"
)

// Context keys set by the auth middleware.
const (
	CtxUserID = "userID"
	CtxRole   = "role"
)

// JWTAuthMiddleware validates the bearer token, checks the session has not
// been revoked, and rejects suspended profiles. When roles are given, the
// token's role claim must match one of them.
func JWTAuthMiddleware(profiles profileRepo.ProfileRepository, roles ...models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		id, role, err := utils.ExtractIdentityFromToken(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		if !utils.AuthTokenValid(tokenString) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Session revoked or expired"})
			return
		}

		if len(roles) > 0 && !roleAllowed(role, roles) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Insufficient role"})
			return
		}

		prof, err := profiles.GetByID(id)
		if err != nil || prof == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Profile not found"})
			return
		}
		if prof.Suspended() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Account suspended"})
			return
		}

		c.Set(CtxUserID, id)
		c.Set(CtxRole, role)
		c.Next()
	}
}

func roleAllowed(role string, allowed []models.UserRole) bool {
	for _, r := range allowed {
		if string(r) == role {
			return true
		}
	}
	return false
}
