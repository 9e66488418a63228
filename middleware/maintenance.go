package middleware

import (
	"net/http"
	"strings"

	settingsRepo "fixkaro/database/repository/settings"

	"github.com/gin-gonic/gin"
)

// MaintenanceMiddleware rejects traffic while maintenance mode is on. The
// admin console and health check stay reachable so maintenance can be
// turned off again. A settings lookup failure never blocks traffic.
func MaintenanceMiddleware(settings settingsRepo.SettingsRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if path == "/health" || strings.HasPrefix(path, "/api/admin") {
			c.Next()
			return
		}

		s, err := settings.Get()
		if err == nil && s.MaintenanceMode {
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "Platform is under maintenance. Try again later."})
			return
		}
		c.Next()
	}
}
