package handlers

import (
	"net/http"
	"strings"

	jobRepo "fixkaro/database/repository/job"
	"fixkaro/models"
	"fixkaro/realtime"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Cross-origin is enforced at the CORS layer; the upgrade itself is open.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// WebsocketHandler upgrades the connection and attaches the caller to the
// hub. Subscription requests are gated: a caller may join their own user
// channel, job channels they participate in, and admins may join anything.
func WebsocketHandler(hub *realtime.Hub, jobs jobRepo.JobRepository, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		isAdmin := currentRole(c) == string(models.RoleAdmin)

		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			logger.Warn("websocket upgrade failed", zap.Error(err))
			return
		}

		allowed := func(channel string) bool {
			if isAdmin {
				return true
			}
			if channel == realtime.UserChannel(userID) {
				return true
			}
			if jobID, ok := strings.CutPrefix(channel, "job:"); ok {
				j, err := jobs.GetByID(jobID)
				if err != nil || j == nil {
					return false
				}
				return j.CustomerID == userID || j.WorkerID == userID
			}
			return false
		}

		realtime.NewClient(hub, conn, logger, allowed)
	}
}
