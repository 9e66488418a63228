package handlers

import (
	"net/http"

	notificationSvc "fixkaro/services/notification"

	"github.com/gin-gonic/gin"
)

// ListNotificationsHandler returns the caller's alerts, newest first.
func ListNotificationsHandler(svc notificationSvc.NotificationService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		items, err := svc.ListForUser(userID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"notifications": items})
	}
}

// MarkNotificationReadHandler flips the read flag of one of the caller's
// own alerts.
func MarkNotificationReadHandler(svc notificationSvc.NotificationService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		if err := svc.MarkRead(c.Param("id"), userID); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Marked as read"})
	}
}
