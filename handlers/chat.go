package handlers

import (
	"net/http"

	"fixkaro/models"
	chatSvc "fixkaro/services/chat"

	"github.com/gin-gonic/gin"
)

// SendMessageHandler appends a message to the job's conversation.
func SendMessageHandler(svc chatSvc.ChatService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		var input struct {
			Text string `json:"text" binding:"required"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
			return
		}

		msg, err := svc.Send(c.Param("id"), userID, input.Text)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, msg)
	}
}

// ListMessagesHandler returns the job's messages in creation order.
func ListMessagesHandler(svc chatSvc.ChatService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		isAdmin := currentRole(c) == string(models.RoleAdmin)
		msgs, err := svc.List(c.Param("id"), userID, isAdmin)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"messages": msgs})
	}
}
