package handlers

import (
	"net/http"
	"strings"

	profileSvc "fixkaro/services/profile"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RegisterHandler creates a new customer or worker account.
func RegisterHandler(svc profileSvc.ProfileService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input profileSvc.RegisterInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
			return
		}

		resp, err := svc.Register(input)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, resp)
	}
}

// LoginHandler authenticates by email and password.
func LoginHandler(svc profileSvc.ProfileService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			Email    string `json:"email" binding:"required,email"`
			Password string `json:"password" binding:"required"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
			return
		}

		resp, err := svc.Login(input.Email, input.Password)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, resp)
	}
}

// LogoutHandler revokes the caller's session token.
func LogoutHandler(svc profileSvc.ProfileService) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := getLogger(c)
		authHeader := c.GetHeader("Authorization")
		token := strings.TrimPrefix(authHeader, "Bearer ")
		if token == "" || token == authHeader {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Missing bearer token"})
			return
		}

		if err := svc.RevokeToken(token); err != nil {
			logger.Error("Failed to revoke token", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to log out"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
	}
}
