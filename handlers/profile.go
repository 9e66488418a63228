package handlers

import (
	"net/http"

	"fixkaro/models"
	profileSvc "fixkaro/services/profile"

	"github.com/gin-gonic/gin"
)

// GetMeHandler returns the authenticated caller's profile, creating a
// minimal row first when the authenticated identity has none.
func GetMeHandler(svc profileSvc.ProfileService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		prof, err := svc.EnsureProfile(userID, "", models.UserRole(currentRole(c)))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, prof)
	}
}

// GetProfileHandler returns a profile by ID.
func GetProfileHandler(svc profileSvc.ProfileService) gin.HandlerFunc {
	return func(c *gin.Context) {
		prof, err := svc.Get(c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, prof)
	}
}

// UpdateMeHandler applies caller-mutable fields to the caller's profile.
func UpdateMeHandler(svc profileSvc.ProfileService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		var update profileSvc.ProfileUpdate
		if err := c.ShouldBindJSON(&update); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
			return
		}

		prof, err := svc.Update(userID, update)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, prof)
	}
}

// SetOnlineHandler toggles the worker's availability flag.
func SetOnlineHandler(svc profileSvc.ProfileService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		var input struct {
			Online *bool `json:"online" binding:"required"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
			return
		}

		if err := svc.SetOnline(userID, *input.Online); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"online": *input.Online})
	}
}

// SubmitVerificationHandler queues the worker for admin review with the
// uploaded document references.
func SubmitVerificationHandler(svc profileSvc.ProfileService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		var input struct {
			Documents []string `json:"documents" binding:"required,min=1"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
			return
		}

		if err := svc.SubmitVerification(userID, input.Documents); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Verification submitted for review"})
	}
}

// ReviewJobHandler records a rating of the job's counterparty.
func ReviewJobHandler(svc profileSvc.ProfileService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		var input struct {
			RevieweeID string `json:"reviewee_id" binding:"required"`
			Rating     int    `json:"rating" binding:"required,min=1,max=5"`
			Comment    string `json:"comment"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
			return
		}

		if err := svc.AddReview(c.Param("id"), userID, input.RevieweeID, input.Rating, input.Comment); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"message": "Review recorded"})
	}
}
