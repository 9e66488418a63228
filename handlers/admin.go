package handlers

import (
	"net/http"

	"fixkaro/models"
	adminSvc "fixkaro/services/admin"
	jobSvc "fixkaro/services/job"

	"github.com/gin-gonic/gin"
)

// AdminUsersHandler lists every profile for the admin console.
func AdminUsersHandler(svc adminSvc.AdminService) gin.HandlerFunc {
	return func(c *gin.Context) {
		users, err := svc.AllUsers()
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"users": users})
	}
}

// AdminPendingWorkersHandler lists workers awaiting verification review.
func AdminPendingWorkersHandler(svc adminSvc.AdminService) gin.HandlerFunc {
	return func(c *gin.Context) {
		workers, err := svc.PendingWorkers()
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"workers": workers})
	}
}

// AdminReviewWorkerHandler approves or rejects a pending verification.
func AdminReviewWorkerHandler(svc adminSvc.AdminService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			Approve *bool `json:"approve" binding:"required"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
			return
		}

		if err := svc.ReviewWorker(c.Param("id"), *input.Approve); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Verification reviewed"})
	}
}

// AdminSuspendHandler suspends or reinstates an account.
func AdminSuspendHandler(svc adminSvc.AdminService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			Suspended *bool `json:"suspended" binding:"required"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
			return
		}

		if err := svc.SetSuspended(c.Param("id"), *input.Suspended); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"suspended": *input.Suspended})
	}
}

// AdminStatsHandler computes the dashboard aggregates.
func AdminStatsHandler(svc adminSvc.AdminService) gin.HandlerFunc {
	return func(c *gin.Context) {
		stats, err := svc.Stats()
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, stats)
	}
}

// AdminSettingsHandler returns the singleton configuration row.
func AdminSettingsHandler(svc adminSvc.AdminService) gin.HandlerFunc {
	return func(c *gin.Context) {
		settings, err := svc.Settings()
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, settings)
	}
}

// AdminUpdateSettingsHandler replaces the singleton configuration row.
func AdminUpdateSettingsHandler(svc adminSvc.AdminService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var settings models.SystemSettings
		if err := c.ShouldBindJSON(&settings); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
			return
		}

		saved, err := svc.UpdateSettings(&settings)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, saved)
	}
}

// AdminActiveJobsHandler returns every assigned job for the overview board.
func AdminActiveJobsHandler(svc jobSvc.JobService) gin.HandlerFunc {
	return func(c *gin.Context) {
		jobs, err := svc.AllActive()
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"jobs": jobs})
	}
}

// AdminResolveDisputeHandler closes a disputed job with a payout or refund.
func AdminResolveDisputeHandler(svc jobSvc.JobService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			Resolution jobSvc.DisputeResolution `json:"resolution" binding:"required,oneof=PAY REFUND"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
			return
		}

		j, err := svc.ResolveDispute(c.Param("id"), input.Resolution)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, j)
	}
}
