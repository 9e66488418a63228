package handlers

import (
	"net/http"

	"fixkaro/cron"
	"fixkaro/models"
	jobSvc "fixkaro/services/job"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// CreateJobHandler opens a new job for the authenticated customer.
func CreateJobHandler(svc jobSvc.JobService) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := getLogger(c)
		userID, ok := currentUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		var input jobSvc.CreateJobInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
			return
		}

		j, err := svc.Create(userID, input)
		if err != nil {
			respondError(c, err)
			return
		}

		if err := cron.ScheduleJobReminder(j); err != nil {
			logger.Warn("Failed to schedule job reminder", zap.String("jobID", j.ID), zap.Error(err))
		}
		// The customer gets the start code back; it is absent from every
		// other rendering of the job.
		c.JSON(http.StatusCreated, j.ForCustomer())
	}
}

// JobFeedHandler returns the matching feed for the authenticated worker.
func JobFeedHandler(svc jobSvc.JobService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		jobs, err := svc.ListAvailable(userID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"jobs": jobs})
	}
}

// AcceptJobHandler claims a searching job for the authenticated worker.
// Exactly one of any set of concurrent callers wins.
func AcceptJobHandler(svc jobSvc.JobService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		j, err := svc.Accept(c.Param("id"), userID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, j)
	}
}

// ArriveJobHandler marks the assigned worker as on site.
func ArriveJobHandler(svc jobSvc.JobService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		j, err := svc.Arrive(c.Param("id"), userID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, j)
	}
}

// StartJobHandler begins work after the customer's OTP checks out.
func StartJobHandler(svc jobSvc.JobService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		var input struct {
			OTP string `json:"otp" binding:"required"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
			return
		}

		j, err := svc.StartWithOTP(c.Param("id"), userID, input.OTP)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, j)
	}
}

// CompleteJobHandler records the final amount and moves the job to
// awaiting payment.
func CompleteJobHandler(svc jobSvc.JobService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		var input struct {
			Amount float64 `json:"amount" binding:"required,gt=0"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
			return
		}

		j, err := svc.Complete(c.Param("id"), userID, input.Amount)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, j)
	}
}

// CancelJobHandler lets the customer abandon a job before work starts.
func CancelJobHandler(svc jobSvc.JobService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		j, err := svc.Cancel(c.Param("id"), userID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, j)
	}
}

// DisputeJobHandler moves an in-flight job to DISPUTED with a reason.
func DisputeJobHandler(svc jobSvc.JobService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		var input struct {
			Reason string `json:"reason" binding:"required"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
			return
		}

		j, err := svc.ReportIssue(c.Param("id"), userID, input.Reason)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, j)
	}
}

// GetJobHandler returns a job joined with its profiles and category. The
// view is restricted to the job's participants and admins.
func GetJobHandler(svc jobSvc.JobService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		isAdmin := currentRole(c) == string(models.RoleAdmin)
		view, err := svc.GetView(c.Param("id"), userID, isAdmin)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, view)
	}
}

// CustomerJobsHandler lists the customer's jobs, active or settled.
func CustomerJobsHandler(svc jobSvc.JobService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		var (
			jobs []models.Job
			err  error
		)
		if c.Query("history") == "true" {
			jobs, err = svc.HistoryForCustomer(userID)
		} else {
			jobs, err = svc.ActiveForCustomer(userID)
		}
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"jobs": models.ForCustomerAll(jobs)})
	}
}

// WorkerJobsHandler lists jobs the worker is currently assigned to.
func WorkerJobsHandler(svc jobSvc.JobService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		jobs, err := svc.ActiveForWorker(userID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"jobs": jobs})
	}
}
