package job

import (
	"fixkaro/models"
	"time"
)

// CreateJobInput carries the customer-supplied fields of a new job.
type CreateJobInput struct {
	CategoryID    string    `json:"category_id" binding:"required"`
	Description   string    `json:"description" binding:"required"`
	Address       string    `json:"location_address" binding:"required"`
	Lat           *float64  `json:"location_lat,omitempty"`
	Lng           *float64  `json:"location_lng,omitempty"`
	Images        []string  `json:"images,omitempty"`
	ScheduledTime time.Time `json:"scheduled_time,omitempty"`
}

// DisputeResolution is the admin's verdict on a disputed job.
type DisputeResolution string

const (
	ResolutionPay    DisputeResolution = "PAY"    // worker payout, job COMPLETED
	ResolutionRefund DisputeResolution = "REFUND" // customer refund, job CANCELLED
)

// JobService drives the job lifecycle and its queries.
type JobService interface {
	// Create opens a new SEARCHING job for the customer and generates its OTP.
	Create(customerID string, input CreateJobInput) (*models.Job, error)
	// Accept claims a SEARCHING job for a worker; exactly one of any set of
	// concurrent callers succeeds, the rest get ErrAlreadyAccepted.
	Accept(jobID, workerID string) (*models.Job, error)
	// Arrive marks the assigned worker as on site.
	Arrive(jobID, workerID string) (*models.Job, error)
	// StartWithOTP begins work after the customer's code checks out.
	StartWithOTP(jobID, workerID, otp string) (*models.Job, error)
	// Complete records the final amount and awaits payment.
	Complete(jobID, workerID string, amount float64) (*models.Job, error)
	// Cancel lets the customer abandon a job before work starts.
	Cancel(jobID, customerID string) (*models.Job, error)
	// ReportIssue moves an in-flight job to DISPUTED with a reason.
	ReportIssue(jobID, customerID, reason string) (*models.Job, error)
	// ResolveDispute is the admin override out of DISPUTED: payout or refund.
	ResolveDispute(jobID string, resolution DisputeResolution) (*models.Job, error)

	// ListAvailable returns the matching feed for an online verified worker,
	// nearest jobs first when coordinates are known.
	ListAvailable(workerID string) ([]models.Job, error)
	// ActiveForCustomer returns the customer's non-terminal jobs.
	ActiveForCustomer(customerID string) ([]models.Job, error)
	// HistoryForCustomer returns the customer's settled jobs.
	HistoryForCustomer(customerID string) ([]models.Job, error)
	// ActiveForWorker returns jobs the worker is currently assigned to.
	ActiveForWorker(workerID string) ([]models.Job, error)
	// AllActive returns every assigned job for the admin overview.
	AllActive() ([]models.Job, error)
	// GetView returns a job joined with its profiles and category, for the
	// job's participants and admins only. The customer's copy carries the
	// start code. A deleted category resolves to the "Unknown Service"
	// placeholder.
	GetView(jobID, requesterID string, isAdmin bool) (*models.JobView, error)
}
