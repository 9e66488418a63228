package jobRepo

import (
	"fixkaro/models"

	"go.mongodb.org/mongo-driver/bson"
)

// JobRepository defines methods for job data access.
type JobRepository interface {
	// Create inserts a new job record.
	Create(job *models.Job) error
	// GetByID retrieves a job by its unique ID.
	GetByID(id string) (*models.Job, error)
	// Accept performs the conditional claim of a SEARCHING job. It returns
	// the updated job, or nil when the guard no longer matches because
	// another worker claimed the job first.
	Accept(jobID, workerID string) (*models.Job, error)
	// Transition applies set fields to a job only while its status is one of
	// from. It returns the updated job, or nil when the precondition failed.
	Transition(jobID string, from []models.JobStatus, set bson.M) (*models.Job, error)
	// ListAvailable retrieves SEARCHING jobs with no assigned worker,
	// optionally restricted to the given category IDs.
	ListAvailable(categoryIDs []string) ([]models.Job, error)
	// ActiveForCustomer retrieves the customer's non-terminal jobs, newest first.
	ActiveForCustomer(customerID string) ([]models.Job, error)
	// HistoryForCustomer retrieves the customer's terminal jobs, newest first.
	HistoryForCustomer(customerID string) ([]models.Job, error)
	// ActiveForWorker retrieves the worker's non-terminal jobs, newest first.
	ActiveForWorker(workerID string) ([]models.Job, error)
	// AllActive retrieves every job currently assigned to a worker, for the
	// admin overview.
	AllActive() ([]models.Job, error)
	// CompletedAmounts returns the amount of every COMPLETED job.
	CompletedAmounts() ([]float64, error)
}
