package models

import "time"

// JobStatus enumerates the lifecycle states of a job.
type JobStatus string

const (
	JobSearching               JobStatus = "SEARCHING"
	JobAccepted                JobStatus = "ACCEPTED"
	JobArrived                 JobStatus = "ARRIVED"
	JobInProgress              JobStatus = "IN_PROGRESS"
	JobCompletedPendingPayment JobStatus = "COMPLETED_PENDING_PAYMENT"
	JobCompleted               JobStatus = "COMPLETED"
	JobCancelled               JobStatus = "CANCELLED"
	JobDisputed                JobStatus = "DISPUTED"
)

// Job represents one service request moving from creation to settlement.
type Job struct {
	ID            string    `bson:"id" json:"id"`
	CustomerID    string    `bson:"customer_id" json:"customer_id"`
	WorkerID      string    `bson:"worker_id,omitempty" json:"worker_id,omitempty"` // empty until accepted
	CategoryID    string    `bson:"category_id" json:"category_id"`
	Description   string    `bson:"description" json:"description"`
	Images        []string  `bson:"images,omitempty" json:"images,omitempty"` // storage paths
	Address       string    `bson:"location_address" json:"location_address"`
	LocationGeo   *GeoPoint `bson:"location_geo,omitempty" json:"location_geo,omitempty"`
	Status        JobStatus `bson:"status" json:"status"`
	ScheduledTime time.Time `bson:"scheduled_time,omitempty" json:"scheduled_time,omitempty"`
	Amount        float64   `bson:"amount,omitempty" json:"amount,omitempty"` // set at completion
	OTP           string    `bson:"otp" json:"-"`                             // only CustomerJob carries it out
	DisputeReason string    `bson:"dispute_reason,omitempty" json:"dispute_reason,omitempty"`
	CreatedAt     time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt     time.Time `bson:"updated_at" json:"updated_at"`
}

// Terminal reports whether the job can no longer move through the normal lifecycle.
func (j *Job) Terminal() bool {
	return j.Status == JobCompleted || j.Status == JobCancelled
}

// CustomerJob is a job as rendered to its owning customer: the wire shape
// of Job plus the start code. The customer reads the code to the worker in
// person, so it must reach the customer and nobody else.
type CustomerJob struct {
	Job
	OTP string `json:"otp,omitempty"`
}

// ForCustomer returns the customer-facing rendering of the job.
func (j *Job) ForCustomer() CustomerJob {
	return CustomerJob{Job: *j, OTP: j.OTP}
}

// ForCustomerAll maps a job list to its customer-facing rendering.
func ForCustomerAll(jobs []Job) []CustomerJob {
	out := make([]CustomerJob, 0, len(jobs))
	for i := range jobs {
		out = append(out, jobs[i].ForCustomer())
	}
	return out
}

// JobView is a job joined with its related profiles and category for client display.
// OTP is populated only when the requester is the job's customer.
type JobView struct {
	Job      Job              `json:"job"`
	OTP      string           `json:"otp,omitempty"`
	Customer *Profile         `json:"customer,omitempty"`
	Worker   *Profile         `json:"worker,omitempty"`
	Category *ServiceCategory `json:"category,omitempty"`
}
