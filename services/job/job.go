package job

import (
	"context"
	"fmt"
	"time"

	catalogRepo "fixkaro/database/repository/catalog"
	jobRepo "fixkaro/database/repository/job"
	ledgerRepo "fixkaro/database/repository/ledger"
	profileRepo "fixkaro/database/repository/profile"
	"fixkaro/models"
	"fixkaro/realtime"
	"fixkaro/services/notification"
	"fixkaro/utils"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

// DefaultJobService implements JobService.
type DefaultJobService struct {
	Repo            jobRepo.JobRepository
	ProfileRepo     profileRepo.ProfileRepository
	CatalogRepo     catalogRepo.CatalogRepository
	LedgerRepo      ledgerRepo.LedgerRepository
	NotificationSvc notification.NotificationService
	Hub             realtime.Publisher
	Logger          *zap.Logger
}

// Create opens a new job in SEARCHING with a freshly generated 4-digit OTP.
// The OTP is the customer's proof-of-presence code: it never leaves the
// customer-facing representation and gates the start of work later on.
func (s *DefaultJobService) Create(customerID string, input CreateJobInput) (*models.Job, error) {
	if input.CategoryID == "" {
		return nil, validationError("category is required")
	}
	if input.Description == "" {
		return nil, validationError("description is required")
	}
	if input.Address == "" {
		return nil, validationError("address is required")
	}
	category, err := s.CatalogRepo.GetByID(input.CategoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up category: %w", err)
	}
	if category == nil {
		return nil, validationError("unknown service category")
	}

	otp, err := utils.GenerateJobOTP()
	if err != nil {
		return nil, fmt.Errorf("failed to generate job OTP: %w", err)
	}

	now := time.Now()
	j := &models.Job{
		ID:            uuid.New().String(),
		CustomerID:    customerID,
		CategoryID:    input.CategoryID,
		Description:   input.Description,
		Address:       input.Address,
		Images:        input.Images,
		ScheduledTime: input.ScheduledTime,
		Status:        models.JobSearching,
		OTP:           otp,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if input.Lat != nil && input.Lng != nil {
		j.LocationGeo = models.NewGeoPoint(*input.Lng, *input.Lat)
	}

	if err := s.Repo.Create(j); err != nil {
		return nil, err
	}
	s.publish(j, realtime.EventInsert)
	return j, nil
}

// Accept delegates the race entirely to the repository's conditional write:
// a nil result means the guard no longer matched, i.e. someone else won.
func (s *DefaultJobService) Accept(jobID, workerID string) (*models.Job, error) {
	worker, err := s.ProfileRepo.GetByID(workerID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up worker: %w", err)
	}
	if worker == nil || worker.Role != models.RoleWorker {
		return nil, ErrNotPermitted
	}
	if worker.WorkerStatus != models.WorkerVerified {
		return nil, ErrWorkerNotEligible
	}

	j, err := s.Repo.Accept(jobID, workerID)
	if err != nil {
		return nil, err
	}
	if j == nil {
		existing, err := s.Repo.GetByID(jobID)
		if err != nil {
			return nil, err
		}
		if existing == nil {
			return nil, ErrJobNotFound
		}
		return nil, ErrAlreadyAccepted
	}

	s.publish(j, realtime.EventUpdate)
	s.notify(j.CustomerID, "Worker found",
		fmt.Sprintf("%s accepted your job and is on the way.", worker.Name),
		models.NotifSuccess)
	return j, nil
}

// Arrive marks the assigned worker as on site.
func (s *DefaultJobService) Arrive(jobID, workerID string) (*models.Job, error) {
	j, err := s.ownedByWorker(jobID, workerID)
	if err != nil {
		return nil, err
	}
	if j.Status != models.JobAccepted {
		return nil, ErrInvalidTransition
	}

	updated, err := s.Repo.Transition(jobID, []models.JobStatus{models.JobAccepted},
		bson.M{"status": models.JobArrived})
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, ErrInvalidTransition
	}

	s.publish(updated, realtime.EventUpdate)
	s.notify(updated.CustomerID, "Worker arrived",
		"Your worker has arrived. Share the OTP shown on your job to start the work.",
		models.NotifInfo)
	return updated, nil
}

// StartWithOTP begins work only on an exact OTP match. A mismatch is a
// recoverable validation error and changes nothing.
func (s *DefaultJobService) StartWithOTP(jobID, workerID, otp string) (*models.Job, error) {
	j, err := s.ownedByWorker(jobID, workerID)
	if err != nil {
		return nil, err
	}
	if j.Status != models.JobArrived {
		return nil, ErrInvalidTransition
	}
	if j.OTP != otp {
		return nil, ErrInvalidOTP
	}

	updated, err := s.Repo.Transition(jobID, []models.JobStatus{models.JobArrived},
		bson.M{"status": models.JobInProgress})
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, ErrInvalidTransition
	}

	s.publish(updated, realtime.EventUpdate)
	s.notify(updated.CustomerID, "Work started", "Your worker has started the job.", models.NotifInfo)
	return updated, nil
}

// Complete records the worker-entered amount and parks the job until the
// customer pays. The amount is expected to be at least the category base
// price but that is advisory, not enforced.
func (s *DefaultJobService) Complete(jobID, workerID string, amount float64) (*models.Job, error) {
	if amount <= 0 {
		return nil, validationError("amount must be positive")
	}
	j, err := s.ownedByWorker(jobID, workerID)
	if err != nil {
		return nil, err
	}
	if j.Status != models.JobInProgress {
		return nil, ErrInvalidTransition
	}

	updated, err := s.Repo.Transition(jobID, []models.JobStatus{models.JobInProgress},
		bson.M{"status": models.JobCompletedPendingPayment, "amount": amount})
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, ErrInvalidTransition
	}

	s.publish(updated, realtime.EventUpdate)
	s.notify(updated.CustomerID, "Work finished",
		fmt.Sprintf("Your worker marked the job done. Amount due: %.2f.", amount),
		models.NotifInfo)
	return updated, nil
}

// Cancel is the customer's exit before work starts.
func (s *DefaultJobService) Cancel(jobID, customerID string) (*models.Job, error) {
	j, err := s.ownedByCustomer(jobID, customerID)
	if err != nil {
		return nil, err
	}
	if j.Status != models.JobSearching && j.Status != models.JobAccepted {
		return nil, ErrInvalidTransition
	}

	updated, err := s.Repo.Transition(jobID,
		[]models.JobStatus{models.JobSearching, models.JobAccepted},
		bson.M{"status": models.JobCancelled})
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, ErrInvalidTransition
	}

	s.publish(updated, realtime.EventUpdate)
	if updated.WorkerID != "" {
		s.notify(updated.WorkerID, "Job cancelled", "The customer cancelled the job.", models.NotifWarning)
	}
	return updated, nil
}

// ReportIssue moves an in-flight job to DISPUTED for admin review.
func (s *DefaultJobService) ReportIssue(jobID, customerID, reason string) (*models.Job, error) {
	if reason == "" {
		return nil, validationError("a reason is required to report an issue")
	}
	j, err := s.ownedByCustomer(jobID, customerID)
	if err != nil {
		return nil, err
	}
	switch j.Status {
	case models.JobAccepted, models.JobArrived, models.JobInProgress:
	default:
		return nil, ErrInvalidTransition
	}

	updated, err := s.Repo.Transition(jobID,
		[]models.JobStatus{models.JobAccepted, models.JobArrived, models.JobInProgress},
		bson.M{"status": models.JobDisputed, "dispute_reason": reason})
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, ErrInvalidTransition
	}

	s.publish(updated, realtime.EventUpdate)
	if updated.WorkerID != "" {
		s.notify(updated.WorkerID, "Issue reported",
			"The customer reported an issue with this job. An admin will review it.",
			models.NotifWarning)
	}
	return updated, nil
}

// ResolveDispute is the only way out of DISPUTED and never returns the job
// to an active state. The payout path credits the worker's ledger; the
// refund path inserts no ledger entry.
func (s *DefaultJobService) ResolveDispute(jobID string, resolution DisputeResolution) (*models.Job, error) {
	var target models.JobStatus
	switch resolution {
	case ResolutionPay:
		target = models.JobCompleted
	case ResolutionRefund:
		target = models.JobCancelled
	default:
		return nil, validationError("resolution must be PAY or REFUND")
	}

	updated, err := s.Repo.Transition(jobID, []models.JobStatus{models.JobDisputed},
		bson.M{"status": target})
	if err != nil {
		return nil, err
	}
	if updated == nil {
		existing, err := s.Repo.GetByID(jobID)
		if err != nil {
			return nil, err
		}
		if existing == nil {
			return nil, ErrJobNotFound
		}
		return nil, ErrInvalidTransition
	}

	if resolution == ResolutionPay && updated.WorkerID != "" {
		s.creditWorkerForDispute(updated)
	}

	s.publish(updated, realtime.EventUpdate)
	s.notify(updated.CustomerID, "Dispute resolved",
		fmt.Sprintf("An admin resolved your dispute: %s.", resolution), models.NotifInfo)
	if updated.WorkerID != "" {
		s.notify(updated.WorkerID, "Dispute resolved",
			fmt.Sprintf("An admin resolved the dispute on your job: %s.", resolution), models.NotifInfo)
	}
	return updated, nil
}

// creditWorkerForDispute pays the worker out of a PAY resolution. When the
// dispute arose before completion the job carries no amount yet, so the
// category base price stands in.
func (s *DefaultJobService) creditWorkerForDispute(j *models.Job) {
	amount := j.Amount
	if amount <= 0 {
		if category, err := s.CatalogRepo.GetByID(j.CategoryID); err == nil && category != nil {
			amount = category.BasePrice
		}
	}
	if amount <= 0 {
		s.Logger.Warn("dispute payout skipped, no amount known", zap.String("jobID", j.ID))
		return
	}
	txn := &models.Transaction{
		ID:          uuid.New().String(),
		WorkerID:    j.WorkerID,
		JobID:       j.ID,
		Amount:      amount,
		Type:        models.TxnCredit,
		Status:      models.TxnCompleted,
		Description: fmt.Sprintf("Dispute payout for Job %s", shortID(j.ID)),
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	if err := s.LedgerRepo.Append(txn); err != nil {
		// Job status already moved; the missing ledger row is a known
		// inconsistency surfaced via logs for manual repair.
		s.Logger.Error("dispute payout ledger append failed",
			zap.String("jobID", j.ID), zap.Error(err))
	}
}

func (s *DefaultJobService) ActiveForCustomer(customerID string) ([]models.Job, error) {
	return s.Repo.ActiveForCustomer(customerID)
}

func (s *DefaultJobService) HistoryForCustomer(customerID string) ([]models.Job, error) {
	return s.Repo.HistoryForCustomer(customerID)
}

func (s *DefaultJobService) ActiveForWorker(workerID string) ([]models.Job, error) {
	return s.Repo.ActiveForWorker(workerID)
}

func (s *DefaultJobService) AllActive() ([]models.Job, error) {
	return s.Repo.AllActive()
}

// GetView joins a job with its profiles and category for display. Only the
// job's customer, its assigned worker, or an admin may see it; the joined
// profiles carry contact details. A deleted category degrades to the
// "Unknown Service" placeholder instead of failing. The start code is
// included only for the customer.
func (s *DefaultJobService) GetView(jobID, requesterID string, isAdmin bool) (*models.JobView, error) {
	j, err := s.Repo.GetByID(jobID)
	if err != nil {
		return nil, err
	}
	if j == nil {
		return nil, ErrJobNotFound
	}
	if !isAdmin && requesterID != j.CustomerID && (j.WorkerID == "" || requesterID != j.WorkerID) {
		return nil, ErrNotPermitted
	}

	view := &models.JobView{Job: *j}
	if requesterID == j.CustomerID {
		view.OTP = j.OTP
	}
	if customer, err := s.ProfileRepo.GetByID(j.CustomerID); err == nil {
		view.Customer = customer
	}
	if j.WorkerID != "" {
		if worker, err := s.ProfileRepo.GetByID(j.WorkerID); err == nil {
			view.Worker = worker
		}
	}
	category, err := s.CatalogRepo.GetByID(j.CategoryID)
	if err != nil || category == nil {
		view.Category = models.UnknownCategory(j.CategoryID)
	} else {
		view.Category = category
	}
	return view, nil
}

// ownedByWorker fetches the job and checks the caller is its assigned worker.
func (s *DefaultJobService) ownedByWorker(jobID, workerID string) (*models.Job, error) {
	j, err := s.Repo.GetByID(jobID)
	if err != nil {
		return nil, err
	}
	if j == nil {
		return nil, ErrJobNotFound
	}
	if j.WorkerID != workerID {
		return nil, ErrNotPermitted
	}
	return j, nil
}

// ownedByCustomer fetches the job and checks the caller is its customer.
func (s *DefaultJobService) ownedByCustomer(jobID, customerID string) (*models.Job, error) {
	j, err := s.Repo.GetByID(jobID)
	if err != nil {
		return nil, err
	}
	if j == nil {
		return nil, ErrJobNotFound
	}
	if j.CustomerID != customerID {
		return nil, ErrNotPermitted
	}
	return j, nil
}

func (s *DefaultJobService) publish(j *models.Job, kind realtime.EventKind) {
	if s.Hub == nil {
		return
	}
	s.Hub.Publish(realtime.JobChannel(j.ID), kind, "job", j.ID)
}

// notify is best effort; a failed alert never fails the transition.
func (s *DefaultJobService) notify(userID, title, message string, typ models.NotificationType) {
	if s.NotificationSvc == nil {
		return
	}
	if err := s.NotificationSvc.Notify(context.Background(), userID, title, message, typ); err != nil {
		s.Logger.Warn("failed to notify user", zap.String("userID", userID), zap.Error(err))
	}
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
