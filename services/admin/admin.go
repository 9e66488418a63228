package admin

import (
	"fmt"

	jobRepo "fixkaro/database/repository/job"
	profileRepo "fixkaro/database/repository/profile"
	settingsRepo "fixkaro/database/repository/settings"
	"fixkaro/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

// AdminError is a domain error with a stable code for branching.
type AdminError struct {
	Code    string
	Message string
}

func (e *AdminError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AdminError) Is(target error) bool {
	t, ok := target.(*AdminError)
	return ok && t.Code == e.Code
}

var (
	// ErrProfileNotFound reports a missing profile.
	ErrProfileNotFound = &AdminError{Code: "profileNotFound", Message: "profile not found"}
	// ErrNotPendingReview reports a verification verdict on a worker who is
	// not awaiting review.
	ErrNotPendingReview = &AdminError{Code: "notPendingReview", Message: "worker is not pending review"}
)

// PlatformStats is the admin dashboard aggregate.
type PlatformStats struct {
	TotalGMV       float64 `json:"total_gmv"`
	TotalRevenue   float64 `json:"total_revenue"`
	CommissionRate float64 `json:"commission_rate"`
	CompletedJobs  int     `json:"completed_jobs"`
}

// AdminService gathers the operations reserved for platform staff.
type AdminService interface {
	// AllUsers lists every profile, newest first.
	AllUsers() ([]models.Profile, error)
	// PendingWorkers lists workers awaiting verification review.
	PendingWorkers() ([]models.Profile, error)
	// ReviewWorker approves or rejects a pending verification.
	ReviewWorker(workerID string, approve bool) error
	// SetSuspended suspends or reinstates an account. Reinstating a worker
	// restores VERIFIED standing; customers return to no standing at all.
	SetSuspended(userID string, suspended bool) error
	// Stats computes GMV and commission revenue over completed jobs.
	Stats() (*PlatformStats, error)
	// Settings returns the singleton configuration row.
	Settings() (*models.SystemSettings, error)
	// UpdateSettings replaces the singleton configuration row.
	UpdateSettings(settings *models.SystemSettings) (*models.SystemSettings, error)
}

// DefaultAdminService implements AdminService.
type DefaultAdminService struct {
	ProfileRepo  profileRepo.ProfileRepository
	JobRepo      jobRepo.JobRepository
	SettingsRepo settingsRepo.SettingsRepository
	Logger       *zap.Logger
}

func (s *DefaultAdminService) AllUsers() ([]models.Profile, error) {
	return s.ProfileRepo.GetAll()
}

func (s *DefaultAdminService) PendingWorkers() ([]models.Profile, error) {
	return s.ProfileRepo.PendingWorkers()
}

func (s *DefaultAdminService) ReviewWorker(workerID string, approve bool) error {
	p, err := s.ProfileRepo.GetByID(workerID)
	if err != nil {
		return err
	}
	if p == nil {
		return ErrProfileNotFound
	}
	if p.WorkerStatus != models.WorkerPendingReview {
		return ErrNotPendingReview
	}

	status := models.WorkerVerified
	if !approve {
		status = models.WorkerUnverified
	}
	if err := s.ProfileRepo.UpdateFields(workerID, bson.M{"worker_status": status}); err != nil {
		return err
	}
	s.Logger.Info("worker verification reviewed",
		zap.String("workerID", workerID), zap.Bool("approved", approve))
	return nil
}

func (s *DefaultAdminService) SetSuspended(userID string, suspended bool) error {
	p, err := s.ProfileRepo.GetByID(userID)
	if err != nil {
		return err
	}
	if p == nil {
		return ErrProfileNotFound
	}

	var status models.WorkerStatus
	if suspended {
		status = models.WorkerSuspended
	} else if p.Role == models.RoleWorker {
		// Reinstated workers are assumed to have been verified before.
		status = models.WorkerVerified
	}
	return s.ProfileRepo.UpdateFields(userID, bson.M{"worker_status": status})
}

func (s *DefaultAdminService) Stats() (*PlatformStats, error) {
	amounts, err := s.JobRepo.CompletedAmounts()
	if err != nil {
		return nil, err
	}
	settings, err := s.SettingsRepo.Get()
	if err != nil {
		return nil, err
	}

	var gmv float64
	for _, a := range amounts {
		gmv += a
	}
	rate := settings.CommissionRate / 100
	return &PlatformStats{
		TotalGMV:       gmv,
		TotalRevenue:   gmv * rate,
		CommissionRate: settings.CommissionRate,
		CompletedJobs:  len(amounts),
	}, nil
}

func (s *DefaultAdminService) Settings() (*models.SystemSettings, error) {
	return s.SettingsRepo.Get()
}

func (s *DefaultAdminService) UpdateSettings(settings *models.SystemSettings) (*models.SystemSettings, error) {
	if settings.CommissionRate < 0 || settings.CommissionRate > 100 {
		return nil, &AdminError{Code: "validation", Message: "commission rate must be between 0 and 100"}
	}
	if err := s.SettingsRepo.Update(settings); err != nil {
		return nil, err
	}
	return s.SettingsRepo.Get()
}
