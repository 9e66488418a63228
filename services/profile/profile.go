package profile

import (
	"time"

	profileRepo "fixkaro/database/repository/profile"
	reviewRepo "fixkaro/database/repository/review"
	settingsRepo "fixkaro/database/repository/settings"
	"fixkaro/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

// DefaultProfileService implements ProfileService.
type DefaultProfileService struct {
	Repo         profileRepo.ProfileRepository
	ReviewRepo   reviewRepo.ReviewRepository
	SettingsRepo settingsRepo.SettingsRepository
	Logger       *zap.Logger
}

func (s *DefaultProfileService) Get(id string) (*models.Profile, error) {
	p, err := s.Repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrProfileNotFound
	}
	return p, nil
}

// EnsureProfile self-heals a missing row for an authenticated identity. The
// insert is on-conflict-do-nothing, so calling it after every sign-in is
// safe and never clobbers an existing profile.
func (s *DefaultProfileService) EnsureProfile(id, email string, role models.UserRole) (*models.Profile, error) {
	now := time.Now()
	minimal := &models.Profile{
		ID:        id,
		Email:     email,
		Name:      email,
		Role:      role,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if role == models.RoleWorker {
		minimal.WorkerStatus = models.WorkerUnverified
	}
	if err := s.Repo.Ensure(minimal); err != nil {
		return nil, err
	}
	return s.Get(id)
}

func (s *DefaultProfileService) Update(id string, update ProfileUpdate) (*models.Profile, error) {
	p, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	set := bson.M{}
	if update.Name != "" {
		set["name"] = update.Name
	}
	if update.Phone != "" {
		set["phone"] = update.Phone
	}
	if update.AvatarURL != "" {
		set["avatar_url"] = update.AvatarURL
	}
	if update.Bio != "" {
		set["bio"] = update.Bio
	}
	if update.FCMToken != "" {
		set["fcm_token"] = update.FCMToken
	}
	if update.ExperienceYears != nil {
		set["experience_years"] = *update.ExperienceYears
	}
	if update.ServiceRadiusKm != nil {
		set["service_radius_km"] = *update.ServiceRadiusKm
	}
	if update.Skills != nil {
		if p.Role != models.RoleWorker {
			return nil, ErrNotWorker
		}
		set["skills"] = update.Skills
	}
	if update.Lat != nil && update.Lng != nil {
		set["location_geo"] = models.NewGeoPoint(*update.Lng, *update.Lat)
	}
	if len(set) == 0 {
		return p, nil
	}

	if err := s.Repo.UpdateFields(id, set); err != nil {
		return nil, err
	}
	return s.Get(id)
}

func (s *DefaultProfileService) SetOnline(id string, online bool) error {
	p, err := s.Get(id)
	if err != nil {
		return err
	}
	if p.Role != models.RoleWorker {
		return ErrNotWorker
	}
	return s.Repo.UpdateFields(id, bson.M{"online": online})
}

// SubmitVerification stores the identity document paths and queues the
// worker for admin review.
func (s *DefaultProfileService) SubmitVerification(id string, docPaths []string) error {
	if len(docPaths) == 0 {
		return validationError("at least one document is required")
	}
	p, err := s.Get(id)
	if err != nil {
		return err
	}
	if p.Role != models.RoleWorker {
		return ErrNotWorker
	}
	return s.Repo.UpdateFields(id, bson.M{
		"worker_status":     models.WorkerPendingReview,
		"verification_docs": docPaths,
	})
}
