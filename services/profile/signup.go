package profile

import (
	"fmt"
	"strings"
	"time"

	"fixkaro/models"
	"fixkaro/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const tokenTTL = 72 * time.Hour

// Register creates a new customer or worker account. Admin accounts are
// seeded out of band and can never be self-registered.
func (s *DefaultProfileService) Register(input RegisterInput) (*AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" || input.Password == "" || input.Name == "" {
		return nil, validationError("email, password and name are required")
	}
	if input.Role != models.RoleCustomer && input.Role != models.RoleWorker {
		return nil, validationError("role must be CUSTOMER or WORKER")
	}

	settings, err := s.SettingsRepo.Get()
	if err != nil {
		utils.GetLogger().Error("Register: failed to load settings", zap.Error(err))
		return nil, fmt.Errorf("registration failed, please try again")
	}
	if !settings.AllowRegistration {
		return nil, ErrRegistrationClosed
	}

	existing, err := s.Repo.GetByEmail(email)
	if err != nil {
		utils.GetLogger().Error("Register: failed to check email", zap.Error(err))
		return nil, fmt.Errorf("registration failed, please try again")
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	p := &models.Profile{
		ID:           uuid.New().String(),
		Email:        email,
		Name:         input.Name,
		Phone:        input.Phone,
		Role:         input.Role,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if p.Role == models.RoleWorker {
		p.WorkerStatus = models.WorkerUnverified
	}

	if err := s.Repo.Create(p); err != nil {
		return nil, fmt.Errorf("failed to create profile: %w", err)
	}

	return s.issueToken(p)
}

// issueToken creates a JWT for the profile and caches its hash so it can be
// revoked later.
func (s *DefaultProfileService) issueToken(p *models.Profile) (*AuthResponse, error) {
	token, err := utils.GenerateToken(p.ID, string(p.Role), tokenTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}
	if err := utils.CacheAuthToken(token, p.ID, tokenTTL); err != nil {
		utils.GetLogger().Warn("failed to cache auth token", zap.Error(err))
	}
	return &AuthResponse{Token: token, Profile: p}, nil
}
