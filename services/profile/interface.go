package profile

import "fixkaro/models"

// RegisterInput carries the fields of a new account.
type RegisterInput struct {
	Email    string          `json:"email" binding:"required,email"`
	Password string          `json:"password" binding:"required,min=8"`
	Name     string          `json:"name" binding:"required"`
	Phone    string          `json:"phone" binding:"required"`
	Role     models.UserRole `json:"role" binding:"required"`
}

// AuthResponse is returned on successful registration or login.
type AuthResponse struct {
	Token   string          `json:"token"`
	Profile *models.Profile `json:"profile"`
}

// ProfileUpdate carries the caller-mutable profile fields. Role and
// verification standing are deliberately absent: only admins touch those.
type ProfileUpdate struct {
	Name            string    `json:"name,omitempty"`
	Phone           string    `json:"phone,omitempty"`
	AvatarURL       string    `json:"avatar_url,omitempty"`
	Bio             string    `json:"bio,omitempty"`
	ExperienceYears *int      `json:"experience_years,omitempty"`
	ServiceRadiusKm *float64  `json:"service_radius_km,omitempty"`
	Skills          []string  `json:"skills,omitempty"`
	Lat             *float64  `json:"location_lat,omitempty"`
	Lng             *float64  `json:"location_lng,omitempty"`
	FCMToken        string    `json:"fcm_token,omitempty"`
}

// ProfileService manages accounts, worker verification, and reviews.
type ProfileService interface {
	// Register creates a new customer or worker account and signs it in.
	Register(input RegisterInput) (*AuthResponse, error)
	// Login authenticates by email and password. Suspended accounts are
	// refused regardless of credentials.
	Login(email, password string) (*AuthResponse, error)
	// RevokeToken invalidates a previously issued token.
	RevokeToken(token string) error

	// Get fetches one profile.
	Get(id string) (*models.Profile, error)
	// EnsureProfile idempotently creates a minimal profile if none exists,
	// used to self-heal after an authenticated identity has no row.
	EnsureProfile(id, email string, role models.UserRole) (*models.Profile, error)
	// Update applies caller-mutable fields to the profile.
	Update(id string, update ProfileUpdate) (*models.Profile, error)
	// SetOnline toggles a worker's availability flag.
	SetOnline(id string, online bool) error
	// SubmitVerification attaches identity documents and queues the worker
	// for admin review.
	SubmitVerification(id string, docPaths []string) error

	// AddReview records a per-job rating of the counterparty and refreshes
	// the reviewee's derived rating.
	AddReview(jobID, reviewerID, revieweeID string, rating int, comment string) error
}
