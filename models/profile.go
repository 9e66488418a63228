package models

import "time"

// UserRole enumerates the roles a profile can hold. Assigned at
// registration and immutable afterwards.
type UserRole string

const (
	RoleCustomer UserRole = "CUSTOMER"
	RoleWorker   UserRole = "WORKER"
	RoleAdmin    UserRole = "ADMIN"
)

// WorkerStatus enumerates a worker's verification standing.
type WorkerStatus string

const (
	WorkerUnverified    WorkerStatus = "UNVERIFIED"
	WorkerPendingReview WorkerStatus = "PENDING_REVIEW"
	WorkerVerified      WorkerStatus = "VERIFIED"
	WorkerSuspended     WorkerStatus = "SUSPENDED"
)

// Profile represents one platform user: customer, worker, or admin.
type Profile struct {
	ID           string   `bson:"id" json:"id"`
	Email        string   `bson:"email" json:"email"`
	Name         string   `bson:"name" json:"name"`
	Phone        string   `bson:"phone" json:"phone"`
	Role         UserRole `bson:"role" json:"role"`
	PasswordHash string   `bson:"password_hash" json:"-"`
	AvatarURL    string   `bson:"avatar_url,omitempty" json:"avatar_url,omitempty"`
	FCMToken     string   `bson:"fcm_token,omitempty" json:"-"`

	// Worker-only fields.
	WorkerStatus     WorkerStatus `bson:"worker_status,omitempty" json:"worker_status,omitempty"`
	Online           bool         `bson:"online" json:"online"`
	Skills           []string     `bson:"skills,omitempty" json:"skills,omitempty"` // category IDs
	VerificationDocs []string     `bson:"verification_docs,omitempty" json:"verification_docs,omitempty"`
	Bio              string       `bson:"bio,omitempty" json:"bio,omitempty"`
	ExperienceYears  int          `bson:"experience_years,omitempty" json:"experience_years,omitempty"`
	ServiceRadiusKm  float64      `bson:"service_radius_km,omitempty" json:"service_radius_km,omitempty"`
	LocationGeo      *GeoPoint    `bson:"location_geo,omitempty" json:"location_geo,omitempty"`

	// Derived from reviews, recomputed on every new review.
	Rating      float64 `bson:"rating" json:"rating"`
	ReviewCount int     `bson:"review_count" json:"review_count"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// Suspended reports whether the profile is barred from protected areas.
func (p *Profile) Suspended() bool {
	return p.WorkerStatus == WorkerSuspended
}
