package profileRepo

import (
	"fixkaro/models"

	"go.mongodb.org/mongo-driver/bson"
)

// ProfileRepository defines methods for profile data access.
type ProfileRepository interface {
	// GetByID retrieves a profile by its unique ID.
	GetByID(id string) (*models.Profile, error)
	// GetByEmail retrieves a profile by email, or nil when absent.
	GetByEmail(email string) (*models.Profile, error)
	// GetAll retrieves all profiles, newest first.
	GetAll() ([]models.Profile, error)
	// Create inserts a new profile record.
	Create(profile *models.Profile) error
	// Ensure inserts the profile only if no record with its ID exists yet.
	Ensure(profile *models.Profile) error
	// Update modifies an existing profile record.
	Update(profile *models.Profile) error
	// UpdateFields applies a partial update to the profile with the given ID.
	UpdateFields(id string, set bson.M) error
	// Delete removes a profile record by its ID.
	Delete(id string) error
	// PendingWorkers retrieves workers awaiting verification review.
	PendingWorkers() ([]models.Profile, error)
}
