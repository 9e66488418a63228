package catalogRepo

import "fixkaro/models"

// CatalogRepository defines methods for service category data access.
type CatalogRepository interface {
	// GetByID retrieves a category by its unique ID, or nil when absent.
	GetByID(id string) (*models.ServiceCategory, error)
	// GetAll retrieves every category, sorted by name.
	GetAll() ([]models.ServiceCategory, error)
	// Search retrieves categories whose name matches the keyword.
	Search(keyword string) ([]models.ServiceCategory, error)
	// Create inserts a new category record.
	Create(category *models.ServiceCategory) error
	// Update modifies an existing category record.
	Update(category *models.ServiceCategory) error
	// Delete removes a category record by its ID. Jobs referencing the
	// category are left untouched.
	Delete(id string) error
}
