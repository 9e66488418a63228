package catalog

import (
	"fmt"
	"time"

	catalogRepo "fixkaro/database/repository/catalog"
	"fixkaro/models"

	"github.com/google/uuid"
)

// CatalogError is a domain error with a stable code for branching.
type CatalogError struct {
	Code    string
	Message string
}

func (e *CatalogError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *CatalogError) Is(target error) bool {
	t, ok := target.(*CatalogError)
	return ok && t.Code == e.Code
}

var (
	// ErrCategoryNotFound reports a missing category.
	ErrCategoryNotFound = &CatalogError{Code: "categoryNotFound", Message: "service category not found"}
	// ErrValidation reports malformed input.
	ErrValidation = &CatalogError{Code: "validation", Message: "invalid input"}
)

// CatalogService is the admin CRUD surface over service categories.
type CatalogService interface {
	// List returns every category.
	List() ([]models.ServiceCategory, error)
	// Get returns one category. Callers resolving job references should use
	// Resolve instead, which tolerates deletions.
	Get(id string) (*models.ServiceCategory, error)
	// Resolve returns the category or the "Unknown Service" placeholder
	// when it has been deleted out from under a job.
	Resolve(id string) *models.ServiceCategory
	// Search finds categories by name keyword.
	Search(keyword string) ([]models.ServiceCategory, error)
	// Create adds a category; the icon is derived from the enumerated
	// name-to-icon mapping, never from free text.
	Create(name string, basePrice float64, description string) (*models.ServiceCategory, error)
	// Update modifies name, price, or description of a category.
	Update(category *models.ServiceCategory) error
	// Delete removes a category. Existing jobs keep their dangling
	// reference and display the placeholder.
	Delete(id string) error
}

// DefaultCatalogService implements CatalogService.
type DefaultCatalogService struct {
	Repo catalogRepo.CatalogRepository
}

func (s *DefaultCatalogService) List() ([]models.ServiceCategory, error) {
	return s.Repo.GetAll()
}

func (s *DefaultCatalogService) Get(id string) (*models.ServiceCategory, error) {
	c, err := s.Repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, ErrCategoryNotFound
	}
	return c, nil
}

func (s *DefaultCatalogService) Resolve(id string) *models.ServiceCategory {
	c, err := s.Repo.GetByID(id)
	if err != nil || c == nil {
		return models.UnknownCategory(id)
	}
	return c
}

func (s *DefaultCatalogService) Search(keyword string) ([]models.ServiceCategory, error) {
	if keyword == "" {
		return s.Repo.GetAll()
	}
	return s.Repo.Search(keyword)
}

func (s *DefaultCatalogService) Create(name string, basePrice float64, description string) (*models.ServiceCategory, error) {
	if name == "" {
		return nil, &CatalogError{Code: "validation", Message: "name is required"}
	}
	if basePrice < 0 {
		return nil, &CatalogError{Code: "validation", Message: "base price cannot be negative"}
	}
	if description == "" {
		description = "Service"
	}

	category := &models.ServiceCategory{
		ID:          uuid.New().String(),
		Name:        name,
		Icon:        models.IconForCategory(name),
		Description: description,
		BasePrice:   basePrice,
		CreatedAt:   time.Now(),
	}
	if err := s.Repo.Create(category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *DefaultCatalogService) Update(category *models.ServiceCategory) error {
	if _, err := s.Get(category.ID); err != nil {
		return err
	}
	category.Icon = models.IconForCategory(category.Name)
	return s.Repo.Update(category)
}

func (s *DefaultCatalogService) Delete(id string) error {
	if _, err := s.Get(id); err != nil {
		return err
	}
	return s.Repo.Delete(id)
}
