package models

import "time"

// ServiceCategory is reference data: one bookable service type.
type ServiceCategory struct {
	ID          string    `bson:"id" json:"id"`
	Name        string    `bson:"name" json:"name"`
	Icon        string    `bson:"icon" json:"icon"`
	Description string    `bson:"description" json:"description"`
	BasePrice   float64   `bson:"base_price" json:"base_price"`
	CreatedAt   time.Time `bson:"created_at" json:"created_at"`
}

// UnknownCategory is the placeholder returned when a job references a
// category that has since been deleted.
func UnknownCategory(id string) *ServiceCategory {
	return &ServiceCategory{ID: id, Name: "Unknown Service", Icon: IconFallback}
}
