package models

import "time"

// SettingsID is the fixed identity of the singleton configuration row.
// Using a known id makes the upsert race-free: every writer targets the
// same document instead of guessing whether one exists.
const SettingsID = "system"

// SystemSettings is the singleton platform configuration row.
type SystemSettings struct {
	ID                string    `bson:"id" json:"id"`
	MaintenanceMode   bool      `bson:"maintenance_mode" json:"maintenance_mode"`
	AllowRegistration bool      `bson:"allow_registration" json:"allow_registration"`
	CommissionRate    float64   `bson:"commission_rate" json:"commission_rate"` // percent
	SupportPhone      string    `bson:"support_phone,omitempty" json:"support_phone,omitempty"`
	UpdatedAt         time.Time `bson:"updated_at" json:"updated_at"`
}

// DefaultSettings returns the configuration used before an admin has saved any.
func DefaultSettings() *SystemSettings {
	return &SystemSettings{
		ID:                SettingsID,
		MaintenanceMode:   false,
		AllowRegistration: true,
		CommissionRate:    10,
	}
}
