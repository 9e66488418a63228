package models

import "time"

// NotificationType classifies an alert for client display.
type NotificationType string

const (
	NotifInfo    NotificationType = "INFO"
	NotifSuccess NotificationType = "SUCCESS"
	NotifWarning NotificationType = "WARNING"
	NotifError   NotificationType = "ERROR"
)

// NotificationItem is one per-user alert. Only the IsRead flag is mutable.
type NotificationItem struct {
	ID        string           `bson:"id" json:"id"`
	UserID    string           `bson:"user_id" json:"user_id"`
	Title     string           `bson:"title" json:"title"`
	Message   string           `bson:"message" json:"message"`
	Type      NotificationType `bson:"type" json:"type"`
	IsRead    bool             `bson:"is_read" json:"is_read"`
	Link      string           `bson:"link,omitempty" json:"link,omitempty"`
	CreatedAt time.Time        `bson:"created_at" json:"created_at"`
}
