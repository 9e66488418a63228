package notification

import (
	"context"

	"fixkaro/models"
)

// NotificationService records per-user alerts and delivers them over the
// realtime channel and FCM push where a token is known.
type NotificationService interface {
	// Notify stores an alert for the user and fans it out. Best effort:
	// delivery failures are logged, never returned to the caller's flow.
	Notify(ctx context.Context, userID, title, message string, typ models.NotificationType) error
	// ListForUser returns the user's alerts, newest first.
	ListForUser(userID string) ([]models.NotificationItem, error)
	// MarkRead flips the read flag of one alert on behalf of its owner.
	// A userID that does not own the alert gets the not-found error.
	MarkRead(id, userID string) error
}
