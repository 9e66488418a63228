package notification

import (
	"context"
	"fmt"
	"time"

	notificationRepo "fixkaro/database/repository/notification"
	profileRepo "fixkaro/database/repository/profile"
	"fixkaro/models"
	"fixkaro/realtime"
	"fixkaro/utils"

	"firebase.google.com/go/v4/messaging"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultNotificationService is the production implementation.
type DefaultNotificationService struct {
	Repo     notificationRepo.NotificationRepository
	Profiles profileRepo.ProfileRepository
	Hub      realtime.Publisher
	Logger   *zap.Logger
}

func NewDefaultNotificationService(
	repo notificationRepo.NotificationRepository,
	profiles profileRepo.ProfileRepository,
	hub realtime.Publisher,
	logger *zap.Logger,
) (*DefaultNotificationService, error) {
	if repo == nil || profiles == nil {
		return nil, fmt.Errorf("notification service initialization error: repository is nil")
	}
	return &DefaultNotificationService{Repo: repo, Profiles: profiles, Hub: hub, Logger: logger}, nil
}

// Notify stores the alert, announces it on the user's realtime channel and
// attempts an FCM push. Only the row insert can fail the call.
func (s *DefaultNotificationService) Notify(ctx context.Context, userID, title, message string, typ models.NotificationType) error {
	item := &models.NotificationItem{
		ID:        uuid.New().String(),
		UserID:    userID,
		Title:     title,
		Message:   message,
		Type:      typ,
		CreatedAt: time.Now(),
	}
	if err := s.Repo.Append(item); err != nil {
		return fmt.Errorf("failed to store notification for user %s: %w", userID, err)
	}

	if s.Hub != nil {
		s.Hub.Publish(realtime.UserChannel(userID), realtime.EventInsert, "notification", item.ID)
	}
	s.push(ctx, userID, title, message)
	return nil
}

// push sends an FCM message when the user has a registered token.
func (s *DefaultNotificationService) push(ctx context.Context, userID, title, body string) {
	if utils.FCMClient == nil {
		return
	}
	profile, err := s.Profiles.GetByID(userID)
	if err != nil || profile == nil || profile.FCMToken == "" {
		return
	}
	msg := &messaging.Message{
		Token: profile.FCMToken,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
	}
	if _, err := utils.FCMClient.Send(ctx, msg); err != nil {
		s.Logger.Warn("failed to send push notification",
			zap.String("userID", userID), zap.Error(err))
	}
}

func (s *DefaultNotificationService) ListForUser(userID string) ([]models.NotificationItem, error) {
	return s.Repo.ListForUser(userID)
}

func (s *DefaultNotificationService) MarkRead(id, userID string) error {
	return s.Repo.MarkRead(id, userID)
}
