package chat

import (
	"fmt"
	"time"

	chatRepo "fixkaro/database/repository/chat"
	jobRepo "fixkaro/database/repository/job"
	"fixkaro/models"
	"fixkaro/realtime"

	"github.com/google/uuid"
)

// ChatError is a domain error with a stable code for branching.
type ChatError struct {
	Code    string
	Message string
}

func (e *ChatError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *ChatError) Is(target error) bool {
	t, ok := target.(*ChatError)
	return ok && t.Code == e.Code
}

var (
	// ErrNotParticipant reports a sender or reader outside the job's
	// customer/worker pair.
	ErrNotParticipant = &ChatError{Code: "notParticipant", Message: "you are not a participant of this job"}
	// ErrJobNotFound reports a missing job.
	ErrJobNotFound = &ChatError{Code: "jobNotFound", Message: "job not found"}
	// ErrEmptyMessage reports a blank message body.
	ErrEmptyMessage = &ChatError{Code: "emptyMessage", Message: "message text is required"}
)

// ChatService is the per-job message log. Messages are append-only and
// delivered in creation order.
type ChatService interface {
	// Send appends a message on behalf of a job participant.
	Send(jobID, senderID, text string) (*models.Message, error)
	// List returns the job's messages in creation order, for participants
	// and admins only.
	List(jobID, requesterID string, isAdmin bool) ([]models.Message, error)
}

// DefaultChatService implements ChatService.
type DefaultChatService struct {
	Repo    chatRepo.ChatRepository
	JobRepo jobRepo.JobRepository
	Hub     realtime.Publisher
}

func (s *DefaultChatService) Send(jobID, senderID, text string) (*models.Message, error) {
	if text == "" {
		return nil, ErrEmptyMessage
	}
	if err := s.requireParticipant(jobID, senderID, false); err != nil {
		return nil, err
	}

	msg := &models.Message{
		ID:        uuid.New().String(),
		JobID:     jobID,
		SenderID:  senderID,
		Text:      text,
		CreatedAt: time.Now(),
	}
	if err := s.Repo.Append(msg); err != nil {
		return nil, err
	}

	if s.Hub != nil {
		s.Hub.Publish(realtime.JobChannel(jobID), realtime.EventInsert, "message", msg.ID)
	}
	return msg, nil
}

func (s *DefaultChatService) List(jobID, requesterID string, isAdmin bool) ([]models.Message, error) {
	if err := s.requireParticipant(jobID, requesterID, isAdmin); err != nil {
		return nil, err
	}
	return s.Repo.ListForJob(jobID)
}

func (s *DefaultChatService) requireParticipant(jobID, userID string, isAdmin bool) error {
	j, err := s.JobRepo.GetByID(jobID)
	if err != nil {
		return err
	}
	if j == nil {
		return ErrJobNotFound
	}
	if isAdmin || userID == j.CustomerID || (j.WorkerID != "" && userID == j.WorkerID) {
		return nil
	}
	return ErrNotParticipant
}
