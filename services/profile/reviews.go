package profile

import (
	"time"

	"fixkaro/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

// AddReview records a per-job rating of the counterparty and recomputes the
// reviewee's derived rating from the full review list. The stored rating is
// a cache of that fold, refreshed on every append.
func (s *DefaultProfileService) AddReview(jobID, reviewerID, revieweeID string, rating int, comment string) error {
	if rating < 1 || rating > 5 {
		return validationError("rating must be between 1 and 5")
	}
	if _, err := s.Get(revieweeID); err != nil {
		return err
	}

	review := &models.Review{
		ID:         uuid.New().String(),
		JobID:      jobID,
		ReviewerID: reviewerID,
		RevieweeID: revieweeID,
		Rating:     rating,
		Comment:    comment,
		CreatedAt:  time.Now(),
	}
	if err := s.ReviewRepo.Append(review); err != nil {
		return err
	}

	if err := s.refreshRating(revieweeID); err != nil {
		// The review itself is stored; a stale aggregate fixes itself on
		// the next append.
		s.Logger.Warn("failed to refresh rating",
			zap.String("revieweeID", revieweeID), zap.Error(err))
	}
	return nil
}

func (s *DefaultProfileService) refreshRating(revieweeID string) error {
	reviews, err := s.ReviewRepo.ListForReviewee(revieweeID)
	if err != nil {
		return err
	}
	if len(reviews) == 0 {
		return nil
	}
	var total int
	for _, r := range reviews {
		total += r.Rating
	}
	avg := float64(total) / float64(len(reviews))
	return s.Repo.UpdateFields(revieweeID, bson.M{
		"rating":       avg,
		"review_count": len(reviews),
	})
}
