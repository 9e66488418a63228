package models

import "time"

// Review is one per-job rating of the counterparty.
type Review struct {
	ID         string    `bson:"id" json:"id"`
	JobID      string    `bson:"job_id" json:"job_id"`
	ReviewerID string    `bson:"reviewer_id" json:"reviewer_id"`
	RevieweeID string    `bson:"reviewee_id" json:"reviewee_id"`
	Rating     int       `bson:"rating" json:"rating"` // 1..5
	Comment    string    `bson:"comment,omitempty" json:"comment,omitempty"`
	CreatedAt  time.Time `bson:"created_at" json:"created_at"`
}
