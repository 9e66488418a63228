package models

import "time"

// Message is one chat message scoped to a job. Messages are immutable and
// ordered by creation time.
type Message struct {
	ID        string    `bson:"id" json:"id"`
	JobID     string    `bson:"job_id" json:"job_id"`
	SenderID  string    `bson:"sender_id" json:"sender_id"`
	Text      string    `bson:"text" json:"text"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
