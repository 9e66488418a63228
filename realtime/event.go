package realtime

import "time"

// EventKind mirrors the datastore change kinds fanned out to subscribers.
type EventKind string

const (
	EventInsert EventKind = "INSERT"
	EventUpdate EventKind = "UPDATE"
)

// Event is one change notification on a channel. Payloads are advisory:
// they carry only the entity kind and id, and consumers are expected to
// re-fetch authoritative state rather than trust the event body.
type Event struct {
	Channel  string    `json:"channel"`
	Kind     EventKind `json:"kind"`
	Entity   string    `json:"entity"` // "job", "message", "notification", "transaction"
	EntityID string    `json:"entity_id"`
	At       time.Time `json:"at"`
}

// JobChannel names the per-job channel.
func JobChannel(jobID string) string { return "job:" + jobID }

// UserChannel names the per-user channel.
func UserChannel(userID string) string { return "user:" + userID }
