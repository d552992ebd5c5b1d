package activity

import "time"

type EventType string

const (
	EventJournal       EventType = "journal"
	EventPartCreated   EventType = "part_created"
	EventPartUpdated   EventType = "part_updated"
	EventRelationship  EventType = "relationship"
	EventGuidedSession EventType = "guided_session"
)

// FeedLimit caps the reconciled feed after sorting.
const FeedLimit = 10

// Event is a derived, never-persisted feed entry. SortKey is the resolved
// timestamp in milliseconds; ties keep insertion order.
type Event struct {
	Type         EventType `json:"type"`
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Timestamp    time.Time `json:"timestamp"`
	AssociatedID string    `json:"associated_id,omitempty"`
	SortKey      int64     `json:"sort_key"`
}
