package notifications

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// EventType identifies what happened on the platform.
type EventType string

const (
	EventPostPublished          EventType = "post.published"
	EventCommentCreated         EventType = "comment.created"
	EventPasswordResetRequested EventType = "password.reset-requested"
)

// ActivityEvent is the message published to the activity topic. SubjectID is
// also the partition key so events about one entity stay ordered.
type ActivityEvent struct {
	ID        string            `json:"id"`
	Type      EventType         `json:"type"`
	SubjectID string            `json:"subject_id"`
	Data      map[string]string `json:"data,omitempty"`
	CreatedAt time.Time         `json:"created_at"`
}

// NewEvent builds an ActivityEvent with a fresh ID and timestamp.
func NewEvent(eventType EventType, subjectID string, data map[string]string) *ActivityEvent {
	return &ActivityEvent{
		ID:        uuid.New().String(),
		Type:      eventType,
		SubjectID: subjectID,
		Data:      data,
		CreatedAt: time.Now().UTC(),
	}
}

// ToJSON serializes the event for the wire
func (e *ActivityEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// GetPartitionKey returns the key used for consistent partition routing
func (e *ActivityEvent) GetPartitionKey() string {
	return e.SubjectID
}

// Publisher is the narrow interface services depend on. Publishing is
// best-effort; a nil Publisher is valid and drops events.
type Publisher interface {
	Publish(ctx context.Context, event *ActivityEvent)
	Close() error
}
