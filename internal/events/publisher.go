// Package events publishes domain events for downstream consumers (content
// sync, audit). Publishing is best-effort: a failed publish is logged, never
// surfaced to the admin performing the write.
package events

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Event types emitted by the service.
const (
	TypeExamCreated  = "exam.created"
	TypeQuizUploaded = "quiz.uploaded"
	TypeBatchUpdated = "batch.updated"
)

// Event is the envelope every published message shares.
type Event struct {
	ID         string                 `json:"id"`
	Type       string                 `json:"type"`
	Source     string                 `json:"source"`
	OccurredAt time.Time              `json:"occurred_at"`
	Data       map[string]interface{} `json:"data"`
}

// NewEvent builds an event envelope with a generated id.
func NewEvent(eventType string, data map[string]interface{}) Event {
	return Event{
		ID:         uuid.New().String(),
		Type:       eventType,
		Source:     "quiz-content-service",
		OccurredAt: time.Now().UTC(),
		Data:       data,
	}
}

// EventPublisher publishes domain events.
type EventPublisher interface {
	Publish(ctx context.Context, event Event) error
	Close() error
}
