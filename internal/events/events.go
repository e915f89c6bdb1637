package events

import (
	"context"
	"time"

	"github.com/google/uuid"
)

const (
	EventSource  = "finwise-backend"
	EventVersion = "1.0"

	TypeVolunteerRegistered = "volunteer.registered"
	TypeVolunteerDecided    = "volunteer.decided"
)

// Event is the envelope published for every domain event.
type Event struct {
	ID        string      `json:"id"`
	Type      string      `json:"type"`
	Source    string      `json:"source"`
	Version   string      `json:"version"`
	Timestamp time.Time   `json:"timestamp"`
	Data      interface{} `json:"data"`
}

func NewEvent(eventType string, data interface{}) *Event {
	return &Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Source:    EventSource,
		Version:   EventVersion,
		Timestamp: time.Now().UTC(),
		Data:      data,
	}
}

type VolunteerRegisteredData struct {
	VolunteerID uint   `json:"volunteer_id"`
	ApprovalID  uint   `json:"approval_id"`
	Email       string `json:"email"`
}

type VolunteerDecidedData struct {
	VolunteerID uint   `json:"volunteer_id"`
	ApprovalID  uint   `json:"approval_id"`
	AdminID     uint   `json:"admin_id"`
	Status      string `json:"status"`
}

// EventPublisher publishes domain events. Implementations must be safe for
// concurrent use.
type EventPublisher interface {
	PublishEvent(ctx context.Context, event *Event) error
	Close() error
}
