package events

import (
	"time"

	"github.com/majifix/service-request/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventRequestCreated  EventType = "servicerequest_created"
	EventRequestUpdated  EventType = "servicerequest_updated"
	EventRequestResolved EventType = "servicerequest_resolved"
	EventRequestDeleted  EventType = "servicerequest_deleted"
)

// Event represents a domain event emitted after a service request changes.
// The full request rides along so sync handlers need no extra fetch.
type Event struct {
	ID        string                 `json:"id"`
	Type      EventType              `json:"type"`
	RequestID string                 `json:"request_id"`
	Code      string                 `json:"code,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
	Request   *domain.ServiceRequest `json:"request,omitempty"`
}
