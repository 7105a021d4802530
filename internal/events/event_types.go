package events

import (
	"time"

	"github.com/spec-kit/campus-helpdesk/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventRequestSubmitted     EventType = "request_submitted"
	EventRequestAssigned      EventType = "request_assigned"
	EventRequestStatusChanged EventType = "request_status_changed"
)

// Actor encapsulates actor metadata for an event.
type Actor struct {
	Type      domain.SubjectType `json:"type"`
	StudentID *string            `json:"student_id,omitempty"`
	ActorName *string            `json:"actor_name,omitempty"`
}

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	RequestID string      `json:"request_id"`
	Actor     Actor       `json:"actor"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// RequestSubmittedPayload payload.
type RequestSubmittedPayload struct {
	Category    domain.Category      `json:"category"`
	Outcome     domain.RequestStatus `json:"outcome"`
	IsDuplicate bool                 `json:"is_duplicate"`
	DuplicateID string               `json:"duplicate_id,omitempty"`
}

// RequestAssignedPayload payload.
type RequestAssignedPayload struct {
	Technician   string               `json:"technician"`
	Trade        domain.Trade         `json:"trade"`
	AssignedHour int                  `json:"assigned_hour"`
	Outcome      domain.RequestStatus `json:"outcome"`
}

// RequestStatusChangedPayload payload.
type RequestStatusChangedPayload struct {
	OldStatus domain.RequestStatus `json:"old_status"`
	NewStatus domain.RequestStatus `json:"new_status"`
}
