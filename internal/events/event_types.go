package events

import (
	"time"

	"github.com/snehalsudhakarkadam-code/RailSathiBE/internal/notify"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventComplaintCreated EventType = "complaint_created"
	EventComplaintUpdated EventType = "complaint_updated"
	EventComplaintDeleted EventType = "complaint_deleted"
)

// Complaint submission channels.
const (
	SourceStaff     = "staff"
	SourcePassenger = "passenger"
)

// Event represents a domain event emitted by services.
type Event struct {
	Type       EventType
	ComplainID int64
	Timestamp  time.Time
	Payload    any
}

// ComplaintCreatedPayload carries the snapshot the notification pipeline
// consumes, plus the channel the complaint arrived on.
type ComplaintCreatedPayload struct {
	Source  string
	Details notify.ComplaintDetails
}

// ComplaintUpdatedPayload payload.
type ComplaintUpdatedPayload struct {
	Source    string
	UpdatedBy string
}

// ComplaintDeletedPayload payload.
type ComplaintDeletedPayload struct {
	Source string
}
