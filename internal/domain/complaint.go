package domain

import "time"

// ComplaintStatus enumerates lifecycle states for complaints.
type ComplaintStatus string

const (
	ComplaintStatusPending   ComplaintStatus = "pending"
	ComplaintStatusCompleted ComplaintStatus = "completed"
)

// ComplaintType enumerates the supported complaint categories.
type ComplaintType string

const (
	ComplaintTypeCleaning ComplaintType = "cleaning"
	ComplaintTypeLinen    ComplaintType = "linen"
)

// PNRValidationStatus tracks whether the supplied PNR was checked.
type PNRValidationStatus string

const (
	PNRValidationNotAttempted     PNRValidationStatus = "not-attempted"
	PNRValidationAttemptedSuccess PNRValidationStatus = "attempted-success"
	PNRValidationAttemptedFailure PNRValidationStatus = "attempted-failure"
)

// Complaint is the aggregate for passenger complaints.
type Complaint struct {
	ComplainID     int64
	PNRNumber      *string
	IsPNRValidated PNRValidationStatus
	Name           *string
	MobileNumber   *string
	ComplainType   *ComplaintType
	Description    *string
	ComplainDate   *time.Time
	Status         ComplaintStatus
	TrainID        *int64
	TrainNumber    *string
	TrainName      *string
	Coach          *string
	BerthNo        *int
	CreatedAt      time.Time
	CreatedBy      *string
	UpdatedAt      time.Time
	UpdatedBy      *string
	MediaFiles     []ComplaintMedia
}
