package dto

import (
	"time"

	"github.com/snehalsudhakarkadam-code/RailSathiBE/internal/domain"
)

// MediaResponse is one media record attached to a complaint.
type MediaResponse struct {
	ID        int64            `json:"id"`
	MediaType domain.MediaType `json:"media_type"`
	MediaURL  string           `json:"media_url"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
	CreatedBy *string          `json:"created_by"`
	UpdatedBy *string          `json:"updated_by"`
}

// ComplaintData mirrors the persisted complaint, media files included.
type ComplaintData struct {
	ComplainID     int64                      `json:"complain_id"`
	PNRNumber      *string                    `json:"pnr_number"`
	IsPNRValidated domain.PNRValidationStatus `json:"is_pnr_validated"`
	Name           *string                    `json:"name"`
	MobileNumber   *string                    `json:"mobile_number"`
	ComplainType   *domain.ComplaintType      `json:"complain_type"`
	Description    *string                    `json:"complain_description"`
	ComplainDate   *string                    `json:"complain_date"`
	Status         domain.ComplaintStatus     `json:"complain_status"`
	TrainID        *int64                     `json:"train_id"`
	TrainNumber    *string                    `json:"train_number"`
	TrainName      *string                    `json:"train_name"`
	Coach          *string                    `json:"coach"`
	BerthNo        *int                       `json:"berth_no"`
	CreatedAt      time.Time                  `json:"created_at"`
	CreatedBy      *string                    `json:"created_by"`
	UpdatedAt      time.Time                  `json:"updated_at"`
	UpdatedBy      *string                    `json:"updated_by"`
	MediaFiles     []MediaResponse            `json:"rail_sathi_complain_media_files"`
}

// ComplaintResponse wraps a single complaint payload.
type ComplaintResponse struct {
	Message string        `json:"message"`
	Data    ComplaintData `json:"data"`
}

// DeleteMediaRequest selects media records for removal. Name and
// MobileNumber identify the creator on the passenger channel.
type DeleteMediaRequest struct {
	Name            string  `json:"name"`
	MobileNumber    string  `json:"mobile_number"`
	DeletedMediaIDs []int64 `json:"deleted_media_ids"`
}

// PassengerIdentity identifies the complaint creator on unauthenticated
// delete requests.
type PassengerIdentity struct {
	Name         string `json:"name"`
	MobileNumber string `json:"mobile_number"`
}
