package domain

import "time"

// MediaType distinguishes uploaded evidence kinds.
type MediaType string

const (
	MediaTypeImage MediaType = "image"
	MediaTypeVideo MediaType = "video"
)

// ComplaintMedia is one uploaded photo or video attached to a complaint.
type ComplaintMedia struct {
	ID         int64
	ComplainID int64
	MediaType  MediaType
	MediaURL   string
	CreatedAt  time.Time
	CreatedBy  *string
	UpdatedAt  time.Time
	UpdatedBy  *string
}
