package dto

import "github.com/snehalsudhakarkadam-code/RailSathiBE/internal/domain"

// FromComplaint converts a domain complaint into its API shape. Dates
// render as plain calendar days.
func FromComplaint(c *domain.Complaint) ComplaintData {
	var complainDate *string
	if c.ComplainDate != nil {
		day := c.ComplainDate.Format("2006-01-02")
		complainDate = &day
	}
	data := ComplaintData{
		ComplainID:     c.ComplainID,
		PNRNumber:      c.PNRNumber,
		IsPNRValidated: c.IsPNRValidated,
		Name:           c.Name,
		MobileNumber:   c.MobileNumber,
		ComplainType:   c.ComplainType,
		Description:    c.Description,
		ComplainDate:   complainDate,
		Status:         c.Status,
		TrainID:        c.TrainID,
		TrainNumber:    c.TrainNumber,
		TrainName:      c.TrainName,
		Coach:          c.Coach,
		BerthNo:        c.BerthNo,
		CreatedAt:      c.CreatedAt,
		CreatedBy:      c.CreatedBy,
		UpdatedAt:      c.UpdatedAt,
		UpdatedBy:      c.UpdatedBy,
		MediaFiles:     make([]MediaResponse, 0, len(c.MediaFiles)),
	}
	for _, m := range c.MediaFiles {
		data.MediaFiles = append(data.MediaFiles, MediaResponse{
			ID:        m.ID,
			MediaType: m.MediaType,
			MediaURL:  m.MediaURL,
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
			CreatedBy: m.CreatedBy,
			UpdatedBy: m.UpdatedBy,
		})
	}
	return data
}

// FromComplaints converts a list of domain complaints.
func FromComplaints(complaints []domain.Complaint) []ComplaintData {
	out := make([]ComplaintData, 0, len(complaints))
	for i := range complaints {
		out = append(out, FromComplaint(&complaints[i]))
	}
	return out
}
